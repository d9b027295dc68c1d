package catalog

import (
	"regexp"
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Category is a browsable product category
type Category struct {
	shared.BaseEntity
	Name      string
	Slug      string
	Image     string
	SortOrder int
}

// NewCategory creates a category
func NewCategory(name, slug, image string, sortOrder int) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Category slug must be lowercase words joined by hyphens")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug,
		Image:      image,
		SortOrder:  sortOrder,
	}, nil
}
