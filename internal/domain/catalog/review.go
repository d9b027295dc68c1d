package catalog

import (
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultReviewRating is used when a review is submitted without a rating
const DefaultReviewRating = 5

// Review is a shopper's rating and comment on a product
type Review struct {
	shared.BaseEntity
	ProductID          uuid.UUID
	UserEmail          string
	UserName           string
	Rating             int
	Title              string
	Comment            string
	IsVerifiedPurchase bool
}

// NewReview creates a review. A zero rating means the default of 5 stars.
func NewReview(productID uuid.UUID, userEmail, userName string, rating int, title, comment string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if strings.TrimSpace(userEmail) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reviewer email is required")
	}
	if rating == 0 {
		rating = DefaultReviewRating
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return &Review{
		BaseEntity:         shared.NewBaseEntity(),
		ProductID:          productID,
		UserEmail:          strings.ToLower(strings.TrimSpace(userEmail)),
		UserName:           strings.TrimSpace(userName),
		Rating:             rating,
		Title:              strings.TrimSpace(title),
		Comment:            strings.TrimSpace(comment),
		IsVerifiedPurchase: true,
	}, nil
}
