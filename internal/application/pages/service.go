package pages

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// ErrPageNotFound is returned for unknown page slugs
var ErrPageNotFound = shared.NewDomainError("NOT_FOUND", "Page not found")

// Section is a headed block of text. Group collects sections into tabs.
type Section struct {
	Group   string `yaml:"group" json:"group,omitempty"`
	Heading string `yaml:"heading" json:"heading"`
	Body    string `yaml:"body" json:"body"`
}

// FAQ is a help page entry
type FAQ struct {
	Topic    string `yaml:"topic" json:"topic"`
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// ContactDetails is the support information on the contact page
type ContactDetails struct {
	Email   string `yaml:"email" json:"email"`
	Phone   string `yaml:"phone" json:"phone"`
	Hours   string `yaml:"hours" json:"hours"`
	Address string `yaml:"address" json:"address"`
}

// Page is a static content page
type Page struct {
	Slug     string          `yaml:"slug" json:"slug"`
	Title    string          `yaml:"title" json:"title"`
	Summary  string          `yaml:"summary" json:"summary,omitempty"`
	Updated  string          `yaml:"updated" json:"updated,omitempty"`
	Sections []Section       `yaml:"sections" json:"sections,omitempty"`
	FAQs     []FAQ           `yaml:"faqs" json:"faqs,omitempty"`
	Contact  *ContactDetails `yaml:"contact" json:"contact,omitempty"`
}

type document struct {
	Pages []Page `yaml:"pages"`
}

// ContactRequest is a Contact page submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// Service serves the static pages and stores contact messages
type Service struct {
	pages       map[string]Page
	order       []string
	contactRepo identity.ContactMessageRepository
	logger      *zap.Logger
}

// NewService loads the embedded page content
func NewService(contactRepo identity.ContactMessageRepository, logger *zap.Logger) (*Service, error) {
	return NewServiceFromYAML(defaultContent, contactRepo, logger)
}

// NewServiceFromYAML loads page content from a YAML document
func NewServiceFromYAML(content []byte, contactRepo identity.ContactMessageRepository, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse page content: %w", err)
	}

	s := &Service{
		pages:       make(map[string]Page, len(doc.Pages)),
		contactRepo: contactRepo,
		logger:      logger,
	}
	for _, p := range doc.Pages {
		if p.Slug == "" {
			return nil, fmt.Errorf("page %q has no slug", p.Title)
		}
		if _, dup := s.pages[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate page slug %q", p.Slug)
		}
		s.pages[p.Slug] = p
		s.order = append(s.order, p.Slug)
	}
	return s, nil
}

// Slugs lists the available pages in document order
func (s *Service) Slugs() []string {
	return append([]string(nil), s.order...)
}

// Page returns a page by slug. A non-empty search narrows the help FAQs to
// entries whose question or answer contains it.
func (s *Service) Page(slug, search string) (*Page, error) {
	page, ok := s.pages[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, ErrPageNotFound
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search != "" && len(page.FAQs) > 0 {
		var matched []FAQ
		for _, f := range page.FAQs {
			if strings.Contains(strings.ToLower(f.Question), search) || strings.Contains(strings.ToLower(f.Answer), search) {
				matched = append(matched, f)
			}
		}
		page.FAQs = matched
	}
	return &page, nil
}

// SubmitContact stores a contact form message
func (s *Service) SubmitContact(ctx context.Context, req ContactRequest) error {
	msg, err := identity.NewContactMessage(req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return err
	}
	if err := s.contactRepo.Save(ctx, msg); err != nil {
		return err
	}
	s.logger.Info("Contact message received", zap.String("message_id", msg.ID.String()))
	return nil
}
