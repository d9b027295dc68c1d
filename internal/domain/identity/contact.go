package identity

import (
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
)

// ContactMessage is a Contact page submission
type ContactMessage struct {
	shared.BaseEntity
	Name    string
	Email   string
	Subject string
	Message string
}

// NewContactMessage validates a contact form submission
func NewContactMessage(name, email, subject, message string) (*ContactMessage, error) {
	m := &ContactMessage{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Email:      NormalizeEmail(email),
		Subject:    strings.TrimSpace(subject),
		Message:    strings.TrimSpace(message),
	}
	if m.Name == "" || m.Subject == "" || m.Message == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name, subject and message are required")
	}
	if err := validateEmail(m.Email); err != nil {
		return nil, err
	}
	if len(m.Message) > 5000 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message cannot exceed 5000 characters")
	}
	return m, nil
}
