package catalog

import (
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
)

// SellerStatus is the onboarding status of a seller
type SellerStatus string

const (
	SellerStatusPending  SellerStatus = "pending"
	SellerStatusActive   SellerStatus = "active"
	SellerStatusDisabled SellerStatus = "disabled"
)

// Seller is a merchant listing products in the store
type Seller struct {
	shared.BaseEntity
	Email     string
	StoreName string
	Phone     string
	GSTNumber string
	Status    SellerStatus
}

// NewSeller registers a seller profile
func NewSeller(email, storeName, phone, gst string) (*Seller, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Seller email is required")
	}
	if strings.TrimSpace(storeName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name is required")
	}
	return &Seller{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		StoreName:  strings.TrimSpace(storeName),
		Phone:      strings.TrimSpace(phone),
		GSTNumber:  strings.ToUpper(strings.TrimSpace(gst)),
		Status:     SellerStatusPending,
	}, nil
}
