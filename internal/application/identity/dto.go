package identity

import (
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// RegisterRequest creates a customer account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	FullName string `json:"full_name" binding:"required,max=200"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest authenticates with email and password
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest edits the account page fields
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"max=200"`
	Phone    string `json:"phone" binding:"max=20"`
}

// UserResponse represents an account in API responses. The password hash never leaves the service.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	Initial     string     `json:"initial"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedDate time.Time  `json:"created_date"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Role:        string(u.Role),
		Initial:     u.Initial(),
		LastLoginAt: u.LastLoginAt,
		CreatedDate: u.CreatedAt,
	}
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// AddressRequest creates a saved address
type AddressRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Phone        string `json:"phone" binding:"required,max=20"`
	AddressLine1 string `json:"address_line1" binding:"required,max=200"`
	AddressLine2 string `json:"address_line2" binding:"max=200"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,max=100"`
	Pincode      string `json:"pincode" binding:"required,len=6,numeric"`
	Type         string `json:"type" binding:"omitempty,oneof=home work other"`
	IsDefault    bool   `json:"is_default"`
}

func (r AddressRequest) toInput() identity.AddressInput {
	return identity.AddressInput{
		Name:         r.Name,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		Type:         identity.AddressType(r.Type),
		IsDefault:    r.IsDefault,
	}
}

// AddressResponse represents a saved address in API responses
type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	Type         string    `json:"type"`
	IsDefault    bool      `json:"is_default"`
}

// ToAddressResponse converts a domain address
func ToAddressResponse(a *identity.Address) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		Name:         a.Name,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		Type:         string(a.Type),
		IsDefault:    a.IsDefault,
	}
}

// ToAddressResponses converts a list of addresses
func ToAddressResponses(addresses []*identity.Address) []AddressResponse {
	out := make([]AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = ToAddressResponse(a)
	}
	return out
}

// ToShippingAddress snapshots a saved address onto an order
func ToShippingAddress(a *identity.Address) trade.ShippingAddress {
	return trade.ShippingAddress{
		Name:         a.Name,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		Type:         string(a.Type),
	}
}
