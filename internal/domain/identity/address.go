package identity

import (
	"regexp"
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/google/uuid"
)

// AddressType tags an address
type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

var pincodeRegex = regexp.MustCompile(`^[0-9]{6}$`)

// Address is a saved delivery address
type Address struct {
	shared.BaseEntity
	UserEmail    string
	Name         string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Type         AddressType
	IsDefault    bool
}

// AddressInput holds the fields a shopper fills in
type AddressInput struct {
	Name         string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Type         AddressType
	IsDefault    bool
}

// NewAddress validates and creates an address for the user
func NewAddress(userEmail string, in AddressInput) (*Address, error) {
	userEmail = NormalizeEmail(userEmail)
	if userEmail == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User email is required")
	}
	a := &Address{
		BaseEntity:   shared.NewBaseEntity(),
		UserEmail:    userEmail,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		AddressLine1: strings.TrimSpace(in.AddressLine1),
		AddressLine2: strings.TrimSpace(in.AddressLine2),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		Pincode:      strings.TrimSpace(in.Pincode),
		Type:         in.Type,
		IsDefault:    in.IsDefault,
	}
	if a.Type == "" {
		a.Type = AddressTypeHome
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Address) validate() error {
	switch {
	case a.Name == "":
		return shared.NewDomainError("INVALID_ADDRESS", "Name is required")
	case a.Phone == "" || !phoneRegex.MatchString(a.Phone):
		return shared.NewDomainError("INVALID_ADDRESS", "A valid phone number is required")
	case a.AddressLine1 == "":
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 1 is required")
	case a.City == "" || a.State == "":
		return shared.NewDomainError("INVALID_ADDRESS", "City and state are required")
	case !pincodeRegex.MatchString(a.Pincode):
		return shared.NewDomainError("INVALID_PINCODE", "Pincode must be 6 digits")
	}
	switch a.Type {
	case AddressTypeHome, AddressTypeWork, AddressTypeOther:
	default:
		return shared.NewDomainError("INVALID_ADDRESS", "Address type must be home, work or other")
	}
	return nil
}

// BelongsTo reports whether the address is owned by the user
func (a *Address) BelongsTo(userEmail string) bool {
	return strings.EqualFold(a.UserEmail, strings.TrimSpace(userEmail))
}

// SelectDefault picks the address flagged default, else the first one, else nil
func SelectDefault(addresses []*Address) *Address {
	for _, a := range addresses {
		if a.IsDefault {
			return a
		}
	}
	if len(addresses) > 0 {
		return addresses[0]
	}
	return nil
}

// MarkDefault flags id as the default and clears the flag everywhere else.
// It returns the addresses whose flag changed.
func MarkDefault(addresses []*Address, id uuid.UUID) ([]*Address, error) {
	found := false
	for _, a := range addresses {
		if a.ID == id {
			found = true
		}
	}
	if !found {
		return nil, shared.ErrNotFound
	}
	var changed []*Address
	for _, a := range addresses {
		want := a.ID == id
		if a.IsDefault != want {
			a.IsDefault = want
			a.Touch()
			changed = append(changed, a)
		}
	}
	return changed, nil
}
