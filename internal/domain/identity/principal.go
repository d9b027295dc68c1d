package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of an operation
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// NewPrincipal builds a principal with a normalized email
func NewPrincipal(userID uuid.UUID, email string, role Role) Principal {
	return Principal{UserID: userID, Email: NormalizeEmail(email), Role: role}
}

// IsAdmin reports whether the caller has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsSeller reports whether the caller may manage a storefront
func (p Principal) IsSeller() bool {
	return p.Role == RoleSeller || p.Role == RoleAdmin
}

// IsAnonymous reports whether no user is attached
func (p Principal) IsAnonymous() bool {
	return strings.TrimSpace(p.Email) == ""
}
