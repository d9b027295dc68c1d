package identity

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail returns shared.ErrNotFound when no account uses the email
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Find(ctx context.Context, q shared.Query) ([]*User, error)
	Save(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindByUser(ctx context.Context, userEmail string) ([]*Address, error)
	Save(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactMessageRepository stores contact form submissions
type ContactMessageRepository interface {
	Save(ctx context.Context, message *ContactMessage) error
}
