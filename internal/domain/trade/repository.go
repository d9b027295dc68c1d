package trade

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// Find returns orders matching the query, items included
	Find(ctx context.Context, q shared.Query) ([]*Order, error)

	// Save creates or updates an order and its item rows
	Save(ctx context.Context, order *Order) error

	// Count counts orders matching the criteria
	Count(ctx context.Context, criteria map[string]any) (int64, error)
}
