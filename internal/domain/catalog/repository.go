package catalog

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository persists products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// Find runs an entity query (equality criteria, order, limit)
	Find(ctx context.Context, q shared.Query) ([]*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	Save(ctx context.Context, product *Product) error
	SaveBatch(ctx context.Context, products []*Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, criteria map[string]any) (int64, error)
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	Save(ctx context.Context, category *Category) error
}

// ReviewRepository persists reviews
type ReviewRepository interface {
	Find(ctx context.Context, q shared.Query) ([]*Review, error)
	Save(ctx context.Context, review *Review) error
}

// SellerRepository persists seller profiles
type SellerRepository interface {
	Find(ctx context.Context, q shared.Query) ([]*Seller, error)
	FindByEmail(ctx context.Context, email string) (*Seller, error)
	Save(ctx context.Context, seller *Seller) error
}
