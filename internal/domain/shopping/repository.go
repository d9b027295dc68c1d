package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository persists cart lines
type CartRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CartItem, error)
	// FindByUser returns the user's lines; saved selects the saved-for-later list
	FindByUser(ctx context.Context, userEmail string, saved bool) ([]*CartItem, error)
	FindActiveByProduct(ctx context.Context, userEmail string, productID uuid.UUID) (*CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userEmail string, saved bool) error
}

// WishlistRepository persists wishlist entries
type WishlistRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WishlistItem, error)
	FindByUser(ctx context.Context, userEmail string) ([]*WishlistItem, error)
	FindByProduct(ctx context.Context, userEmail string, productID uuid.UUID) (*WishlistItem, error)
	Save(ctx context.Context, item *WishlistItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userEmail string) (int64, error)
}

// CouponRepository looks up coupons
type CouponRepository interface {
	FindActiveByCode(ctx context.Context, code string) (*Coupon, error)
	FindAll(ctx context.Context) ([]*Coupon, error)
	Save(ctx context.Context, coupon *Coupon) error
}
