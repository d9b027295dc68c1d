package shopping

import (
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/google/uuid"
)

// WishlistItem is a product a shopper bookmarked
type WishlistItem struct {
	shared.BaseEntity
	UserEmail string
	Product   ProductSnapshot
}

// NewWishlistItem creates a wishlist entry
func NewWishlistItem(userEmail string, snapshot ProductSnapshot) (*WishlistItem, error) {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User email is required")
	}
	if snapshot.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	return &WishlistItem{
		BaseEntity: shared.NewBaseEntity(),
		UserEmail:  userEmail,
		Product:    snapshot,
	}, nil
}

// BelongsTo reports whether the entry is owned by the user
func (w *WishlistItem) BelongsTo(userEmail string) bool {
	return strings.EqualFold(w.UserEmail, strings.TrimSpace(userEmail))
}

// ToCartItem converts the bookmark into a fresh cart line
func (w *WishlistItem) ToCartItem() (*CartItem, error) {
	return NewCartItem(w.UserEmail, w.Product)
}
