package shopping

import (
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the copy of product data taken when a line item is created
type ProductSnapshot struct {
	ProductID     uuid.UUID
	Name          string
	Thumbnail     string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	SellerName    string
	SellerEmail   string
}

// SnapshotOf copies the fields a line item needs from a product
func SnapshotOf(p *catalog.Product) ProductSnapshot {
	return ProductSnapshot{
		ProductID:     p.ID,
		Name:          p.Name,
		Thumbnail:     p.PrimaryImage(),
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		SellerName:    p.SellerName,
		SellerEmail:   p.SellerEmail,
	}
}

// CartItem is a line item in a shopper's cart or saved-for-later list
type CartItem struct {
	shared.BaseEntity
	UserEmail     string
	Product       ProductSnapshot
	Quantity      int
	SavedForLater bool
}

// NewCartItem creates a cart line with quantity 1
func NewCartItem(userEmail string, snapshot ProductSnapshot) (*CartItem, error) {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User email is required")
	}
	if snapshot.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserEmail:  userEmail,
		Product:    snapshot,
		Quantity:   1,
	}, nil
}

// Qty returns the quantity, treating unset as 1
func (c *CartItem) Qty() int {
	if c.Quantity < 1 {
		return 1
	}
	return c.Quantity
}

// ChangeQuantity adds delta to the quantity. It reports false and leaves the
// item untouched when the result would drop below one.
func (c *CartItem) ChangeQuantity(delta int) bool {
	next := c.Qty() + delta
	if next < 1 {
		return false
	}
	c.Quantity = next
	c.Touch()
	return true
}

// SaveForLater moves the line out of the active cart
func (c *CartItem) SaveForLater() {
	c.SavedForLater = true
	c.Touch()
}

// MoveToCart moves a saved line back into the active cart
func (c *CartItem) MoveToCart() {
	c.SavedForLater = false
	c.Touch()
}

// BelongsTo reports whether the line is owned by the user
func (c *CartItem) BelongsTo(userEmail string) bool {
	return strings.EqualFold(c.UserEmail, strings.TrimSpace(userEmail))
}

// LineTotal is price x quantity
func (c *CartItem) LineTotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Qty())))
}

// LineOriginalTotal is original price (or price) x quantity
func (c *CartItem) LineOriginalTotal() decimal.Decimal {
	original := c.Product.OriginalPrice
	if !original.IsPositive() {
		original = c.Product.Price
	}
	return original.Mul(decimal.NewFromInt(int64(c.Qty())))
}
