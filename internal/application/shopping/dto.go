package shopping

import (
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddToCartRequest adds one unit of a product to the cart
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// ChangeQuantityRequest adjusts a line's quantity by delta
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required,min=-99,max=99"`
}

// ApplyCouponRequest applies a coupon code to the cart
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,max=50"`
}

// ToggleWishlistRequest bookmarks or un-bookmarks a product
type ToggleWishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID                   uuid.UUID       `json:"id"`
	ProductID            uuid.UUID       `json:"product_id"`
	ProductName          string          `json:"product_name"`
	ProductThumbnail     string          `json:"product_thumbnail"`
	ProductPrice         decimal.Decimal `json:"product_price"`
	ProductOriginalPrice decimal.Decimal `json:"product_original_price"`
	SellerName           string          `json:"seller_name"`
	Quantity             int             `json:"quantity"`
	SavedForLater        bool            `json:"saved_for_later"`
	LineTotal            decimal.Decimal `json:"line_total"`
	CreatedDate          time.Time       `json:"created_date"`
}

// ToCartItemResponse converts a domain cart line
func ToCartItemResponse(item *shopping.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:                   item.ID,
		ProductID:            item.Product.ProductID,
		ProductName:          item.Product.Name,
		ProductThumbnail:     item.Product.Thumbnail,
		ProductPrice:         item.Product.Price,
		ProductOriginalPrice: item.Product.OriginalPrice,
		SellerName:           item.Product.SellerName,
		Quantity:             item.Qty(),
		SavedForLater:        item.SavedForLater,
		LineTotal:            item.LineTotal(),
		CreatedDate:          item.CreatedAt,
	}
}

// ToCartItemResponses converts a list of cart lines
func ToCartItemResponses(items []*shopping.CartItem) []CartItemResponse {
	out := make([]CartItemResponse, len(items))
	for i, item := range items {
		out[i] = ToCartItemResponse(item)
	}
	return out
}

// TotalsResponse is the price breakdown shown beside the cart and at checkout
type TotalsResponse struct {
	ItemCount      int             `json:"item_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	OriginalTotal  decimal.Decimal `json:"original_total"`
	Discount       decimal.Decimal `json:"discount"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	FreeDelivery   bool            `json:"free_delivery"`
	Total          decimal.Decimal `json:"total"`
}

// ToTotalsResponse converts computed totals
func ToTotalsResponse(t shopping.Totals) TotalsResponse {
	return TotalsResponse{
		ItemCount:      t.ItemCount,
		Subtotal:       t.Subtotal,
		OriginalTotal:  t.OriginalTotal,
		Discount:       t.Discount,
		CouponCode:     t.CouponCode,
		CouponDiscount: t.CouponDiscount,
		DeliveryFee:    t.DeliveryFee,
		FreeDelivery:   t.DeliveryFee.IsZero(),
		Total:          t.Total,
	}
}

// CouponResponse represents an applied coupon
type CouponResponse struct {
	Code            string          `json:"code"`
	Description     string          `json:"description,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MinOrderValue   decimal.Decimal `json:"min_order_value"`
	MaxDiscount     decimal.Decimal `json:"max_discount"`
}

// ToCouponResponse converts a domain coupon; nil stays nil
func ToCouponResponse(c *shopping.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}
	return &CouponResponse{
		Code:            c.Code,
		Description:     c.Description,
		DiscountPercent: c.DiscountPercent,
		MinOrderValue:   c.MinOrderValue,
		MaxDiscount:     c.MaxDiscount,
	}
}

// CartResponse feeds the cart page
type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	SavedItems  []CartItemResponse `json:"saved_items"`
	Totals      TotalsResponse     `json:"totals"`
	Coupon      *CouponResponse    `json:"coupon,omitempty"`
	CouponError string             `json:"coupon_error,omitempty"`
}

// WishlistItemResponse represents a wishlist entry in API responses
type WishlistItemResponse struct {
	ID                   uuid.UUID       `json:"id"`
	ProductID            uuid.UUID       `json:"product_id"`
	ProductName          string          `json:"product_name"`
	ProductThumbnail     string          `json:"product_thumbnail"`
	ProductPrice         decimal.Decimal `json:"product_price"`
	ProductOriginalPrice decimal.Decimal `json:"product_original_price"`
	CreatedDate          time.Time       `json:"created_date"`
}

// ToWishlistItemResponse converts a domain wishlist entry
func ToWishlistItemResponse(w *shopping.WishlistItem) WishlistItemResponse {
	return WishlistItemResponse{
		ID:                   w.ID,
		ProductID:            w.Product.ProductID,
		ProductName:          w.Product.Name,
		ProductThumbnail:     w.Product.Thumbnail,
		ProductPrice:         w.Product.Price,
		ProductOriginalPrice: w.Product.OriginalPrice,
		CreatedDate:          w.CreatedAt,
	}
}

// ToggleWishlistResponse reports the bookmark state after a toggle
type ToggleWishlistResponse struct {
	InWishlist bool                  `json:"in_wishlist"`
	Item       *WishlistItemResponse `json:"item,omitempty"`
}
