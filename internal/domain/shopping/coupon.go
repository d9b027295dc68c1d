package shopping

import (
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrCouponNotApplicable is returned for unknown, inactive or under-threshold coupons
var ErrCouponNotApplicable = shared.NewDomainError("COUPON_NOT_APPLICABLE", "Invalid or inapplicable coupon")

// Coupon is a percentage discount with a minimum order value and an optional cap
type Coupon struct {
	shared.BaseEntity
	Code            string
	Description     string
	DiscountPercent decimal.Decimal
	MinOrderValue   decimal.Decimal
	MaxDiscount     decimal.Decimal
	IsActive        bool
}

// NormalizeCouponCode upper-cases and trims a code as typed by a shopper
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewCoupon creates an active coupon. A zero max discount means uncapped.
func NewCoupon(code string, percent, minOrder, maxDiscount decimal.Decimal) (*Coupon, error) {
	code = NormalizeCouponCode(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code is required")
	}
	if !percent.IsPositive() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Discount percent must be between 0 and 100")
	}
	if minOrder.IsNegative() || maxDiscount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Coupon limits cannot be negative")
	}
	return &Coupon{
		BaseEntity:      shared.NewBaseEntity(),
		Code:            code,
		DiscountPercent: percent,
		MinOrderValue:   minOrder,
		MaxDiscount:     maxDiscount,
		IsActive:        true,
	}, nil
}

// Applicable reports whether the coupon can be used for a cart subtotal
func (c *Coupon) Applicable(subtotal decimal.Decimal) bool {
	return c.IsActive && subtotal.GreaterThanOrEqual(c.MinOrderValue)
}

// DiscountFor returns min(subtotal x percent / 100, max discount)
func (c *Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	discount := subtotal.Mul(c.DiscountPercent).Div(decimal.NewFromInt(100)).Round(2)
	if c.MaxDiscount.IsPositive() && discount.GreaterThan(c.MaxDiscount) {
		return c.MaxDiscount
	}
	return discount
}
