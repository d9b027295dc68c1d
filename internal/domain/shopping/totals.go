package shopping

import "github.com/shopspring/decimal"

// DeliveryPolicy decides the delivery charge for an order
type DeliveryPolicy struct {
	// FreeAbove is the subtotal above which delivery is free
	FreeAbove decimal.Decimal
	Fee       decimal.Decimal
}

// DefaultDeliveryPolicy is free delivery above 500, otherwise 40
func DefaultDeliveryPolicy() DeliveryPolicy {
	return DeliveryPolicy{
		FreeAbove: decimal.NewFromInt(500),
		Fee:       decimal.NewFromInt(40),
	}
}

// FeeFor returns the delivery fee for a subtotal
func (p DeliveryPolicy) FeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeAbove) {
		return decimal.Zero
	}
	return p.Fee
}

// Totals is the price breakdown of a cart or order
type Totals struct {
	ItemCount      int
	Subtotal       decimal.Decimal
	OriginalTotal  decimal.Decimal
	Discount       decimal.Decimal
	CouponCode     string
	CouponDiscount decimal.Decimal
	DeliveryFee    decimal.Decimal
	Total          decimal.Decimal
}

// ComputeTotals prices the active lines. Saved-for-later lines are ignored.
// The coupon may be nil; it only applies when Applicable for the subtotal.
func ComputeTotals(items []*CartItem, coupon *Coupon, policy DeliveryPolicy) Totals {
	t := Totals{
		Subtotal:       decimal.Zero,
		OriginalTotal:  decimal.Zero,
		CouponDiscount: decimal.Zero,
	}
	for _, item := range items {
		if item.SavedForLater {
			continue
		}
		t.ItemCount += item.Qty()
		t.Subtotal = t.Subtotal.Add(item.LineTotal())
		t.OriginalTotal = t.OriginalTotal.Add(item.LineOriginalTotal())
	}
	t.Discount = t.OriginalTotal.Sub(t.Subtotal)

	if coupon != nil && coupon.Applicable(t.Subtotal) {
		t.CouponCode = coupon.Code
		t.CouponDiscount = coupon.DiscountFor(t.Subtotal)
	}

	t.DeliveryFee = policy.FeeFor(t.Subtotal)
	t.Total = t.Subtotal.Sub(t.CouponDiscount).Add(t.DeliveryFee)
	return t
}
