package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusReturned       OrderStatus = "returned"
)

// trackingLine is the forward path an order travels
var trackingLine = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

var statusLabels = map[OrderStatus]string{
	OrderStatusPlaced:         "Order Placed",
	OrderStatusConfirmed:      "Confirmed",
	OrderStatusShipped:        "Shipped",
	OrderStatusOutForDelivery: "Out for Delivery",
	OrderStatusDelivered:      "Delivered",
	OrderStatusCancelled:      "Cancelled",
	OrderStatusReturned:       "Returned",
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// Label returns the human readable status name
func (s OrderStatus) Label() string {
	return statusLabels[s]
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusReturned
}

// rank is the position on the tracking line, -1 when off the line
func (s OrderStatus) rank() int {
	for i, st := range trackingLine {
		if st == s {
			return i
		}
	}
	return -1
}

// PaymentMethod is how the shopper pays
type PaymentMethod string

const (
	PaymentMethodCOD        PaymentMethod = "cod"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

// PaymentOption describes a payment method offered at checkout
type PaymentOption struct {
	Method      PaymentMethod
	Label       string
	Description string
}

// PaymentOptions lists the methods offered at checkout, in display order
func PaymentOptions() []PaymentOption {
	return []PaymentOption{
		{PaymentMethodCOD, "Cash on Delivery", "Pay when you receive"},
		{PaymentMethodUPI, "UPI", "Google Pay, PhonePe, Paytm"},
		{PaymentMethodCard, "Credit / Debit Card", "Visa, Mastercard, RuPay"},
		{PaymentMethodNetBanking, "Net Banking", "All major banks supported"},
		{PaymentMethodWallet, "Wallet", "FlipKart Pay Balance"},
	}
}

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodUPI, PaymentMethodCard, PaymentMethodNetBanking, PaymentMethodWallet:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ShippingAddress is the address snapshot stored on an order
type ShippingAddress struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Type         string `json:"type,omitempty"`
}

// OrderItem is one purchased product line
type OrderItem struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	ProductThumbnail string
	Price            decimal.Decimal
	Quantity         int
	SellerName       string
	SellerEmail      string
	CreatedAt        time.Time
}

// Amount is price x quantity
func (i OrderItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate root for a placed purchase
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber       string
	UserEmail         string
	Items             []OrderItem
	Subtotal          decimal.Decimal
	Discount          decimal.Decimal
	CouponCode        string
	DeliveryFee       decimal.Decimal
	Total             decimal.Decimal
	Status            OrderStatus
	PaymentMethod     PaymentMethod
	PaymentStatus     PaymentStatus
	ShippingAddress   ShippingAddress
	EstimatedDelivery time.Time
}

// OrderInput carries everything needed to place an order
type OrderInput struct {
	UserEmail       string
	Lines           []*shopping.CartItem
	Coupon          *shopping.Coupon
	Policy          shopping.DeliveryPolicy
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PlacedAt        time.Time
	// NumberPrefix defaults to "FK"
	NumberPrefix string
	// DeliveryDays defaults to 5
	DeliveryDays int
}

// OrderNumber builds prefix + the last 8 digits of the millisecond timestamp
func OrderNumber(prefix string, at time.Time) string {
	if prefix == "" {
		prefix = "FK"
	}
	return fmt.Sprintf("%s%08d", prefix, at.UnixMilli()%100_000_000)
}

// NewOrder places an order from the active cart lines
func NewOrder(input OrderInput) (*Order, error) {
	email := strings.ToLower(strings.TrimSpace(input.UserEmail))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User email is required")
	}
	if input.ShippingAddress.AddressLine1 == "" || input.ShippingAddress.Pincode == "" {
		return nil, shared.NewDomainError("ADDRESS_REQUIRED", "Please select an address")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}

	var active []*shopping.CartItem
	for _, line := range input.Lines {
		if !line.SavedForLater {
			active = append(active, line)
		}
	}
	if len(active) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	}

	placedAt := input.PlacedAt
	if placedAt.IsZero() {
		placedAt = time.Now()
	}
	days := input.DeliveryDays
	if days <= 0 {
		days = 5
	}

	totals := shopping.ComputeTotals(active, input.Coupon, input.Policy)

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       OrderNumber(input.NumberPrefix, placedAt),
		UserEmail:         email,
		Subtotal:          totals.Subtotal,
		Discount:          totals.CouponDiscount,
		CouponCode:        totals.CouponCode,
		DeliveryFee:       totals.DeliveryFee,
		Total:             totals.Total,
		Status:            OrderStatusPlaced,
		PaymentMethod:     input.PaymentMethod,
		PaymentStatus:     PaymentStatusPaid,
		ShippingAddress:   input.ShippingAddress,
		EstimatedDelivery: placedAt.AddDate(0, 0, days),
	}
	o.CreatedAt = placedAt
	o.UpdatedAt = placedAt
	if input.PaymentMethod == PaymentMethodCOD {
		o.PaymentStatus = PaymentStatusPending
	}

	for _, line := range active {
		o.Items = append(o.Items, OrderItem{
			ID:               uuid.New(),
			OrderID:          o.ID,
			ProductID:        line.Product.ProductID,
			ProductName:      line.Product.Name,
			ProductThumbnail: line.Product.Thumbnail,
			Price:            line.Product.Price,
			Quantity:         line.Qty(),
			SellerName:       line.Product.SellerName,
			SellerEmail:      line.Product.SellerEmail,
			CreatedAt:        placedAt,
		})
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// BelongsTo reports whether the order was placed by the user
func (o *Order) BelongsTo(userEmail string) bool {
	return strings.EqualFold(o.UserEmail, strings.TrimSpace(userEmail))
}

// CanCancel reports whether the shopper may still cancel
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPlaced || o.Status == OrderStatusConfirmed
}

// CanReturn reports whether the shopper may request a return
func (o *Order) CanReturn() bool {
	return o.Status == OrderStatusDelivered
}

// Cancel cancels an order that has not shipped yet
func (o *Order) Cancel() error {
	if !o.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	o.moveTo(OrderStatusCancelled)
	return nil
}

// RequestReturn returns a delivered order
func (o *Order) RequestReturn() error {
	if !o.CanReturn() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot return order in %s status", o.Status))
	}
	o.moveTo(OrderStatusReturned)
	return nil
}

// UpdateStatus applies an admin status change. Moves go forward along the
// tracking line; cancellation is only possible before delivery.
func (o *Order) UpdateStatus(target OrderStatus) error {
	if !target.IsValid() || target == OrderStatusReturned {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unsupported order status %q", target))
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Order is already %s", o.Status))
	}
	if target == OrderStatusCancelled {
		if o.Status == OrderStatusDelivered {
			return shared.NewDomainError("INVALID_STATE", "Delivered orders cannot be cancelled")
		}
		o.moveTo(OrderStatusCancelled)
		return nil
	}
	if target.rank() <= o.Status.rank() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	o.moveTo(target)
	return nil
}

func (o *Order) moveTo(target OrderStatus) {
	from := o.Status
	o.Status = target
	if target.IsTerminal() && o.PaymentStatus == PaymentStatusPaid {
		o.PaymentStatus = PaymentStatusRefunded
	}
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
}

// TrackingStep is one dot on the order tracking line
type TrackingStep struct {
	Status  OrderStatus
	Label   string
	Done    bool
	Current bool
}

// TrackingSteps returns the tracking line, or nil for cancelled and returned orders
func (o *Order) TrackingSteps() []TrackingStep {
	if o.Status.IsTerminal() {
		return nil
	}
	current := o.Status.rank()
	steps := make([]TrackingStep, len(trackingLine))
	for i, st := range trackingLine {
		steps[i] = TrackingStep{
			Status:  st,
			Label:   st.Label(),
			Done:    i <= current,
			Current: i == current,
		}
	}
	return steps
}

// ContainsAnyProduct reports whether any line is one of the given products
func (o *Order) ContainsAnyProduct(ids map[uuid.UUID]struct{}) bool {
	for _, item := range o.Items {
		if _, ok := ids[item.ProductID]; ok {
			return true
		}
	}
	return false
}

// ItemCount is the total quantity across lines
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
