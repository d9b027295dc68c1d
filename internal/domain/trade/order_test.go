package trade

import (
	"testing"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartLine(t *testing.T, price int64, qty int) *shopping.CartItem {
	t.Helper()
	item, err := shopping.NewCartItem("buyer@mail.com", shopping.ProductSnapshot{
		ProductID:   uuid.New(),
		Name:        "Headphones",
		Thumbnail:   "hp.jpg",
		Price:       decimal.NewFromInt(price),
		SellerName:  "Sound Co",
		SellerEmail: "seller@mail.com",
	})
	require.NoError(t, err)
	item.Quantity = qty
	return item
}

func validInput(t *testing.T) OrderInput {
	return OrderInput{
		UserEmail: "Buyer@Mail.com",
		Lines:     []*shopping.CartItem{cartLine(t, 200, 2)},
		Policy:    shopping.DefaultDeliveryPolicy(),
		ShippingAddress: ShippingAddress{
			Name: "Asha", Phone: "9876543210", AddressLine1: "12 MG Road",
			City: "Pune", State: "MH", Pincode: "411001", Type: "home",
		},
		PaymentMethod: PaymentMethodUPI,
		PlacedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestOrderNumber(t *testing.T) {
	at := time.UnixMilli(1_712_345_678_901)
	assert.Equal(t, "FK45678901", OrderNumber("", at))
	assert.Equal(t, "FK00000042", OrderNumber("FK", time.UnixMilli(42)))
}

func TestNewOrder(t *testing.T) {
	t.Run("places order from cart", func(t *testing.T) {
		in := validInput(t)
		o, err := NewOrder(in)
		require.NoError(t, err)

		assert.Equal(t, "buyer@mail.com", o.UserEmail)
		assert.Equal(t, OrderStatusPlaced, o.Status)
		assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
		assert.Equal(t, OrderNumber("FK", in.PlacedAt), o.OrderNumber)
		assert.Equal(t, in.PlacedAt.AddDate(0, 0, 5), o.EstimatedDelivery)
		assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(400)))
		assert.True(t, o.DeliveryFee.Equal(decimal.NewFromInt(40)))
		assert.True(t, o.Total.Equal(decimal.NewFromInt(440)))
		require.Len(t, o.Items, 1)
		assert.Equal(t, o.ID, o.Items[0].OrderID)
		assert.Equal(t, 2, o.ItemCount())
		assert.Equal(t, "seller@mail.com", o.Items[0].SellerEmail)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("cash on delivery is pending", func(t *testing.T) {
		in := validInput(t)
		in.PaymentMethod = PaymentMethodCOD
		o, err := NewOrder(in)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	})

	t.Run("coupon is applied", func(t *testing.T) {
		in := validInput(t)
		in.Lines = []*shopping.CartItem{cartLine(t, 1000, 1)}
		in.Coupon, _ = shopping.NewCoupon("SAVE10", decimal.NewFromInt(10), decimal.NewFromInt(500), decimal.Zero)
		o, err := NewOrder(in)
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", o.CouponCode)
		assert.True(t, o.Discount.Equal(decimal.NewFromInt(100)))
		assert.True(t, o.Total.Equal(decimal.NewFromInt(900)))
	})

	t.Run("saved lines are left out", func(t *testing.T) {
		in := validInput(t)
		saved := cartLine(t, 999, 1)
		saved.SaveForLater()
		in.Lines = append(in.Lines, saved)
		o, err := NewOrder(in)
		require.NoError(t, err)
		assert.Len(t, o.Items, 1)
	})

	tests := []struct {
		name   string
		mutate func(*OrderInput)
		code   string
	}{
		{"empty cart", func(in *OrderInput) { in.Lines = nil }, "EMPTY_CART"},
		{"no address", func(in *OrderInput) { in.ShippingAddress = ShippingAddress{} }, "ADDRESS_REQUIRED"},
		{"bad payment", func(in *OrderInput) { in.PaymentMethod = "bitcoin" }, "INVALID_PAYMENT_METHOD"},
		{"no user", func(in *OrderInput) { in.UserEmail = " " }, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(t)
			tt.mutate(&in)
			_, err := NewOrder(in)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestOrderCancelAndReturn(t *testing.T) {
	o, err := NewOrder(validInput(t))
	require.NoError(t, err)

	require.NoError(t, o.Cancel())
	assert.Equal(t, OrderStatusCancelled, o.Status)
	assert.Equal(t, PaymentStatusRefunded, o.PaymentStatus)
	assert.Error(t, o.Cancel())
	assert.Nil(t, o.TrackingSteps())

	in := validInput(t)
	in.PaymentMethod = PaymentMethodCOD
	cod, err := NewOrder(in)
	require.NoError(t, err)
	assert.ErrorIs(t, cod.RequestReturn(), shared.ErrInvalidState)
	for _, s := range []OrderStatus{OrderStatusConfirmed, OrderStatusShipped} {
		require.NoError(t, cod.UpdateStatus(s))
	}
	assert.Error(t, cod.Cancel(), "shipped orders cannot be cancelled by the shopper")
	require.NoError(t, cod.UpdateStatus(OrderStatusDelivered))
	require.NoError(t, cod.RequestReturn())
	assert.Equal(t, OrderStatusReturned, cod.Status)
	assert.Equal(t, PaymentStatusPending, cod.PaymentStatus, "unpaid orders are not refunded")
}

func TestOrderUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		wantErr bool
	}{
		{"forward one step", OrderStatusPlaced, OrderStatusConfirmed, false},
		{"forward skip", OrderStatusPlaced, OrderStatusShipped, false},
		{"backwards", OrderStatusShipped, OrderStatusConfirmed, true},
		{"same status", OrderStatusShipped, OrderStatusShipped, true},
		{"cancel in transit", OrderStatusOutForDelivery, OrderStatusCancelled, false},
		{"cancel delivered", OrderStatusDelivered, OrderStatusCancelled, true},
		{"from cancelled", OrderStatusCancelled, OrderStatusPlaced, true},
		{"admin cannot return", OrderStatusDelivered, OrderStatusReturned, true},
		{"unknown", OrderStatusPlaced, "lost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{Status: tt.from}
			err := o.UpdateStatus(tt.to)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.from, o.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, o.Status)
			require.Len(t, o.GetDomainEvents(), 1)
		})
	}
}

func TestTrackingSteps(t *testing.T) {
	o := &Order{Status: OrderStatusShipped}
	steps := o.TrackingSteps()
	require.Len(t, steps, 5)

	assert.True(t, steps[0].Done)
	assert.True(t, steps[2].Done)
	assert.True(t, steps[2].Current)
	assert.False(t, steps[3].Done)
	assert.Equal(t, "Out for Delivery", steps[3].Label)
}

func TestContainsAnyProduct(t *testing.T) {
	mine := uuid.New()
	o := &Order{Items: []OrderItem{{ProductID: uuid.New()}, {ProductID: mine}}}

	assert.True(t, o.ContainsAnyProduct(map[uuid.UUID]struct{}{mine: {}}))
	assert.False(t, o.ContainsAnyProduct(map[uuid.UUID]struct{}{uuid.New(): {}}))
	assert.False(t, o.ContainsAnyProduct(nil))
}

func TestPaymentOptions(t *testing.T) {
	opts := PaymentOptions()
	require.Len(t, opts, 5)
	for _, opt := range opts {
		assert.True(t, opt.Method.IsValid())
	}
}
