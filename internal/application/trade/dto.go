package trade

import (
	"time"

	appidentity "github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	appshopping "github.com/Bhargav2112/Flipcart-Clone/internal/application/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the final step of the checkout wizard
type PlaceOrderRequest struct {
	AddressID     uuid.UUID `json:"address_id" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required,oneof=cod upi card netbanking wallet"`
	CouponCode    string    `json:"coupon_code" binding:"max=50"`
}

// UpdateStatusRequest is an admin status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentOptionResponse is a payment method offered at checkout
type PaymentOptionResponse struct {
	Method      string `json:"method"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// CheckoutSummaryResponse carries the data of every checkout step
type CheckoutSummaryResponse struct {
	Addresses         []appidentity.AddressResponse  `json:"addresses"`
	SelectedAddressID *uuid.UUID                     `json:"selected_address_id,omitempty"`
	Items             []appshopping.CartItemResponse `json:"items"`
	Totals            appshopping.TotalsResponse     `json:"totals"`
	Coupon            *appshopping.CouponResponse    `json:"coupon,omitempty"`
	CouponError       string                         `json:"coupon_error,omitempty"`
	PaymentOptions    []PaymentOptionResponse        `json:"payment_options"`
}

func toPaymentOptions(options []trade.PaymentOption) []PaymentOptionResponse {
	out := make([]PaymentOptionResponse, len(options))
	for i, o := range options {
		out[i] = PaymentOptionResponse{Method: string(o.Method), Label: o.Label, Description: o.Description}
	}
	return out
}

// OrderItemResponse is a purchased line
type OrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductThumbnail string          `json:"product_thumbnail"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	SellerName       string          `json:"seller_name"`
	Amount           decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID             `json:"id"`
	OrderNumber       string                `json:"order_number"`
	UserEmail         string                `json:"user_email"`
	Items             []OrderItemResponse   `json:"items"`
	ItemCount         int                   `json:"item_count"`
	Subtotal          decimal.Decimal       `json:"subtotal"`
	Discount          decimal.Decimal       `json:"discount"`
	CouponCode        string                `json:"coupon_code,omitempty"`
	DeliveryFee       decimal.Decimal       `json:"delivery_fee"`
	Total             decimal.Decimal       `json:"total"`
	Status            string                `json:"status"`
	StatusLabel       string                `json:"status_label"`
	PaymentMethod     string                `json:"payment_method"`
	PaymentStatus     string                `json:"payment_status"`
	ShippingAddress   trade.ShippingAddress `json:"shipping_address"`
	EstimatedDelivery time.Time             `json:"estimated_delivery"`
	CanCancel         bool                  `json:"can_cancel"`
	CanReturn         bool                  `json:"can_return"`
	CreatedDate       time.Time             `json:"created_date"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			ProductThumbnail: item.ProductThumbnail,
			Price:            item.Price,
			Quantity:         item.Quantity,
			SellerName:       item.SellerName,
			Amount:           item.Amount(),
		}
	}
	return OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		UserEmail:         o.UserEmail,
		Items:             items,
		ItemCount:         o.ItemCount(),
		Subtotal:          o.Subtotal,
		Discount:          o.Discount,
		CouponCode:        o.CouponCode,
		DeliveryFee:       o.DeliveryFee,
		Total:             o.Total,
		Status:            string(o.Status),
		StatusLabel:       o.Status.Label(),
		PaymentMethod:     string(o.PaymentMethod),
		PaymentStatus:     string(o.PaymentStatus),
		ShippingAddress:   o.ShippingAddress,
		EstimatedDelivery: o.EstimatedDelivery,
		CanCancel:         o.CanCancel(),
		CanReturn:         o.CanReturn(),
		CreatedDate:       o.CreatedAt,
	}
}

// ToOrderResponses converts a list of orders
func ToOrderResponses(orders []*trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}

// TrackingStepResponse is one dot on the tracking line
type TrackingStepResponse struct {
	Status  string `json:"status"`
	Label   string `json:"label"`
	Done    bool   `json:"done"`
	Current bool   `json:"current"`
}

// TrackingResponse is the order tracking page. Steps is empty for
// cancelled and returned orders.
type TrackingResponse struct {
	OrderID           uuid.UUID              `json:"order_id"`
	OrderNumber       string                 `json:"order_number"`
	Status            string                 `json:"status"`
	StatusLabel       string                 `json:"status_label"`
	Steps             []TrackingStepResponse `json:"steps"`
	EstimatedDelivery time.Time              `json:"estimated_delivery"`
}

func toTrackingResponse(o *trade.Order) TrackingResponse {
	steps := o.TrackingSteps()
	out := make([]TrackingStepResponse, len(steps))
	for i, st := range steps {
		out[i] = TrackingStepResponse{
			Status:  string(st.Status),
			Label:   st.Label,
			Done:    st.Done,
			Current: st.Current,
		}
	}
	return TrackingResponse{
		OrderID:           o.ID,
		OrderNumber:       o.OrderNumber,
		Status:            string(o.Status),
		StatusLabel:       o.Status.Label(),
		Steps:             out,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}
