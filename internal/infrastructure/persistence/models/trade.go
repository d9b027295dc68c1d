package models

import (
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// orderItemJSON is the shape of one element of orders.items
type orderItemJSON struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductThumbnail string          `json:"product_thumbnail"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	SellerName       string          `json:"seller_name"`
	SellerEmail      string          `json:"seller_email"`
}

// OrderModel is the persistence model for the Order aggregate.
// Items are kept as a jsonb snapshot and mirrored into order_items.
type OrderModel struct {
	AggregateModel
	OrderNumber       string              `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserEmail         string              `gorm:"type:varchar(200);not null;index"`
	Items             string              `gorm:"type:jsonb"`
	Subtotal          decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Discount          decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	CouponCode        string              `gorm:"type:varchar(50)"`
	DeliveryFee       decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Total             decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Status            trade.OrderStatus   `gorm:"type:varchar(30);not null;index"`
	PaymentMethod     trade.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentStatus     trade.PaymentStatus `gorm:"type:varchar(20);not null"`
	ShippingAddress   string              `gorm:"type:jsonb"`
	EstimatedDelivery time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		UserEmail:         m.UserEmail,
		Subtotal:          m.Subtotal,
		Discount:          m.Discount,
		CouponCode:        m.CouponCode,
		DeliveryFee:       m.DeliveryFee,
		Total:             m.Total,
		Status:            m.Status,
		PaymentMethod:     m.PaymentMethod,
		PaymentStatus:     m.PaymentStatus,
		EstimatedDelivery: m.EstimatedDelivery,
	}
	decodeJSON(m.ShippingAddress, &o.ShippingAddress)

	var items []orderItemJSON
	decodeJSON(m.Items, &items)
	for _, it := range items {
		o.Items = append(o.Items, trade.OrderItem{
			ID:               it.ID,
			OrderID:          m.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			ProductThumbnail: it.ProductThumbnail,
			Price:            it.Price,
			Quantity:         it.Quantity,
			SellerName:       it.SellerName,
			SellerEmail:      it.SellerEmail,
			CreatedAt:        m.CreatedAt,
		})
	}
	return o
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.UserEmail = o.UserEmail
	m.Subtotal = o.Subtotal
	m.Discount = o.Discount
	m.CouponCode = o.CouponCode
	m.DeliveryFee = o.DeliveryFee
	m.Total = o.Total
	m.Status = o.Status
	m.PaymentMethod = o.PaymentMethod
	m.PaymentStatus = o.PaymentStatus
	m.ShippingAddress = encodeJSON(o.ShippingAddress)
	m.EstimatedDelivery = o.EstimatedDelivery

	items := make([]orderItemJSON, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemJSON{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			ProductThumbnail: it.ProductThumbnail,
			Price:            it.Price,
			Quantity:         it.Quantity,
			SellerName:       it.SellerName,
			SellerEmail:      it.SellerEmail,
		})
	}
	m.Items = encodeJSON(items)
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is one row per purchased line, for per-product queries.
type OrderItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	ProductThumbnail string          `gorm:"type:text"`
	Price            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity         int             `gorm:"not null;default:1"`
	SellerName       string          `gorm:"type:varchar(200)"`
	SellerEmail      string          `gorm:"type:varchar(200);index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderItemModelFromDomain creates a persistence row from a domain OrderItem.
func OrderItemModelFromDomain(i trade.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:               i.ID,
		OrderID:          i.OrderID,
		ProductID:        i.ProductID,
		ProductName:      i.ProductName,
		ProductThumbnail: i.ProductThumbnail,
		Price:            i.Price,
		Quantity:         i.Quantity,
		SellerName:       i.SellerName,
		SellerEmail:      i.SellerEmail,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.CreatedAt,
	}
}
