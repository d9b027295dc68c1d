package catalog

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/google/uuid"
)

// Product event types
const (
	EventTypeProductSubmitted = "ProductSubmitted"
	EventTypeProductApproved  = "ProductApproved"
	EventTypeProductRejected  = "ProductRejected"
	EventTypeProductDeleted   = "ProductDeleted"
)

// AggregateTypeProduct is the aggregate type name used in events
const AggregateTypeProduct = "Product"

// ProductEvent is raised whenever a product's storefront visibility may change
type ProductEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID     `json:"product_id"`
	Category    string        `json:"category"`
	SellerEmail string        `json:"seller_email"`
	Status      ProductStatus `json:"status"`
}

func newProductEvent(eventType string, p *Product) *ProductEvent {
	return &ProductEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Category:        p.Category,
		SellerEmail:     p.SellerEmail,
		Status:          p.Status,
	}
}

// NewProductSubmittedEvent creates an event for a new or edited product awaiting approval
func NewProductSubmittedEvent(p *Product) *ProductEvent {
	return newProductEvent(EventTypeProductSubmitted, p)
}

// NewProductApprovedEvent creates an event for an approved product
func NewProductApprovedEvent(p *Product) *ProductEvent {
	return newProductEvent(EventTypeProductApproved, p)
}

// NewProductRejectedEvent creates an event for a rejected product
func NewProductRejectedEvent(p *Product) *ProductEvent {
	return newProductEvent(EventTypeProductRejected, p)
}

// NewProductDeletedEvent creates an event for a deleted product
func NewProductDeletedEvent(p *Product) *ProductEvent {
	return newProductEvent(EventTypeProductDeleted, p)
}
