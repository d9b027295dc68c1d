package catalog

import (
	"math"
	"strings"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the moderation status of a product
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
)

// IsValid reports whether the status is known
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusPending, ProductStatusApproved, ProductStatusRejected:
		return true
	}
	return false
}

// DefaultDeliveryDays is used when a product does not specify delivery days
const DefaultDeliveryDays = 5

// Specification is a key/value row shown on the product page
type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Product is the aggregate root of the catalog
type Product struct {
	shared.BaseAggregateRoot
	Name            string
	Description     string
	Price           decimal.Decimal
	OriginalPrice   decimal.Decimal
	DiscountPercent int
	Thumbnail       string
	Images          []string
	Specifications  []Specification
	Category        string
	Brand           string
	Rating          float64
	RatingCount     int
	Stock           int
	DeliveryDays    int
	SellerEmail     string
	SellerName      string
	IsDeal          bool
	IsFeatured      bool
	IsBestseller    bool
	IsTrending      bool
	Status          ProductStatus
}

// ProductInput carries the editable fields of a product
type ProductInput struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  decimal.Decimal
	Category       string
	Brand          string
	Stock          int
	Thumbnail      string
	Images         []string
	Specifications []Specification
	DeliveryDays   int
}

// NewProduct creates a product submitted by a seller. It starts pending.
func NewProduct(sellerEmail, sellerName string, input ProductInput) (*Product, error) {
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerEmail:       strings.ToLower(strings.TrimSpace(sellerEmail)),
		SellerName:        sellerName,
		Status:            ProductStatusPending,
	}
	if err := p.apply(input); err != nil {
		return nil, err
	}

	p.AddDomainEvent(NewProductSubmittedEvent(p))
	return p, nil
}

// UpdateDetails replaces the editable fields. Edited products go back to moderation.
func (p *Product) UpdateDetails(input ProductInput) error {
	if err := p.apply(input); err != nil {
		return err
	}
	p.Status = ProductStatusPending
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductSubmittedEvent(p))
	return nil
}

func (p *Product) apply(input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if err := validateProductName(name); err != nil {
		return err
	}
	if !input.Price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	original := input.OriginalPrice
	if original.IsZero() {
		original = input.Price
	}
	if original.LessThan(input.Price) {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be lower than price")
	}
	if input.Stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	category := strings.ToLower(strings.TrimSpace(input.Category))
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	deliveryDays := input.DeliveryDays
	if deliveryDays <= 0 {
		deliveryDays = DefaultDeliveryDays
	}

	p.Name = name
	p.Description = strings.TrimSpace(input.Description)
	p.Price = input.Price
	p.OriginalPrice = original
	p.DiscountPercent = computeDiscountPercent(input.Price, original)
	p.Category = category
	p.Brand = strings.TrimSpace(input.Brand)
	p.Stock = input.Stock
	p.Thumbnail = strings.TrimSpace(input.Thumbnail)
	p.Images = input.Images
	p.Specifications = input.Specifications
	p.DeliveryDays = deliveryDays
	return nil
}

// Approve publishes the product in the storefront
func (p *Product) Approve() error {
	if p.Status == ProductStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Product is already approved")
	}
	p.Status = ProductStatusApproved
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductApprovedEvent(p))
	return nil
}

// Reject hides the product from the storefront
func (p *Product) Reject() error {
	if p.Status == ProductStatusRejected {
		return shared.NewDomainError("INVALID_STATE", "Product is already rejected")
	}
	p.Status = ProductStatusRejected
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductRejectedEvent(p))
	return nil
}

// IsApproved reports whether the product is visible to shoppers
func (p *Product) IsApproved() bool {
	return p.Status == ProductStatusApproved
}

// OwnedBy reports whether the seller owns this product
func (p *Product) OwnedBy(sellerEmail string) bool {
	return p.SellerEmail != "" && strings.EqualFold(p.SellerEmail, strings.TrimSpace(sellerEmail))
}

// EffectiveDiscountPercent returns the stored discount or derives it from the prices
func (p *Product) EffectiveDiscountPercent() int {
	if p.DiscountPercent > 0 {
		return p.DiscountPercent
	}
	return computeDiscountPercent(p.Price, p.OriginalPrice)
}

// EffectiveOriginalPrice returns the original price, falling back to the price
func (p *Product) EffectiveOriginalPrice() decimal.Decimal {
	if p.OriginalPrice.IsPositive() {
		return p.OriginalPrice
	}
	return p.Price
}

// PrimaryImage returns the thumbnail, or the first gallery image
func (p *Product) PrimaryImage() string {
	if p.Thumbnail != "" {
		return p.Thumbnail
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// RecordReview folds a new star rating into the running average
func (p *Product) RecordReview(rating int) {
	total := p.Rating*float64(p.RatingCount) + float64(rating)
	p.RatingCount++
	p.Rating = math.Round(total/float64(p.RatingCount)*10) / 10
	p.Touch()
}

// EstimatedDelivery returns the expected delivery date for an order placed at now
func (p *Product) EstimatedDelivery(now time.Time) time.Time {
	days := p.DeliveryDays
	if days <= 0 {
		days = DefaultDeliveryDays
	}
	return now.AddDate(0, 0, days)
}

// computeDiscountPercent returns round((1 - price/original) * 100), 0 when there is no markdown
func computeDiscountPercent(price, original decimal.Decimal) int {
	if !original.IsPositive() || !original.GreaterThan(price) {
		return 0
	}
	ratio, _ := decimal.NewFromInt(1).Sub(price.Div(original)).Mul(decimal.NewFromInt(100)).Float64()
	return int(math.Round(ratio))
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len([]rune(name)) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
