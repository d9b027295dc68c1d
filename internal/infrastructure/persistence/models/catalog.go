package models

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	AggregateModel
	Name            string                `gorm:"type:varchar(200);not null"`
	Description     string                `gorm:"type:text"`
	Price           decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	OriginalPrice   decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountPercent int                   `gorm:"not null;default:0"`
	Thumbnail       string                `gorm:"type:text"`
	Images          string                `gorm:"type:jsonb"`
	Specifications  string                `gorm:"type:jsonb"`
	Category        string                `gorm:"type:varchar(100);not null;index"`
	Brand           string                `gorm:"type:varchar(100);index"`
	Rating          float64               `gorm:"not null;default:0"`
	RatingCount     int                   `gorm:"not null;default:0"`
	Stock           int                   `gorm:"not null;default:0"`
	DeliveryDays    int                   `gorm:"not null;default:5"`
	SellerEmail     string                `gorm:"type:varchar(200);index"`
	SellerName      string                `gorm:"type:varchar(200)"`
	IsDeal          bool                  `gorm:"not null;default:false"`
	IsFeatured      bool                  `gorm:"not null;default:false"`
	IsBestseller    bool                  `gorm:"not null;default:false"`
	IsTrending      bool                  `gorm:"not null;default:false"`
	Status          catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		OriginalPrice:     m.OriginalPrice,
		DiscountPercent:   m.DiscountPercent,
		Thumbnail:         m.Thumbnail,
		Category:          m.Category,
		Brand:             m.Brand,
		Rating:            m.Rating,
		RatingCount:       m.RatingCount,
		Stock:             m.Stock,
		DeliveryDays:      m.DeliveryDays,
		SellerEmail:       m.SellerEmail,
		SellerName:        m.SellerName,
		IsDeal:            m.IsDeal,
		IsFeatured:        m.IsFeatured,
		IsBestseller:      m.IsBestseller,
		IsTrending:        m.IsTrending,
		Status:            m.Status,
	}
	decodeJSON(m.Images, &p.Images)
	decodeJSON(m.Specifications, &p.Specifications)
	return p
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.OriginalPrice = p.OriginalPrice
	m.DiscountPercent = p.DiscountPercent
	m.Thumbnail = p.Thumbnail
	m.Images = encodeJSON(p.Images)
	m.Specifications = encodeJSON(p.Specifications)
	m.Category = p.Category
	m.Brand = p.Brand
	m.Rating = p.Rating
	m.RatingCount = p.RatingCount
	m.Stock = p.Stock
	m.DeliveryDays = p.DeliveryDays
	m.SellerEmail = p.SellerEmail
	m.SellerName = p.SellerName
	m.IsDeal = p.IsDeal
	m.IsFeatured = p.IsFeatured
	m.IsBestseller = p.IsBestseller
	m.IsTrending = p.IsTrending
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// CategoryModel is the persistence model for storefront categories.
type CategoryModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null"`
	Slug      string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Image     string `gorm:"type:text"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Slug:       m.Slug,
		Image:      m.Image,
		SortOrder:  m.SortOrder,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name, Slug: c.Slug, Image: c.Image, SortOrder: c.SortOrder}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ReviewModel is the persistence model for product reviews.
type ReviewModel struct {
	BaseModel
	ProductID          uuid.UUID `gorm:"type:uuid;not null;index"`
	UserEmail          string    `gorm:"type:varchar(200);not null;index"`
	UserName           string    `gorm:"type:varchar(200)"`
	Rating             int       `gorm:"not null;default:5"`
	Title              string    `gorm:"type:varchar(200)"`
	Comment            string    `gorm:"type:text"`
	IsVerifiedPurchase bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review.
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity:         m.BaseModel.ToDomain(),
		ProductID:          m.ProductID,
		UserEmail:          m.UserEmail,
		UserName:           m.UserName,
		Rating:             m.Rating,
		Title:              m.Title,
		Comment:            m.Comment,
		IsVerifiedPurchase: m.IsVerifiedPurchase,
	}
}

// ReviewModelFromDomain creates a persistence model from a domain Review.
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		ProductID:          r.ProductID,
		UserEmail:          r.UserEmail,
		UserName:           r.UserName,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// SellerModel is the persistence model for seller profiles.
type SellerModel struct {
	BaseModel
	Email     string               `gorm:"type:varchar(200);not null;uniqueIndex"`
	StoreName string               `gorm:"type:varchar(200);not null"`
	Phone     string               `gorm:"type:varchar(30)"`
	GSTNumber string               `gorm:"column:gst_number;type:varchar(30)"`
	Status    catalog.SellerStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

// ToDomain converts the persistence model to a domain Seller.
func (m *SellerModel) ToDomain() *catalog.Seller {
	return &catalog.Seller{
		BaseEntity: m.BaseModel.ToDomain(),
		Email:      m.Email,
		StoreName:  m.StoreName,
		Phone:      m.Phone,
		GSTNumber:  m.GSTNumber,
		Status:     m.Status,
	}
}

// SellerModelFromDomain creates a persistence model from a domain Seller.
func SellerModelFromDomain(s *catalog.Seller) *SellerModel {
	m := &SellerModel{Email: s.Email, StoreName: s.StoreName, Phone: s.Phone, GSTNumber: s.GSTNumber, Status: s.Status}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
