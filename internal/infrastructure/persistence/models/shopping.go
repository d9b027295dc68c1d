package models

import (
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshotColumns are the denormalized product fields on cart and wishlist rows.
type ProductSnapshotColumns struct {
	ProductID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName          string          `gorm:"type:varchar(200);not null"`
	ProductThumbnail     string          `gorm:"type:text"`
	ProductPrice         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ProductOriginalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SellerName           string          `gorm:"type:varchar(200)"`
	SellerEmail          string          `gorm:"type:varchar(200)"`
}

func (c ProductSnapshotColumns) toDomain() shopping.ProductSnapshot {
	return shopping.ProductSnapshot{
		ProductID:     c.ProductID,
		Name:          c.ProductName,
		Thumbnail:     c.ProductThumbnail,
		Price:         c.ProductPrice,
		OriginalPrice: c.ProductOriginalPrice,
		SellerName:    c.SellerName,
		SellerEmail:   c.SellerEmail,
	}
}

func snapshotColumns(s shopping.ProductSnapshot) ProductSnapshotColumns {
	return ProductSnapshotColumns{
		ProductID:            s.ProductID,
		ProductName:          s.Name,
		ProductThumbnail:     s.Thumbnail,
		ProductPrice:         s.Price,
		ProductOriginalPrice: s.OriginalPrice,
		SellerName:           s.SellerName,
		SellerEmail:          s.SellerEmail,
	}
}

// CartItemModel is the persistence model for cart lines.
type CartItemModel struct {
	BaseModel
	UserEmail string `gorm:"type:varchar(200);not null;index"`
	ProductSnapshotColumns
	Quantity      int  `gorm:"not null;default:1"`
	SavedForLater bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem.
func (m *CartItemModel) ToDomain() *shopping.CartItem {
	return &shopping.CartItem{
		BaseEntity:    m.BaseModel.ToDomain(),
		UserEmail:     m.UserEmail,
		Product:       m.ProductSnapshotColumns.toDomain(),
		Quantity:      m.Quantity,
		SavedForLater: m.SavedForLater,
	}
}

// CartItemModelFromDomain creates a persistence model from a domain CartItem.
func CartItemModelFromDomain(c *shopping.CartItem) *CartItemModel {
	m := &CartItemModel{
		UserEmail:              c.UserEmail,
		ProductSnapshotColumns: snapshotColumns(c.Product),
		Quantity:               c.Qty(),
		SavedForLater:          c.SavedForLater,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// WishlistItemModel is the persistence model for wishlist entries.
type WishlistItemModel struct {
	BaseModel
	UserEmail string `gorm:"type:varchar(200);not null;index"`
	ProductSnapshotColumns
}

// TableName returns the table name for GORM
func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}

// ToDomain converts the persistence model to a domain WishlistItem.
func (m *WishlistItemModel) ToDomain() *shopping.WishlistItem {
	return &shopping.WishlistItem{
		BaseEntity: m.BaseModel.ToDomain(),
		UserEmail:  m.UserEmail,
		Product:    m.ProductSnapshotColumns.toDomain(),
	}
}

// WishlistItemModelFromDomain creates a persistence model from a domain WishlistItem.
func WishlistItemModelFromDomain(w *shopping.WishlistItem) *WishlistItemModel {
	m := &WishlistItemModel{UserEmail: w.UserEmail, ProductSnapshotColumns: snapshotColumns(w.Product)}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}

// CouponModel is the persistence model for coupons.
type CouponModel struct {
	BaseModel
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description     string          `gorm:"type:text"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	MinOrderValue   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MaxDiscount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive        bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon.
func (m *CouponModel) ToDomain() *shopping.Coupon {
	return &shopping.Coupon{
		BaseEntity:      m.BaseModel.ToDomain(),
		Code:            m.Code,
		Description:     m.Description,
		DiscountPercent: m.DiscountPercent,
		MinOrderValue:   m.MinOrderValue,
		MaxDiscount:     m.MaxDiscount,
		IsActive:        m.IsActive,
	}
}

// CouponModelFromDomain creates a persistence model from a domain Coupon.
func CouponModelFromDomain(c *shopping.Coupon) *CouponModel {
	m := &CouponModel{
		Code:            c.Code,
		Description:     c.Description,
		DiscountPercent: c.DiscountPercent,
		MinOrderValue:   c.MinOrderValue,
		MaxDiscount:     c.MaxDiscount,
		IsActive:        c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
