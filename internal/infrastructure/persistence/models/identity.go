package models

import (
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	AggregateModel
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName     string        `gorm:"type:varchar(200);not null"`
	Phone        string        `gorm:"type:varchar(30)"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'customer'"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		FullName:          m.FullName,
		Phone:             m.Phone,
		Role:              m.Role,
		PasswordHash:      m.PasswordHash,
		LastLoginAt:       m.LastLoginAt,
	}
}

// UserModelFromDomain creates a persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		FullName:     u.FullName,
		Phone:        u.Phone,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// AddressModel is the persistence model for saved addresses.
type AddressModel struct {
	BaseModel
	UserEmail    string               `gorm:"type:varchar(200);not null;index"`
	Name         string               `gorm:"type:varchar(200);not null"`
	Phone        string               `gorm:"type:varchar(30);not null"`
	AddressLine1 string               `gorm:"column:address_line1;type:varchar(300);not null"`
	AddressLine2 string               `gorm:"column:address_line2;type:varchar(300)"`
	City         string               `gorm:"type:varchar(100);not null"`
	State        string               `gorm:"type:varchar(100);not null"`
	Pincode      string               `gorm:"type:varchar(6);not null"`
	Type         identity.AddressType `gorm:"type:varchar(10);not null;default:'home'"`
	IsDefault    bool                 `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *AddressModel) ToDomain() *identity.Address {
	return &identity.Address{
		BaseEntity:   m.BaseModel.ToDomain(),
		UserEmail:    m.UserEmail,
		Name:         m.Name,
		Phone:        m.Phone,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		City:         m.City,
		State:        m.State,
		Pincode:      m.Pincode,
		Type:         m.Type,
		IsDefault:    m.IsDefault,
	}
}

// AddressModelFromDomain creates a persistence model from a domain Address.
func AddressModelFromDomain(a *identity.Address) *AddressModel {
	m := &AddressModel{
		UserEmail:    a.UserEmail,
		Name:         a.Name,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		Type:         a.Type,
		IsDefault:    a.IsDefault,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// ContactMessageModel stores contact form submissions.
type ContactMessageModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200);not null"`
	Subject string `gorm:"type:varchar(300);not null"`
	Message string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

// ContactMessageModelFromDomain creates a persistence model from a domain ContactMessage.
func ContactMessageModelFromDomain(c *identity.ContactMessage) *ContactMessageModel {
	m := &ContactMessageModel{Name: c.Name, Email: c.Email, Subject: c.Subject, Message: c.Message}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// All returns every model, in dependency order, for AutoMigrate in tests and sqlite mode.
func All() []any {
	return []any{
		&UserModel{},
		&AddressModel{},
		&SellerModel{},
		&CategoryModel{},
		&ProductModel{},
		&ReviewModel{},
		&CouponModel{},
		&CartItemModel{},
		&WishlistItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ContactMessageModel{},
	}
}
