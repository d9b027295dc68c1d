package persistence

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := conn(ctx, r.db).Where("email = ?", identity.NormalizeEmail(email)).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if an account uses the email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.UserModel{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return translateError(conn(ctx, r.db).Save(models.UserModelFromDomain(user)).Error)
}

// Find returns users matching the query
func (r *GormUserRepository) Find(ctx context.Context, q shared.Query) ([]*identity.User, error) {
	tx, err := applyQuery(conn(ctx, r.db).Model(&models.UserModel{}), &models.UserModel{}, q)
	if err != nil {
		return nil, err
	}
	var rows []models.UserModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*identity.User, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Count counts all users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.UserModel{}).Count(&count).Error
	return count, err
}

// GormAddressRepository implements identity.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Address, error) {
	var model models.AddressModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's addresses, default first
func (r *GormAddressRepository) FindByUser(ctx context.Context, userEmail string) ([]*identity.Address, error) {
	var rows []models.AddressModel
	if err := conn(ctx, r.db).
		Where("user_email = ?", userEmail).
		Order("is_default DESC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*identity.Address, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *identity.Address) error {
	return translateError(conn(ctx, r.db).Save(models.AddressModelFromDomain(address)).Error)
}

// Delete removes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.AddressModel{}, id)
}

// GormContactMessageRepository implements identity.ContactMessageRepository using GORM
type GormContactMessageRepository struct {
	db *gorm.DB
}

// NewGormContactMessageRepository creates a new GormContactMessageRepository
func NewGormContactMessageRepository(db *gorm.DB) *GormContactMessageRepository {
	return &GormContactMessageRepository{db: db}
}

// Save stores a contact message
func (r *GormContactMessageRepository) Save(ctx context.Context, message *identity.ContactMessage) error {
	return conn(ctx, r.db).Create(models.ContactMessageModelFromDomain(message)).Error
}

var (
	_ identity.UserRepository           = (*GormUserRepository)(nil)
	_ identity.AddressRepository        = (*GormAddressRepository)(nil)
	_ identity.ContactMessageRepository = (*GormContactMessageRepository)(nil)
)
