package persistence

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements shopping.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart line by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.CartItem, error) {
	var model models.CartItemModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's active or saved-for-later lines, newest first
func (r *GormCartRepository) FindByUser(ctx context.Context, userEmail string, saved bool) ([]*shopping.CartItem, error) {
	var rows []models.CartItemModel
	if err := conn(ctx, r.db).
		Where("user_email = ? AND saved_for_later = ?", userEmail, saved).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*shopping.CartItem, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindActiveByProduct finds the user's active line for a product
func (r *GormCartRepository) FindActiveByProduct(ctx context.Context, userEmail string, productID uuid.UUID) (*shopping.CartItem, error) {
	var model models.CartItemModel
	if err := conn(ctx, r.db).
		Where("user_email = ? AND product_id = ? AND saved_for_later = ?", userEmail, productID, false).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a cart line
func (r *GormCartRepository) Save(ctx context.Context, item *shopping.CartItem) error {
	return translateError(conn(ctx, r.db).Save(models.CartItemModelFromDomain(item)).Error)
}

// Delete removes a cart line
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.CartItemModel{}, id)
}

// DeleteByUser removes every active or saved line of a user
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userEmail string, saved bool) error {
	return conn(ctx, r.db).
		Where("user_email = ? AND saved_for_later = ?", userEmail, saved).
		Delete(&models.CartItemModel{}).Error
}

// GormWishlistRepository implements shopping.WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByID finds a wishlist entry by its ID
func (r *GormWishlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.WishlistItem, error) {
	var model models.WishlistItemModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUser returns the user's wishlist, newest first
func (r *GormWishlistRepository) FindByUser(ctx context.Context, userEmail string) ([]*shopping.WishlistItem, error) {
	var rows []models.WishlistItemModel
	if err := conn(ctx, r.db).Where("user_email = ?", userEmail).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*shopping.WishlistItem, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindByProduct finds the user's entry for a product
func (r *GormWishlistRepository) FindByProduct(ctx context.Context, userEmail string, productID uuid.UUID) (*shopping.WishlistItem, error) {
	var model models.WishlistItemModel
	if err := conn(ctx, r.db).Where("user_email = ? AND product_id = ?", userEmail, productID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a wishlist entry
func (r *GormWishlistRepository) Save(ctx context.Context, item *shopping.WishlistItem) error {
	return translateError(conn(ctx, r.db).Save(models.WishlistItemModelFromDomain(item)).Error)
}

// Delete removes a wishlist entry
func (r *GormWishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.WishlistItemModel{}, id)
}

// CountByUser counts the user's wishlist entries
func (r *GormWishlistRepository) CountByUser(ctx context.Context, userEmail string) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.WishlistItemModel{}).Where("user_email = ?", userEmail).Count(&count).Error
	return count, err
}

// GormCouponRepository implements shopping.CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindActiveByCode finds an active coupon; the code is matched case-insensitively
func (r *GormCouponRepository) FindActiveByCode(ctx context.Context, code string) (*shopping.Coupon, error) {
	var model models.CouponModel
	if err := conn(ctx, r.db).
		Where("code = ? AND is_active = ?", shopping.NormalizeCouponCode(code), true).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every coupon ordered by code
func (r *GormCouponRepository) FindAll(ctx context.Context) ([]*shopping.Coupon, error) {
	var rows []models.CouponModel
	if err := conn(ctx, r.db).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*shopping.Coupon, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a coupon
func (r *GormCouponRepository) Save(ctx context.Context, coupon *shopping.Coupon) error {
	return translateError(conn(ctx, r.db).Save(models.CouponModelFromDomain(coupon)).Error)
}

// deleteByID deletes one row and reports NOT_FOUND when nothing matched
func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	result := conn(ctx, db).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ shopping.CartRepository     = (*GormCartRepository)(nil)
	_ shopping.WishlistRepository = (*GormWishlistRepository)(nil)
	_ shopping.CouponRepository   = (*GormCouponRepository)(nil)
)
