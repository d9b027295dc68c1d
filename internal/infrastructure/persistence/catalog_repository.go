package persistence

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindAll returns every category in display order
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]*catalog.Category, error) {
	var rows []models.CategoryModel
	if err := conn(ctx, r.db).Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Category, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindBySlug finds a category by its slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := conn(ctx, r.db).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return translateError(conn(ctx, r.db).Save(models.CategoryModelFromDomain(category)).Error)
}

// GormReviewRepository implements catalog.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Find returns the reviews matching an entity query
func (r *GormReviewRepository) Find(ctx context.Context, q shared.Query) ([]*catalog.Review, error) {
	tx, err := applyQuery(conn(ctx, r.db).Model(&models.ReviewModel{}), &models.ReviewModel{}, q)
	if err != nil {
		return nil, err
	}
	var rows []models.ReviewModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Review, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	return translateError(conn(ctx, r.db).Save(models.ReviewModelFromDomain(review)).Error)
}

// GormSellerRepository implements catalog.SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// Find returns the sellers matching an entity query
func (r *GormSellerRepository) Find(ctx context.Context, q shared.Query) ([]*catalog.Seller, error) {
	tx, err := applyQuery(conn(ctx, r.db).Model(&models.SellerModel{}), &models.SellerModel{}, q)
	if err != nil {
		return nil, err
	}
	var rows []models.SellerModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Seller, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindByEmail finds the seller profile registered to an email
func (r *GormSellerRepository) FindByEmail(ctx context.Context, email string) (*catalog.Seller, error) {
	var model models.SellerModel
	if err := conn(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a seller profile
func (r *GormSellerRepository) Save(ctx context.Context, seller *catalog.Seller) error {
	return translateError(conn(ctx, r.db).Save(models.SellerModelFromDomain(seller)).Error)
}

var (
	_ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
	_ catalog.ReviewRepository   = (*GormReviewRepository)(nil)
	_ catalog.SellerRepository   = (*GormSellerRepository)(nil)
)
