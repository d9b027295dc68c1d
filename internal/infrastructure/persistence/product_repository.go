package persistence

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Find returns the products matching an entity query
func (r *GormProductRepository) Find(ctx context.Context, q shared.Query) ([]*catalog.Product, error) {
	tx, err := applyQuery(conn(ctx, r.db).Model(&models.ProductModel{}), &models.ProductModel{}, q)
	if err != nil {
		return nil, err
	}
	var rows []models.ProductModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// FindByIDs loads the products with the given IDs; missing IDs are skipped
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return translateError(conn(ctx, r.db).Save(models.ProductModelFromDomain(product)).Error)
}

// SaveBatch inserts or updates several products in one statement
func (r *GormProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]*models.ProductModel, 0, len(products))
	for _, p := range products {
		rows = append(rows, models.ProductModelFromDomain(p))
	}
	return translateError(conn(ctx, r.db).Save(&rows).Error)
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ProductModel{}, id)
}

// Count counts products matching the criteria
func (r *GormProductRepository) Count(ctx context.Context, criteria map[string]any) (int64, error) {
	tx, err := applyQuery(conn(ctx, r.db).Model(&models.ProductModel{}), &models.ProductModel{}, shared.NewQuery(criteria))
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func productsToDomain(rows []models.ProductModel) []*catalog.Product {
	products := make([]*catalog.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
