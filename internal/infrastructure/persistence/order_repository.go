package persistence

import (
	"context"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Find returns the orders matching an entity query
func (r *GormOrderRepository) Find(ctx context.Context, q shared.Query) ([]*trade.Order, error) {
	tx, err := applyQuery(conn(ctx, r.db).Model(&models.OrderModel{}), &models.OrderModel{}, q)
	if err != nil {
		return nil, err
	}
	var rows []models.OrderModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*trade.Order, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an order. The order_items rows are replaced in the
// same transaction so they always mirror the order's item snapshot.
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.OrderModelFromDomain(order)).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		rows := make([]*models.OrderItemModel, 0, len(order.Items))
		for _, item := range order.Items {
			item.OrderID = order.ID
			if item.CreatedAt.IsZero() {
				item.CreatedAt = order.CreatedAt
			}
			rows = append(rows, models.OrderItemModelFromDomain(item))
		}
		return tx.Create(&rows).Error
	})
}

// Count counts orders matching the criteria
func (r *GormOrderRepository) Count(ctx context.Context, criteria map[string]any) (int64, error) {
	tx, err := applyQuery(conn(ctx, r.db).Model(&models.OrderModel{}), &models.OrderModel{}, shared.NewQuery(criteria))
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOrderRepository implements trade.OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
