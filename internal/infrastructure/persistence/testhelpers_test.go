package persistence

import (
	"testing"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a migrated in-memory SQLite database
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func newTestProduct(t *testing.T, name, category string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("seller@shop.test", "Acme Store", catalog.ProductInput{
		Name:          name,
		Price:         decimal.NewFromInt(price),
		OriginalPrice: decimal.NewFromInt(price * 2),
		Category:      category,
		Brand:         "Acme",
		Stock:         10,
		Images:        []string{"https://img.test/" + name + ".jpg"},
	})
	require.NoError(t, err)
	return p
}
