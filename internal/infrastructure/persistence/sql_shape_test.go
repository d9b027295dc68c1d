package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository over a mocked postgres connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_SQL(t *testing.T) {
	t.Run("find by id", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "price", "category", "images", "status"}).
			AddRow(id, "Phone X", "15000", "mobiles", `["a.jpg"]`, "approved")
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY "products"."id" LIMIT \$2`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		p, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Phone X", p.Name)
		assert.Equal(t, []string{"a.jpg"}, p.Images)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found maps to domain error", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("query criteria are quoted columns in stable order", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE "products"."category" = \$1 AND "products"."status" = \$2 ORDER BY "products"."created_at" DESC LIMIT \$3`).
			WithArgs("mobiles", "approved", 10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		q := shared.NewQuery(map[string]any{"status": "approved", "category": "mobiles"}).Order("-created_date").Take(10)
		got, err := repo.Find(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
