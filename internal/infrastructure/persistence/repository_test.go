package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormProductRepository(db)

	phone := newTestProduct(t, "Phone X", "Mobiles", 15000)
	laptop := newTestProduct(t, "Laptop Pro", "Laptops", 60000)
	cheap := newTestProduct(t, "Phone Lite", "Mobiles", 8000)
	require.NoError(t, phone.Approve())
	require.NoError(t, repo.SaveBatch(ctx, []*catalog.Product{phone, laptop, cheap}))

	t.Run("round trips json columns", func(t *testing.T) {
		got, err := repo.FindByID(ctx, phone.ID)
		require.NoError(t, err)
		assert.Equal(t, "Phone X", got.Name)
		assert.True(t, got.Price.Equal(decimal.NewFromInt(15000)))
		assert.Equal(t, []string{"https://img.test/Phone X.jpg"}, got.Images)
		assert.Equal(t, catalog.ProductStatusApproved, got.Status)
	})

	t.Run("find applies criteria order and limit", func(t *testing.T) {
		got, err := repo.Find(ctx, shared.NewQuery(map[string]any{"category": "mobiles"}).Order("-price").Take(5))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, phone.ID, got[0].ID)
		assert.Equal(t, cheap.ID, got[1].ID)
	})

	t.Run("unknown column is rejected", func(t *testing.T) {
		_, err := repo.Find(ctx, shared.NewQuery(map[string]any{"nope": 1}))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("count and find by ids", func(t *testing.T) {
		n, err := repo.Count(ctx, map[string]any{"status": string(catalog.ProductStatusPending)})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		got, err := repo.FindByIDs(ctx, []uuid.UUID{laptop.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, laptop.ID, got[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, cheap.ID))
		_, err := repo.FindByID(ctx, cheap.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, cheap.ID), shared.ErrNotFound)
	})
}

func TestGormCartRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormCartRepository(db)

	p := newTestProduct(t, "Headphones", "Audio", 1999)
	item, err := shopping.NewCartItem("Shopper@Shop.test", shopping.SnapshotOf(p))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, item))

	saved, err := shopping.NewCartItem("shopper@shop.test", shopping.SnapshotOf(newTestProduct(t, "Cable", "Audio", 199)))
	require.NoError(t, err)
	saved.SaveForLater()
	require.NoError(t, repo.Save(ctx, saved))

	active, err := repo.FindByUser(ctx, "shopper@shop.test", false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Headphones", active[0].Product.Name)

	found, err := repo.FindActiveByProduct(ctx, "shopper@shop.test", p.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	found.ChangeQuantity(2)
	require.NoError(t, repo.Save(ctx, found))
	reloaded, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Qty())

	require.NoError(t, repo.DeleteByUser(ctx, "shopper@shop.test", false))
	active, err = repo.FindByUser(ctx, "shopper@shop.test", false)
	require.NoError(t, err)
	assert.Empty(t, active)

	later, err := repo.FindByUser(ctx, "shopper@shop.test", true)
	require.NoError(t, err)
	assert.Len(t, later, 1)
}

func TestGormWishlistAndCouponRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	wishlist := NewGormWishlistRepository(db)
	p := newTestProduct(t, "Watch", "Wearables", 2999)
	w, err := shopping.NewWishlistItem("a@shop.test", shopping.SnapshotOf(p))
	require.NoError(t, err)
	require.NoError(t, wishlist.Save(ctx, w))

	got, err := wishlist.FindByProduct(ctx, "a@shop.test", p.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)
	n, err := wishlist.CountByUser(ctx, "a@shop.test")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, wishlist.Delete(ctx, w.ID))
	_, err = wishlist.FindByID(ctx, w.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	coupons := NewGormCouponRepository(db)
	c, err := shopping.NewCoupon("save10", decimal.NewFromInt(10), decimal.NewFromInt(1000), decimal.NewFromInt(150))
	require.NoError(t, err)
	require.NoError(t, coupons.Save(ctx, c))

	inactive, err := shopping.NewCoupon("OLD5", decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	inactive.IsActive = false
	require.NoError(t, coupons.Save(ctx, inactive))

	found, err := coupons.FindActiveByCode(ctx, " Save10 ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", found.Code)

	_, err = coupons.FindActiveByCode(ctx, "OLD5")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	all, err := coupons.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)

	p := newTestProduct(t, "Blender", "Kitchen", 1200)
	line, err := shopping.NewCartItem("buyer@shop.test", shopping.SnapshotOf(p))
	require.NoError(t, err)

	order, err := trade.NewOrder(trade.OrderInput{
		UserEmail:       "buyer@shop.test",
		Lines:           []*shopping.CartItem{line},
		Policy:          shopping.DefaultDeliveryPolicy(),
		ShippingAddress: trade.ShippingAddress{Name: "Buyer", AddressLine1: "1 Main St", City: "Pune", Pincode: "411001"},
		PaymentMethod:   trade.PaymentMethodUPI,
		PlacedAt:        time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, order))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)
	assert.Equal(t, "411001", got.ShippingAddress.Pincode)
	require.Len(t, got.Items, 1)
	assert.Equal(t, p.ID, got.Items[0].ProductID)

	var itemRows int64
	require.NoError(t, db.Model(&models.OrderItemModel{}).Where("order_id = ?", order.ID).Count(&itemRows).Error)
	assert.Equal(t, int64(1), itemRows)

	require.NoError(t, got.Cancel())
	require.NoError(t, repo.Save(ctx, got))
	require.NoError(t, db.Model(&models.OrderItemModel{}).Where("order_id = ?", order.ID).Count(&itemRows).Error)
	assert.Equal(t, int64(1), itemRows)

	n, err := repo.Count(ctx, map[string]any{"status": string(trade.OrderStatusCancelled)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mine, err := repo.Find(ctx, shared.NewQuery(map[string]any{"user_email": "buyer@shop.test"}).Order("-created_date").Take(50))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, trade.PaymentStatusRefunded, mine[0].PaymentStatus)
}

func TestGormIdentityRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewGormUserRepository(db)

	u, err := identity.NewUser("Riya@Shop.test", "Riya", "secret123")
	require.NoError(t, err)
	require.NoError(t, users.Save(ctx, u))

	exists, err := users.ExistsByEmail(ctx, "RIYA@shop.test")
	require.NoError(t, err)
	assert.True(t, exists)

	dup, err := identity.NewUser("riya@shop.test", "Other", "secret123")
	require.NoError(t, err)
	assert.ErrorIs(t, users.Save(ctx, dup), shared.ErrAlreadyExists)

	got, err := users.FindByEmail(ctx, "riya@shop.test")
	require.NoError(t, err)
	assert.True(t, got.VerifyPassword("secret123"))

	_, err = users.FindByEmail(ctx, "missing@shop.test")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	addresses := NewGormAddressRepository(db)
	home, err := identity.NewAddress(u.Email, identity.AddressInput{Name: "Riya", Phone: "9876543210", AddressLine1: "1 Main St", City: "Pune", State: "MH", Pincode: "411001"})
	require.NoError(t, err)
	work, err := identity.NewAddress(u.Email, identity.AddressInput{Name: "Riya", Phone: "9876543210", AddressLine1: "2 Park Rd", City: "Pune", State: "MH", Pincode: "411002", Type: identity.AddressTypeWork})
	require.NoError(t, err)
	work.IsDefault = true
	require.NoError(t, addresses.Save(ctx, home))
	require.NoError(t, addresses.Save(ctx, work))

	list, err := addresses.FindByUser(ctx, u.Email)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, work.ID, list[0].ID)

	require.NoError(t, addresses.Delete(ctx, home.ID))
	assert.ErrorIs(t, addresses.Delete(ctx, home.ID), shared.ErrNotFound)

	msg, err := identity.NewContactMessage("Riya", "riya@shop.test", "Refund", "Where is my refund?")
	require.NoError(t, err)
	require.NoError(t, NewGormContactMessageRepository(db).Save(ctx, msg))
}

func TestGormTxManager(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	txm := NewGormTxManager(db)
	repo := NewGormProductRepository(db)

	p := newTestProduct(t, "Kettle", "Kitchen", 900)
	err := txm.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
		return shared.ErrInvalidState
	})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound, "rolled back")

	require.NoError(t, txm.WithinTx(ctx, func(ctx context.Context) error {
		return txm.WithinTx(ctx, func(ctx context.Context) error {
			return repo.Save(ctx, p)
		})
	}))
	_, err = repo.FindByID(ctx, p.ID)
	assert.NoError(t, err)
}
