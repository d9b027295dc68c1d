package entity

import (
	"context"
	"fmt"
	"testing"

	appcatalog "github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence"
	"github.com/Bhargav2112/Flipcart-Clone/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	admin     = identity.NewPrincipal(uuid.New(), "admin@shop.test", identity.RoleAdmin)
	alice     = identity.NewPrincipal(uuid.New(), "alice@shop.test", identity.RoleCustomer)
	bob       = identity.NewPrincipal(uuid.New(), "bob@shop.test", identity.RoleCustomer)
	anonymous = identity.Principal{}
)

func newService(t *testing.T) (*Service, *testutil.Repositories) {
	t.Helper()
	repos := testutil.NewRepositories(t)
	products := appcatalog.NewProductService(repos.Products, repos.Categories, repos.Reviews, repos.Users, repos.Tx, nil)
	return NewService(repos.Entities, repos.Products, products, zap.NewNop()), repos
}

func rowID(t *testing.T, row persistence.Row) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(fmt.Sprint(row["id"]))
	require.NoError(t, err)
	return id
}

func addressInput() map[string]any {
	return map[string]any{
		"name":          "Alice",
		"phone":         "9876543210",
		"address_line1": "1 Park Street",
		"city":          "Kolkata",
		"state":         "West Bengal",
		"pincode":       "700016",
	}
}

func TestService_UnknownEntity(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Filter(context.Background(), admin, "Invoice", shared.NewQuery(nil))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ENTITY", domainErr.Code)
}

func TestService_UserOwnedRowsArePinnedToCaller(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	fields := addressInput()
	fields["user_email"] = "bob@shop.test"
	created, err := svc.Create(ctx, alice, persistence.EntityAddress, fields)
	require.NoError(t, err)
	assert.Equal(t, "alice@shop.test", created["user_email"], "owner is forced to the caller")

	_, err = svc.Create(ctx, bob, persistence.EntityAddress, addressInput())
	require.NoError(t, err)

	t.Run("filter only returns own rows", func(t *testing.T) {
		rows, err := svc.Filter(ctx, alice, persistence.EntityAddress, shared.NewQuery(map[string]any{"user_email": "bob@shop.test"}))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "alice@shop.test", rows[0]["user_email"])
	})

	t.Run("admins see everything", func(t *testing.T) {
		rows, err := svc.Filter(ctx, admin, persistence.EntityAddress, shared.NewQuery(nil))
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("other users cannot write", func(t *testing.T) {
		id := rowID(t, created)
		_, err := svc.Update(ctx, bob, persistence.EntityAddress, id, map[string]any{"city": "Delhi"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, bob, persistence.EntityAddress, id), shared.ErrNotFound)
	})

	t.Run("owner can update but not reassign", func(t *testing.T) {
		id := rowID(t, created)
		row, err := svc.Update(ctx, alice, persistence.EntityAddress, id, map[string]any{"city": "Howrah", "user_email": "bob@shop.test"})
		require.NoError(t, err)
		assert.Equal(t, "Howrah", row["city"])
		assert.Equal(t, "alice@shop.test", row["user_email"])
		require.NoError(t, svc.Delete(ctx, alice, persistence.EntityAddress, id))
	})

	t.Run("anonymous callers are rejected", func(t *testing.T) {
		_, err := svc.Filter(ctx, anonymous, persistence.EntityAddress, shared.NewQuery(nil))
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		_, err = svc.Create(ctx, anonymous, persistence.EntityAddress, addressInput())
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestService_PublicAndAdminOnlyEntities(t *testing.T) {
	svc, repos := newService(t)
	ctx := context.Background()
	testutil.SeedProduct(t, repos.Products, "Listed", 100)
	testutil.SeedProduct(t, repos.Products, "Waiting", 100, testutil.Pending(), testutil.WithSeller("seller@shop.test", "Shop"))
	testutil.SeedUser(t, repos.Users, "alice@shop.test", identity.RoleCustomer)

	t.Run("anonymous product reads only see approved rows", func(t *testing.T) {
		rows, err := svc.Filter(ctx, anonymous, persistence.EntityProduct, shared.NewQuery(nil))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Listed", rows[0]["name"])
	})

	t.Run("sellers see their own pending listings", func(t *testing.T) {
		seller := identity.NewPrincipal(uuid.New(), "seller@shop.test", identity.RoleSeller)
		rows, err := svc.Filter(ctx, seller, persistence.EntityProduct, shared.NewQuery(map[string]any{"seller_email": "seller@shop.test"}))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Waiting", rows[0]["name"])
	})

	t.Run("catalog writes need an admin", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, persistence.EntityCategory, map[string]any{"name": "Books", "slug": "books"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		_, err = svc.Create(ctx, admin, persistence.EntityCategory, map[string]any{"name": "Books", "slug": "books"})
		assert.NoError(t, err)
	})

	t.Run("users are admin only and never expose the password hash", func(t *testing.T) {
		_, err := svc.Filter(ctx, alice, persistence.EntityUser, shared.NewQuery(nil))
		assert.ErrorIs(t, err, shared.ErrForbidden)

		rows, err := svc.Filter(ctx, admin, persistence.EntityUser, shared.NewQuery(nil))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.NotContains(t, rows[0], "password_hash")

		_, err = svc.Filter(ctx, admin, persistence.EntityUser, shared.NewQuery(map[string]any{"password_hash": "x"}))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("limit is capped", func(t *testing.T) {
		rows, err := svc.Filter(ctx, admin, persistence.EntityProduct, shared.NewQuery(nil).Take(MaxLimit*10))
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestService_OrderItemsFollowOrderOwnership(t *testing.T) {
	svc, repos := newService(t)
	ctx := context.Background()
	product := testutil.SeedProduct(t, repos.Products, "Book", 300)
	order := testutil.SeedOrder(t, repos.Orders, "alice@shop.test", product)
	byOrder := shared.NewQuery(map[string]any{"order_id": order.ID.String()})

	rows, err := svc.Filter(ctx, alice, persistence.EntityOrderItem, byOrder)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Book", rows[0]["product_name"])

	_, err = svc.Filter(ctx, bob, persistence.EntityOrderItem, byOrder)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.Filter(ctx, alice, persistence.EntityOrderItem, shared.NewQuery(nil))
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestService_OwnerFilterCannotBeOverridden(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, bob, persistence.EntityAddress, addressInput())
	require.NoError(t, err)
	mine, err := svc.Create(ctx, alice, persistence.EntityAddress, addressInput())
	require.NoError(t, err)

	// map order is random, so repeat to catch a last-write-wins merge
	for i := 0; i < 50; i++ {
		for _, key := range []string{" user_email", "user_email ", "USER_EMAIL"} {
			_, err := svc.Filter(ctx, alice, persistence.EntityAddress, shared.NewQuery(map[string]any{key: "bob@shop.test"}))
			require.ErrorIs(t, err, shared.ErrInvalidInput, "key %q", key)
		}
	}

	for i := 0; i < 20; i++ {
		fields := addressInput()
		fields[" user_email"] = "bob@shop.test"
		_, err := svc.Create(ctx, alice, persistence.EntityAddress, fields)
		require.ErrorIs(t, err, shared.ErrForbidden)
	}

	_, err = svc.Update(ctx, alice, persistence.EntityAddress, rowID(t, mine), map[string]any{" user_email": "bob@shop.test"})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	rows, err := svc.Filter(ctx, admin, persistence.EntityAddress, shared.NewQuery(map[string]any{"user_email": "bob@shop.test"}))
	require.NoError(t, err)
	assert.Len(t, rows, 1, "nothing was created in bob's account")
}

func TestService_OrdersAreReadOnlyForShoppers(t *testing.T) {
	svc, repos := newService(t)
	ctx := context.Background()
	product := testutil.SeedProduct(t, repos.Products, "Kettle", 900)
	order := testutil.SeedOrder(t, repos.Orders, "alice@shop.test", product)

	_, err := svc.Create(ctx, alice, persistence.EntityOrder, map[string]any{
		"order_number": "FK12345678",
		"status":       "delivered",
		"total":        0,
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.Update(ctx, alice, persistence.EntityOrder, order.ID, map[string]any{
		"status":         "returned",
		"payment_status": "refunded",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, alice, persistence.EntityOrder, order.ID), shared.ErrForbidden)

	rows, err := svc.Filter(ctx, alice, persistence.EntityOrder, shared.NewQuery(nil))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "placed", rows[0]["status"])

	t.Run("admins keep raw access", func(t *testing.T) {
		row, err := svc.Update(ctx, admin, persistence.EntityOrder, order.ID, map[string]any{"status": "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", row["status"])
	})
}

func TestService_ReviewsGoThroughTheCatalog(t *testing.T) {
	svc, repos := newService(t)
	ctx := context.Background()
	product := testutil.SeedProduct(t, repos.Products, "Headphones", 2500)
	before, err := repos.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)

	t.Run("rating outside one to five is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, persistence.EntityReview, map[string]any{
			"product_id": product.ID.String(),
			"rating":     42,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RATING", domainErr.Code)
	})

	t.Run("verification flag and reviewer are not client controlled", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, persistence.EntityReview, map[string]any{
			"product_id":           product.ID.String(),
			"rating":               5,
			"is_verified_purchase": true,
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	row, err := svc.Create(ctx, alice, persistence.EntityReview, map[string]any{
		"product_id": product.ID.String(),
		"rating":     4,
		"title":      "Good bass",
		"user_email": "bob@shop.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@shop.test", row["user_email"])
	assert.EqualValues(t, 4, row["rating"])

	after, err := repos.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, before.RatingCount+1, after.RatingCount, "product rating follows the review")

	_, err = svc.Update(ctx, alice, persistence.EntityReview, rowID(t, row), map[string]any{"rating": 1})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, alice, persistence.EntityReview, rowID(t, row)), shared.ErrForbidden)
}

func TestService_CartLinesSnapshotTheProduct(t *testing.T) {
	svc, repos := newService(t)
	ctx := context.Background()
	product := testutil.SeedProduct(t, repos.Products, "Blender", 300)
	pending := testutil.SeedProduct(t, repos.Products, "Prototype", 100, testutil.Pending())

	_, err := svc.Create(ctx, alice, persistence.EntityCartItem, map[string]any{
		"product_id":    product.ID.String(),
		"product_price": 1,
	})
	assert.ErrorIs(t, err, shared.ErrForbidden, "prices come from the catalog")

	_, err = svc.Create(ctx, alice, persistence.EntityCartItem, map[string]any{"product_id": pending.ID.String()})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Create(ctx, alice, persistence.EntityCartItem, map[string]any{"product_id": product.ID.String(), "quantity": 0})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)

	line, err := svc.Create(ctx, alice, persistence.EntityCartItem, map[string]any{"product_id": product.ID.String(), "quantity": 3})
	require.NoError(t, err)
	assert.Equal(t, "Blender", line["product_name"])
	assert.EqualValues(t, 300, line["product_price"])
	assert.EqualValues(t, 3, line["quantity"])

	id := rowID(t, line)
	_, err = svc.Update(ctx, alice, persistence.EntityCartItem, id, map[string]any{"product_price": 1})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.Update(ctx, alice, persistence.EntityCartItem, id, map[string]any{"quantity": 0})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)

	updated, err := svc.Update(ctx, alice, persistence.EntityCartItem, id, map[string]any{"quantity": 1, "saved_for_later": true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated["quantity"])
	assert.Equal(t, true, updated["saved_for_later"])
}

func TestService_AddressesAreValidated(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	bad := addressInput()
	bad["pincode"] = "12AB"
	_, err := svc.Create(ctx, alice, persistence.EntityAddress, bad)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PINCODE", domainErr.Code)

	first, err := svc.Create(ctx, alice, persistence.EntityAddress, addressInput())
	require.NoError(t, err)
	assert.Equal(t, true, first["is_default"], "first address becomes the default")

	office := addressInput()
	office["type"] = "work"
	office["is_default"] = true
	second, err := svc.Create(ctx, alice, persistence.EntityAddress, office)
	require.NoError(t, err)
	assert.Equal(t, true, second["is_default"])

	rows, err := svc.Filter(ctx, alice, persistence.EntityAddress, shared.NewQuery(map[string]any{"is_default": true}))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second["id"], rows[0]["id"])

	_, err = svc.Update(ctx, alice, persistence.EntityAddress, rowID(t, first), map[string]any{"pincode": "1"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PINCODE", domainErr.Code)
}
