package catalog

import (
	"context"
	"testing"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var sellerPrincipal = identity.Principal{UserID: uuid.New(), Email: "seller@shop.test", Role: identity.RoleSeller}

func newSellerService(t *testing.T) (*SellerService, *testutil.Repositories, *testutil.RecordingPublisher) {
	t.Helper()
	repos := testutil.NewRepositories(t)
	svc := NewSellerService(repos.Products, repos.Sellers, repos.Orders, zap.NewNop())
	pub := testutil.NewRecordingPublisher()
	svc.SetEventPublisher(pub)
	return svc, repos, pub
}

func validProductRequest() ProductRequest {
	original := decimal.NewFromInt(1000)
	return ProductRequest{
		Name:          "Wireless Earbuds",
		Description:   "Noise cancelling",
		Price:         decimal.NewFromInt(750),
		OriginalPrice: &original,
		Category:      "electronics",
		Brand:         "Sony",
		Stock:         5,
		Images:        []string{"https://img.test/earbuds.jpg"},
	}
}

func TestSellerService_CreateProduct(t *testing.T) {
	svc, repos, pub := newSellerService(t)
	ctx := context.Background()

	profile, err := catalog.NewSeller("seller@shop.test", "Sound Hub", "9999999999", "")
	require.NoError(t, err)
	require.NoError(t, repos.Sellers.Save(ctx, profile))

	resp, err := svc.CreateProduct(ctx, sellerPrincipal, validProductRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Sound Hub", resp.SellerName)
	assert.Equal(t, 25, resp.DiscountPercent)
	assert.Equal(t, "https://img.test/earbuds.jpg", resp.Thumbnail)
	assert.Equal(t, []string{catalog.EventTypeProductSubmitted}, pub.Types())

	stored, err := repos.Products.FindByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "seller@shop.test", stored.SellerEmail)
}

func TestSellerService_CreateProduct_Validation(t *testing.T) {
	svc, _, pub := newSellerService(t)
	ctx := context.Background()

	req := validProductRequest()
	req.Price = decimal.Zero
	_, err := svc.CreateProduct(ctx, sellerPrincipal, req)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)

	_, err = svc.CreateProduct(ctx, identity.Principal{Email: "c@shop.test", Role: identity.RoleCustomer}, validProductRequest())
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Empty(t, pub.Events())
}

func TestSellerService_UpdateAndDelete(t *testing.T) {
	svc, repos, pub := newSellerService(t)
	ctx := context.Background()

	product := testutil.SeedProduct(t, repos.Products, "Listed", 100, testutil.WithSeller("seller@shop.test", "Acme"))

	t.Run("other sellers cannot edit", func(t *testing.T) {
		other := identity.Principal{Email: "other@shop.test", Role: identity.RoleSeller}
		_, err := svc.UpdateProduct(ctx, other, product.ID, validProductRequest())
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.ErrorIs(t, svc.DeleteProduct(ctx, other, product.ID), shared.ErrForbidden)
	})

	t.Run("edit resets moderation", func(t *testing.T) {
		resp, err := svc.UpdateProduct(ctx, sellerPrincipal, product.ID, validProductRequest())
		require.NoError(t, err)
		assert.Equal(t, "Wireless Earbuds", resp.Name)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("admin may delete", func(t *testing.T) {
		admin := identity.Principal{Email: "admin@shop.test", Role: identity.RoleAdmin}
		require.NoError(t, svc.DeleteProduct(ctx, admin, product.ID))
		_, err := repos.Products.FindByID(ctx, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	assert.Equal(t, []string{catalog.EventTypeProductSubmitted, catalog.EventTypeProductDeleted}, pub.Types())
}

func TestSellerService_Dashboard(t *testing.T) {
	svc, repos, _ := newSellerService(t)
	ctx := context.Background()

	mine := testutil.SeedProduct(t, repos.Products, "Mine", 200, testutil.WithSeller("seller@shop.test", "Acme"))
	testutil.SeedProduct(t, repos.Products, "Mine Pending", 200, testutil.WithSeller("seller@shop.test", "Acme"), testutil.Pending())
	theirs := testutil.SeedProduct(t, repos.Products, "Theirs", 300, testutil.WithSeller("other@shop.test", "Other"))

	withMine := testutil.SeedOrder(t, repos.Orders, "buyer@shop.test", mine, theirs)
	testutil.SeedOrder(t, repos.Orders, "buyer@shop.test", theirs)
	alsoMine := testutil.SeedOrder(t, repos.Orders, "other-buyer@shop.test", mine)

	resp, err := svc.Dashboard(ctx, sellerPrincipal)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalProducts)
	assert.Equal(t, 1, resp.ApprovedProducts)
	assert.Equal(t, 1, resp.PendingProducts)
	require.Equal(t, 2, resp.TotalOrders)
	assert.Equal(t, alsoMine.ID, resp.Orders[0].ID)
	assert.True(t, withMine.Total.Add(alsoMine.Total).Equal(resp.Revenue))
}
