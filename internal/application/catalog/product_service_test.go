package catalog

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/cache"
	"github.com/Bhargav2112/Flipcart-Clone/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProductService(t *testing.T) (*ProductService, *testutil.Repositories) {
	t.Helper()
	repos := testutil.NewRepositories(t)
	svc := NewProductService(repos.Products, repos.Categories, repos.Reviews, repos.Users, repos.Tx, zap.NewNop())
	return svc, repos
}

func TestProductService_Browse(t *testing.T) {
	svc, repos := newProductService(t)
	ctx := context.Background()

	testutil.SeedProduct(t, repos.Products, "Galaxy Phone", 300, testutil.WithCategory("mobiles"))
	testutil.SeedProduct(t, repos.Products, "Cheap Cable", 50)
	testutil.SeedProduct(t, repos.Products, "Pricey TV", 900)
	testutil.SeedProduct(t, repos.Products, "Hidden Draft", 10, testutil.Pending())

	t.Run("price low first, pending hidden", func(t *testing.T) {
		resp, err := svc.Browse(ctx, BrowseRequest{Sort: "price_low"})
		require.NoError(t, err)
		require.Len(t, resp.Items, 3)
		assert.Equal(t, "Cheap Cable", resp.Items[0].Name)
		assert.Equal(t, "Pricey TV", resp.Items[2].Name)
		assert.False(t, resp.HasMore)
	})

	t.Run("category filter", func(t *testing.T) {
		resp, err := svc.Browse(ctx, BrowseRequest{Categories: []string{"mobiles"}})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Galaxy Phone", resp.Items[0].Name)
	})

	t.Run("price range and search", func(t *testing.T) {
		maxPrice := 400.0
		resp, err := svc.Browse(ctx, BrowseRequest{Search: "PHONE", MaxPrice: &maxPrice})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 50, resp.Items[0].DiscountPercent)
	})

	t.Run("load more windows", func(t *testing.T) {
		svc.SetPageSize(2)
		defer svc.SetPageSize(catalog.DefaultPageSize)

		first, err := svc.Browse(ctx, BrowseRequest{Sort: "price_high"})
		require.NoError(t, err)
		assert.Len(t, first.Items, 2)
		assert.True(t, first.HasMore)
		assert.Equal(t, 3, first.Total)

		second, err := svc.Browse(ctx, BrowseRequest{Sort: "price_high", Page: 2})
		require.NoError(t, err)
		assert.Len(t, second.Items, 3)
		assert.False(t, second.HasMore)
	})
}

func TestProductService_BrowseUsesCatalogSnapshot(t *testing.T) {
	svc, repos := newProductService(t)
	ctx := context.Background()

	store := cache.NewInMemoryStore(time.Minute)
	defer store.Close()
	snapshot := cache.NewCatalogCache(store, "test:", time.Minute, zap.NewNop())

	var loads atomic.Int32
	svc.SetCatalogSnapshot(snapshotFunc(func(ctx context.Context, load cache.ProductLoader) ([]*catalog.Product, error) {
		return snapshot.ApprovedProducts(ctx, func(ctx context.Context) ([]*catalog.Product, error) {
			loads.Add(1)
			return load(ctx)
		})
	}))

	testutil.SeedProduct(t, repos.Products, "Cached", 100)

	resp, err := svc.Browse(ctx, BrowseRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	// rows added after the snapshot was taken stay invisible until invalidation
	testutil.SeedProduct(t, repos.Products, "Late", 100)
	resp, err = svc.Browse(ctx, BrowseRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)

	require.NoError(t, snapshot.Invalidate(ctx))
	resp, err = svc.Browse(ctx, BrowseRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int32(2), loads.Load())
}

type snapshotFunc func(ctx context.Context, load cache.ProductLoader) ([]*catalog.Product, error)

func (f snapshotFunc) ApprovedProducts(ctx context.Context, load cache.ProductLoader) ([]*catalog.Product, error) {
	return f(ctx, load)
}

func TestProductService_Home(t *testing.T) {
	svc, repos := newProductService(t)
	ctx := context.Background()

	testutil.SeedProduct(t, repos.Products, "Deal One", 100, testutil.Deal())
	testutil.SeedProduct(t, repos.Products, "Plain", 100)
	testutil.SeedProduct(t, repos.Products, "Draft Deal", 100, testutil.Deal(), testutil.Pending())

	resp, err := svc.Home(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Deals, 1)
	assert.Equal(t, "Deal One", resp.Deals[0].Name)
	assert.Empty(t, resp.Featured)
	assert.Len(t, resp.Categories, len(catalog.DefaultCategories))
	assert.Equal(t, "mobiles", resp.Categories[0].Slug)
}

func TestProductService_Categories(t *testing.T) {
	svc, repos := newProductService(t)
	ctx := context.Background()

	second, err := catalog.NewCategory("Toys", "toys", "", 2)
	require.NoError(t, err)
	first, err := catalog.NewCategory("Beauty", "beauty", "", 1)
	require.NoError(t, err)
	require.NoError(t, repos.Categories.Save(ctx, second))
	require.NoError(t, repos.Categories.Save(ctx, first))

	out, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "beauty", out[0].Slug)
	assert.Equal(t, "toys", out[1].Slug)
}

func TestProductService_Detail(t *testing.T) {
	svc, repos := newProductService(t)
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	main := testutil.SeedProduct(t, repos.Products, "Main", 500, testutil.WithCategory("fashion"))
	best := testutil.SeedProduct(t, repos.Products, "Best", 100, testutil.WithCategory("fashion"), testutil.WithRating(4.9, 10))
	testutil.SeedProduct(t, repos.Products, "Okay", 100, testutil.WithCategory("fashion"), testutil.WithRating(3.1, 10))
	testutil.SeedProduct(t, repos.Products, "Other Category", 100, testutil.WithCategory("toys"))
	draft := testutil.SeedProduct(t, repos.Products, "Draft", 100, testutil.Pending(), testutil.WithSeller("owner@shop.test", "Owner"))

	review, err := catalog.NewReview(main.ID, "buyer@shop.test", "Buyer", 4, "Nice", "Fits well")
	require.NoError(t, err)
	require.NoError(t, repos.Reviews.Save(ctx, review))

	t.Run("approved product page", func(t *testing.T) {
		resp, err := svc.Detail(ctx, identity.Principal{}, main.ID)
		require.NoError(t, err)
		assert.Equal(t, "Main", resp.Product.Name)
		assert.Equal(t, 50, resp.DiscountPercent)
		assert.Equal(t, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), resp.EstimatedDelivery)
		require.Len(t, resp.Reviews, 1)
		assert.Equal(t, "Nice", resp.Reviews[0].Title)
		require.Len(t, resp.Related, 2)
		assert.Equal(t, best.ID, resp.Related[0].ID)
	})

	t.Run("pending product hidden from shoppers", func(t *testing.T) {
		_, err := svc.Detail(ctx, identity.Principal{Email: "someone@shop.test"}, draft.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("pending product visible to its seller", func(t *testing.T) {
		resp, err := svc.Detail(ctx, identity.Principal{Email: "owner@shop.test", Role: identity.RoleSeller}, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Product.Status)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Detail(ctx, identity.Principal{}, testutil.NewTestUUID("missing"))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_AddReview(t *testing.T) {
	svc, repos := newProductService(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, repos.Users, "buyer@shop.test", identity.RoleCustomer)
	product := testutil.SeedProduct(t, repos.Products, "Reviewed", 100, testutil.WithRating(4, 1))

	resp, err := svc.AddReview(ctx, testutil.Principal(user), product.ID, CreateReviewRequest{Title: "Great"})
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultReviewRating, resp.Rating)
	assert.Equal(t, "Test User", resp.UserName)

	updated, err := repos.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.RatingCount)
	assert.InDelta(t, 4.5, updated.Rating, 0.001)

	_, err = svc.AddReview(ctx, identity.Principal{}, product.ID, CreateReviewRequest{})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	_, err = svc.AddReview(ctx, testutil.Principal(user), product.ID, CreateReviewRequest{Rating: 9})
	assert.Error(t, err)

	draft := testutil.SeedProduct(t, repos.Products, "Draft", 100, testutil.Pending())
	_, err = svc.AddReview(ctx, testutil.Principal(user), draft.ID, CreateReviewRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Brands(t *testing.T) {
	svc, _ := newProductService(t)

	all := svc.Brands(context.Background(), "")
	assert.Equal(t, catalog.FilterBrands, all.Brands)
	assert.Empty(t, all.Category)

	mobiles := svc.Brands(context.Background(), " Mobiles ")
	assert.Equal(t, "mobiles", mobiles.Category)
	assert.Contains(t, mobiles.Brands, "OnePlus")
}
