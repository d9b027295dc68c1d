package admin

import (
	"context"
	"testing"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*Service, *testutil.Repositories, *testutil.RecordingPublisher) {
	t.Helper()
	repos := testutil.NewRepositories(t)
	svc := NewService(repos.Users, repos.Products, repos.Orders, repos.Sellers, zap.NewNop())
	pub := testutil.NewRecordingPublisher()
	svc.SetEventPublisher(pub)
	return svc, repos, pub
}

func TestCategoryDisplayName(t *testing.T) {
	tests := map[string]string{
		"electronics":    "Electronics",
		"home-furniture": "Home Furniture",
		"  ":             "Other",
		"":               "Other",
	}
	for in, want := range tests {
		assert.Equal(t, want, CategoryDisplayName(in), in)
	}
}

func TestHistogramsKeepFirstSeenOrder(t *testing.T) {
	products := []*catalog.Product{
		{Category: "mobiles"}, {Category: ""}, {Category: "mobiles"}, {Category: "home-furniture"},
		{Category: "Mobiles"},
	}
	assert.Equal(t, []CategoryCount{
		{Name: "mobiles", Label: "Mobiles", Count: 2},
		{Name: "Other", Label: "Other", Count: 1},
		{Name: "home-furniture", Label: "Home Furniture", Count: 1},
		{Name: "Mobiles", Label: "Mobiles", Count: 1},
	}, CategoryHistogram(products))

	orders := []*trade.Order{
		{Status: trade.OrderStatusShipped}, {Status: trade.OrderStatusPlaced}, {}, {Status: trade.OrderStatusShipped},
	}
	assert.Equal(t, []StatusCount{
		{Name: "shipped", Value: 2},
		{Name: "placed", Value: 1},
		{Name: "unknown", Value: 1},
	}, StatusHistogram(orders))

	assert.Empty(t, CategoryHistogram(nil))
	assert.Empty(t, StatusHistogram(nil))
}

func TestService_Overview(t *testing.T) {
	svc, repos, _ := newService(t)
	ctx := context.Background()

	testutil.SeedUser(t, repos.Users, "admin@shop.test", identity.RoleAdmin)
	testutil.SeedUser(t, repos.Users, "buyer@shop.test", identity.RoleCustomer)
	phone := testutil.SeedProduct(t, repos.Products, "Phone", 10000, testutil.WithCategory("mobiles"))
	testutil.SeedProduct(t, repos.Products, "Robot", 900, testutil.WithCategory("toys"), testutil.Pending())
	a := testutil.SeedOrder(t, repos.Orders, "buyer@shop.test", phone)
	b := testutil.SeedOrder(t, repos.Orders, "buyer@shop.test", phone)

	seller, err := catalog.NewSeller("seller@shop.test", "Gadget Hub", "", "")
	require.NoError(t, err)
	require.NoError(t, repos.Sellers.Save(ctx, seller))

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalUsers)
	assert.Equal(t, 2, overview.TotalProducts)
	assert.Equal(t, 2, overview.TotalOrders)
	assert.Equal(t, 1, overview.TotalSellers)
	assert.True(t, a.Total.Add(b.Total).Equal(overview.Revenue))
	require.Len(t, overview.PendingProducts, 1)
	assert.Equal(t, "Robot", overview.PendingProducts[0].Name)
	assert.ElementsMatch(t, []CategoryCount{
		{Name: "mobiles", Label: "Mobiles", Count: 1},
		{Name: "toys", Label: "Toys", Count: 1},
	}, overview.Categories)
	assert.Equal(t, []StatusCount{{Name: "placed", Value: 2}}, overview.Statuses)
	assert.Equal(t, "Gadget Hub", overview.Sellers[0].StoreName)
}

func TestService_Moderation(t *testing.T) {
	svc, repos, pub := newService(t)
	ctx := context.Background()
	product := testutil.SeedProduct(t, repos.Products, "Drone", 5000, testutil.Pending())

	approved, err := svc.ApproveProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	_, err = svc.ApproveProduct(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	rejected, err := svc.RejectProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)

	_, err = svc.RejectProduct(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.Equal(t, []string{catalog.EventTypeProductApproved, catalog.EventTypeProductRejected}, pub.Types())
}

func TestService_UpdateOrderStatus(t *testing.T) {
	svc, repos, pub := newService(t)
	ctx := context.Background()
	product := testutil.SeedProduct(t, repos.Products, "Chair", 2500)
	order := testutil.SeedOrder(t, repos.Orders, "buyer@shop.test", product)

	tests := []struct {
		name    string
		status  string
		want    string
		errCode string
	}{
		{"forward to shipped", "shipped", "shipped", ""},
		{"no going back", "confirmed", "", "INVALID_STATE"},
		{"unknown status", "lost", "", "INVALID_STATUS"},
		{"delivered", "delivered", "delivered", ""},
		{"delivered orders cannot be cancelled", "cancelled", "", "INVALID_STATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.UpdateOrderStatus(ctx, order.ID, tt.status)
			if tt.errCode != "" {
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.errCode, domainErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Status)
		})
	}

	assert.Equal(t, []string{trade.EventTypeOrderStatusChanged, trade.EventTypeOrderStatusChanged}, pub.Types())

	_, err := svc.UpdateOrderStatus(ctx, uuid.New(), "shipped")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
