package account

import (
	"context"
	"testing"
	"time"

	appidentity "github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	appshopping "github.com/Bhargav2112/Flipcart-Clone/internal/application/shopping"
	apptrade "github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/auth"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/Bhargav2112/Flipcart-Clone/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Dashboard(t *testing.T) {
	repos := testutil.NewRepositories(t)
	ctx := context.Background()

	jwtService := auth.NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", Issuer: "flipcart-test", AccessTokenExpiration: time.Minute})
	wishlist := appshopping.NewWishlistService(repos.Wishlists, repos.Carts, repos.Products, repos.Tx, nil)
	svc := NewDashboardService(
		appidentity.NewAuthService(repos.Users, jwtService, nil, nil),
		apptrade.NewOrderService(repos.Orders, nil),
		wishlist,
	)

	user := testutil.SeedUser(t, repos.Users, "dash@shop.test", identity.RoleCustomer)
	product := testutil.SeedProduct(t, repos.Products, "Tee", 499)
	for i := 0; i < apptrade.RecentOrderLimit+1; i++ {
		testutil.SeedOrder(t, repos.Orders, user.Email, product)
	}
	_, err := wishlist.Toggle(ctx, user.Email, product.ID)
	require.NoError(t, err)

	resp, err := svc.Dashboard(ctx, testutil.Principal(user))
	require.NoError(t, err)
	assert.Equal(t, "dash@shop.test", resp.Profile.Email)
	assert.Len(t, resp.RecentOrders, apptrade.RecentOrderLimit)
	assert.Equal(t, int64(1), resp.WishlistCount)

	_, err = svc.Dashboard(ctx, identity.Principal{UserID: testutil.NewTestUUID("ghost"), Email: "ghost@shop.test"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
