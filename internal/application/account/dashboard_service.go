package account

import (
	"context"

	appidentity "github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	appshopping "github.com/Bhargav2112/Flipcart-Clone/internal/application/shopping"
	apptrade "github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"golang.org/x/sync/errgroup"
)

// DashboardResponse feeds the account dashboard
type DashboardResponse struct {
	Profile       appidentity.UserResponse `json:"profile"`
	RecentOrders  []apptrade.OrderResponse `json:"recent_orders"`
	WishlistCount int64                    `json:"wishlist_count"`
}

// DashboardService assembles the account dashboard from the profile, order and wishlist services
type DashboardService struct {
	auth     *appidentity.AuthService
	orders   *apptrade.OrderService
	wishlist *appshopping.WishlistService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(auth *appidentity.AuthService, orders *apptrade.OrderService, wishlist *appshopping.WishlistService) *DashboardService {
	return &DashboardService{auth: auth, orders: orders, wishlist: wishlist}
}

// Dashboard loads the three panels concurrently
func (s *DashboardService) Dashboard(ctx context.Context, user identity.Principal) (resp *DashboardResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "account", "Dashboard")
	defer func() { telemetry.EndSpan(span, err) }()

	resp = &DashboardResponse{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := s.auth.Me(gctx, user.UserID)
		if err != nil {
			return err
		}
		resp.Profile = *profile
		return nil
	})
	g.Go(func() error {
		orders, err := s.orders.Recent(gctx, user.Email)
		resp.RecentOrders = orders
		return err
	})
	g.Go(func() error {
		count, err := s.wishlist.Count(gctx, user.Email)
		resp.WishlistCount = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}
