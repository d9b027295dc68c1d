package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/application/account"
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/admin"
	appcatalog "github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/entity"
	appidentity "github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/pages"
	appshopping "github.com/Bhargav2112/Flipcart-Clone/internal/application/shopping"
	apptrade "github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/auth"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/handler"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/Bhargav2112/Flipcart-Clone/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	engine *gin.Engine
	repos  *testutil.Repositories
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	repos := testutil.NewRepositories(t)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "flipcart-test",
	})
	policy := shopping.DefaultDeliveryPolicy()

	authService := appidentity.NewAuthService(repos.Users, jwtService, auth.NewInMemoryTokenBlacklist(), nil)
	addressService := appidentity.NewAddressService(repos.Addresses, repos.Tx, nil)
	productService := appcatalog.NewProductService(repos.Products, repos.Categories, repos.Reviews, repos.Users, repos.Tx, nil)
	sellerService := appcatalog.NewSellerService(repos.Products, repos.Sellers, repos.Orders, nil)
	cartService := appshopping.NewCartService(repos.Carts, repos.Products, repos.Coupons, policy, nil)
	wishlistService := appshopping.NewWishlistService(repos.Wishlists, repos.Carts, repos.Products, repos.Tx, nil)
	checkoutService := apptrade.NewCheckoutService(repos.Carts, repos.Coupons, repos.Addresses, repos.Orders, repos.Tx,
		apptrade.CheckoutOptions{Policy: policy, NumberPrefix: "FK", DeliveryDays: 5}, nil)
	orderService := apptrade.NewOrderService(repos.Orders, nil)
	adminService := admin.NewService(repos.Users, repos.Products, repos.Orders, repos.Sellers, nil)
	pagesService, err := pages.NewService(repos.Contacts, nil)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	RegisterAPI(engine, APIConfig{
		JWT:         middleware.JWTMiddlewareConfig{JWTService: jwtService, Revocations: authService},
		AuthLimiter: middleware.NewRateLimiter(100, time.Minute),
		Metrics:     middleware.NewHTTPMetrics("shop"),
	}, Handlers{
		System:   handler.NewSystemHandler("flipcart-test", "test", nil),
		Auth:     handler.NewAuthHandler(authService),
		Account:  handler.NewAccountHandler(authService, addressService, account.NewDashboardService(authService, orderService, wishlistService)),
		Catalog:  handler.NewCatalogHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Wishlist: handler.NewWishlistHandler(wishlistService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Order:    handler.NewOrderHandler(orderService),
		Seller:   handler.NewSellerHandler(sellerService),
		Admin:    handler.NewAdminHandler(adminService),
		Pages:    handler.NewPagesHandler(pagesService),
		Entity:   handler.NewEntityHandler(entity.NewService(repos.Entities, repos.Products, productService, nil)),
	})

	return &apiFixture{engine: engine, repos: repos}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return testutil.PerformRequest(t, f.engine, method, path, body, headers)
}

// login signs a seeded user in through the API
func (f *apiFixture) login(t *testing.T, email string, role identity.Role) string {
	t.Helper()
	testutil.SeedUser(t, f.repos.Users, email, role)

	w := f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": email, "password": testutil.TestPassword}, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	resp := testutil.DecodeData[appidentity.AuthResponse](t, w)
	return resp.Tokens.AccessToken
}

func TestAPI_HealthAndFallbacks(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/health", nil, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/nowhere", nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, "ERR_ROUTE_NOT_FOUND")

	w = f.do(t, http.MethodDelete, "/api/v1/catalog/home", nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusMethodNotAllowed, "ERR_METHOD_NOT_ALLOWED")

	w = f.do(t, http.MethodGet, "/api/v1/system/info", nil, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
}

func TestAPI_RegisterLoginLogout(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "not-an-email", "full_name": "Asha", "password": "secret123",
	}, "")
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_VALIDATION")
	assert.Contains(t, w.Body.String(), `"field":"email"`)

	w = f.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "Asha@Shop.test", "full_name": "Asha Rao", "password": "secret123",
	}, "")
	testutil.AssertSuccessResponse(t, w, http.StatusCreated)
	registered := testutil.DecodeData[appidentity.AuthResponse](t, w)
	assert.Equal(t, "asha@shop.test", registered.User.Email)
	assert.Equal(t, "customer", registered.User.Role)

	w = f.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "asha@shop.test", "full_name": "Asha Again", "password": "secret123",
	}, "")
	testutil.AssertErrorResponse(t, w, http.StatusConflict, "ERR_ALREADY_EXISTS")

	w = f.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "asha@shop.test", "password": "wrong-pass"}, "")
	testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, "ERR_INVALID_CREDENTIALS")

	token := registered.Tokens.AccessToken
	w = f.do(t, http.MethodGet, "/api/v1/account/me", nil, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodPatch, "/api/v1/account/me", map[string]string{"full_name": "Asha R", "phone": "9876543210"}, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	assert.Equal(t, "9876543210", testutil.DecodeData[appidentity.UserResponse](t, w).Phone)

	w = f.do(t, http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": registered.Tokens.RefreshToken}, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refresh_token": registered.Tokens.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "refresh tokens are single use")

	w = f.do(t, http.MethodPost, "/api/v1/auth/logout", nil, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodGet, "/api/v1/account/me", nil, token)
	testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, "ERR_TOKEN_REVOKED")
}

func TestAPI_AccessControl(t *testing.T) {
	f := newAPIFixture(t)
	customer := f.login(t, "buyer@shop.test", identity.RoleCustomer)
	seller := f.login(t, "seller@shop.test", identity.RoleSeller)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"cart needs a token", http.MethodGet, "/api/v1/cart", "", http.StatusUnauthorized},
		{"review needs a token", http.MethodPost, "/api/v1/catalog/products/" + uuid.NewString() + "/reviews", "", http.StatusUnauthorized},
		{"customer cannot open admin", http.MethodGet, "/api/v1/admin/overview", customer, http.StatusForbidden},
		{"customer cannot open seller", http.MethodGet, "/api/v1/seller/dashboard", customer, http.StatusForbidden},
		{"seller dashboard", http.MethodGet, "/api/v1/seller/dashboard", seller, http.StatusOK},
		{"catalog is public", http.MethodGet, "/api/v1/catalog/home", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, tt.method, tt.path, nil, tt.token)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestAPI_CatalogBrowse(t *testing.T) {
	f := newAPIFixture(t)
	phone := testutil.SeedProduct(t, f.repos.Products, "Galaxy Phone", 300, testutil.WithCategory("mobiles"))
	testutil.SeedProduct(t, f.repos.Products, "Steel Bottle", 900)
	pending := testutil.SeedProduct(t, f.repos.Products, "Hidden Lamp", 100, testutil.Pending())

	w := f.do(t, http.MethodGet, "/api/v1/catalog/products?max_price=500&sort=price_low", nil, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	listing := testutil.DecodeData[appcatalog.ListingResponse](t, w)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, phone.ID, listing.Items[0].ID)

	w = f.do(t, http.MethodGet, "/api/v1/catalog/products?sort=cheapest", nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_VALIDATION")

	w = f.do(t, http.MethodGet, "/api/v1/catalog/products/"+phone.ID.String(), nil, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodGet, "/api/v1/catalog/products/"+pending.ID.String(), nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, "ERR_NOT_FOUND")

	w = f.do(t, http.MethodGet, "/api/v1/catalog/products/not-a-uuid", nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_INVALID_ID")

	w = f.do(t, http.MethodGet, "/api/v1/catalog/brands?category=mobiles", nil, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	assert.Equal(t, "mobiles", testutil.DecodeData[appcatalog.BrandsResponse](t, w).Category)
}

func TestAPI_CartToOrder(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "buyer@shop.test", identity.RoleCustomer)
	product := testutil.SeedProduct(t, f.repos.Products, "Galaxy Phone", 300)

	w := f.do(t, http.MethodPost, "/api/v1/checkout/orders", map[string]string{
		"address_id": uuid.NewString(), "payment_method": "cod",
	}, token)
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "ERR_ADDRESS_REQUIRED")

	w = f.do(t, http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": product.ID.String()}, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	cart := testutil.DecodeData[appshopping.CartResponse](t, w)
	require.Len(t, cart.Items, 1)
	lineID := cart.Items[0].ID

	w = f.do(t, http.MethodPatch, "/api/v1/cart/items/"+lineID.String(), map[string]int{"delta": 1}, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	cart = testutil.DecodeData[appshopping.CartResponse](t, w)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	w = f.do(t, http.MethodPost, "/api/v1/account/addresses", map[string]any{
		"name": "Buyer", "phone": "9876543210", "address_line1": "12 MG Road",
		"city": "Bengaluru", "state": "Karnataka", "pincode": "560001",
	}, token)
	testutil.AssertSuccessResponse(t, w, http.StatusCreated)
	address := testutil.DecodeData[appidentity.AddressResponse](t, w)
	assert.True(t, address.IsDefault, "first address becomes the default")

	w = f.do(t, http.MethodGet, "/api/v1/checkout", nil, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodPost, "/api/v1/checkout/orders", map[string]string{
		"address_id": address.ID.String(), "payment_method": "cod",
	}, token)
	testutil.AssertSuccessResponse(t, w, http.StatusCreated)
	order := testutil.DecodeData[apptrade.OrderResponse](t, w)
	assert.Equal(t, "placed", order.Status)
	assert.Equal(t, 2, order.ItemCount)

	w = f.do(t, http.MethodGet, "/api/v1/cart", nil, token)
	assert.Empty(t, testutil.DecodeData[appshopping.CartResponse](t, w).Items, "checkout empties the cart")

	w = f.do(t, http.MethodPost, "/api/v1/checkout/orders", map[string]string{
		"address_id": address.ID.String(), "payment_method": "cod",
	}, token)
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "ERR_EMPTY_CART")

	w = f.do(t, http.MethodGet, "/api/v1/orders/"+order.ID.String()+"/tracking", nil, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	other := f.login(t, "other@shop.test", identity.RoleCustomer)
	w = f.do(t, http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil, other)
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, "ERR_NOT_FOUND")

	w = f.do(t, http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/return", nil, token)
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "ERR_INVALID_STATE")

	w = f.do(t, http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/cancel", nil, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	assert.Equal(t, "cancelled", testutil.DecodeData[apptrade.OrderResponse](t, w).Status)
}

func TestAPI_WishlistToggle(t *testing.T) {
	f := newAPIFixture(t)
	token := f.login(t, "buyer@shop.test", identity.RoleCustomer)
	product := testutil.SeedProduct(t, f.repos.Products, "Galaxy Phone", 300)

	w := f.do(t, http.MethodPost, "/api/v1/wishlist/toggle", map[string]string{"product_id": product.ID.String()}, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	toggled := testutil.DecodeData[appshopping.ToggleWishlistResponse](t, w)
	require.True(t, toggled.InWishlist)
	require.NotNil(t, toggled.Item)

	w = f.do(t, http.MethodPost, "/api/v1/wishlist/"+toggled.Item.ID.String()+"/move-to-cart", nil, token)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodGet, "/api/v1/wishlist", nil, token)
	assert.Empty(t, testutil.DecodeData[[]appshopping.WishlistItemResponse](t, w))
}

func TestAPI_AdminModeration(t *testing.T) {
	f := newAPIFixture(t)
	adminToken := f.login(t, "admin@shop.test", identity.RoleAdmin)
	pending := testutil.SeedProduct(t, f.repos.Products, "Hidden Lamp", 100, testutil.Pending())

	w := f.do(t, http.MethodGet, "/api/v1/admin/overview", nil, adminToken)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	overview := testutil.DecodeData[admin.OverviewResponse](t, w)
	assert.Len(t, overview.PendingProducts, 1)

	w = f.do(t, http.MethodPost, "/api/v1/admin/products/"+pending.ID.String()+"/approve", nil, adminToken)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodGet, "/api/v1/catalog/products/"+pending.ID.String(), nil, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	order := testutil.SeedOrder(t, f.repos.Orders, "buyer@shop.test", pending)
	w = f.do(t, http.MethodPut, "/api/v1/admin/orders/"+order.ID.String()+"/status", map[string]string{"status": "shipped"}, adminToken)
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodPut, "/api/v1/admin/orders/"+order.ID.String()+"/status", map[string]string{"status": "placed"}, adminToken)
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "ERR_INVALID_STATE")
}

func TestAPI_Entities(t *testing.T) {
	f := newAPIFixture(t)
	approved := testutil.SeedProduct(t, f.repos.Products, "Galaxy Phone", 300)
	testutil.SeedProduct(t, f.repos.Products, "Hidden Lamp", 100, testutil.Pending())

	w := f.do(t, http.MethodGet, "/api/v1/entities/Product?order_by=-created_at&limit=10", nil, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	rows := testutil.DecodeData[[]map[string]any](t, w)
	require.Len(t, rows, 1, "anonymous readers only see approved products")
	assert.Equal(t, approved.ID.String(), rows[0]["id"])

	w = f.do(t, http.MethodGet, "/api/v1/entities/Product?criteria.name=Galaxy%20Phone", nil, "")
	assert.Len(t, testutil.DecodeData[[]map[string]any](t, w), 1)

	w = f.do(t, http.MethodGet, "/api/v1/entities/Product?limit=many", nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")

	w = f.do(t, http.MethodGet, "/api/v1/entities/Spaceship", nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_INVALID_ENTITY")

	w = f.do(t, http.MethodGet, "/api/v1/entities/Order", nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, "ERR_UNAUTHORIZED")

	t.Run("shoppers cannot widen or write around the owner filter", func(t *testing.T) {
		token := f.login(t, "asha@shop.test", identity.RoleCustomer)

		w := f.do(t, http.MethodGet, "/api/v1/entities/Address?criteria.%20user_email=ravi@shop.test", nil, token)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")

		w = f.do(t, http.MethodPost, "/api/v1/entities/Order", map[string]any{
			"order_number": "FK00000001", "status": "delivered", "total": 0,
		}, token)
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, "ERR_FORBIDDEN")

		w = f.do(t, http.MethodPost, "/api/v1/entities/CartItem", map[string]any{
			"product_id": approved.ID.String(), "product_price": 1,
		}, token)
		testutil.AssertErrorResponse(t, w, http.StatusForbidden, "ERR_FORBIDDEN")

		w = f.do(t, http.MethodPost, "/api/v1/entities/CartItem", map[string]any{
			"product_id": approved.ID.String(), "quantity": 2,
		}, token)
		testutil.AssertSuccessResponse(t, w, http.StatusCreated)
		line := testutil.DecodeData[map[string]any](t, w)
		assert.Equal(t, "asha@shop.test", line["user_email"])
		assert.Equal(t, "Galaxy Phone", line["product_name"])
		assert.EqualValues(t, 2, line["quantity"])
	})
}

func TestAPI_Pages(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/pages/help?search=refund", nil, "")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	w = f.do(t, http.MethodGet, "/api/v1/pages/careers", nil, "")
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, "ERR_NOT_FOUND")

	w = f.do(t, http.MethodPost, "/api/v1/pages/contact", map[string]string{
		"name": "Asha", "email": "asha@shop.test", "subject": "Late delivery", "message": "Where is my order?",
	}, "")
	testutil.AssertSuccessResponse(t, w, http.StatusCreated)
}
