package router

import (
	"net/http"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/dto"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/handler"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers are the storefront handlers mounted under /api/v1
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Account  *handler.AccountHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Seller   *handler.SellerHandler
	Admin    *handler.AdminHandler
	Pages    *handler.PagesHandler
	Entity   *handler.EntityHandler
}

// APIConfig carries the cross-cutting pieces the route table needs
type APIConfig struct {
	JWT middleware.JWTMiddlewareConfig
	// AuthLimiter throttles sign-in, sign-up and the contact form; nil disables it
	AuthLimiter *middleware.RateLimiter
	// Metrics serves /metrics when set
	Metrics *middleware.HTTPMetrics
}

// RegisterAPI mounts /health, /metrics and the versioned storefront API
func RegisterAPI(engine *gin.Engine, cfg APIConfig, h Handlers) {
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeMethodNotAllowed, "Method not allowed", middleware.GetRequestID(c)))
	})

	engine.GET("/health", h.System.Health)
	if cfg.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	optionalCfg := cfg.JWT
	optionalCfg.Optional = true
	requiredCfg := cfg.JWT
	requiredCfg.Optional = false

	optionalAuth := middleware.JWTAuth(optionalCfg)
	requiredAuth := middleware.JWTAuth(requiredCfg)
	throttle := func(c *gin.Context) { c.Next() }
	if cfg.AuthLimiter != nil {
		throttle = middleware.RateLimit(cfg.AuthLimiter)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.Info)

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", throttle, h.Auth.Register)
	authRoutes.POST("/login", throttle, h.Auth.Login)
	authRoutes.POST("/refresh", throttle, h.Auth.Refresh)
	authRoutes.POST("/logout", requiredAuth, h.Auth.Logout)

	catalogRoutes := NewDomainGroup("catalog", "/catalog").Use(optionalAuth)
	catalogRoutes.GET("/home", h.Catalog.Home)
	catalogRoutes.GET("/products", h.Catalog.Browse)
	catalogRoutes.GET("/products/:id", h.Catalog.Detail)
	catalogRoutes.POST("/products/:id/reviews", middleware.RequireAuth(), h.Catalog.AddReview)
	catalogRoutes.GET("/categories", h.Catalog.Categories)
	catalogRoutes.GET("/brands", h.Catalog.Brands)

	pagesRoutes := NewDomainGroup("pages", "/pages")
	pagesRoutes.GET("/:slug", h.Pages.Page)
	pagesRoutes.POST("/contact", throttle, h.Pages.Contact)

	accountRoutes := NewDomainGroup("account", "/account").Use(requiredAuth)
	accountRoutes.GET("/me", h.Account.Me)
	accountRoutes.PATCH("/me", h.Account.UpdateProfile)
	accountRoutes.GET("/dashboard", h.Account.Dashboard)
	accountRoutes.GET("/addresses", h.Account.ListAddresses)
	accountRoutes.POST("/addresses", h.Account.CreateAddress)
	accountRoutes.DELETE("/addresses/:id", h.Account.DeleteAddress)
	accountRoutes.POST("/addresses/:id/default", h.Account.SetDefaultAddress)

	cartRoutes := NewDomainGroup("cart", "/cart").Use(requiredAuth)
	cartRoutes.GET("", h.Cart.View)
	cartRoutes.POST("/items", h.Cart.Add)
	cartRoutes.PATCH("/items/:id", h.Cart.ChangeQuantity)
	cartRoutes.DELETE("/items/:id", h.Cart.Remove)
	cartRoutes.POST("/items/:id/save-for-later", h.Cart.SaveForLater)
	cartRoutes.POST("/items/:id/move-to-cart", h.Cart.MoveToCart)
	cartRoutes.POST("/coupon", h.Cart.ApplyCoupon)

	wishlistRoutes := NewDomainGroup("wishlist", "/wishlist").Use(requiredAuth)
	wishlistRoutes.GET("", h.Wishlist.List)
	wishlistRoutes.POST("/toggle", h.Wishlist.Toggle)
	wishlistRoutes.DELETE("/:id", h.Wishlist.Remove)
	wishlistRoutes.POST("/:id/move-to-cart", h.Wishlist.MoveToCart)

	checkoutRoutes := NewDomainGroup("checkout", "/checkout").Use(requiredAuth)
	checkoutRoutes.GET("", h.Checkout.Summary)
	checkoutRoutes.POST("/orders", h.Checkout.PlaceOrder)

	orderRoutes := NewDomainGroup("orders", "/orders").Use(requiredAuth)
	orderRoutes.GET("", h.Order.List)
	orderRoutes.GET("/:id", h.Order.Get)
	orderRoutes.GET("/:id/tracking", h.Order.Track)
	orderRoutes.POST("/:id/cancel", h.Order.Cancel)
	orderRoutes.POST("/:id/return", h.Order.RequestReturn)

	sellerRoutes := NewDomainGroup("seller", "/seller").Use(requiredAuth, middleware.RequireRole(identity.RoleSeller))
	sellerRoutes.GET("/dashboard", h.Seller.Dashboard)
	sellerRoutes.POST("/products", h.Seller.CreateProduct)
	sellerRoutes.PUT("/products/:id", h.Seller.UpdateProduct)
	sellerRoutes.DELETE("/products/:id", h.Seller.DeleteProduct)

	adminRoutes := NewDomainGroup("admin", "/admin").Use(requiredAuth, middleware.RequireRole(identity.RoleAdmin))
	adminRoutes.GET("/overview", h.Admin.Overview)
	adminRoutes.POST("/products/:id/approve", h.Admin.ApproveProduct)
	adminRoutes.POST("/products/:id/reject", h.Admin.RejectProduct)
	adminRoutes.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)

	// access rules per entity live in the entity service
	entityRoutes := NewDomainGroup("entities", "/entities").Use(optionalAuth)
	entityRoutes.GET("/:entity", h.Entity.Filter)
	entityRoutes.POST("/:entity", h.Entity.Create)
	entityRoutes.PATCH("/:entity/:id", h.Entity.Update)
	entityRoutes.DELETE("/:entity/:id", h.Entity.Delete)

	r.Register(systemRoutes).
		Register(authRoutes).
		Register(catalogRoutes).
		Register(pagesRoutes).
		Register(accountRoutes).
		Register(cartRoutes).
		Register(wishlistRoutes).
		Register(checkoutRoutes).
		Register(orderRoutes).
		Register(sellerRoutes).
		Register(adminRoutes).
		Register(entityRoutes)
	r.Setup()
}
