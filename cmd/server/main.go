package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/application/account"
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/admin"
	catalogapp "github.com/Bhargav2112/Flipcart-Clone/internal/application/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/entity"
	identityapp "github.com/Bhargav2112/Flipcart-Clone/internal/application/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/application/pages"
	shoppingapp "github.com/Bhargav2112/Flipcart-Clone/internal/application/shopping"
	tradeapp "github.com/Bhargav2112/Flipcart-Clone/internal/application/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/auth"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/cache"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/event"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/logger"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/scheduler"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/handler"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Flipcart Storefront API
//	@version		1.0
//	@description	Storefront backend: catalog, cart, checkout, orders and the seller and admin consoles.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}

	// Bootstrap logger for telemetry setup; replaced once the log bridge exists
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	var bridges []zapcore.Core
	if tel.Logs.IsEnabled() {
		bridges = append(bridges, tel.Logs.Core(logger.ParseLevel(cfg.Log.Level)))
	}
	log, err := logger.New(logCfg, bridges...)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Flipcart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			DBSystem:        dbSystem(cfg.Database.Driver),
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL && !cfg.IsProduction(),
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	txManager := persistence.NewGormTxManager(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	contactRepo := persistence.NewGormContactMessageRepository(db.DB)
	entityStore := persistence.NewEntityStore(db.DB)

	// Cache store: redis when enabled, in-memory otherwise
	store, redisClient, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize cache store", zap.Error(err))
	}

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient, cfg.Cache.KeyPrefix)
	}

	// Event bus
	bus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch(4, 256))
	if tel.Meter != nil {
		shopMetrics, err := telemetry.NewShopMetrics(tel.Meter.Meter("flipcart"))
		if err != nil {
			log.Fatal("Failed to create shop metrics", zap.Error(err))
		}
		bus.Subscribe(shopMetrics)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	policy := shopping.DeliveryPolicy{
		FreeAbove: decimal.NewFromInt(cfg.Shop.FreeDeliveryAbove),
		Fee:       decimal.NewFromInt(cfg.Shop.DeliveryFee),
	}

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	addressService := identityapp.NewAddressService(addressRepo, txManager, log)

	productService := catalogapp.NewProductService(productRepo, categoryRepo, reviewRepo, userRepo, txManager, log)
	productService.SetPageSize(cfg.Shop.PageSize)

	sellerService := catalogapp.NewSellerService(productRepo, sellerRepo, orderRepo, log)
	sellerService.SetEventPublisher(bus)

	cartService := shoppingapp.NewCartService(cartRepo, productRepo, couponRepo, policy, log)
	wishlistService := shoppingapp.NewWishlistService(wishlistRepo, cartRepo, productRepo, txManager, log)

	checkoutService := tradeapp.NewCheckoutService(cartRepo, couponRepo, addressRepo, orderRepo, txManager,
		tradeapp.CheckoutOptions{
			Policy:       policy,
			NumberPrefix: cfg.Shop.OrderNumberPrefix,
			DeliveryDays: cfg.Shop.DeliveryDays,
		}, log)
	checkoutService.SetEventPublisher(bus)

	orderService := tradeapp.NewOrderService(orderRepo, log)
	orderService.SetEventPublisher(bus)

	adminService := admin.NewService(userRepo, productRepo, orderRepo, sellerRepo, log)
	adminService.SetEventPublisher(bus)

	pagesService, err := pages.NewService(contactRepo, log)
	if err != nil {
		log.Fatal("Failed to load content pages", zap.Error(err))
	}
	entityService := entity.NewService(entityStore, productRepo, productService, log)
	dashboardService := account.NewDashboardService(authService, orderService, wishlistService)

	// Approved-catalog snapshot, dropped on moderation events and rebuilt on a schedule
	var jobs *scheduler.Scheduler
	if cfg.Cache.Enabled {
		catalogCache := cache.NewCatalogCache(store, cfg.Cache.KeyPrefix, cfg.Cache.TTL, log)
		productService.SetCatalogSnapshot(catalogCache)
		bus.Subscribe(event.NewCatalogInvalidationHandler(catalogCache, log))

		if cfg.Scheduler.Enabled {
			jobs = scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, log)
			if err := jobs.Register(cfg.Scheduler.CacheWarmSchedule,
				scheduler.NewCacheWarmJob(catalogCache, productService.LoadApproved, log)); err != nil {
				log.Fatal("Failed to schedule cache warmer", zap.Error(err))
			}
		}
	}

	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	if jobs != nil {
		jobs.Start()
		if err := jobs.RunNow(ctx, scheduler.CacheWarmJobName); err != nil {
			log.Warn("Initial catalog cache warm failed", zap.Error(err))
		}
	}

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	httpMetrics := middleware.NewHTTPMetrics("flipcart")
	serverCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
			SkipPaths:   []string{"/health", "/metrics"},
		}),
		httpMetrics.Middleware("/metrics", "/health"),
		middleware.Profiling(tel.Profiler.IsEnabled()),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiter.StartCleanup(serverCtx)
		engine.Use(middleware.RateLimit(limiter))
	}

	var authLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authLimiter.StartCleanup(serverCtx)
	}

	router.RegisterAPI(engine, router.APIConfig{
		JWT: middleware.JWTMiddlewareConfig{
			JWTService:  jwtService,
			Revocations: authService,
			Logger:      log,
		},
		AuthLimiter: authLimiter,
		Metrics:     httpMetrics,
	}, router.Handlers{
		System:   handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, db),
		Auth:     handler.NewAuthHandler(authService),
		Account:  handler.NewAccountHandler(authService, addressService, dashboardService),
		Catalog:  handler.NewCatalogHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Wishlist: handler.NewWishlistHandler(wishlistService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Order:    handler.NewOrderHandler(orderService),
		Seller:   handler.NewSellerHandler(sellerService),
		Admin:    handler.NewAdminHandler(adminService),
		Pages:    handler.NewPagesHandler(pagesService),
		Entity:   handler.NewEntityHandler(entityService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stopBackground()
	if jobs != nil {
		if err := jobs.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler did not stop cleanly", zap.Error(err))
		}
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus did not drain", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing cache store", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// dbSystem names the database for the db.system span attribute
func dbSystem(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgresql"
}
