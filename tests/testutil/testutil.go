// Package testutil provides common test utilities for the storefront backend.
// It contains helpers for setting up databases, seeding fixtures and
// performing common test assertions.
package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/catalog"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shopping"
	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/trade"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB wraps a GORM database with sqlmock for testing.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a postgres-dialect GORM handle backed by sqlmock.
// The connection is closed when the test ends.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err, "Failed to open GORM connection")

	t.Cleanup(func() { _ = mockDB.Close() })
	return &MockDB{DB: gormDB, Mock: mock, SqlDB: mockDB}
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}

// NewSQLiteDB opens a migrated in-memory SQLite database
func NewSQLiteDB(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, nil)
	require.NoError(t, err, "Failed to open sqlite")
	require.NoError(t, db.AutoMigrate(), "Failed to migrate sqlite")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Repositories bundles every gorm repository over one database
type Repositories struct {
	DB         *gorm.DB
	Tx         *persistence.GormTxManager
	Products   *persistence.GormProductRepository
	Categories *persistence.GormCategoryRepository
	Reviews    *persistence.GormReviewRepository
	Sellers    *persistence.GormSellerRepository
	Carts      *persistence.GormCartRepository
	Wishlists  *persistence.GormWishlistRepository
	Coupons    *persistence.GormCouponRepository
	Orders     *persistence.GormOrderRepository
	Users      *persistence.GormUserRepository
	Addresses  *persistence.GormAddressRepository
	Contacts   *persistence.GormContactMessageRepository
	Entities   *persistence.EntityStore
}

// NewRepositories opens a fresh SQLite database and wires every repository
func NewRepositories(t *testing.T) *Repositories {
	t.Helper()

	db := NewSQLiteDB(t).DB
	return &Repositories{
		DB:         db,
		Tx:         persistence.NewGormTxManager(db),
		Products:   persistence.NewGormProductRepository(db),
		Categories: persistence.NewGormCategoryRepository(db),
		Reviews:    persistence.NewGormReviewRepository(db),
		Sellers:    persistence.NewGormSellerRepository(db),
		Carts:      persistence.NewGormCartRepository(db),
		Wishlists:  persistence.NewGormWishlistRepository(db),
		Coupons:    persistence.NewGormCouponRepository(db),
		Orders:     persistence.NewGormOrderRepository(db),
		Users:      persistence.NewGormUserRepository(db),
		Addresses:  persistence.NewGormAddressRepository(db),
		Contacts:   persistence.NewGormContactMessageRepository(db),
		Entities:   persistence.NewEntityStore(db),
	}
}

// ProductOption customizes a fixture product before it is saved
type ProductOption func(p *catalog.Product)

// WithSeller sets the owning seller
func WithSeller(email, name string) ProductOption {
	return func(p *catalog.Product) {
		p.SellerEmail = email
		p.SellerName = name
	}
}

// WithCategory sets the category slug
func WithCategory(slug string) ProductOption {
	return func(p *catalog.Product) { p.Category = slug }
}

// WithRating sets the average rating and count
func WithRating(rating float64, count int) ProductOption {
	return func(p *catalog.Product) {
		p.Rating = rating
		p.RatingCount = count
	}
}

// Pending leaves the product in moderation
func Pending() ProductOption {
	return func(p *catalog.Product) { p.Status = catalog.ProductStatusPending }
}

// Deal flags the product as a deal
func Deal() ProductOption {
	return func(p *catalog.Product) { p.IsDeal = true }
}

// SeedProduct saves an approved product priced at price with a 2x original price
func SeedProduct(t *testing.T, repo catalog.ProductRepository, name string, price int64, opts ...ProductOption) *catalog.Product {
	t.Helper()

	p, err := catalog.NewProduct("seller@shop.test", "Acme Store", catalog.ProductInput{
		Name:          name,
		Description:   name + " description",
		Price:         decimal.NewFromInt(price),
		OriginalPrice: decimal.NewFromInt(price * 2),
		Category:      "electronics",
		Brand:         "Acme",
		Stock:         10,
		Images:        []string{"https://img.test/" + uuid.NewString() + ".jpg"},
	})
	require.NoError(t, err)
	p.Status = catalog.ProductStatusApproved
	for _, opt := range opts {
		opt(p)
	}
	p.ClearDomainEvents()
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

// SeedUser registers a user with the given role and password "secret123"
func SeedUser(t *testing.T, repo identity.UserRepository, email string, role identity.Role) *identity.User {
	t.Helper()

	u, err := identity.NewUser(email, "Test User", TestPassword)
	require.NoError(t, err)
	require.NoError(t, u.AssignRole(role))
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}

// SeedCoupon saves an active coupon
func SeedCoupon(t *testing.T, repo shopping.CouponRepository, code string, pct, minOrder, maxDiscount int64) *shopping.Coupon {
	t.Helper()

	c, err := shopping.NewCoupon(code, decimal.NewFromInt(pct), decimal.NewFromInt(minOrder), decimal.NewFromInt(maxDiscount))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

// orderSeq spreads fixture orders over distinct milliseconds so order numbers stay unique
var orderSeq atomic.Int64

// SeedOrder places and saves a COD order for one unit of each product
func SeedOrder(t *testing.T, repo trade.OrderRepository, userEmail string, products ...*catalog.Product) *trade.Order {
	t.Helper()

	lines := make([]*shopping.CartItem, 0, len(products))
	for _, p := range products {
		line, err := shopping.NewCartItem(userEmail, shopping.SnapshotOf(p))
		require.NoError(t, err)
		lines = append(lines, line)
	}
	order, err := trade.NewOrder(trade.OrderInput{
		UserEmail:       userEmail,
		Lines:           lines,
		Policy:          shopping.DefaultDeliveryPolicy(),
		ShippingAddress: TestShippingAddress(),
		PaymentMethod:   trade.PaymentMethodCOD,
		PlacedAt:        time.Now().Add(time.Duration(orderSeq.Add(1)) * time.Millisecond),
	})
	require.NoError(t, err)
	order.ClearDomainEvents()
	require.NoError(t, repo.Save(context.Background(), order))
	return order
}

// TestShippingAddress is a complete address snapshot
func TestShippingAddress() trade.ShippingAddress {
	return trade.ShippingAddress{
		Name:         "Test User",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560001",
		Type:         "home",
	}
}

// SeedAddress stores a valid address for the user
func SeedAddress(t *testing.T, repo identity.AddressRepository, userEmail string, isDefault bool) *identity.Address {
	t.Helper()
	addr := TestShippingAddress()
	address, err := identity.NewAddress(userEmail, identity.AddressInput{
		Name:         addr.Name,
		Phone:        addr.Phone,
		AddressLine1: addr.AddressLine1,
		City:         addr.City,
		State:        addr.State,
		Pincode:      addr.Pincode,
		IsDefault:    isDefault,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), address))
	return address
}

// TestPassword is the password of every seeded user
const TestPassword = "secret123"

// Principal returns the caller identity of a seeded user
func Principal(u *identity.User) identity.Principal {
	return identity.NewPrincipal(u.ID, u.Email, u.Role)
}

// TestContext wraps a Gin test context with HTTP recorder.
type TestContext struct {
	Context  *gin.Context
	Recorder *httptest.ResponseRecorder
	Engine   *gin.Engine
}

// NewTestContext creates a new Gin test context.
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	return &TestContext{Context: c, Recorder: w, Engine: engine}
}

// ResponseBody returns the response body as bytes.
func (tc *TestContext) ResponseBody() []byte {
	return tc.Recorder.Body.Bytes()
}

// ResponseCode returns the HTTP status code.
func (tc *TestContext) ResponseCode() int {
	return tc.Recorder.Code
}

// NewTestUUID generates a deterministic UUID for testing.
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// ContextWithTimeout creates a context with a timeout that is cancelled when the test ends.
func ContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// RequireEventually polls condition until it holds or the timeout elapses.
func RequireEventually(t *testing.T, condition func() bool, timeout, interval time.Duration, msgAndArgs ...interface{}) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(interval)
	}

	require.Fail(t, "Condition not met within timeout", msgAndArgs...)
}
