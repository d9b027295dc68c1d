package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func echo(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	cart := NewDomainGroup("cart", "/cart")
	cart.GET("", echo("view")).
		POST("/items", echo("add")).
		PUT("/items/:id", echo("replace")).
		PATCH("/items/:id", echo("change")).
		DELETE("/items/:id", echo("remove"))

	assert.Equal(t, "cart", cart.Name())
	assert.Equal(t, "/cart", cart.Prefix())

	NewRouter(engine).Register(cart).Setup()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/cart", "view"},
		{http.MethodPost, "/api/v1/cart/items", "add"},
		{http.MethodPut, "/api/v1/cart/items/42", "replace"},
		{http.MethodPatch, "/api/v1/cart/items/42", "change"},
		{http.MethodDelete, "/api/v1/cart/items/42", "remove"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestDomainGroup_MiddlewareScope(t *testing.T) {
	engine := gin.New()

	seller := NewDomainGroup("seller", "/seller").Use(func(c *gin.Context) {
		c.Header("X-Area", "seller")
		c.Next()
	})
	seller.GET("/dashboard", echo("dashboard"))
	seller.Group("products", "/products").GET("", echo("products"))

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/home", echo("home"))

	NewRouter(engine).Register(seller).Register(catalog).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/seller/dashboard")
	assert.Equal(t, "seller", w.Header().Get("X-Area"))

	w = serve(engine, http.MethodGet, "/api/v1/seller/products")
	assert.Equal(t, "products", w.Body.String())
	assert.Equal(t, "seller", w.Header().Get("X-Area"), "subgroups inherit middleware")

	w = serve(engine, http.MethodGet, "/api/v1/catalog/home")
	assert.Equal(t, "home", w.Body.String())
	assert.Empty(t, w.Header().Get("X-Area"))
}
