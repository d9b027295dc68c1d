package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsRouter(m *HTTPMetrics) *gin.Engine {
	router := gin.New()
	router.Use(m.Middleware("/metrics"))
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/orders/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "order")
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	return router
}

func TestHTTPMetrics_CountsByRoutePattern(t *testing.T) {
	m := NewHTTPMetrics("shop")
	router := newMetricsRouter(m)

	for _, path := range []string{"/orders/1", "/orders/2", "/boom", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/orders/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/boom", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestHTTPMetrics_ScrapeEndpoint(t *testing.T) {
	m := NewHTTPMetrics("shop")
	router := newMetricsRouter(m)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/1", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "shop_http_requests_total")
	assert.Contains(t, body, "shop_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
	assert.NotContains(t, body, `route="/metrics"`, "scrapes are not counted")
}
