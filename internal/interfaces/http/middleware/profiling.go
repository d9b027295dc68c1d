package middleware

import (
	"context"
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Profiling attaches pprof labels to the request goroutine so continuous
// profiles can be sliced by route and API area
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}
		telemetry.WithLabels(c.Request.Context(), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		}, "method", c.Request.Method, "route", route, "area", areaOf(route))
	}
}

// areaOf derives the API area from a route: "/api/v1/cart/items/:id" -> "cart"
func areaOf(route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	for i, part := range parts {
		if part == "api" && i+2 < len(parts) {
			return parts[i+2]
		}
	}
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}
