package middleware

import (
	"github.com/labstack/echo/v4"
)

const htmxKey = "htmx"

// HTMXMiddleware marks requests issued by htmx
func HTMXMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Header.Get("HX-Request") != "true" {
			c.Set(htmxKey, false)
			return next(c)
		}

		c.Set(htmxKey, true)

		// Partial responses must not be reused for full page loads
		c.Response().Header().Add(echo.HeaderVary, "HX-Request")
		return next(c)
	}
}

// NoStoreMiddleware disables caching, used on polled fragments
func NoStoreMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		return next(c)
	}
}

// IsHTMX reports whether the request came from htmx.
// Without HTMXMiddleware it falls back to the raw header.
func IsHTMX(c echo.Context) bool {
	if v, ok := c.Get(htmxKey).(bool); ok {
		return v
	}
	return c.Request().Header.Get("HX-Request") == "true"
}
