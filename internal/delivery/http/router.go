package http

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	appmiddleware "pricealert/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	WebHandler   *WebHandler
	AlertHandler *AlertHandler
	Logger       *zap.Logger
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for high-frequency polling endpoints to reduce noise
			path := c.Request().URL.Path
			if strings.HasPrefix(path, "/fragments/") {
				return true
			}
			return path == "/health"
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(appmiddleware.HTMXMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "pricealert-web",
		})
	})

	if config.WebHandler != nil {
		RegisterWebRoutes(e, config.WebHandler)
	}

	// API group
	api := e.Group("/api")
	{
		api.GET("/alerts", config.AlertHandler.ListAlerts)
		api.POST("/alerts", config.AlertHandler.CreateAlert)
		api.GET("/alerts/:id", config.AlertHandler.GetAlert)
		api.DELETE("/alerts/:id", config.AlertHandler.RemoveAlert)
		api.GET("/stats", config.AlertHandler.GetStats)
		api.GET("/prices", config.AlertHandler.GetPrices)
	}
}
