package ops

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pricealert/internal/domain"
)

// CountsSource is anything that can report the alert counters
type CountsSource interface {
	Counts() domain.AlertCounts
}

// NewRouter builds the operations listener: liveness and Prometheus metrics
func NewRouter(metrics http.Handler, alerts CountsSource) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", handleHealth(alerts))
	r.Method(http.MethodGet, "/metrics", metrics)

	return r
}

func handleHealth(alerts CountsSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"service":   "pricealert-ops",
			"alerts":    alerts.Counts(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
