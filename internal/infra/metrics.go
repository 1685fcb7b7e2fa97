package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pricealert/internal/domain"
)

// Metrics exposes alert lifecycle counters on a private registry
type Metrics struct {
	registry *prometheus.Registry

	AlertsCreated      *prometheus.CounterVec
	AlertsRemoved      prometheus.Counter
	SubmissionsBlocked *prometheus.CounterVec
	Alerts             *prometheus.GaugeVec
}

// NewMetrics creates and registers all collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AlertsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pricealert",
				Subsystem: "store",
				Name:      "alerts_created_total",
				Help:      "The total number of alerts created, by symbol",
			},
			[]string{"symbol"},
		),
		AlertsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricealert",
			Subsystem: "store",
			Name:      "alerts_removed_total",
			Help:      "The total number of alerts removed",
		}),
		SubmissionsBlocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pricealert",
				Subsystem: "form",
				Name:      "submissions_blocked_total",
				Help:      "Submissions refused before reaching the store, by reason",
			},
			[]string{"reason"},
		),
		Alerts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "pricealert",
				Subsystem: "store",
				Name:      "alerts",
				Help:      "Current number of alerts by state (total, active, triggered)",
			},
			[]string{"state"},
		),
	}

	m.registry.MustRegister(
		m.AlertsCreated,
		m.AlertsRemoved,
		m.SubmissionsBlocked,
		m.Alerts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// AlertCreated counts a new alert
func (m *Metrics) AlertCreated(alert domain.Alert) {
	m.AlertsCreated.WithLabelValues(alert.Symbol).Inc()
}

// AlertRemoved counts a removal
func (m *Metrics) AlertRemoved() {
	m.AlertsRemoved.Inc()
}

// SubmissionBlocked counts a refused submission
func (m *Metrics) SubmissionBlocked(reason string) {
	m.SubmissionsBlocked.WithLabelValues(reason).Inc()
}

// ObserveCounts publishes the current counters
func (m *Metrics) ObserveCounts(counts domain.AlertCounts) {
	m.Alerts.WithLabelValues("total").Set(float64(counts.Total))
	m.Alerts.WithLabelValues("active").Set(float64(counts.Active))
	m.Alerts.WithLabelValues("triggered").Set(float64(counts.Triggered))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
