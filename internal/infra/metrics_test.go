package infra

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"pricealert/internal/domain"
)

func TestMetricsRecordLifecycle(t *testing.T) {
	m := NewMetrics()

	m.AlertCreated(domain.Alert{Symbol: "ETH"})
	m.AlertCreated(domain.Alert{Symbol: "ETH"})
	m.AlertRemoved()
	m.SubmissionBlocked("empty")
	m.ObserveCounts(domain.AlertCounts{Total: 4, Active: 3, Triggered: 1})

	if got := testutil.ToFloat64(m.AlertsCreated.WithLabelValues("ETH")); got != 2 {
		t.Errorf("expected 2 ETH alerts created, got %v", got)
	}
	if got := testutil.ToFloat64(m.AlertsRemoved); got != 1 {
		t.Errorf("expected 1 removal, got %v", got)
	}
	if got := testutil.ToFloat64(m.SubmissionsBlocked.WithLabelValues("empty")); got != 1 {
		t.Errorf("expected 1 blocked submission, got %v", got)
	}
	if got := testutil.ToFloat64(m.Alerts.WithLabelValues("active")); got != 3 {
		t.Errorf("expected 3 active, got %v", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveCounts(domain.AlertCounts{Total: 3, Active: 2, Triggered: 1})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `pricealert_store_alerts{state="triggered"} 1`) {
		t.Errorf("metrics output missing triggered gauge:\n%s", body)
	}
}
