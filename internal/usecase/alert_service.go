package usecase

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricealert/internal/domain"
)

var (
	// ErrEmptyTargetPrice is returned when a submission has no target price text
	ErrEmptyTargetPrice = errors.New("target price is required")
	// ErrInvalidTargetPrice is returned for text that is not a finite float64
	ErrInvalidTargetPrice = errors.New("target price must be a number")
	// ErrAlertNotFound is returned when looking up an id that is not in the store
	ErrAlertNotFound = errors.New("alert not found")
)

// Metrics receives alert lifecycle events
type Metrics interface {
	AlertCreated(alert domain.Alert)
	AlertRemoved()
	SubmissionBlocked(reason string)
	ObserveCounts(counts domain.AlertCounts)
}

type nopMetrics struct{}

func (nopMetrics) AlertCreated(domain.Alert)        {}
func (nopMetrics) AlertRemoved()                    {}
func (nopMetrics) SubmissionBlocked(string)         {}
func (nopMetrics) ObserveCounts(domain.AlertCounts) {}

// Form is the pending input of the NEW_ALERT panel
type Form struct {
	Symbol      string
	TargetPrice string
	Condition   domain.Condition
}

// CanSubmit is false while the target price is empty
func (f Form) CanSubmit() bool {
	return strings.TrimSpace(f.TargetPrice) != ""
}

// AlertService owns the dashboard form and routes changes into the alert store
type AlertService struct {
	alerts  domain.AlertRepository
	prices  domain.PriceTable
	logger  *zap.Logger
	metrics Metrics

	mu   sync.Mutex
	form Form
}

// NewAlertService creates a new AlertService with the form at its defaults
func NewAlertService(
	alerts domain.AlertRepository,
	prices domain.PriceTable,
	logger *zap.Logger,
	metrics Metrics,
) *AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	s := &AlertService{
		alerts:  alerts,
		prices:  prices,
		logger:  logger,
		metrics: metrics,
	}
	s.form = s.defaultForm()
	metrics.ObserveCounts(alerts.Counts())
	return s
}

func (s *AlertService) defaultForm() Form {
	symbol := ""
	if symbols := s.prices.Symbols(); len(symbols) > 0 {
		symbol = symbols[0]
	}
	return Form{Symbol: symbol, Condition: domain.ConditionAbove}
}

// Form returns the pending form
func (s *AlertService) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SelectSymbol sets the pending symbol
func (s *AlertService) SelectSymbol(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Symbol = strings.ToUpper(strings.TrimSpace(symbol))
}

// SelectCondition sets the pending condition
func (s *AlertService) SelectCondition(condition string) error {
	c, err := domain.ParseCondition(condition)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Condition = c
	return nil
}

// SetTargetPrice sets the pending target price text
func (s *AlertService) SetTargetPrice(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.TargetPrice = text
}

// Submit creates an alert from the pending form. On success the price text is
// cleared while symbol and condition stay selected.
func (s *AlertService) Submit() (domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, err := s.create(s.form)
	if err != nil {
		return domain.Alert{}, err
	}
	s.form.TargetPrice = ""
	return alert, nil
}

// SubmitForm replaces the pending form with f and submits it.
// A rejected submission still keeps f as the pending form.
func (s *AlertService) SubmitForm(f Form) (domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.Symbol = strings.ToUpper(strings.TrimSpace(f.Symbol))
	s.form = f

	alert, err := s.create(f)
	if err != nil {
		return domain.Alert{}, err
	}
	s.form.TargetPrice = ""
	return alert, nil
}

// CreateAlert creates an alert without touching the pending form
func (s *AlertService) CreateAlert(symbol, targetPrice, condition string) (domain.Alert, error) {
	c, err := domain.ParseCondition(condition)
	if err != nil {
		s.metrics.SubmissionBlocked("condition")
		return domain.Alert{}, err
	}
	return s.create(Form{
		Symbol:      strings.ToUpper(strings.TrimSpace(symbol)),
		TargetPrice: targetPrice,
		Condition:   c,
	})
}

func (s *AlertService) create(f Form) (domain.Alert, error) {
	if !f.CanSubmit() {
		s.metrics.SubmissionBlocked("empty")
		return domain.Alert{}, ErrEmptyTargetPrice
	}

	target, err := parseTargetPrice(f.TargetPrice)
	if err != nil {
		s.metrics.SubmissionBlocked("invalid")
		return domain.Alert{}, ErrInvalidTargetPrice
	}

	condition := f.Condition
	if condition == "" {
		condition = domain.ConditionAbove
	}

	alert := s.alerts.Add(f.Symbol, target, condition)
	counts := s.alerts.Counts()
	s.metrics.AlertCreated(alert)
	s.metrics.ObserveCounts(counts)

	s.logger.Info("alert created",
		zap.String("id", alert.ID),
		zap.String("symbol", alert.Symbol),
		zap.Stringer("target_price", alert.TargetPrice),
		zap.Stringer("current_price", alert.CurrentPrice),
		zap.String("condition", string(alert.Condition)),
		zap.Int("total", counts.Total),
	)
	return alert, nil
}

// parseTargetPrice reads text with float64 semantics: values too small to
// represent become 0, values too large and NaN/Inf spellings are rejected.
func parseTargetPrice(text string) (decimal.Decimal, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && f == 0) {
		return decimal.Decimal{}, ErrInvalidTargetPrice
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Decimal{}, ErrInvalidTargetPrice
	}
	return decimal.NewFromFloat(f), nil
}

// RemoveAlert deletes the alert with id. Unknown ids are ignored and reported as false.
func (s *AlertService) RemoveAlert(id string) bool {
	removed := s.alerts.Remove(id)
	if !removed {
		s.logger.Debug("remove ignored, alert not present", zap.String("id", id))
		return false
	}

	counts := s.alerts.Counts()
	s.metrics.AlertRemoved()
	s.metrics.ObserveCounts(counts)
	s.logger.Info("alert removed", zap.String("id", id), zap.Int("total", counts.Total))
	return true
}

// GetAlert returns a single alert
func (s *AlertService) GetAlert(id string) (domain.Alert, error) {
	alert, err := s.alerts.Get(id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Alert{}, ErrAlertNotFound
	}
	return alert, err
}

// Alerts returns all alerts, newest first
func (s *AlertService) Alerts() []domain.Alert {
	return s.alerts.List()
}

// Counts returns the derived counters
func (s *AlertService) Counts() domain.AlertCounts {
	return s.alerts.Counts()
}

// Symbols returns the selectable tokens
func (s *AlertService) Symbols() []string {
	return s.prices.Symbols()
}

// Price returns the snapshot price of symbol
func (s *AlertService) Price(symbol string) decimal.Decimal {
	return s.prices.Price(symbol)
}
