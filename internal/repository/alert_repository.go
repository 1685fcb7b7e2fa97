package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pricealert/internal/domain"
)

// AlertRepositoryImpl is the in-memory, newest-first alert store
type AlertRepositoryImpl struct {
	mu     sync.RWMutex
	alerts []domain.Alert
	prices domain.PriceTable
	newID  func() string
	now    func() time.Time
}

// Option configures an AlertRepositoryImpl
type Option func(*AlertRepositoryImpl)

// WithIDGenerator overrides uuid-based ids
func WithIDGenerator(fn func() string) Option {
	return func(r *AlertRepositoryImpl) { r.newID = fn }
}

// WithClock overrides time.Now for CreatedAt
func WithClock(fn func() time.Time) Option {
	return func(r *AlertRepositoryImpl) { r.now = fn }
}

// WithAlerts preloads the store; the slice is copied and kept in the given order
func WithAlerts(alerts []domain.Alert) Option {
	return func(r *AlertRepositoryImpl) {
		r.alerts = append([]domain.Alert(nil), alerts...)
	}
}

// NewAlertRepository creates a new AlertRepository backed by prices
func NewAlertRepository(prices domain.PriceTable, opts ...Option) domain.AlertRepository {
	r := &AlertRepositoryImpl{
		prices: prices,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add creates a new alert and prepends it
func (r *AlertRepositoryImpl) Add(symbol string, targetPrice decimal.Decimal, condition domain.Condition) domain.Alert {
	alert := domain.Alert{
		ID:           r.newID(),
		Symbol:       symbol,
		TargetPrice:  targetPrice,
		CurrentPrice: r.prices.Price(symbol),
		Condition:    condition,
		IsTriggered:  false,
		CreatedAt:    r.now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	alerts := make([]domain.Alert, 0, len(r.alerts)+1)
	alerts = append(alerts, alert)
	r.alerts = append(alerts, r.alerts...)

	return alert
}

// Remove filters out the alert with id. Missing ids are a no-op.
func (r *AlertRepositoryImpl) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.alerts {
		if a.ID == id {
			r.alerts = append(r.alerts[:i:i], r.alerts[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of all alerts, newest first
func (r *AlertRepositoryImpl) List() []domain.Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// Get retrieves an alert by id
func (r *AlertRepositoryImpl) Get(id string) (domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Alert{}, domain.ErrNotFound
}

// Counts recomputes the counters on every call
func (r *AlertRepositoryImpl) Counts() domain.AlertCounts {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.CountAlerts(r.alerts)
}

// SeedAlerts returns the three demo alerts shown on first load.
// ETH starts triggered so every dashboard state has something to show.
func SeedAlerts(prices domain.PriceTable, now time.Time) []domain.Alert {
	return []domain.Alert{
		{
			ID:           "1",
			Symbol:       "BTC",
			TargetPrice:  decimal.NewFromInt(70000),
			CurrentPrice: prices.Price("BTC"),
			Condition:    domain.ConditionAbove,
			CreatedAt:    now,
		},
		{
			ID:           "2",
			Symbol:       "ETH",
			TargetPrice:  decimal.NewFromInt(3200),
			CurrentPrice: prices.Price("ETH"),
			Condition:    domain.ConditionBelow,
			IsTriggered:  true,
			CreatedAt:    now,
		},
		{
			ID:           "3",
			Symbol:       "SOL",
			TargetPrice:  decimal.NewFromInt(200),
			CurrentPrice: prices.Price("SOL"),
			Condition:    domain.ConditionAbove,
			CreatedAt:    now,
		},
	}
}
