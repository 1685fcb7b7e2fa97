package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when an alert id is not in the store
var ErrNotFound = errors.New("not found")

// AlertRepository defines the interface for the alert store
type AlertRepository interface {
	// Add creates a new alert from the price table snapshot and puts it first
	Add(symbol string, targetPrice decimal.Decimal, condition Condition) Alert

	// Remove deletes the alert with the given id; false if there was none
	Remove(id string) bool

	// List returns a copy of all alerts, newest first
	List() []Alert

	// Get retrieves a single alert by id
	Get(id string) (Alert, error)

	// Counts returns the derived counters
	Counts() AlertCounts
}

// PriceTable is the fixed symbol -> price snapshot
type PriceTable interface {
	// Price returns the price for symbol, or zero if the symbol is unknown
	Price(symbol string) decimal.Decimal

	// Symbols returns the known symbols in display order
	Symbols() []string
}
