package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Condition is the side of the target price an alert watches
type Condition string

// Condition constants
const (
	ConditionAbove Condition = "above"
	ConditionBelow Condition = "below"
)

// ErrInvalidCondition is returned for anything other than above/below
var ErrInvalidCondition = errors.New("condition must be 'above' or 'below'")

// ParseCondition normalizes user input into a Condition
func ParseCondition(s string) (Condition, error) {
	switch Condition(strings.ToLower(strings.TrimSpace(s))) {
	case ConditionAbove:
		return ConditionAbove, nil
	case ConditionBelow:
		return ConditionBelow, nil
	default:
		return "", ErrInvalidCondition
	}
}

// Label is the upper-case badge text
func (c Condition) Label() string {
	return strings.ToUpper(string(c))
}

// Alert is a single price alert.
// CurrentPrice is a snapshot taken when the alert was created and IsTriggered is
// fixed at construction; nothing re-evaluates either afterwards.
type Alert struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	TargetPrice  decimal.Decimal `json:"target_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Condition    Condition       `json:"condition"`
	IsTriggered  bool            `json:"is_triggered"`
	CreatedAt    time.Time       `json:"created_at"`
}

var hundred = decimal.NewFromInt(100)

// FillPercent returns min(100, |current/target| * 100).
// A zero target fills the bar completely unless the current price is zero as well.
func (a Alert) FillPercent() decimal.Decimal {
	if a.TargetPrice.IsZero() {
		if a.CurrentPrice.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	pct := a.CurrentPrice.Div(a.TargetPrice).Mul(hundred).Abs()
	return decimal.Min(pct, hundred)
}

// AlertCounts holds the derived dashboard counters
type AlertCounts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Triggered int `json:"triggered"`
}

// CountAlerts derives the counters from a snapshot
func CountAlerts(alerts []Alert) AlertCounts {
	counts := AlertCounts{Total: len(alerts)}
	for _, a := range alerts {
		if a.IsTriggered {
			counts.Triggered++
		} else {
			counts.Active++
		}
	}
	return counts
}
