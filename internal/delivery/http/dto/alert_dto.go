package dto

import (
	"encoding/json"
	"time"

	"pricealert/internal/domain"
	"pricealert/internal/utils"
)

// PriceText accepts a JSON number or string and keeps the raw text,
// so an empty value can be told apart from zero
type PriceText string

// UnmarshalJSON implements json.Unmarshaler
func (p *PriceText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = PriceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = PriceText(n.String())
	return nil
}

// CreateAlertRequest is the payload of POST /api/alerts
type CreateAlertRequest struct {
	Symbol      string    `json:"symbol"`
	TargetPrice PriceText `json:"target_price"`
	Condition   string    `json:"condition"`
}

// AlertOutput is the API representation of an alert
type AlertOutput struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	TargetPrice  string    `json:"target_price"`
	CurrentPrice string    `json:"current_price"`
	Condition    string    `json:"condition"`
	IsTriggered  bool      `json:"is_triggered"`
	FillPercent  string    `json:"fill_percent"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAlertOutput maps a domain alert
func NewAlertOutput(a domain.Alert) AlertOutput {
	return AlertOutput{
		ID:           a.ID,
		Symbol:       a.Symbol,
		TargetPrice:  a.TargetPrice.String(),
		CurrentPrice: a.CurrentPrice.String(),
		Condition:    string(a.Condition),
		IsTriggered:  a.IsTriggered,
		FillPercent:  a.FillPercent().Round(2).String(),
		CreatedAt:    a.CreatedAt,
	}
}

// RemoveAlertOutput reports whether DELETE found anything
type RemoveAlertOutput struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

// StatsOutput is the stats bar
type StatsOutput struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Triggered int `json:"triggered"`
	Tokens    int `json:"tokens"`
}

// PriceOutput is one price table row
type PriceOutput struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// AlertViewModel represents one row of the ACTIVE_ALERTS list
type AlertViewModel struct {
	ID             string
	Symbol         string
	ConditionLabel string
	IsAbove        bool
	Target         string
	Current        string
	IsTriggered    bool
	FillWidth      string // CSS width, e.g. 89.46%
}

// NewAlertViewModel formats an alert for the dashboard
func NewAlertViewModel(a domain.Alert) AlertViewModel {
	return AlertViewModel{
		ID:             a.ID,
		Symbol:         a.Symbol,
		ConditionLabel: a.Condition.Label(),
		IsAbove:        a.Condition == domain.ConditionAbove,
		Target:         utils.FormatPrice(a.TargetPrice),
		Current:        utils.FormatPrice(a.CurrentPrice),
		IsTriggered:    a.IsTriggered,
		FillWidth:      utils.FormatPercent(a.FillPercent()),
	}
}

// SymbolOption is one entry of the token selector
type SymbolOption struct {
	Symbol   string
	Selected bool
}

// HeaderViewModel is the polled clock/glitch fragment
type HeaderViewModel struct {
	Clock  string
	Glitch bool
}

// DashboardViewModel is everything the dashboard template reads
type DashboardViewModel struct {
	Header       HeaderViewModel
	Stats        StatsOutput
	Symbols      []SymbolOption
	PendingPrice string
	IsAbove      bool
	TargetPrice  string
	CanSubmit    bool
	Alerts       []AlertViewModel
	Error        string
}
