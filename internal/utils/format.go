package utils

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// priceDigits matches the default fraction digits of a locale number format
const priceDigits = 3

// FormatPrice renders a price with thousands separators and at most three
// fraction digits, dropping trailing zeros: 67234.50 -> "67,234.5".
func FormatPrice(d decimal.Decimal) string {
	return humanize.CommafWithDigits(d.Round(priceDigits).InexactFloat64(), priceDigits)
}

// FormatPercent renders a bar width such as "89.46%"
func FormatPercent(d decimal.Decimal) string {
	return d.Round(2).String() + "%"
}

// FormatClock returns HH:MM:SS in UTC
func FormatClock(t time.Time) string {
	return t.UTC().Format("15:04:05")
}
