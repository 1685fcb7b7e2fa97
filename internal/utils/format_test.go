package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatPrice(t *testing.T) {
	tests := map[string]string{
		"67234.50": "67,234.5",
		"70000":    "70,000",
		"3456.78":  "3,456.78",
		"0.1234":   "0.123",
		"0.5678":   "0.568",
		"0":        "0",
		"-1500.5":  "-1,500.5",
	}
	for in, want := range tests {
		if got := FormatPrice(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatPrice(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(decimal.RequireFromString("89.46")); got != "89.46%" {
		t.Errorf("got %s", got)
	}
	if got := FormatPercent(decimal.NewFromInt(100)); got != "100%" {
		t.Errorf("got %s", got)
	}
}

func TestFormatClock(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	ts := time.Date(2024, 1, 2, 10, 4, 5, 0, loc)
	if got := FormatClock(ts); got != "03:04:05" {
		t.Errorf("FormatClock() = %s", got)
	}
}
