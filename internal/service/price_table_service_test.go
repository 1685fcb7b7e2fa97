package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultPriceTable(t *testing.T) {
	table := NewDefaultPriceTableService()

	symbols := table.Symbols()
	want := []string{"BTC", "ETH", "SOL", "DOGE", "XRP", "ADA", "DOT", "LINK"}
	if len(symbols) != len(want) {
		t.Fatalf("expected %d symbols, got %d", len(want), len(symbols))
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("symbol %d: expected %s, got %s", i, want[i], symbols[i])
		}
	}

	if !table.Price("ETH").Equal(decimal.RequireFromString("3456.78")) {
		t.Errorf("unexpected ETH price %s", table.Price("ETH"))
	}
	if !table.Price("eth").Equal(table.Price("ETH")) {
		t.Error("lookup should be case-insensitive")
	}
}

func TestUnknownSymbolPricesAtZero(t *testing.T) {
	table := NewDefaultPriceTableService()
	if !table.Price("PEPE").IsZero() {
		t.Errorf("expected zero, got %s", table.Price("PEPE"))
	}
}

func TestSymbolsIsACopy(t *testing.T) {
	table := NewDefaultPriceTableService()
	symbols := table.Symbols()
	symbols[0] = "XXX"
	if table.Symbols()[0] != "BTC" {
		t.Error("Symbols must not expose internal state")
	}
}

func TestNewPriceTableServiceRejectsBadEntries(t *testing.T) {
	cases := map[string][]PriceData{
		"empty":     nil,
		"duplicate": {{Symbol: "BTC", Price: "1"}, {Symbol: "btc", Price: "2"}},
		"bad price": {{Symbol: "BTC", Price: "lots"}},
		"no symbol": {{Symbol: " ", Price: "1"}},
	}
	for name, entries := range cases {
		if _, err := NewPriceTableService(entries); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadPriceTableService(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.yaml")
	content := `prices:
  - symbol: btc
    price: 60000.25
  - symbol: ETH
    price: "3000"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := LoadPriceTableService(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := table.Symbols(); len(got) != 2 || got[0] != "BTC" || got[1] != "ETH" {
		t.Errorf("unexpected symbols %v", got)
	}
	if !table.Price("BTC").Equal(decimal.RequireFromString("60000.25")) {
		t.Errorf("unexpected BTC price %s", table.Price("BTC"))
	}
}

func TestLoadPriceTableServiceDefaultsWithoutPath(t *testing.T) {
	table, err := LoadPriceTableService("")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Symbols()) != 8 {
		t.Errorf("expected the built-in 8 tokens, got %d", len(table.Symbols()))
	}
}

func TestLoadPriceTableServiceMissingFile(t *testing.T) {
	if _, err := LoadPriceTableService(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
