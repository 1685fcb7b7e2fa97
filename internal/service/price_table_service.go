package service

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"pricealert/internal/domain"
)

// PriceData represents the snapshot price for a symbol
type PriceData struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	Price  string `yaml:"price" json:"price"`
}

type priceTableFile struct {
	Prices []PriceData `yaml:"prices"`
}

// DefaultPrices is the built-in snapshot, in display order
var DefaultPrices = []PriceData{
	{Symbol: "BTC", Price: "67234.50"},
	{Symbol: "ETH", Price: "3456.78"},
	{Symbol: "SOL", Price: "178.92"},
	{Symbol: "DOGE", Price: "0.1234"},
	{Symbol: "XRP", Price: "0.5678"},
	{Symbol: "ADA", Price: "0.4521"},
	{Symbol: "DOT", Price: "7.89"},
	{Symbol: "LINK", Price: "14.56"},
}

// PriceTableService serves a fixed symbol -> price snapshot.
// It is built once at startup and never mutated, so reads need no locking.
type PriceTableService struct {
	symbols []string
	prices  map[string]decimal.Decimal
}

// NewPriceTableService builds the table from entries, keeping their order.
// Symbols are upper-cased; duplicates and unparsable prices are rejected.
func NewPriceTableService(entries []PriceData) (*PriceTableService, error) {
	if len(entries) == 0 {
		return nil, errors.New("price table is empty")
	}

	s := &PriceTableService{
		symbols: make([]string, 0, len(entries)),
		prices:  make(map[string]decimal.Decimal, len(entries)),
	}
	for _, e := range entries {
		symbol := strings.ToUpper(strings.TrimSpace(e.Symbol))
		if symbol == "" {
			return nil, errors.New("price table entry without symbol")
		}
		if _, dup := s.prices[symbol]; dup {
			return nil, errors.Errorf("duplicate symbol %s in price table", symbol)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(e.Price))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid price for %s", symbol)
		}
		s.symbols = append(s.symbols, symbol)
		s.prices[symbol] = price
	}

	return s, nil
}

// NewDefaultPriceTableService returns the built-in eight-token table
func NewDefaultPriceTableService() *PriceTableService {
	s, err := NewPriceTableService(DefaultPrices)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadPriceTableService reads a YAML price table from path.
// An empty path yields the built-in table.
func LoadPriceTableService(path string) (*PriceTableService, error) {
	if path == "" {
		return NewDefaultPriceTableService(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read price table %s", path)
	}

	var file priceTableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse price table %s", path)
	}

	return NewPriceTableService(file.Prices)
}

// Price returns the snapshot price, or zero for an unknown symbol
func (s *PriceTableService) Price(symbol string) decimal.Decimal {
	price, ok := s.prices[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Zero
	}
	return price
}

// Symbols returns the known symbols in display order
func (s *PriceTableService) Symbols() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

var _ domain.PriceTable = (*PriceTableService)(nil)
