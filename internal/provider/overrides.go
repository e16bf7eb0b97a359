package provider

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultOverrides are fixed prices for fixed-income instruments with no
// live quote, keyed by upper-case ticker.
var DefaultOverrides = map[string]decimal.Decimal{
	"BANKOFNY": decimal.RequireFromString("0.99632"), // dealer bid 99.632 per 100 face
}

// OverrideTable is a ticker-keyed lookup of fixed instrument prices.
type OverrideTable struct {
	prices map[string]decimal.Decimal
}

// NewOverrideTable builds a table from DefaultOverrides with extra entries
// layered on top.
func NewOverrideTable(extra map[string]decimal.Decimal) *OverrideTable {
	prices := make(map[string]decimal.Decimal, len(DefaultOverrides)+len(extra))
	for ticker, price := range DefaultOverrides {
		prices[ticker] = price
	}
	for ticker, price := range extra {
		prices[normalizeTicker(ticker)] = price
	}
	return &OverrideTable{prices: prices}
}

// Lookup returns the fixed price for ticker, matched case-insensitively.
func (t *OverrideTable) Lookup(ticker string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	price, ok := t.prices[normalizeTicker(ticker)]
	return price, ok
}

// Len returns the number of entries.
func (t *OverrideTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.prices)
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
