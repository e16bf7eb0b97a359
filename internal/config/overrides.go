package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// overridesFile is the on-disk shape of PRICE_OVERRIDES_FILE:
//
//	overrides:
//	  BANKOFNY: "0.99632"
//	  US912828YK0: 98.75
type overridesFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

// LoadPriceOverrides reads a YAML table of fixed instrument prices keyed by
// ticker. Keys are upper-cased. An empty path yields an empty table.
func LoadPriceOverrides(path string) (map[string]decimal.Decimal, error) {
	table := make(map[string]decimal.Decimal)
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price overrides %s: %w", path, err)
	}

	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse price overrides %s: %w", path, err)
	}

	for ticker, raw := range file.Overrides {
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("price override %s: invalid price %q: %w", ticker, raw, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("price override %s: price must not be negative", ticker)
		}
		table[strings.ToUpper(strings.TrimSpace(ticker))] = price
	}
	return table, nil
}
