// Package provider resolves market data for holdings: unit prices from
// quote services or fixed tables, and fundamentals for stocks.
package provider

import (
	"context"
	"fmt"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

// PriceOracle resolves the current unit price of a holding.
type PriceOracle interface {
	ResolvePrice(ctx context.Context, holding models.Holding) (decimal.Decimal, error)
}

// FundamentalsOracle resolves company ratios for a stock ticker. Fields the
// source does not report are absent individually.
type FundamentalsOracle interface {
	ResolveFundamentals(ctx context.Context, ticker string) (models.Fundamentals, error)
}

// Provider fetches live quotes from an external market data service.
type Provider interface {
	// Name returns the provider's display name (e.g., "Yahoo Finance", "CoinGecko").
	Name() string

	// Supports returns true if this provider can quote the given asset type.
	Supports(assetType models.AssetType) bool

	// FetchPrice fetches the current unit price of the holding's asset.
	// A zero or missing quote is an error.
	FetchPrice(ctx context.Context, holding models.Holding) (decimal.Decimal, error)
}

// FetchError represents a failed quote for a specific holding.
type FetchError struct {
	Provider  string
	AssetType models.AssetType
	Ticker    string
	Err       error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: failed to fetch price for %s %s: %v", e.Provider, e.AssetType.Label(), e.Ticker, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }
