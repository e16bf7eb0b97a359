// Package oracle assembles the price and fundamentals oracles from configuration.
package oracle

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"folio/internal/config"
	"folio/internal/logger"
	"folio/internal/provider"
)

// Oracles are the market data collaborators of a processing run.
type Oracles struct {
	Prices       *provider.Router
	Fundamentals *provider.YahooProvider
	Providers    []provider.Provider
}

// New builds the oracles for cfg. Yahoo price and fundamentals calls draw
// from one rate limiter; CoinGecko, when selected for crypto, has its own.
func New(cfg *config.Config, httpClient *http.Client) (*Oracles, error) {
	extra, err := config.LoadPriceOverrides(cfg.PriceOverridesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load price overrides: %w", err)
	}
	overrides := provider.NewOverrideTable(extra)

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.QuoteRateLimit), cfg.QuoteRateLimit)
	yahoo := provider.NewYahooProvider(httpClient, cfg.QuoteCurrency, provider.WithLimiter(limiter))

	// The router asks providers in order, so CoinGecko goes first to take crypto.
	var providers []provider.Provider
	if cfg.CryptoProvider == config.CryptoProviderCoinGecko {
		providers = append(providers, provider.NewCoinGeckoProvider(httpClient, cfg.QuoteCurrency,
			provider.WithRateLimit(cfg.QuoteRateLimit)))
	}
	providers = append(providers, yahoo)

	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	logger.Get().Infow("market data configured",
		"providers", names,
		"price_overrides", overrides.Len(),
		"quote_currency", cfg.QuoteCurrency,
		"rate_limit", cfg.QuoteRateLimit,
	)

	return &Oracles{
		Prices:       provider.NewRouter(overrides, providers...),
		Fundamentals: yahoo,
		Providers:    providers,
	}, nil
}
