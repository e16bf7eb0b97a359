package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Holdings sources.
const (
	SourceCSV      = "csv"
	SourceDatabase = "database"
)

// Crypto quote providers.
const (
	CryptoProviderYahoo     = "yahoo"
	CryptoProviderCoinGecko = "coingecko"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Holdings
	HoldingsSource string
	PortfolioCSV   string

	// Market data
	PriceOverridesFile string
	CryptoProvider     string
	QuoteCurrency      string
	RequestTimeout     time.Duration
	QuoteRateLimit     int
	FetchConcurrency   int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		HoldingsSource: strings.ToLower(getEnv("HOLDINGS_SOURCE", SourceCSV)),
		PortfolioCSV:   getEnv("PORTFOLIO_CSV", "portfolio.csv"),

		PriceOverridesFile: os.Getenv("PRICE_OVERRIDES_FILE"),
		CryptoProvider:     strings.ToLower(getEnv("CRYPTO_PROVIDER", CryptoProviderYahoo)),
		QuoteCurrency:      strings.ToUpper(getEnv("QUOTE_CURRENCY", "USD")),
	}

	switch config.HoldingsSource {
	case SourceCSV, SourceDatabase:
	default:
		return nil, fmt.Errorf("invalid HOLDINGS_SOURCE %q: must be csv or database", config.HoldingsSource)
	}

	switch config.CryptoProvider {
	case CryptoProviderYahoo, CryptoProviderCoinGecko:
	default:
		return nil, fmt.Errorf("invalid CRYPTO_PROVIDER %q: must be yahoo or coingecko", config.CryptoProvider)
	}

	timeout, err := parseTimeout(os.Getenv("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	config.RequestTimeout = timeout

	rateLimit, err := parsePositiveInt("QUOTE_RATE_LIMIT", os.Getenv("QUOTE_RATE_LIMIT"), 5)
	if err != nil {
		return nil, err
	}
	config.QuoteRateLimit = rateLimit

	concurrency, err := parsePositiveInt("FETCH_CONCURRENCY", os.Getenv("FETCH_CONCURRENCY"), 4)
	if err != nil {
		return nil, err
	}
	config.FetchConcurrency = concurrency

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// IsProduction reports whether the service runs with production logging and gin release mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func parsePositiveInt(key, s string, defaultVal int) (int, error) {
	if s == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}
