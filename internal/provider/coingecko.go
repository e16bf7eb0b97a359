package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

const coinGeckoBaseURL = "https://api.coingecko.com/api/v3/simple/price"

// coinGeckoIDs maps ticker symbols to CoinGecko coin ids.
var coinGeckoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"LTC":   "litecoin",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
	"BNB":   "binancecoin",
	"USDC":  "usd-coin",
	"USDT":  "tether",
}

// CoinGeckoProvider fetches prices from CoinGecko for cryptocurrencies.
type CoinGeckoProvider struct {
	client
	vsCurrency string
}

// NewCoinGeckoProvider creates a new CoinGecko price provider quoting in vsCurrency.
func NewCoinGeckoProvider(httpClient *http.Client, vsCurrency string, opts ...Option) *CoinGeckoProvider {
	if vsCurrency == "" {
		vsCurrency = "USD"
	}
	return &CoinGeckoProvider{
		client:     newClient(httpClient, coinGeckoBaseURL, opts...),
		vsCurrency: strings.ToLower(vsCurrency),
	}
}

// Name returns the provider's display name.
func (p *CoinGeckoProvider) Name() string { return "CoinGecko" }

// Supports returns true for crypto asset type only.
func (p *CoinGeckoProvider) Supports(assetType models.AssetType) bool {
	return assetType == models.AssetTypeCrypto
}

// FetchPrice fetches the current price from the simple price endpoint.
func (p *CoinGeckoProvider) FetchPrice(ctx context.Context, holding models.Holding) (decimal.Decimal, error) {
	symbol := strings.ToUpper(strings.TrimSpace(holding.Ticker))
	id, ok := coinGeckoIDs[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("no CoinGecko id for symbol %s", symbol)
	}

	endpoint := p.baseURL + "?ids=" + url.QueryEscape(id) + "&vs_currencies=" + url.QueryEscape(p.vsCurrency)

	var prices map[string]map[string]decimal.Decimal
	if err := p.getJSON(ctx, endpoint, &prices); err != nil {
		return decimal.Zero, err
	}

	price, ok := prices[id][p.vsCurrency]
	if !ok {
		return decimal.Zero, fmt.Errorf("coin %s not found in response", id)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price for %s", id)
	}
	return price, nil
}
