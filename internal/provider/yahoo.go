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

const (
	yahooBaseURL        = "https://query1.finance.yahoo.com"
	yahooChartPath      = "/v8/finance/chart/"
	yahooSummaryPath    = "/v10/finance/quoteSummary/"
	yahooSummaryModules = "summaryDetail,defaultKeyStatistics,financialData"
)

type yahooChartMeta struct {
	Symbol             string              `json:"symbol"`
	Currency           string              `json:"currency"`
	RegularMarketPrice decimal.NullDecimal `json:"regularMarketPrice"`
}

type yahooChartResult struct {
	Meta yahooChartMeta `json:"meta"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooChartResponse is the v8 chart endpoint response.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooError        `json:"error"`
	} `json:"chart"`
}

// yahooValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} wrapper; an empty
// object means the figure is not reported.
type yahooValue struct {
	Raw decimal.NullDecimal `json:"raw"`
}

type yahooSummaryResult struct {
	SummaryDetail struct {
		TrailingPE                   yahooValue `json:"trailingPE"`
		ForwardPE                    yahooValue `json:"forwardPE"`
		PriceToSalesTrailing12Months yahooValue `json:"priceToSalesTrailing12Months"`
		Beta                         yahooValue `json:"beta"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		ForwardPE               yahooValue `json:"forwardPE"`
		ProfitMargins           yahooValue `json:"profitMargins"`
		EarningsQuarterlyGrowth yahooValue `json:"earningsQuarterlyGrowth"`
		Beta                    yahooValue `json:"beta"`
	} `json:"defaultKeyStatistics"`
	FinancialData struct {
		ProfitMargins      yahooValue `json:"profitMargins"`
		RevenueGrowth      yahooValue `json:"revenueGrowth"`
		RecommendationMean yahooValue `json:"recommendationMean"`
		TargetMeanPrice    yahooValue `json:"targetMeanPrice"`
	} `json:"financialData"`
}

// yahooSummaryResponse is the v10 quoteSummary endpoint response.
type yahooSummaryResponse struct {
	QuoteSummary struct {
		Result []yahooSummaryResult `json:"result"`
		Error  *yahooError          `json:"error"`
	} `json:"quoteSummary"`
}

// YahooProvider fetches stock and crypto quotes and stock fundamentals from
// Yahoo Finance. Price and fundamentals calls share one rate limiter.
type YahooProvider struct {
	client
	quoteCurrency string
}

// NewYahooProvider creates a new Yahoo Finance provider. Crypto tickers are
// quoted as {TICKER}-{quoteCurrency}.
func NewYahooProvider(httpClient *http.Client, quoteCurrency string, opts ...Option) *YahooProvider {
	if quoteCurrency == "" {
		quoteCurrency = "USD"
	}
	return &YahooProvider{
		client:        newClient(httpClient, yahooBaseURL, opts...),
		quoteCurrency: strings.ToUpper(quoteCurrency),
	}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "Yahoo Finance" }

// Supports returns true for stock and crypto asset types.
func (p *YahooProvider) Supports(assetType models.AssetType) bool {
	switch assetType {
	case models.AssetTypeStock, models.AssetTypeCrypto:
		return true
	default:
		return false
	}
}

// Symbol converts a holding to its Yahoo ticker.
func (p *YahooProvider) Symbol(holding models.Holding) string {
	ticker := strings.ToUpper(strings.TrimSpace(holding.Ticker))
	if holding.AssetType == models.AssetTypeCrypto {
		return ticker + "-" + p.quoteCurrency
	}
	return ticker
}

// FetchPrice returns the regular market price from the chart endpoint.
func (p *YahooProvider) FetchPrice(ctx context.Context, holding models.Holding) (decimal.Decimal, error) {
	symbol := p.Symbol(holding)
	endpoint := p.baseURL + yahooChartPath + url.PathEscape(symbol) + "?interval=1d&range=1d"

	var chart yahooChartResponse
	if err := p.getJSON(ctx, endpoint, &chart); err != nil {
		return decimal.Zero, err
	}
	if e := chart.Chart.Error; e != nil {
		return decimal.Zero, fmt.Errorf("chart error for %s: %s: %s", symbol, e.Code, e.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("symbol %s not found in response", symbol)
	}

	price := chart.Chart.Result[0].Meta.RegularMarketPrice
	if !price.Valid {
		return decimal.Zero, fmt.Errorf("no price for %s", symbol)
	}
	if price.Decimal.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price for %s", symbol)
	}
	return price.Decimal, nil
}

// ResolveFundamentals reads the summary, key statistics and financial data
// modules and maps them onto Fundamentals.
func (p *YahooProvider) ResolveFundamentals(ctx context.Context, ticker string) (models.Fundamentals, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	endpoint := p.baseURL + yahooSummaryPath + url.PathEscape(symbol) + "?modules=" + url.QueryEscape(yahooSummaryModules)

	var summary yahooSummaryResponse
	if err := p.getJSON(ctx, endpoint, &summary); err != nil {
		return models.Fundamentals{}, err
	}
	if e := summary.QuoteSummary.Error; e != nil {
		return models.Fundamentals{}, fmt.Errorf("quote summary error for %s: %s: %s", symbol, e.Code, e.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return models.Fundamentals{}, fmt.Errorf("no quote summary for %s", symbol)
	}

	r := summary.QuoteSummary.Result[0]
	return models.Fundamentals{
		PE:            r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:     firstPresent(r.SummaryDetail.ForwardPE, r.DefaultKeyStatistics.ForwardPE),
		PS:            r.SummaryDetail.PriceToSalesTrailing12Months.Raw,
		ProfitMargin:  firstPresent(r.DefaultKeyStatistics.ProfitMargins, r.FinancialData.ProfitMargins),
		RevenueGrowth: r.FinancialData.RevenueGrowth.Raw,
		EPSGrowth:     r.DefaultKeyStatistics.EarningsQuarterlyGrowth.Raw,
		Beta:          firstPresent(r.SummaryDetail.Beta, r.DefaultKeyStatistics.Beta),
		AnalystScore:  r.FinancialData.RecommendationMean.Raw,
		TargetPrice:   r.FinancialData.TargetMeanPrice.Raw,
	}, nil
}

func firstPresent(values ...yahooValue) decimal.NullDecimal {
	for _, v := range values {
		if v.Raw.Valid {
			return v.Raw
		}
	}
	return decimal.NullDecimal{}
}
