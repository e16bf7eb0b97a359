package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

// v8ChartResponse builds a v8 chart JSON response for a single symbol.
func v8ChartResponse(symbol string, price float64) yahooChartResponse {
	var resp yahooChartResponse
	resp.Chart.Result = []yahooChartResult{{Meta: yahooChartMeta{
		Symbol:             symbol,
		Currency:           "USD",
		RegularMarketPrice: decimal.NewNullDecimal(decimal.NewFromFloat(price)),
	}}}
	return resp
}

// v8ChartErrorResponse builds a v8 chart error JSON response.
func v8ChartErrorResponse(code, description string) yahooChartResponse {
	var resp yahooChartResponse
	resp.Chart.Error = &yahooError{Code: code, Description: description}
	return resp
}

// newV8MockServer creates a test server that serves v8 chart responses per symbol.
// Tickers not in priceMap get a chart error.
func newV8MockServer(priceMap map[string]float64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := strings.TrimPrefix(r.URL.Path, yahooChartPath)
		w.Header().Set("Content-Type", "application/json")

		price, ok := priceMap[ticker]
		if !ok {
			_ = json.NewEncoder(w).Encode(v8ChartErrorResponse("Not Found", "No data found, symbol may be delisted"))
			return
		}
		_ = json.NewEncoder(w).Encode(v8ChartResponse(ticker, price))
	}))
}

func stock(ticker string) models.Holding {
	return models.Holding{AssetType: models.AssetTypeStock, Ticker: ticker}
}

func TestYahooProvider_Supports(t *testing.T) {
	p := NewYahooProvider(http.DefaultClient, "USD")

	supported := []models.AssetType{models.AssetTypeStock, models.AssetTypeCrypto}
	for _, at := range supported {
		if !p.Supports(at) {
			t.Errorf("expected Supports(%q) = true", at)
		}
	}

	unsupported := []models.AssetType{models.AssetTypeCD, models.AssetTypeBond, models.AssetTypeCash, ""}
	for _, at := range unsupported {
		if p.Supports(at) {
			t.Errorf("expected Supports(%q) = false", at)
		}
	}
}

func TestYahooProvider_Symbol(t *testing.T) {
	p := NewYahooProvider(http.DefaultClient, "usd")

	if got := p.Symbol(stock(" aapl ")); got != "AAPL" {
		t.Errorf("expected AAPL, got %s", got)
	}
	crypto := models.Holding{AssetType: models.AssetTypeCrypto, Ticker: "btc"}
	if got := p.Symbol(crypto); got != "BTC-USD" {
		t.Errorf("expected BTC-USD, got %s", got)
	}
}

func TestYahooProvider_FetchPrice_Success(t *testing.T) {
	server := newV8MockServer(map[string]float64{
		"AAPL":    178.72,
		"ETH-USD": 3456.78,
	})
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	price, err := p.FetchPrice(context.Background(), stock("AAPL"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("178.72")) {
		t.Errorf("expected 178.72, got %s", price)
	}

	price, err = p.FetchPrice(context.Background(), models.Holding{AssetType: models.AssetTypeCrypto, Ticker: "ETH"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("3456.78")) {
		t.Errorf("expected 3456.78, got %s", price)
	}
}

func TestYahooProvider_FetchPrice_ChartError(t *testing.T) {
	server := newV8MockServer(map[string]float64{})
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	_, err := p.FetchPrice(context.Background(), stock("DELISTED"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Not Found") {
		t.Errorf("expected error to mention 'Not Found', got: %v", err)
	}
}

func TestYahooProvider_FetchPrice_ZeroPrice(t *testing.T) {
	server := newV8MockServer(map[string]float64{"DEAD": 0})
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	price, err := p.FetchPrice(context.Background(), stock("DEAD"))
	if err != nil {
		t.Fatalf("expected a zero quote to be accepted, got: %v", err)
	}
	if !price.IsZero() {
		t.Errorf("expected price 0, got %s", price)
	}
}

func TestYahooProvider_FetchPrice_NegativePrice(t *testing.T) {
	server := newV8MockServer(map[string]float64{"BAD": -1.5})
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	_, err := p.FetchPrice(context.Background(), stock("BAD"))
	if err == nil || !strings.Contains(err.Error(), "negative price for BAD") {
		t.Errorf("expected error about negative price, got: %v", err)
	}
}

func TestYahooProvider_FetchPrice_MissingPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"AAPL","regularMarketPrice":null}}],"error":null}}`))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	_, err := p.FetchPrice(context.Background(), stock("AAPL"))
	if err == nil || !strings.Contains(err.Error(), "no price for AAPL") {
		t.Errorf("expected error about missing price, got: %v", err)
	}
}

func TestYahooProvider_FetchPrice_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	_, err := p.FetchPrice(context.Background(), stock("AAPL"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got: %v", err)
	}
}

func TestYahooProvider_FetchPrice_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	_, err := p.FetchPrice(context.Background(), stock("AAPL"))
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected error to mention 500, got: %v", err)
	}
}

func TestYahooProvider_FetchPrice_SendsUserAgent(t *testing.T) {
	var gotUA, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(v8ChartResponse("AAPL", 1))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))
	if _, err := p.FetchPrice(context.Background(), stock("AAPL")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != browserUA {
		t.Errorf("expected browser user agent, got %q", gotUA)
	}
	if gotQuery != "interval=1d&range=1d" {
		t.Errorf("expected daily range query, got %q", gotQuery)
	}
}

func TestYahooProvider_FetchPrice_ContextCanceled(t *testing.T) {
	server := newV8MockServer(map[string]float64{"AAPL": 1})
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.FetchPrice(ctx, stock("AAPL")); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

const quoteSummaryJSON = `{
  "quoteSummary": {
    "result": [{
      "summaryDetail": {
        "trailingPE": {"raw": 31.25, "fmt": "31.25"},
        "forwardPE": {},
        "priceToSalesTrailing12Months": {"raw": 7.8, "fmt": "7.80"},
        "beta": {"raw": 1.21, "fmt": "1.21"}
      },
      "defaultKeyStatistics": {
        "forwardPE": {"raw": 27.5, "fmt": "27.50"},
        "profitMargins": {"raw": 0.253, "fmt": "25.30%"},
        "earningsQuarterlyGrowth": {"raw": 0.108, "fmt": "10.80%"}
      },
      "financialData": {
        "revenueGrowth": {"raw": 0.061, "fmt": "6.10%"},
        "recommendationMean": {"raw": 2.1, "fmt": "2.10"},
        "targetMeanPrice": {}
      }
    }],
    "error": null
  }
}`

func TestYahooProvider_ResolveFundamentals(t *testing.T) {
	var gotPath, gotModules string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotModules = r.URL.Query().Get("modules")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(quoteSummaryJSON))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	f, err := p.ResolveFundamentals(context.Background(), "msft")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != yahooSummaryPath+"MSFT" {
		t.Errorf("expected summary path for MSFT, got %s", gotPath)
	}
	if gotModules != yahooSummaryModules {
		t.Errorf("expected modules %q, got %q", yahooSummaryModules, gotModules)
	}

	expected := map[string]string{
		"pe":             "31.25",
		"forward_pe":     "27.5",
		"ps":             "7.8",
		"profit_margin":  "0.253",
		"revenue_growth": "0.061",
		"eps_growth":     "0.108",
		"beta":           "1.21",
		"analyst_score":  "2.1",
	}
	for _, field := range f.Fields() {
		want, ok := expected[field.Name]
		if !ok {
			if field.Value.Valid {
				t.Errorf("%s: expected absent, got %s", field.Name, field.Value.Decimal)
			}
			continue
		}
		if !field.Value.Valid {
			t.Errorf("%s: expected %s, got absent", field.Name, want)
			continue
		}
		if !field.Value.Decimal.Equal(decimal.RequireFromString(want)) {
			t.Errorf("%s: expected %s, got %s", field.Name, want, field.Value.Decimal)
		}
	}
}

func TestYahooProvider_ResolveFundamentals_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for ticker symbol: ZZZZ"}}}`))
	}))
	defer server.Close()

	p := NewYahooProvider(server.Client(), "USD", WithBaseURL(server.URL))

	f, err := p.ResolveFundamentals(context.Background(), "ZZZZ")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Quote not found") {
		t.Errorf("expected description in error, got: %v", err)
	}
	if !f.IsEmpty() {
		t.Error("expected empty fundamentals on error")
	}
}
