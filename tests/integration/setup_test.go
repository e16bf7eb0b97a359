package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"folio/internal/handlers"
	"folio/internal/logger"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/portfolio"
	"folio/internal/provider"
	"folio/internal/render"
	"folio/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Quotes *quoteServer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// quoteServer stands in for Yahoo Finance. Symbols missing from prices get a
// chart error; symbols missing from fundamentals get a 404.
type quoteServer struct {
	*httptest.Server
	prices       map[string]string
	fundamentals map[string]string
	requests     atomic.Int64
}

func newQuoteServer(t *testing.T, prices, fundamentals map[string]string) *quoteServer {
	t.Helper()
	qs := &quoteServer{prices: prices, fundamentals: fundamentals}
	qs.Server = httptest.NewServer(http.HandlerFunc(qs.serve))
	t.Cleanup(qs.Close)
	return qs
}

func (qs *quoteServer) serve(w http.ResponseWriter, r *http.Request) {
	qs.requests.Add(1)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
		symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
		price, ok := qs.prices[symbol]
		if !ok {
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
			return
		}
		fmt.Fprintf(w, `{"chart":{"result":[{"meta":{"symbol":%q,"currency":"USD","regularMarketPrice":%s}}],"error":null}}`, symbol, price)

	case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
		symbol := strings.TrimPrefix(r.URL.Path, "/v10/finance/quoteSummary/")
		body, ok := qs.fundamentals[symbol]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found"}}}`)
			return
		}
		fmt.Fprintf(w, `{"quoteSummary":{"result":[%s],"error":null}}`, body)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// setupIsolatedDB creates an isolated in-memory SQLite database seeded with holdings.
func setupIsolatedDB(t *testing.T, holdings []models.Holding) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Holding{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := portfolio.NewRepository(db).ReplaceAll(context.Background(), holdings); err != nil {
		t.Fatalf("failed to seed holdings: %v", err)
	}
	return db
}

// setupApp creates a full application stack: database holdings, a fake quote
// service behind the real Yahoo provider, the portfolio service and the router.
func setupApp(t *testing.T, holdings []models.Holding, prices, fundamentals map[string]string) *testApp {
	t.Helper()

	db := setupIsolatedDB(t, holdings)
	quotes := newQuoteServer(t, prices, fundamentals)

	yahoo := provider.NewYahooProvider(quotes.Client(), "USD",
		provider.WithBaseURL(quotes.URL), provider.WithRateLimit(1000))
	router := provider.NewRouter(provider.NewOverrideTable(nil), yahoo)
	service := portfolio.NewService(portfolio.NewRepository(db), router, yahoo, 3)
	portfolioHandler := handlers.NewPortfolioHandler(service)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogging())
	engine.Use(middleware.ErrorHandler())
	engine.SetHTMLTemplate(render.Templates())

	engine.GET("/", portfolioHandler.Index)
	engine.GET("/insights", portfolioHandler.InsightsPage)
	v1 := engine.Group("/api/v1")
	v1.GET("/portfolio", portfolioHandler.GetPortfolio)
	v1.GET("/holdings", portfolioHandler.ListHoldings)
	v1.GET("/insights", portfolioHandler.GetInsights)

	return &testApp{DB: db, Router: engine, Quotes: quotes}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// byTicker indexes a JSON list of holdings by ticker.
func byTicker(t *testing.T, rows interface{}) map[string]map[string]interface{} {
	t.Helper()
	list, ok := rows.([]interface{})
	if !ok {
		t.Fatalf("expected a list of holdings, got %T", rows)
	}
	out := make(map[string]map[string]interface{}, len(list))
	for _, row := range list {
		h := row.(map[string]interface{})
		out[h["ticker"].(string)] = h
	}
	return out
}

func tickers(t *testing.T, rows interface{}) []string {
	t.Helper()
	list, ok := rows.([]interface{})
	if !ok {
		t.Fatalf("expected a list of holdings, got %T", rows)
	}
	out := make([]string, len(list))
	for i, row := range list {
		out[i] = row.(map[string]interface{})["ticker"].(string)
	}
	return out
}
