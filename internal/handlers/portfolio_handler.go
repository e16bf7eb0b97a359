package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "folio/internal/errors"
	"folio/internal/metrics"
	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/portfolio"
	"folio/internal/render"
)

// PortfolioHandler serves the portfolio views. Every request runs the full
// pipeline; nothing is cached between requests.
type PortfolioHandler struct {
	processor portfolio.Processor
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(processor portfolio.Processor) *PortfolioHandler {
	return &PortfolioHandler{processor: processor}
}

// ListHoldingsRequest holds the query parameters of ListHoldings.
type ListHoldingsRequest struct {
	AssetType string `form:"asset_type" binding:"omitempty,asset_type"`
	Decision  string `form:"decision" binding:"omitempty,decision"`
	Sort      string `form:"sort" binding:"omitempty,holding_sort"`
	pagination.PageRequest
}

// Index renders the full holdings table sorted by dollar P/L.
func (h *PortfolioHandler) Index(c *gin.Context) {
	report, err := h.processor.Process(c.Request.Context())
	if err != nil {
		respondWithPage(c, err)
		return
	}
	c.HTML(http.StatusOK, render.IndexTemplate, render.NewIndexPage(report))
}

// InsightsPage renders the trim, buy, concentration and movers digest.
func (h *PortfolioHandler) InsightsPage(c *gin.Context) {
	report, err := h.processor.Process(c.Request.Context())
	if err != nil {
		respondWithPage(c, err)
		return
	}
	c.HTML(http.StatusOK, render.InsightsTemplate, render.NewInsightsPage(report))
}

// GetPortfolio handles a full processing run as JSON.
// @Summary     Get portfolio
// @Description Price, measure and score every holding. Holdings keep input order.
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} portfolio.Report "Scored portfolio"
// @Failure     422 {object} ErrorResponse    "Invalid holding or unknown asset type"
// @Failure     500 {object} ErrorResponse    "Portfolio could not be loaded"
// @Failure     502 {object} ErrorResponse    "Price unavailable"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	report, err := h.processor.Process(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, roundReport(report))
}

// ListHoldings handles filtered, sorted and paginated holdings.
// @Summary     List holdings
// @Description List scored holdings, largest first by the chosen column
// @Tags        portfolio
// @Produce     json
// @Param       asset_type query string false "stock, crypto, cd, bond or cash"
// @Param       decision   query string false "Strong Buy, Buy / Hold, Review, Trim or Sell"
// @Param       sort       query string false "pl_dollar (default), pl_pct, weight_pct, score or market_value"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.ScoredHolding] "Paginated holdings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Price unavailable"
// @Router      /holdings [get]
func (h *PortfolioHandler) ListHoldings(c *gin.Context) {
	var req ListHoldingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.processor.Process(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := portfolio.HoldingFilter{
		AssetType: models.NormalizeAssetType(req.AssetType),
		Decision:  models.Decision(req.Decision),
		Sort:      models.HoldingSortKey(req.Sort),
	}
	page := report.ListHoldings(filter, req.PageRequest)
	page.Data = roundHoldings(page.Data)
	c.JSON(http.StatusOK, page)
}

// GetInsights handles the four insight slices as JSON.
// @Summary     Get insights
// @Description Top five trim candidates, buy candidates, largest weights and largest movers
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} portfolio.Insights "Insight slices"
// @Failure     502 {object} ErrorResponse      "Price unavailable"
// @Router      /insights [get]
func (h *PortfolioHandler) GetInsights(c *gin.Context) {
	report, err := h.processor.Process(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	ins := report.Insights()
	c.JSON(http.StatusOK, portfolio.Insights{
		Trims:         roundHoldings(ins.Trims),
		Buys:          roundHoldings(ins.Buys),
		Concentration: roundHoldings(ins.Concentration),
		Movers:        roundHoldings(ins.Movers),
	})
}

func roundReport(r *portfolio.Report) *portfolio.Report {
	out := *r
	out.TotalMarketValue = r.TotalMarketValue.Round(metrics.DisplayPlaces)
	out.TotalCostValue = r.TotalCostValue.Round(metrics.DisplayPlaces)
	out.TotalPLDollar = r.TotalPLDollar.Round(metrics.DisplayPlaces)
	out.TotalPLPct = metrics.RoundNull(r.TotalPLPct, metrics.DisplayPlaces)
	out.Holdings = roundHoldings(r.Holdings)
	return &out
}

// roundHoldings returns display-rounded copies; the report itself keeps
// full precision.
func roundHoldings(rows []models.ScoredHolding) []models.ScoredHolding {
	out := make([]models.ScoredHolding, len(rows))
	for i, h := range rows {
		h.CurrentPrice = h.CurrentPrice.Round(metrics.DisplayPlaces)
		h.Metrics = metrics.Round(h.Metrics)
		f := &h.Fundamentals
		for _, v := range []*decimal.NullDecimal{
			&f.PE, &f.ForwardPE, &f.PS, &f.ProfitMargin, &f.RevenueGrowth,
			&f.EPSGrowth, &f.Beta, &f.AnalystScore, &f.TargetPrice,
		} {
			*v = metrics.RoundNull(*v, metrics.DisplayPlaces)
		}
		out[i] = h
	}
	return out
}
