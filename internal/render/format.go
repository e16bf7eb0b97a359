// Package render formats scored holdings for display and renders the HTML
// pages. Nothing here feeds back into scoring.
package render

import (
	"html/template"
	"strconv"

	"folio/internal/metrics"
	"folio/internal/models"

	"github.com/shopspring/decimal"
)

const (
	sharePlaces       = 3
	fundamentalPlaces = 2
)

// Columns are the table headers, in display order.
var Columns = []string{
	"asset_type", "ticker", "shares", "cost_basis", "current_price",
	"market_value", "cost_value", "pl_dollar", "pl_pct", "weight_pct",
	"pe", "forward_pe", "ps", "profit_margin", "revenue_growth",
	"eps_growth", "beta", "analyst_score", "target_price",
	"score", "decision", "insights",
}

// DisplayRow is a scored holding coerced to strings, plus the cell styles
// derived from it.
type DisplayRow struct {
	AssetType     string
	Ticker        string
	Shares        string
	CostBasis     string
	CurrentPrice  string
	MarketValue   string
	CostValue     string
	PLDollar      string
	PLPct         string
	WeightPct     string
	PE            string
	ForwardPE     string
	PS            string
	ProfitMargin  string
	RevenueGrowth string
	EPSGrowth     string
	Beta          string
	AnalystScore  string
	TargetPrice   string
	Score         string
	Decision      string
	Insight       string

	PLDollarStyle template.CSS
	PLPctStyle    template.CSS
	DecisionStyle template.CSS
}

// Cell is one rendered table cell.
type Cell struct {
	Text  string
	Style template.CSS
}

// FormatRecord converts h for display. Money and percentages are fixed to
// two places, shares rounded to three, fundamentals rounded to two and
// blank for non-stock rows. Absent values are blank.
func FormatRecord(h models.ScoredHolding) DisplayRow {
	row := DisplayRow{
		AssetType:    string(h.AssetType),
		Ticker:       h.Ticker,
		Shares:       h.Shares.Round(sharePlaces).String(),
		CostBasis:    h.CostBasis.String(),
		CurrentPrice: money(h.CurrentPrice),
		MarketValue:  money(h.MarketValue),
		CostValue:    money(h.CostValue),
		PLDollar:     money(h.PLDollar),
		PLPct:        percent(h.PLPct),
		WeightPct:    percent(h.WeightPct),
		Score:        strconv.Itoa(h.Score),
		Decision:     string(h.Decision),
		Insight:      h.Insight,

		PLDollarStyle: PLStyle(decimal.NewNullDecimal(h.PLDollar.Round(metrics.DisplayPlaces))),
		PLPctStyle:    PLStyle(metrics.RoundNull(h.PLPct, metrics.DisplayPlaces)),
		DecisionStyle: DecisionStyle(h.Decision),
	}

	if h.IsStock() {
		row.PE = fundamental(h.PE)
		row.ForwardPE = fundamental(h.ForwardPE)
		row.PS = fundamental(h.PS)
		row.ProfitMargin = fundamental(h.ProfitMargin)
		row.RevenueGrowth = fundamental(h.RevenueGrowth)
		row.EPSGrowth = fundamental(h.EPSGrowth)
		row.Beta = fundamental(h.Beta)
		row.AnalystScore = fundamental(h.AnalystScore)
		row.TargetPrice = fundamental(h.TargetPrice)
	}
	return row
}

// Cells returns the row in Columns order. Unstyled rows carry no CSS.
func (r DisplayRow) Cells(styled bool) []Cell {
	cells := []Cell{
		{Text: r.AssetType}, {Text: r.Ticker}, {Text: r.Shares}, {Text: r.CostBasis}, {Text: r.CurrentPrice},
		{Text: r.MarketValue}, {Text: r.CostValue}, {Text: r.PLDollar}, {Text: r.PLPct}, {Text: r.WeightPct},
		{Text: r.PE}, {Text: r.ForwardPE}, {Text: r.PS}, {Text: r.ProfitMargin}, {Text: r.RevenueGrowth},
		{Text: r.EPSGrowth}, {Text: r.Beta}, {Text: r.AnalystScore}, {Text: r.TargetPrice},
		{Text: r.Score}, {Text: r.Decision}, {Text: r.Insight},
	}
	if styled {
		cells[7].Style = r.PLDollarStyle
		cells[8].Style = r.PLPctStyle
		cells[20].Style = r.DecisionStyle
	}
	return cells
}

// PLStyle colors gains green and losses red. Zero and absent are unstyled.
// Callers pass the displayed (rounded) value so color matches the text.
func PLStyle(v decimal.NullDecimal) template.CSS {
	switch {
	case !v.Valid:
		return ""
	case v.Decimal.IsPositive():
		return "background-color:#d8ffd8;"
	case v.Decimal.IsNegative():
		return "background-color:#ffd8d8;"
	}
	return ""
}

var decisionStyles = map[models.Decision]template.CSS{
	models.DecisionStrongBuy: "background-color:#b3e6ff;",
	models.DecisionBuyHold:   "background-color:#e6f7ff;",
	models.DecisionReview:    "background-color:#f0f0f0;",
	models.DecisionTrim:      "background-color:#ffe6b3;",
	models.DecisionSell:      "background-color:#ffcccc;",
}

// DecisionStyle returns the background for a decision label.
func DecisionStyle(d models.Decision) template.CSS {
	return decisionStyles[d]
}

func money(v decimal.Decimal) string {
	return v.StringFixed(metrics.DisplayPlaces)
}

func percent(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.StringFixed(metrics.DisplayPlaces)
}

func fundamental(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.Round(fundamentalPlaces).String()
}
