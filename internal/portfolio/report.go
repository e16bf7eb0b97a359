package portfolio

import (
	"slices"
	"time"

	"folio/internal/models"
	"folio/internal/pagination"

	"github.com/shopspring/decimal"
)

// InsightLimit is the size of each insights slice.
const InsightLimit = 5

// Report is the result of one processing run. Holdings keep input order.
type Report struct {
	RunID            string                 `json:"run_id"`
	GeneratedAt      time.Time              `json:"generated_at"`
	TotalMarketValue decimal.Decimal        `json:"total_market_value"`
	TotalCostValue   decimal.Decimal        `json:"total_cost_value"`
	TotalPLDollar    decimal.Decimal        `json:"total_pl_dollar"`
	TotalPLPct       decimal.NullDecimal    `json:"total_pl_pct"`
	Holdings         []models.ScoredHolding `json:"holdings"`
}

// Insights bundles the four digest views.
type Insights struct {
	Trims         []models.ScoredHolding `json:"trims"`
	Buys          []models.ScoredHolding `json:"buys"`
	Concentration []models.ScoredHolding `json:"concentration"`
	Movers        []models.ScoredHolding `json:"movers"`
}

// HoldingFilter selects and orders holdings for ListHoldings. Empty fields
// do not filter; an empty Sort means pl_dollar.
type HoldingFilter struct {
	AssetType models.AssetType
	Decision  models.Decision
	Sort      models.HoldingSortKey
}

// SortedByPLDollar returns every holding, largest dollar gain first.
func (r *Report) SortedByPLDollar() []models.ScoredHolding {
	return sortDesc(r.Holdings, models.SortByPLDollar)
}

// TrimCandidates returns the top holdings by dollar gain among those
// labelled Trim or Sell.
func (r *Report) TrimCandidates() []models.ScoredHolding {
	rows := withDecision(r.Holdings, models.DecisionTrim, models.DecisionSell)
	return top(sortDesc(rows, models.SortByPLDollar))
}

// BuyCandidates returns the highest-scoring holdings labelled Strong Buy or
// Buy / Hold.
func (r *Report) BuyCandidates() []models.ScoredHolding {
	rows := withDecision(r.Holdings, models.DecisionStrongBuy, models.DecisionBuyHold)
	return top(sortDesc(rows, models.SortByScore))
}

// Concentration returns the largest holdings by portfolio weight.
func (r *Report) Concentration() []models.ScoredHolding {
	return top(sortDesc(r.Holdings, models.SortByWeightPct))
}

// Movers returns the holdings with the largest percentage gain.
func (r *Report) Movers() []models.ScoredHolding {
	return top(sortDesc(r.Holdings, models.SortByPLPct))
}

// Insights builds all four digest views.
func (r *Report) Insights() Insights {
	return Insights{
		Trims:         r.TrimCandidates(),
		Buys:          r.BuyCandidates(),
		Concentration: r.Concentration(),
		Movers:        r.Movers(),
	}
}

// ListHoldings filters, sorts and pages the report's holdings.
func (r *Report) ListHoldings(filter HoldingFilter, page pagination.PageRequest) pagination.PageResponse[models.ScoredHolding] {
	rows := make([]models.ScoredHolding, 0, len(r.Holdings))
	for _, h := range r.Holdings {
		if filter.AssetType != "" && h.AssetType != filter.AssetType {
			continue
		}
		if filter.Decision != "" && h.Decision != filter.Decision {
			continue
		}
		rows = append(rows, h)
	}

	key := filter.Sort
	if key == "" {
		key = models.SortByPLDollar
	}
	return pagination.Slice(sortDesc(rows, key), page)
}

func withDecision(rows []models.ScoredHolding, decisions ...models.Decision) []models.ScoredHolding {
	var out []models.ScoredHolding
	for _, h := range rows {
		if slices.Contains(decisions, h.Decision) {
			out = append(out, h)
		}
	}
	return out
}

func top(rows []models.ScoredHolding) []models.ScoredHolding {
	if len(rows) > InsightLimit {
		return rows[:InsightLimit]
	}
	return rows
}

// sortDesc returns a copy of rows ordered by key, largest first. Absent
// values sort last and ties keep their input order.
func sortDesc(rows []models.ScoredHolding, key models.HoldingSortKey) []models.ScoredHolding {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b models.ScoredHolding) int {
		av, bv := sortValue(a, key), sortValue(b, key)
		switch {
		case !av.Valid && !bv.Valid:
			return 0
		case !av.Valid:
			return 1
		case !bv.Valid:
			return -1
		}
		return bv.Decimal.Cmp(av.Decimal)
	})
	return out
}

func sortValue(h models.ScoredHolding, key models.HoldingSortKey) decimal.NullDecimal {
	switch key {
	case models.SortByPLPct:
		return h.PLPct
	case models.SortByWeightPct:
		return h.WeightPct
	case models.SortByScore:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(h.Score)))
	case models.SortByMarketValue:
		return decimal.NewNullDecimal(h.MarketValue)
	default:
		return decimal.NewNullDecimal(h.PLDollar)
	}
}
