package models

import "github.com/shopspring/decimal"

// Decision is the recommendation label derived from a holding's score.
type Decision string

const (
	DecisionStrongBuy Decision = "Strong Buy"
	DecisionBuyHold   Decision = "Buy / Hold"
	DecisionReview    Decision = "Review"
	DecisionTrim      Decision = "Trim"
	DecisionSell      Decision = "Sell"
)

// Decisions lists every label from strongest to weakest recommendation.
var Decisions = []Decision{DecisionStrongBuy, DecisionBuyHold, DecisionReview, DecisionTrim, DecisionSell}

// IsValid reports whether d is one of the fixed labels.
func (d Decision) IsValid() bool {
	for _, known := range Decisions {
		if d == known {
			return true
		}
	}
	return false
}

// Metrics are the per-position figures derived from price and cost.
// Values keep full precision; rounding is a display concern.
type Metrics struct {
	MarketValue decimal.Decimal     `json:"market_value"`
	CostValue   decimal.Decimal     `json:"cost_value"`
	PLDollar    decimal.Decimal     `json:"pl_dollar"`
	PLPct       decimal.NullDecimal `json:"pl_pct"`     // absent when cost value is zero
	WeightPct   decimal.NullDecimal `json:"weight_pct"` // absent when the portfolio total is zero
}

// ScoredHolding is the final per-row output of a processing run.
type ScoredHolding struct {
	Holding
	CurrentPrice decimal.Decimal `json:"current_price"`
	Metrics
	Fundamentals
	Score    int      `json:"score"`
	Decision Decision `json:"decision"`
	Insight  string   `json:"insight"`
}
