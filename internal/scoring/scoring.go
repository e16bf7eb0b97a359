// Package scoring maps a holding's metrics and fundamentals to a signed
// score, a recommendation label and a short rationale. Every function here
// is pure: the same input always yields the same output, and absent inputs
// never contribute.
package scoring

import (
	"strings"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

// Thresholds of the rule set.
var (
	largeGainPct      = decimal.NewFromInt(80)
	largeLossPct      = decimal.NewFromInt(-20)
	concentrationPct  = decimal.NewFromInt(7)
	highPE            = decimal.NewFromInt(40)
	cheapForwardPE    = decimal.NewFromInt(20)
	analystBuyScore   = decimal.RequireFromString("2.5")
	analystBullScore  = decimal.NewFromInt(2) // insight only; scoring uses analystBuyScore
	insightSeparator  = "; "
	insightWhenStable = "Stable"
)

// Input is the subset of a holding the rules read.
type Input struct {
	PLPct        decimal.NullDecimal
	WeightPct    decimal.NullDecimal
	PE           decimal.NullDecimal
	ForwardPE    decimal.NullDecimal
	AnalystScore decimal.NullDecimal
}

// Result is the outcome of evaluating one holding.
type Result struct {
	Score    int
	Decision models.Decision
	Insight  string
}

// InputFrom selects the scored fields from full-precision metrics and fundamentals.
func InputFrom(m models.Metrics, f models.Fundamentals) Input {
	return Input{
		PLPct:        m.PLPct,
		WeightPct:    m.WeightPct,
		PE:           f.PE,
		ForwardPE:    f.ForwardPE,
		AnalystScore: f.AnalystScore,
	}
}

// Evaluate scores in and derives the decision and insight.
func Evaluate(in Input) Result {
	score := Score(in)
	return Result{
		Score:    score,
		Decision: Decide(score),
		Insight:  Insight(in),
	}
}

// Score applies each rule once. Rules are independent, so their order does
// not affect the sum.
func Score(in Input) int {
	score := 0

	if above(in.PLPct, largeGainPct) {
		score--
	}
	if above(in.WeightPct, concentrationPct) {
		score--
	}
	if below(in.PLPct, largeLossPct) {
		score--
	}

	if above(in.PE, highPE) {
		score--
	}
	if below(in.ForwardPE, cheapForwardPE) {
		score++
	}
	if below(in.AnalystScore, analystBuyScore) {
		score++
	}

	return score
}

// Decide maps a score to its label.
func Decide(score int) models.Decision {
	switch {
	case score >= 2:
		return models.DecisionStrongBuy
	case score == 1:
		return models.DecisionBuyHold
	case score == 0:
		return models.DecisionReview
	case score == -1:
		return models.DecisionTrim
	default:
		return models.DecisionSell
	}
}

// Insight joins the phrases of every matched condition in a fixed order,
// or returns "Stable" when none match.
func Insight(in Input) string {
	var phrases []string

	if above(in.PLPct, largeGainPct) {
		phrases = append(phrases, "Large unrealized gain")
	}
	if below(in.PLPct, largeLossPct) {
		phrases = append(phrases, "Large loss")
	}
	if above(in.WeightPct, concentrationPct) {
		phrases = append(phrases, "High concentration")
	}
	if above(in.PE, highPE) {
		phrases = append(phrases, "High valuation")
	}
	if below(in.AnalystScore, analystBullScore) {
		phrases = append(phrases, "Analysts bullish")
	}

	if len(phrases) == 0 {
		return insightWhenStable
	}
	return strings.Join(phrases, insightSeparator)
}

func above(v decimal.NullDecimal, threshold decimal.Decimal) bool {
	return v.Valid && v.Decimal.GreaterThan(threshold)
}

func below(v decimal.NullDecimal, threshold decimal.Decimal) bool {
	return v.Valid && v.Decimal.LessThan(threshold)
}
