// Package metrics derives per-position figures from shares, cost basis and
// price. All arithmetic is exact decimal; division by zero yields an absent
// value instead of an error.
package metrics

import (
	"folio/internal/models"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the rounding applied to money and percentage figures when shown.
const DisplayPlaces = 2

var hundred = decimal.NewFromInt(100)

// MarketValue returns shares × price.
func MarketValue(shares, price decimal.Decimal) decimal.Decimal {
	return shares.Mul(price)
}

// Total sums market values. It is the batch barrier for Weight: every
// price must be resolved before it is called.
func Total(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Percent returns part / whole × 100, or absent when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.NullDecimal {
	if whole.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(part.Div(whole).Mul(hundred))
}

// Calculate computes the metrics of one position against the portfolio
// total market value. Values keep full precision.
func Calculate(shares, costBasis, price, totalMarketValue decimal.Decimal) models.Metrics {
	marketValue := MarketValue(shares, price)
	costValue := shares.Mul(costBasis)
	plDollar := marketValue.Sub(costValue)

	return models.Metrics{
		MarketValue: marketValue,
		CostValue:   costValue,
		PLDollar:    plDollar,
		PLPct:       Percent(plDollar, costValue),
		WeightPct:   Percent(marketValue, totalMarketValue),
	}
}

// Round returns a copy of m with every figure rounded to DisplayPlaces.
func Round(m models.Metrics) models.Metrics {
	return models.Metrics{
		MarketValue: m.MarketValue.Round(DisplayPlaces),
		CostValue:   m.CostValue.Round(DisplayPlaces),
		PLDollar:    m.PLDollar.Round(DisplayPlaces),
		PLPct:       RoundNull(m.PLPct, DisplayPlaces),
		WeightPct:   RoundNull(m.WeightPct, DisplayPlaces),
	}
}

// RoundNull rounds a present value and leaves an absent one absent.
func RoundNull(v decimal.NullDecimal, places int32) decimal.NullDecimal {
	if !v.Valid {
		return v
	}
	return decimal.NewNullDecimal(v.Decimal.Round(places))
}
