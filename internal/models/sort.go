package models

// HoldingSortKey names a column scored holdings can be ranked by.
type HoldingSortKey string

const (
	SortByPLDollar    HoldingSortKey = "pl_dollar"
	SortByPLPct       HoldingSortKey = "pl_pct"
	SortByWeightPct   HoldingSortKey = "weight_pct"
	SortByScore       HoldingSortKey = "score"
	SortByMarketValue HoldingSortKey = "market_value"
)

// IsValid reports whether k is a supported sort key.
func (k HoldingSortKey) IsValid() bool {
	switch k {
	case SortByPLDollar, SortByPLPct, SortByWeightPct, SortByScore, SortByMarketValue:
		return true
	}
	return false
}
