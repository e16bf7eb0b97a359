package models

import "github.com/shopspring/decimal"

// Fundamentals holds company-level ratios for a stock. Every field is
// independently optional; an invalid NullDecimal means the value is absent.
type Fundamentals struct {
	PE            decimal.NullDecimal `json:"pe"`
	ForwardPE     decimal.NullDecimal `json:"forward_pe"`
	PS            decimal.NullDecimal `json:"ps"`
	ProfitMargin  decimal.NullDecimal `json:"profit_margin"`
	RevenueGrowth decimal.NullDecimal `json:"revenue_growth"`
	EPSGrowth     decimal.NullDecimal `json:"eps_growth"`
	Beta          decimal.NullDecimal `json:"beta"`
	AnalystScore  decimal.NullDecimal `json:"analyst_score"`
	TargetPrice   decimal.NullDecimal `json:"target_price"`
}

// IsEmpty reports whether every field is absent.
func (f Fundamentals) IsEmpty() bool {
	for _, v := range f.Fields() {
		if v.Value.Valid {
			return false
		}
	}
	return true
}

// FundamentalField pairs a fundamentals column name with its value.
type FundamentalField struct {
	Name  string
	Value decimal.NullDecimal
}

// Fields returns the fundamentals in display column order.
func (f Fundamentals) Fields() []FundamentalField {
	return []FundamentalField{
		{"pe", f.PE},
		{"forward_pe", f.ForwardPE},
		{"ps", f.PS},
		{"profit_margin", f.ProfitMargin},
		{"revenue_growth", f.RevenueGrowth},
		{"eps_growth", f.EPSGrowth},
		{"beta", f.Beta},
		{"analyst_score", f.AnalystScore},
		{"target_price", f.TargetPrice},
	}
}
