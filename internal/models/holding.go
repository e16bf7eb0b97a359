package models

import "github.com/shopspring/decimal"

// Holding represents one line-item position: an asset, a quantity and the
// cost paid per unit. Holdings are read once per processing run and never
// modified afterwards.
type Holding struct {
	Base
	Position  int             `gorm:"not null;default:0;index" json:"-"` // input order
	AssetType AssetType       `gorm:"not null" json:"asset_type"`
	Ticker    string          `gorm:"not null;index" json:"ticker"`
	Shares    decimal.Decimal `gorm:"type:numeric;not null" json:"shares"`
	CostBasis decimal.Decimal `gorm:"type:numeric;not null" json:"cost_basis"`
}

// IsStock reports whether fundamentals apply to this holding.
func (h Holding) IsStock() bool {
	return h.AssetType == AssetTypeStock
}
