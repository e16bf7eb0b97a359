package testutil

import (
	"testing"

	"folio/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NewHolding builds an unsaved holding from string amounts.
func NewHolding(assetType models.AssetType, ticker, shares, costBasis string) models.Holding {
	return models.Holding{
		AssetType: assetType,
		Ticker:    ticker,
		Shares:    decimal.RequireFromString(shares),
		CostBasis: decimal.RequireFromString(costBasis),
	}
}

// CreateTestHolding inserts a holding and returns it with its generated ID.
func CreateTestHolding(t *testing.T, db *gorm.DB, assetType models.AssetType, ticker, shares, costBasis string) *models.Holding {
	t.Helper()

	h := NewHolding(assetType, ticker, shares, costBasis)
	if err := db.Create(&h).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return &h
}

// SampleHoldings is a small mixed portfolio covering every asset type.
func SampleHoldings() []models.Holding {
	return []models.Holding{
		NewHolding(models.AssetTypeStock, "AAPL", "10", "100"),
		NewHolding(models.AssetTypeStock, "MSFT", "5", "300"),
		NewHolding(models.AssetTypeCrypto, "BTC", "0.05", "30000"),
		NewHolding(models.AssetTypeCD, "BANKOFNY", "1000", "1"),
		NewHolding(models.AssetTypeBond, "T-2030", "10", "97.5"),
		NewHolding(models.AssetTypeCash, "USD", "2500", "1"),
	}
}
