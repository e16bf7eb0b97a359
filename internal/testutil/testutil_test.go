package testutil_test

import (
	"testing"

	"folio/internal/errors"
	"folio/internal/models"
	"folio/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	if err := db.Table("holdings").Count(&count).Error; err != nil {
		t.Errorf("table holdings should exist after migration: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty holdings table, got %d rows", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	h := testutil.CreateTestHolding(t, db, models.AssetTypeStock, "AAPL", "10.5", "123.45")
	if h.ID == "" {
		t.Fatal("holding should have a generated ID")
	}

	var loaded models.Holding
	if err := db.First(&loaded, "id = ?", h.ID).Error; err != nil {
		t.Fatalf("failed to load holding: %v", err)
	}
	if loaded.Ticker != "AAPL" || loaded.AssetType != models.AssetTypeStock {
		t.Errorf("unexpected holding %+v", loaded)
	}
	if !loaded.Shares.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("expected shares 10.5, got %s", loaded.Shares)
	}
	if !loaded.CostBasis.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("expected cost basis 123.45, got %s", loaded.CostBasis)
	}

	if len(testutil.SampleHoldings()) != len(models.AssetTypes)+1 {
		t.Errorf("expected sample portfolio to cover every asset type")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.Wrap(errors.ErrNotFound, nil)
	testutil.AssertAppError(t, err, "NOT_FOUND")
}

func TestAssertPriceUnavailable(t *testing.T) {
	err := errors.WithMessage(errors.ErrPriceUnavailable, "No price data returned for CRYPTO BTC")
	testutil.AssertPriceUnavailable(t, err, models.AssetTypeCrypto, "BTC")
}
