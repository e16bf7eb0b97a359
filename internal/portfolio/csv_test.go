package portfolio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/models"
	"folio/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestParseHoldings(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		input := "asset_type,ticker,shares,cost_basis,notes\n" +
			"Stock, AAPL ,10,150.25,core\n" +
			"crypto,BTC,0.5,30000,\n" +
			"cd,BANKOFNY,1000,1,ladder\n" +
			"cash,USD,2500,1,\n"

		holdings, err := ParseHoldings(strings.NewReader(input))
		testutil.AssertNoError(t, err)

		if len(holdings) != 4 {
			t.Fatalf("expected 4 holdings, got %d", len(holdings))
		}
		first := holdings[0]
		if first.AssetType != models.AssetTypeStock {
			t.Errorf("expected asset type stock, got %q", first.AssetType)
		}
		if first.Ticker != "AAPL" {
			t.Errorf("expected trimmed ticker AAPL, got %q", first.Ticker)
		}
		if !first.Shares.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected 10 shares, got %s", first.Shares)
		}
		if !first.CostBasis.Equal(decimal.RequireFromString("150.25")) {
			t.Errorf("expected cost basis 150.25, got %s", first.CostBasis)
		}
		for i, h := range holdings {
			if h.Position != i+1 {
				t.Errorf("holding %d: expected position %d, got %d", i, i+1, h.Position)
			}
		}
	})

	t.Run("column_order_does_not_matter", func(t *testing.T) {
		input := "ticker,cost_basis,shares,asset_type\nMSFT,300,2,stock\n"

		holdings, err := ParseHoldings(strings.NewReader(input))
		testutil.AssertNoError(t, err)
		if len(holdings) != 1 || holdings[0].Ticker != "MSFT" || !holdings[0].Shares.Equal(decimal.NewFromInt(2)) {
			t.Errorf("unexpected holdings %+v", holdings)
		}
	})

	t.Run("byte_order_mark", func(t *testing.T) {
		input := "\xef\xbb\xbfasset_type,ticker,shares,cost_basis\nstock,AAPL,1,1\n"

		holdings, err := ParseHoldings(strings.NewReader(input))
		testutil.AssertNoError(t, err)
		if len(holdings) != 1 {
			t.Fatalf("expected 1 holding, got %d", len(holdings))
		}
	})

	t.Run("header_only", func(t *testing.T) {
		holdings, err := ParseHoldings(strings.NewReader("asset_type,ticker,shares,cost_basis\n"))
		testutil.AssertNoError(t, err)
		if len(holdings) != 0 {
			t.Errorf("expected no holdings, got %d", len(holdings))
		}
	})

	t.Run("unknown_asset_type_is_passed_through", func(t *testing.T) {
		holdings, err := ParseHoldings(strings.NewReader("asset_type,ticker,shares,cost_basis\nOption,AAPL240119C,1,5\n"))
		testutil.AssertNoError(t, err)
		if holdings[0].AssetType != "option" {
			t.Errorf("expected lower-cased unknown type, got %q", holdings[0].AssetType)
		}
	})

	t.Run("missing_column", func(t *testing.T) {
		_, err := ParseHoldings(strings.NewReader("asset_type,ticker,shares\nstock,AAPL,1\n"))
		testutil.AssertAppError(t, err, "INVALID_HOLDING")
		if !strings.Contains(err.Error(), "cost_basis") {
			t.Errorf("expected message to name the missing column, got %q", err.Error())
		}
	})

	t.Run("padded_header_columns", func(t *testing.T) {
		holdings, err := ParseHoldings(strings.NewReader("asset_type, ticker ,shares, cost_basis\nstock,AAPL,10,150\n"))
		testutil.AssertNoError(t, err)
		if len(holdings) != 1 || holdings[0].Ticker != "AAPL" {
			t.Fatalf("expected AAPL holding, got %+v", holdings)
		}
		if !holdings[0].CostBasis.Equal(decimal.RequireFromString("150")) {
			t.Errorf("expected cost basis 150, got %s", holdings[0].CostBasis)
		}
	})

	t.Run("padded_header_missing_column", func(t *testing.T) {
		_, err := ParseHoldings(strings.NewReader(" asset_type , ticker ,shares\nstock,AAPL,1\n"))
		testutil.AssertAppError(t, err, "INVALID_HOLDING")
		if !strings.Contains(err.Error(), "missing required columns: cost_basis") {
			t.Errorf("expected message to name the missing column, got %q", err.Error())
		}
	})

	t.Run("empty_file", func(t *testing.T) {
		_, err := ParseHoldings(strings.NewReader(""))
		testutil.AssertAppError(t, err, "INVALID_HOLDING")
	})

	t.Run("unparsable_shares", func(t *testing.T) {
		_, err := ParseHoldings(strings.NewReader("asset_type,ticker,shares,cost_basis\nstock,AAPL,1,1\nstock,MSFT,ten,300\n"))
		testutil.AssertAppError(t, err, "INVALID_HOLDING")
		if !strings.Contains(err.Error(), "Line 3") || !strings.Contains(err.Error(), "MSFT") {
			t.Errorf("expected message to name line and ticker, got %q", err.Error())
		}
	})

	t.Run("missing_ticker", func(t *testing.T) {
		_, err := ParseHoldings(strings.NewReader("asset_type,ticker,shares,cost_basis\nstock,,1,1\n"))
		testutil.AssertAppError(t, err, "INVALID_HOLDING")
	})

	t.Run("negative_shares", func(t *testing.T) {
		_, err := ParseHoldings(strings.NewReader("asset_type,ticker,shares,cost_basis\nstock,AAPL,-1,100\n"))
		testutil.AssertAppError(t, err, "INVALID_HOLDING")
		if !strings.Contains(err.Error(), "negative") {
			t.Errorf("expected negative shares message, got %q", err.Error())
		}
	})
}

func TestCSVSource(t *testing.T) {
	t.Run("reads_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "portfolio.csv")
		content := "asset_type,ticker,shares,cost_basis\nstock,AAPL,3,120\nbond,T-2030,5,98.5\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		holdings, err := NewCSVSource(path).Holdings(context.Background())
		testutil.AssertNoError(t, err)
		if len(holdings) != 2 {
			t.Fatalf("expected 2 holdings, got %d", len(holdings))
		}
		if holdings[1].AssetType != models.AssetTypeBond {
			t.Errorf("expected bond, got %q", holdings[1].AssetType)
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv")).Holdings(context.Background())
		testutil.AssertAppError(t, err, "PORTFOLIO_LOAD_FAILED")
	})
}
