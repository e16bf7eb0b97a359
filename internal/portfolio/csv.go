package portfolio

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/validator"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// RequiredColumns must appear in the header of a holdings file.
var RequiredColumns = []string{"asset_type", "ticker", "shares", "cost_basis"}

// csvRow is one line of a holdings file before conversion.
type csvRow struct {
	AssetType string `csv:"asset_type" validate:"required"`
	Ticker    string `csv:"ticker" validate:"required"`
	Shares    string `csv:"shares" validate:"required,decimal"`
	CostBasis string `csv:"cost_basis" validate:"required,decimal"`
}

var (
	rowValidator = validator.New()
	utf8BOM      = []byte("\xef\xbb\xbf")
)

// CSVSource reads holdings from a CSV file on every run.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source backed by the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Holdings implements Source.
func (s *CSVSource) Holdings(_ context.Context) ([]models.Holding, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.WrapWithMessage(apperrors.ErrPortfolioLoad,
			fmt.Sprintf("Portfolio file %s could not be opened", s.path), err)
	}
	defer func() { _ = f.Close() }()

	return ParseHoldings(f)
}

// ParseHoldings decodes a holdings CSV. Extra columns are ignored. Asset
// types are lower-cased; unknown types are left for the pricing stage to
// reject.
func ParseHoldings(r io.Reader) ([]models.Holding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPortfolioLoad, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	data, err = normalizeHeader(data)
	if err != nil {
		return nil, err
	}

	var rows []csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, apperrors.WrapWithMessage(apperrors.ErrInvalidHolding, "Portfolio file is not valid CSV", err)
	}

	holdings := make([]models.Holding, 0, len(rows))
	for i, row := range rows {
		h, err := row.toHolding(i + 2) // header is line 1
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// normalizeHeader trims the header cells so padded column names still bind,
// then checks that every required column is present.
func normalizeHeader(data []byte) ([]byte, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, apperrors.WrapWithMessage(apperrors.ErrInvalidHolding, "Portfolio file is not valid CSV", err)
	}
	if len(records) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidHolding, "Portfolio file is empty")
	}

	header := records[0]
	present := make(map[string]bool, len(header))
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
		present[header[i]] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidHolding,
			fmt.Sprintf("Portfolio file is missing required columns: %s", strings.Join(missing, ", ")))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPortfolioLoad, err)
	}
	return buf.Bytes(), nil
}

func (row csvRow) toHolding(line int) (models.Holding, error) {
	row.AssetType = strings.TrimSpace(row.AssetType)
	row.Ticker = strings.TrimSpace(row.Ticker)
	row.Shares = strings.TrimSpace(row.Shares)
	row.CostBasis = strings.TrimSpace(row.CostBasis)

	if err := rowValidator.Struct(row); err != nil {
		return models.Holding{}, apperrors.WrapWithMessage(apperrors.ErrInvalidHolding,
			fmt.Sprintf("Line %d (%s): missing or malformed field", line, row.Ticker), err)
	}

	shares, _ := decimal.NewFromString(row.Shares)
	if shares.IsNegative() {
		return models.Holding{}, apperrors.WithMessage(apperrors.ErrInvalidHolding,
			fmt.Sprintf("Line %d (%s): shares must not be negative", line, row.Ticker))
	}
	costBasis, _ := decimal.NewFromString(row.CostBasis)

	return models.Holding{
		Position:  line - 1,
		AssetType: models.NormalizeAssetType(row.AssetType),
		Ticker:    row.Ticker,
		Shares:    shares,
		CostBasis: costBasis,
	}, nil
}
