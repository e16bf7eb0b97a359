package portfolio

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/metrics"
	"folio/internal/models"
	"folio/internal/provider"
	"folio/internal/scoring"
	"folio/internal/uuid"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Processor runs the portfolio pipeline. Handlers and the report command
// depend on this interface.
type Processor interface {
	Process(ctx context.Context) (*Report, error)
}

// Service turns holdings into a scored report. Nothing is cached: every
// call to Process is a full, independent run.
type Service struct {
	source       Source
	prices       provider.PriceOracle
	fundamentals provider.FundamentalsOracle
	concurrency  int
	now          func() time.Time
}

// NewService creates a portfolio service. fundamentals may be nil, in which
// case every holding has absent fundamentals. concurrency bounds in-flight
// oracle calls; 1 processes holdings sequentially.
func NewService(source Source, prices provider.PriceOracle, fundamentals provider.FundamentalsOracle, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		source:       source,
		prices:       prices,
		fundamentals: fundamentals,
		concurrency:  concurrency,
		now:          time.Now,
	}
}

// Process loads, prices, measures and scores every holding. A holding with
// an unknown asset type or an unresolvable price fails the whole run; a
// fundamentals failure only blanks that holding's fundamentals.
func (s *Service) Process(ctx context.Context) (*Report, error) {
	runID := uuid.New()
	log := logger.ForRun(runID)
	start := s.now()

	holdings, err := s.source.Holdings(ctx)
	if err != nil {
		log.Errorw("Failed to load holdings", "error", err)
		return nil, err
	}

	for _, h := range holdings {
		if !h.AssetType.IsKnown() {
			err := apperrors.WithMessage(apperrors.ErrUnknownAssetType,
				fmt.Sprintf("Unknown asset type: %s (ticker %s)", h.AssetType, h.Ticker))
			log.Errorw("Rejected holding", "ticker", h.Ticker, "asset_type", h.AssetType)
			return nil, err
		}
	}

	prices, err := s.resolvePrices(ctx, holdings)
	if err != nil {
		log.Errorw("Price resolution failed", "error", err)
		return nil, err
	}

	marketValues := make([]decimal.Decimal, len(holdings))
	for i, h := range holdings {
		marketValues[i] = metrics.MarketValue(h.Shares, prices[i])
	}
	total := metrics.Total(marketValues)

	fundamentals := s.resolveFundamentals(ctx, holdings, log)

	report := &Report{
		RunID:            runID,
		GeneratedAt:      start.UTC(),
		TotalMarketValue: total,
		TotalCostValue:   decimal.Zero,
		Holdings:         make([]models.ScoredHolding, len(holdings)),
	}

	for i, h := range holdings {
		m := metrics.Calculate(h.Shares, h.CostBasis, prices[i], total)
		result := scoring.Evaluate(scoring.InputFrom(m, fundamentals[i]))

		report.Holdings[i] = models.ScoredHolding{
			Holding:      h,
			CurrentPrice: prices[i],
			Metrics:      m,
			Fundamentals: fundamentals[i],
			Score:        result.Score,
			Decision:     result.Decision,
			Insight:      result.Insight,
		}
		report.TotalCostValue = report.TotalCostValue.Add(m.CostValue)
	}
	report.TotalPLDollar = total.Sub(report.TotalCostValue)
	report.TotalPLPct = metrics.Percent(report.TotalPLDollar, report.TotalCostValue)

	log.Infow("Portfolio processed",
		"holdings", len(holdings),
		"total_market_value", total.StringFixed(metrics.DisplayPlaces),
		"duration", time.Since(start),
	)
	return report, nil
}

// resolvePrices fans out price lookups. The first failure cancels the
// remaining lookups and is returned.
func (s *Service) resolvePrices(ctx context.Context, holdings []models.Holding) ([]decimal.Decimal, error) {
	prices := make([]decimal.Decimal, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, h := range holdings {
		i, h := i, h
		g.Go(func() error {
			price, err := s.prices.ResolvePrice(gctx, h)
			if err != nil {
				return priceError(h, err)
			}
			prices[i] = price
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}

// resolveFundamentals looks up stock fundamentals. Failures are logged and
// isolated to the holding.
func (s *Service) resolveFundamentals(ctx context.Context, holdings []models.Holding, log *zap.SugaredLogger) []models.Fundamentals {
	out := make([]models.Fundamentals, len(holdings))
	if s.fundamentals == nil {
		return out
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, h := range holdings {
		if !h.IsStock() {
			continue
		}
		i, h := i, h
		g.Go(func() error {
			f, err := s.fundamentals.ResolveFundamentals(ctx, h.Ticker)
			if err != nil {
				log.Warnw("Fundamentals unavailable", "ticker", h.Ticker, "error", err)
				return nil
			}
			out[i] = f
			return nil
		})
	}

	_ = g.Wait()
	return out
}

// priceError makes sure a price failure reaching the user is an AppError
// naming the holding.
func priceError(h models.Holding, err error) error {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return apperrors.WrapWithMessage(apperrors.ErrPriceUnavailable,
		fmt.Sprintf("No price data returned for %s %s", h.AssetType.Label(), h.Ticker), err)
}
