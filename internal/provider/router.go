package provider

import (
	"context"
	"fmt"

	apperrors "folio/internal/errors"
	"folio/internal/models"

	"github.com/shopspring/decimal"
)

var cashPrice = decimal.NewFromInt(1)

// Router is the PriceOracle that picks a pricing strategy per asset type:
// cash is always 1, cd and bond use the override table or fall back to cost
// basis, and stock and crypto go to the first provider that supports them.
type Router struct {
	providers []Provider
	overrides *OverrideTable
}

// NewRouter creates a router over the given providers, tried in order.
func NewRouter(overrides *OverrideTable, providers ...Provider) *Router {
	return &Router{providers: providers, overrides: overrides}
}

// ResolvePrice implements PriceOracle. Failures are AppErrors naming the
// asset type and ticker.
func (r *Router) ResolvePrice(ctx context.Context, holding models.Holding) (decimal.Decimal, error) {
	switch holding.AssetType {
	case models.AssetTypeCash:
		return cashPrice, nil

	case models.AssetTypeCD, models.AssetTypeBond:
		if price, ok := r.overrides.Lookup(holding.Ticker); ok {
			return price, nil
		}
		return holding.CostBasis, nil

	case models.AssetTypeStock, models.AssetTypeCrypto:
		return r.fetchLive(ctx, holding)

	default:
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrUnknownAssetType,
			fmt.Sprintf("Unknown asset type: %s (ticker %s)", holding.AssetType, holding.Ticker))
	}
}

func (r *Router) fetchLive(ctx context.Context, holding models.Holding) (decimal.Decimal, error) {
	message := fmt.Sprintf("No price data returned for %s %s", holding.AssetType.Label(), holding.Ticker)

	for _, p := range r.providers {
		if !p.Supports(holding.AssetType) {
			continue
		}
		price, err := p.FetchPrice(ctx, holding)
		if err != nil {
			return decimal.Zero, apperrors.WrapWithMessage(apperrors.ErrPriceUnavailable, message, &FetchError{
				Provider:  p.Name(),
				AssetType: holding.AssetType,
				Ticker:    holding.Ticker,
				Err:       err,
			})
		}
		return price, nil
	}

	return decimal.Zero, apperrors.WrapWithMessage(apperrors.ErrPriceUnavailable, message,
		fmt.Errorf("no provider configured for asset type %s", holding.AssetType))
}
