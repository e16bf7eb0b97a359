package portfolio

import (
	"context"
	"fmt"

	apperrors "folio/internal/errors"
	"folio/internal/models"

	"gorm.io/gorm"
)

// Repository stores holdings in the holdings table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Holdings implements Source, returning rows in insertion order.
func (r *Repository) Holdings(ctx context.Context) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := r.db.WithContext(ctx).Order("position, created_at, id").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPortfolioLoad, err)
	}
	return holdings, nil
}

// ReplaceAll swaps the stored portfolio for holdings in one transaction.
func (r *Repository) ReplaceAll(ctx context.Context, holdings []models.Holding) error {
	rows := make([]models.Holding, len(holdings))
	for i, h := range holdings {
		if !h.AssetType.IsKnown() {
			return apperrors.WithMessage(apperrors.ErrUnknownAssetType,
				fmt.Sprintf("Unknown asset type: %s (ticker %s)", h.AssetType, h.Ticker))
		}
		rows[i] = models.Holding{
			Position:  i + 1,
			AssetType: h.AssetType,
			Ticker:    h.Ticker,
			Shares:    h.Shares,
			CostBasis: h.CostBasis,
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Holding{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
