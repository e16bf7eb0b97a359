// Package portfolio loads holdings, runs them through pricing, metrics and
// scoring, and exposes the ranked views built on the result.
package portfolio

import (
	"context"
	"fmt"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/models"
)

// Source supplies the holdings of one processing run.
type Source interface {
	Holdings(ctx context.Context) ([]models.Holding, error)
}

// OpenSource returns the holdings source selected by cfg. The returned close
// function releases the database connection, if one was opened.
func OpenSource(cfg *config.Config) (Source, func() error, error) {
	switch cfg.HoldingsSource {
	case config.SourceDatabase:
		dbConfig, err := database.NewConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load database configuration: %w", err)
		}
		manager, err := database.NewManager(dbConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := manager.RunMigrations(); err != nil {
			_ = manager.Close()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		return NewRepository(manager.DB()), manager.Close, nil
	default:
		return NewCSVSource(cfg.PortfolioCSV), func() error { return nil }, nil
	}
}
