package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"folio/internal/database"
	"folio/internal/logger"
	"folio/internal/portfolio"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: migrate <up|down|version> [N] | migrate seed <portfolio.csv>")
	}

	cfg, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if os.Args[1] == "seed" {
		if len(os.Args) < 3 {
			return fmt.Errorf("usage: migrate seed <portfolio.csv>")
		}
		return seed(cfg, os.Args[2])
	}
	if cfg.Driver != database.DriverPostgres {
		return fmt.Errorf("migrate only supports the postgres driver; sqlite databases are auto-migrated on startup")
	}

	m, err := migrate.New("file://migrations", cfg.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	switch command := os.Args[1]; command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")

	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				return fmt.Errorf("invalid step count: %w", err)
			}
		}
		if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)

	default:
		return fmt.Errorf("unknown command %q: use up, down, version, or seed", command)
	}

	return nil
}

// seed replaces the holdings table with the contents of a CSV file.
func seed(cfg *database.Config, path string) error {
	holdings, err := portfolio.NewCSVSource(path).Holdings(context.Background())
	if err != nil {
		return err
	}

	manager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = manager.Close() }()

	if err := manager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := portfolio.NewRepository(manager.DB()).ReplaceAll(context.Background(), holdings); err != nil {
		return err
	}
	logger.Get().Infof("Seeded %d holdings from %s", len(holdings), path)
	return nil
}
