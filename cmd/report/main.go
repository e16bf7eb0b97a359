package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"folio/internal/config"
	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/oracle"
	"folio/internal/portfolio"
	"folio/internal/render"
)

const (
	viewTable    = "table"
	viewInsights = "insights"
)

func main() {
	output := flag.String("o", "", "write the report to this file instead of stdout")
	view := flag.String("view", viewTable, "report to write: table or insights")
	flag.Parse()

	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(context.Background(), *output, *view); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			fmt.Fprintln(os.Stderr, appErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "report failed: %v\n", err)
		}
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, output, view string) error {
	if view != viewTable && view != viewInsights {
		return fmt.Errorf("unknown view %q: use %s or %s", view, viewTable, viewInsights)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	source, closeSource, err := portfolio.OpenSource(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeSource() }()

	oracles, err := oracle.New(cfg, nil)
	if err != nil {
		return err
	}

	service := portfolio.NewService(source, oracles.Prices, oracles.Fundamentals, cfg.FetchConcurrency)
	report, err := service.Process(ctx)
	if err != nil {
		return err
	}

	var page bytes.Buffer
	tmpl := render.Templates()
	if view == viewInsights {
		err = render.Write(&page, tmpl, render.InsightsTemplate, render.NewInsightsPage(report))
	} else {
		err = render.Write(&page, tmpl, render.IndexTemplate, render.NewIndexPage(report))
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if output == "" {
		_, err = page.WriteTo(os.Stdout)
		return err
	}
	if err := os.WriteFile(output, page.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.Get().Infow("report written", "path", output, "view", view, "holdings", len(report.Holdings))
	return nil
}
