package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"coordlab/app"
	"coordlab/domain/experiment"
	"coordlab/internal/config"
	"coordlab/internal/logging"
	"coordlab/internal/testkit"
	"coordlab/ui"
)

func main() {
	// Load environment variables from .env file (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Logging.Level)
	ctx := context.Background()

	entries := experiment.Template(cfg.Batch.Template)
	for i := range entries {
		seed := cfg.Batch.Seed
		entries[i].Config.SeedBase = &seed
	}

	logger.Info("starting batch",
		"template", cfg.Batch.Template,
		"experiments", len(entries),
		"workers", cfg.Batch.Workers,
		"seed", cfg.Batch.Seed)

	batches := app.NewBatchService(testkit.NewStubFactory(), logger)

	var results []*experiment.Result
	if cfg.Batch.Workers > 1 {
		results, err = batches.RunParallel(ctx, entries, nil, cfg.Batch.Workers)
	} else {
		results, err = batches.Run(ctx, entries, nil)
	}
	if err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}
	logger.Info("batch complete", "fingerprint", app.BatchFingerprint(results).String())

	rep, err := app.NewReportService(logger).Assemble(results)
	if err != nil {
		logger.Error("report assembly failed", "error", err)
		os.Exit(1)
	}

	if path := cfg.Output.ReportJSON; path != "" {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			logger.Error("report encoding failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Error("report write failed", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("wrote report", "path", path)
	}
	if path := cfg.Output.ReportXLSX; path != "" {
		if err := ui.WriteExcel(rep, path); err != nil {
			logger.Error("workbook write failed", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("wrote workbook", "path", path)
	}
	if path := cfg.Output.ReportMarkdown; path != "" {
		if err := os.WriteFile(path, []byte(ui.RenderMarkdown(rep)), 0o644); err != nil {
			logger.Error("markdown write failed", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("wrote markdown", "path", path)
	}

	fmt.Printf("Report viewer: http://localhost:%s\n", cfg.Server.Port)
	if err := ui.NewApp(rep).Start(ui.Config{Port: cfg.Server.Port}); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
