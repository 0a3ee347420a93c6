package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"curypulse/internal/dataset"
	"curypulse/internal/exporter"
	"curypulse/internal/infrastructure"
	"curypulse/internal/validation"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	inPath := flag.String("in", "data/train.csv", "path to the raw delivery log (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "worksheet name for .xlsx input (defaults to the first sheet)")
	outDir := flag.String("out", "data/reports", "output directory for cleaned and summary CSV files")
	cleanName := flag.String("clean", "orders_clean.csv", "file name for the cleaned order export")
	summaries := flag.Bool("summaries", true, "also export per-aggregation summary tables")
	flag.Parse()

	logger, err := infrastructure.InitializeLogger(infrastructure.DefaultConfig())
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	validator := validation.NewDatasetValidator(logger)
	if err := validator.ValidateDatasetFile(*inPath); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(*outDir); err != nil {
		return err
	}

	start := time.Now()
	ctx := context.Background()

	loader := dataset.NewLoader(*inPath, *sheet, logger)
	raw, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load delivery log: %w", err)
	}

	orders, err := dataset.Normalize(raw)
	if err != nil {
		return fmt.Errorf("normalize delivery log: %w", err)
	}

	logger.Info("Delivery log normalized",
		slog.String("input", *inPath),
		slog.Int("raw_rows", len(raw)),
		slog.Int("orders", len(orders)),
		slog.Int("dropped", len(raw)-len(orders)))

	orderExporter := exporter.NewOrderExporter(*outDir)
	if err := orderExporter.ExportOrders(orders, *cleanName); err != nil {
		return fmt.Errorf("export cleaned orders: %w", err)
	}

	if *summaries {
		if err := orderExporter.ExportSummaryReports(orders); err != nil {
			return fmt.Errorf("export summary reports: %w", err)
		}
	}

	logger.Info("Processing complete",
		slog.String("output_dir", *outDir),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
