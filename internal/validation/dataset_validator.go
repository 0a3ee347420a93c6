// Package validation provides file-level checks shared by the server and the
// processing CLI.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// supported delivery log formats
var datasetExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// DatasetValidator validates delivery log inputs and export targets
type DatasetValidator struct {
	logger *slog.Logger
}

// NewDatasetValidator creates a new dataset validator
func NewDatasetValidator(logger *slog.Logger) *DatasetValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetValidator{logger: logger}
}

// ValidateDatasetFile checks that the delivery log exists, is a regular
// non-empty file, and has a supported extension.
func (v *DatasetValidator) ValidateDatasetFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Dataset file does not exist",
			slog.String("path", path))
		return fmt.Errorf("dataset file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat dataset file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat dataset file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Dataset path is a directory",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a dataset file", path)
	}
	if info.Size() == 0 {
		v.logger.Error("Dataset file is empty",
			slog.String("path", path))
		return fmt.Errorf("dataset file %s is empty", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !datasetExtensions[ext] {
		v.logger.Error("Unsupported dataset format",
			slog.String("path", path),
			slog.String("extension", ext))
		return fmt.Errorf("unsupported dataset format %q, expected .csv or .xlsx", ext)
	}

	return nil
}

// ValidateOutputDirectory ensures the export directory exists and is
// writable, creating it when missing.
func (v *DatasetValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	os.Remove(testFile)

	return nil
}
