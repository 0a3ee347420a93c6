package exporter

import (
	"fmt"
	"strconv"

	"curypulse/internal/analytics"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	// Always format with exactly 2 decimal places for consistency
	// This ensures values like 13.4 appear as 13.40 in CSV
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatCoord formats a coordinate without trailing zero padding
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatStat formats a group statistic, leaving NaN cells empty
func formatStat(f analytics.Float) string {
	if f.IsNaN() {
		return ""
	}
	return formatFloat(float64(f))
}
