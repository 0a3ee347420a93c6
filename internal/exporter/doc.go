// Package exporter provides CSV export functionality for Cury Pulse.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers, streaming,
// and UTF-8 BOM for Excel compatibility.
//
// OrderExporter: Exports the cleaned delivery log in the upstream column layout
// (re-ingestable by the dataset loader) plus per-aggregation summary tables.
//
// Example usage:
//
//	// Create an order exporter rooted at an output directory
//	orderExporter := exporter.NewOrderExporter("/path/to/out")
//
//	// Export the cleaned order records
//	err := orderExporter.ExportOrders(orders, "orders_clean.csv")
//
//	// Export one CSV per aggregation table
//	err = orderExporter.ExportSummaryReports(orders)
package exporter
