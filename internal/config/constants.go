package config

import "time"

// Application constants - all hardcoded values for the Cury Pulse system
const (
	// Application Info
	AppName    = "Cury Pulse"
	AppVersion = "1.0.0"
	AppVendor  = "Cury Company"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout = 30 * time.Second

	// File Paths (relative to the working directory)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultWebDir     = "web"
	DefaultReportsDir = "data/reports"

	// Dataset Defaults
	DefaultDatasetFile   = "data/train.csv"
	DefaultTopDeliverers = 10
)

// DefaultCities is the fixed city order the driver rankings iterate. The
// spelling matches the raw export.
var DefaultCities = []string{"Metropolitian", "Urban", "Semi-Urban"}
