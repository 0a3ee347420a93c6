// Package config provides centralized configuration management for the
// Cury Pulse dashboard. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CURY_* for namespacing:
//
//	CURY_SERVER_PORT=8080
//	CURY_DATASET_PATH=data/train.csv
//	CURY_DATASET_TOP_DELIVERERS=10
//	CURY_LOGGING_LEVEL=info
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
