// Package services implements the business logic layer of the dashboard.
// It provides a clean separation between HTTP handlers and data access,
// ensuring that business rules are centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Domain-focused methods that encapsulate business rules
//
// # Service Layer Responsibilities
//
// The service layer is responsible for:
//
//	- Loading and normalizing the delivery log
//	- Applying view filters and computing aggregation tables
//	- Cross-cutting concerns (logging, metrics)
//	- Error handling and transformation
//	- Caching the normalized dataset between requests
//
// # Available Services
//
// The package provides these core services:
//
//	- DashboardService: Loads the delivery log and computes view payloads
//	- HealthService: Provides system health checks
//
// # Error Handling
//
// Services return domain-specific errors that handlers can transform:
//
//	- ErrDatasetUnavailable when the delivery log cannot be loaded
//	- Validation errors for invalid input
//	- Internal errors for unexpected failures
package services
