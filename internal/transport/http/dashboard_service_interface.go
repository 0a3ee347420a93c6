package http

import (
	"context"

	"curypulse/internal/analytics"
	"curypulse/internal/services"
	"curypulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the interface for dashboard view
// computation
type DashboardServiceInterface interface {
	CompanyView(ctx context.Context, f analytics.Filter) (*services.CompanyView, error)
	DriversView(ctx context.Context, f analytics.Filter) (*services.DriversView, error)
	RestaurantsView(ctx context.Context, f analytics.Filter) (*services.RestaurantsView, error)
	FilteredOrders(ctx context.Context, f analytics.Filter) ([]domain.Order, error)
}
