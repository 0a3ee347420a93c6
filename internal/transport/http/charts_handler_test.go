package http

import (
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"curypulse/internal/analytics"
	apierrors "curypulse/internal/errors"
	"curypulse/internal/services"
	"curypulse/pkg/contracts/domain"
)

func newChartsHandler(service DashboardServiceInterface) *ChartsHandler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewChartsHandler(service, logger, apierrors.NewErrorHandler(logger, false))
}

func TestChartsHandler_CompanyCharts(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("CompanyView", analytics.Filter{}).Return(&services.CompanyView{
		Orders: 2,
		DailyOrders: []analytics.DailyOrders{
			{Date: time.Date(2022, 3, 19, 0, 0, 0, 0, time.UTC), Orders: 2},
		},
		TrafficShare: []analytics.TrafficShare{
			{Traffic: domain.TrafficHigh, Orders: 2, Percent: 100},
		},
		Hotspots: []analytics.DeliveryHotspot{
			{City: domain.CityUrban, Traffic: domain.TrafficHigh, Lat: 22.75, Lon: 75.89},
		},
	}, nil)
	handler := newChartsHandler(mockService)

	req := httptest.NewRequest("GET", "/charts/company", nil)
	rec := httptest.NewRecorder()

	handler.CompanyCharts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Orders per day")
	assert.Contains(t, rec.Body.String(), "Central delivery points")
	mockService.AssertExpectations(t)
}

func TestChartsHandler_DriversCharts(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("DriversView", analytics.Filter{}).Return(&services.DriversView{
		RatingByTraffic: []analytics.RatingStats{
			{Key: domain.TrafficJam, Mean: analytics.Float(4.5), StdDev: analytics.Float(math.NaN())},
		},
		FastestByCity: []analytics.DriverDeliveryTime{
			{City: domain.CityUrban, DriverID: "D1", Minutes: 15},
		},
	}, nil)
	handler := newChartsHandler(mockService)

	req := httptest.NewRequest("GET", "/charts/drivers", nil)
	rec := httptest.NewRecorder()

	handler.DriversCharts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Driver rating by traffic density")
	assert.Contains(t, rec.Body.String(), "Fastest deliverers")
	mockService.AssertExpectations(t)
}

func TestChartsHandler_RestaurantsCharts(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("RestaurantsView", analytics.Filter{}).Return(&services.RestaurantsView{
		DistanceByCity: []analytics.CityDistance{
			{City: domain.CityUrban, MeanKm: 7.3},
		},
		TimeByCity: []analytics.CityTimeStats{
			{City: domain.CityUrban, TimeStats: analytics.TimeStats{
				Mean:   analytics.Float(24),
				StdDev: analytics.Float(math.NaN()),
			}},
		},
	}, nil)
	handler := newChartsHandler(mockService)

	req := httptest.NewRequest("GET", "/charts/restaurants", nil)
	rec := httptest.NewRecorder()

	handler.RestaurantsCharts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mean delivery distance by city")
	mockService.AssertExpectations(t)
}

func TestChartsHandler_RejectsBadFilter(t *testing.T) {
	mockService := new(MockDashboardService)
	handler := newChartsHandler(mockService)

	req := httptest.NewRequest("GET", "/charts/company?before=not-a-date", nil)
	rec := httptest.NewRecorder()

	handler.CompanyCharts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertExpectations(t)
}

func TestChartValue(t *testing.T) {
	assert.Equal(t, 4.5, chartValue(analytics.Float(4.5)))
	assert.Nil(t, chartValue(analytics.Float(math.NaN())))
}
