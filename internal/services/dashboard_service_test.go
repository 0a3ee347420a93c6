package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curypulse/internal/analytics"
	"curypulse/internal/config"
	"curypulse/pkg/contracts/domain"
)

const orderHeader = "ID,Delivery_person_ID,Delivery_person_Age,Delivery_person_Ratings," +
	"Restaurant_latitude,Restaurant_longitude,Delivery_location_latitude,Delivery_location_longitude," +
	"Order_Date,Weatherconditions,Road_traffic_density,Vehicle_condition," +
	"Type_of_order,Type_of_vehicle,multiple_deliveries,Festival,City,Time_taken(min)"

func orderRow(id, driver, date, traffic, city string, minutes int) string {
	return fmt.Sprintf("%s,%s,37,4.9,"+
		"22.745049,75.892471,22.765049,75.912471,"+
		"%s,conditions Sunny,%s ,2,"+
		"Snack ,motorcycle ,0,No ,%s ,(min) %d",
		id, driver, date, traffic, city, minutes)
}

func writeDataset(t *testing.T, rows ...string) string {
	t.Helper()
	content := orderHeader + "\n"
	for _, row := range rows {
		content += row + "\n"
	}
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func serviceFor(t *testing.T, path string) *DashboardService {
	t.Helper()
	cfg := config.Default()
	cfg.Dataset.Path = path
	return NewDashboardService(cfg, discardLogger())
}

func TestDashboardServiceCompanyView(t *testing.T) {
	path := writeDataset(t,
		orderRow("0x1", "D1", "19-03-2022", "High", "Urban", 24),
		orderRow("0x2", "D2", "19-03-2022", "Jam", "Urban", 30),
		orderRow("0x3", "D1", "20-03-2022", "High", "Metropolitian", 18),
	)
	svc := serviceFor(t, path)

	view, err := svc.CompanyView(context.Background(), analytics.Filter{})

	require.NoError(t, err)
	assert.Equal(t, 3, view.Orders)
	require.Len(t, view.DailyOrders, 2)
	assert.Equal(t, 2, view.DailyOrders[0].Orders)
	require.Len(t, view.TrafficShare, 2)
	require.NotEmpty(t, view.WeeklyOrders)
	require.NotEmpty(t, view.Hotspots)
	assert.False(t, view.GeneratedAt.IsZero())
}

func TestDashboardServiceDriversView(t *testing.T) {
	path := writeDataset(t,
		orderRow("0x1", "D1", "19-03-2022", "High", "Urban", 24),
		orderRow("0x2", "D2", "19-03-2022", "Jam", "Urban", 30),
	)
	svc := serviceFor(t, path)

	view, err := svc.DriversView(context.Background(), analytics.Filter{})

	require.NoError(t, err)
	assert.Equal(t, IntRange{Min: 37, Max: 37}, view.AgeRange)
	assert.Equal(t, IntRange{Min: 2, Max: 2}, view.VehicleCondition)
	require.Len(t, view.DriverRatings, 2)
	require.Len(t, view.FastestByCity, 2)
	assert.Equal(t, "D1", view.FastestByCity[0].DriverID)
	assert.Equal(t, "D2", view.SlowestByCity[0].DriverID)
}

func TestDashboardServiceRestaurantsView(t *testing.T) {
	path := writeDataset(t,
		orderRow("0x1", "D1", "19-03-2022", "High", "Urban", 24),
		orderRow("0x2", "D2", "19-03-2022", "Jam", "Urban", 30),
	)
	svc := serviceFor(t, path)

	view, err := svc.RestaurantsView(context.Background(), analytics.Filter{})

	require.NoError(t, err)
	assert.Equal(t, 2, view.UniqueDrivers)
	assert.False(t, view.MeanDistanceKm.IsNaN())
	// Every fixture order is a non-festival one.
	assert.True(t, view.FestivalTime.Mean.IsNaN())
	assert.Equal(t, analytics.Float(27.0), view.NonFestivalTime.Mean)
	require.Len(t, view.TimeByCity, 1)
}

func TestDashboardServiceFilter(t *testing.T) {
	path := writeDataset(t,
		orderRow("0x1", "D1", "19-03-2022", "High", "Urban", 24),
		orderRow("0x2", "D2", "20-03-2022", "Jam", "Urban", 30),
	)
	svc := serviceFor(t, path)

	f := analytics.Filter{Traffic: []string{domain.TrafficJam}}
	view, err := svc.CompanyView(context.Background(), f)

	require.NoError(t, err)
	assert.Equal(t, 1, view.Orders)
}

func TestDashboardServiceFilter_EmptyResult(t *testing.T) {
	path := writeDataset(t,
		orderRow("0x1", "D1", "19-03-2022", "High", "Urban", 24),
	)
	svc := serviceFor(t, path)

	f := analytics.Filter{Before: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}
	view, err := svc.RestaurantsView(context.Background(), f)

	require.NoError(t, err)
	assert.Zero(t, view.Orders)
	assert.True(t, view.MeanDistanceKm.IsNaN())
}

func TestDashboardServiceOrders_CachesUntilFileChanges(t *testing.T) {
	path := writeDataset(t,
		orderRow("0x1", "D1", "19-03-2022", "High", "Urban", 24),
	)
	svc := serviceFor(t, path)

	first, err := svc.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Orders(context.Background())
	require.NoError(t, err)
	// Same backing array, not a reload.
	assert.Equal(t, &first[0], &second[0])

	content := orderHeader + "\n" +
		orderRow("0x1", "D1", "19-03-2022", "High", "Urban", 24) + "\n" +
		orderRow("0x2", "D2", "20-03-2022", "Jam", "Urban", 30) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	third, err := svc.Orders(context.Background())
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestDashboardServiceOrders_MissingFile(t *testing.T) {
	svc := serviceFor(t, filepath.Join(t.TempDir(), "absent.csv"))

	_, err := svc.Orders(context.Background())

	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestDashboardServiceOrders_CorruptDataset(t *testing.T) {
	path := writeDataset(t,
		orderRow("0x1", "D1", "19-03-2022", "High", "Urban", 24)+",extra",
	)
	svc := serviceFor(t, path)

	_, err := svc.Orders(context.Background())

	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}
