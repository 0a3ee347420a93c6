package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curypulse/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2022, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestOrdersByDay(t *testing.T) {
	orders := []domain.Order{
		{ID: "A", OrderDate: day(2)},
		{ID: "B", OrderDate: day(1)},
		{ID: "C", OrderDate: day(1)},
		{ID: "C", OrderDate: day(1)}, // duplicate ID, counted once
	}

	got := OrdersByDay(orders)

	require.Len(t, got, 2)
	assert.Equal(t, DailyOrders{Date: day(1), Orders: 2}, got[0])
	assert.Equal(t, DailyOrders{Date: day(2), Orders: 1}, got[1])
}

func TestOrdersByDay_Empty(t *testing.T) {
	assert.Empty(t, OrdersByDay(nil))
}

func TestTrafficOrderShare(t *testing.T) {
	orders := []domain.Order{
		{TrafficDensity: domain.TrafficLow},
		{TrafficDensity: domain.TrafficLow},
		{TrafficDensity: domain.TrafficHigh},
		{TrafficDensity: domain.TrafficJam},
	}

	got := TrafficOrderShare(orders)

	require.Len(t, got, 3)
	assert.Equal(t, TrafficShare{Traffic: domain.TrafficHigh, Orders: 1, Percent: 25}, got[0])
	assert.Equal(t, TrafficShare{Traffic: domain.TrafficJam, Orders: 1, Percent: 25}, got[1])
	assert.Equal(t, TrafficShare{Traffic: domain.TrafficLow, Orders: 2, Percent: 50}, got[2])

	var total float64
	for _, row := range got {
		total += row.Percent
	}
	assert.InDelta(t, 100, total, 0.05)
}

func TestTrafficOrderShare_EvenSplit(t *testing.T) {
	orders := []domain.Order{
		{TrafficDensity: domain.TrafficJam},
		{TrafficDensity: domain.TrafficJam},
		{TrafficDensity: domain.TrafficLow},
		{TrafficDensity: domain.TrafficLow},
	}

	got := TrafficOrderShare(orders)

	require.Len(t, got, 2)
	assert.Equal(t, TrafficShare{Traffic: domain.TrafficJam, Orders: 2, Percent: 50}, got[0])
	assert.Equal(t, TrafficShare{Traffic: domain.TrafficLow, Orders: 2, Percent: 50}, got[1])
}

func TestTrafficOrderShare_Empty(t *testing.T) {
	assert.Empty(t, TrafficOrderShare(nil))
}

func TestTrafficShareByCity(t *testing.T) {
	orders := []domain.Order{
		{City: domain.CityUrban, TrafficDensity: domain.TrafficLow},
		{City: domain.CityUrban, TrafficDensity: domain.TrafficLow},
		{City: domain.CityMetropolitian, TrafficDensity: domain.TrafficJam},
		{City: domain.CityUrban, TrafficDensity: domain.TrafficJam},
	}

	got := TrafficShareByCity(orders)

	require.Len(t, got, 3)
	assert.Equal(t, CityTrafficShare{City: domain.CityMetropolitian, Traffic: domain.TrafficJam, Orders: 1, Percent: 25}, got[0])
	assert.Equal(t, CityTrafficShare{City: domain.CityUrban, Traffic: domain.TrafficJam, Orders: 1, Percent: 25}, got[1])
	assert.Equal(t, CityTrafficShare{City: domain.CityUrban, Traffic: domain.TrafficLow, Orders: 2, Percent: 50}, got[2])
}

func TestOrdersByWeek_ISOBoundary(t *testing.T) {
	orders := []domain.Order{
		// 2022-01-01 is a Saturday and belongs to ISO week 2021-W52.
		{OrderDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
		{OrderDate: time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)},
		{OrderDate: time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC)},
	}

	got := OrdersByWeek(orders)

	require.Len(t, got, 2)
	assert.Equal(t, WeeklyOrders{Week: "2021-W52", Orders: 1}, got[0])
	assert.Equal(t, WeeklyOrders{Week: "2022-W01", Orders: 2}, got[1])
}

func TestOrdersPerDriverByWeek(t *testing.T) {
	orders := []domain.Order{
		{DriverID: "D1", OrderDate: day(14)},
		{DriverID: "D1", OrderDate: day(15)},
		{DriverID: "D2", OrderDate: day(16)},
		{DriverID: "D1", OrderDate: day(21)},
	}

	got := OrdersPerDriverByWeek(orders)

	require.Len(t, got, 2)
	assert.Equal(t, WeeklyDriverLoad{Week: "2022-W11", Orders: 3, Drivers: 2, OrdersPerDriver: 1.5}, got[0])
	assert.Equal(t, WeeklyDriverLoad{Week: "2022-W12", Orders: 1, Drivers: 1, OrdersPerDriver: 1}, got[1])
}

func TestCentralDeliveryPoints(t *testing.T) {
	orders := []domain.Order{
		{City: domain.CityUrban, TrafficDensity: domain.TrafficLow, DeliveryLat: 10, DeliveryLon: 70},
		{City: domain.CityUrban, TrafficDensity: domain.TrafficLow, DeliveryLat: 12, DeliveryLon: 74},
		{City: domain.CityUrban, TrafficDensity: domain.TrafficJam, DeliveryLat: 11, DeliveryLon: 71},
	}

	got := CentralDeliveryPoints(orders)

	require.Len(t, got, 2)
	assert.Equal(t, DeliveryHotspot{City: domain.CityUrban, Traffic: domain.TrafficJam, Lat: 11, Lon: 71}, got[0])
	// Even-sized group takes the midpoint of the two central samples.
	assert.Equal(t, DeliveryHotspot{City: domain.CityUrban, Traffic: domain.TrafficLow, Lat: 11, Lon: 72}, got[1])
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, median([]float64{5, 3, 1}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
}
