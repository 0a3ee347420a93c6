package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curypulse/pkg/contracts/domain"
)

func TestAgeRange(t *testing.T) {
	orders := []domain.Order{
		{DriverAge: 29}, {DriverAge: 21}, {DriverAge: 35},
	}

	min, max := AgeRange(orders)
	assert.Equal(t, 21, min)
	assert.Equal(t, 35, max)
}

func TestAgeRange_Empty(t *testing.T) {
	min, max := AgeRange(nil)
	assert.Zero(t, min)
	assert.Zero(t, max)
}

func TestVehicleConditionRange(t *testing.T) {
	orders := []domain.Order{
		{VehicleCondition: 2}, {VehicleCondition: 0}, {VehicleCondition: 1},
	}

	min, max := VehicleConditionRange(orders)
	assert.Equal(t, 0, min)
	assert.Equal(t, 2, max)
}

func TestMeanRatingByDriver(t *testing.T) {
	orders := []domain.Order{
		{DriverID: "D2", DriverRating: 4.0},
		{DriverID: "D1", DriverRating: 4.5},
		{DriverID: "D1", DriverRating: 4.0},
	}

	got := MeanRatingByDriver(orders)

	require.Len(t, got, 2)
	assert.Equal(t, DriverRating{DriverID: "D1", MeanRating: 4.25}, got[0])
	assert.Equal(t, DriverRating{DriverID: "D2", MeanRating: 4.0}, got[1])
}

func TestRatingStatsByTraffic(t *testing.T) {
	orders := []domain.Order{
		{TrafficDensity: domain.TrafficLow, DriverRating: 4.0},
		{TrafficDensity: domain.TrafficLow, DriverRating: 5.0},
		{TrafficDensity: domain.TrafficJam, DriverRating: 3.5},
	}

	got := RatingStatsByTraffic(orders)

	require.Len(t, got, 2)
	assert.Equal(t, domain.TrafficJam, got[0].Key)
	assert.Equal(t, Float(3.5), got[0].Mean)
	// Sample standard deviation of a single rating is undefined.
	assert.True(t, got[0].StdDev.IsNaN())

	assert.Equal(t, domain.TrafficLow, got[1].Key)
	assert.Equal(t, Float(4.5), got[1].Mean)
	assert.InDelta(t, math.Sqrt(0.5), float64(got[1].StdDev), 1e-9)
}

func TestRatingStatsByWeather(t *testing.T) {
	orders := []domain.Order{
		{Weather: "conditions Sunny", DriverRating: 4.0},
		{Weather: "conditions Fog", DriverRating: 3.0},
		{Weather: "conditions Fog", DriverRating: 5.0},
	}

	got := RatingStatsByWeather(orders)

	require.Len(t, got, 2)
	assert.Equal(t, "conditions Fog", got[0].Key)
	assert.Equal(t, Float(4.0), got[0].Mean)
	assert.Equal(t, "conditions Sunny", got[1].Key)
}

func TestTopDeliverersByCity(t *testing.T) {
	orders := []domain.Order{
		{City: domain.CityUrban, DriverID: "D1", TimeTakenMin: 20},
		{City: domain.CityUrban, DriverID: "D1", TimeTakenMin: 35}, // worst time wins
		{City: domain.CityUrban, DriverID: "D2", TimeTakenMin: 15},
		{City: domain.CityUrban, DriverID: "D3", TimeTakenMin: 25},
		{City: domain.CityMetropolitian, DriverID: "D4", TimeTakenMin: 40},
	}
	cities := []string{domain.CityMetropolitian, domain.CityUrban, domain.CitySemiUrban}

	t.Run("fastest", func(t *testing.T) {
		got := TopDeliverersByCity(orders, cities, true, 2)

		require.Len(t, got, 3)
		assert.Equal(t, DriverDeliveryTime{City: domain.CityMetropolitian, DriverID: "D4", Minutes: 40}, got[0])
		assert.Equal(t, DriverDeliveryTime{City: domain.CityUrban, DriverID: "D2", Minutes: 15}, got[1])
		assert.Equal(t, DriverDeliveryTime{City: domain.CityUrban, DriverID: "D3", Minutes: 25}, got[2])
	})

	t.Run("slowest", func(t *testing.T) {
		got := TopDeliverersByCity(orders, cities, false, 2)

		require.Len(t, got, 3)
		assert.Equal(t, DriverDeliveryTime{City: domain.CityUrban, DriverID: "D1", Minutes: 35}, got[1])
		assert.Equal(t, DriverDeliveryTime{City: domain.CityUrban, DriverID: "D3", Minutes: 25}, got[2])
	})

	t.Run("per city cap", func(t *testing.T) {
		got := TopDeliverersByCity(orders, []string{domain.CityUrban}, true, 10)
		assert.Len(t, got, 3)
	})

	t.Run("ignores unlisted city", func(t *testing.T) {
		withRural := append([]domain.Order{}, orders...)
		withRural = append(withRural, domain.Order{City: "Rural", DriverID: "D9", TimeTakenMin: 5})

		got := TopDeliverersByCity(withRural, cities, true, 10)

		require.Len(t, got, 4)
		for _, row := range got {
			assert.Contains(t, cities, row.City)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, TopDeliverersByCity(nil, cities, true, 10))
	})
}
