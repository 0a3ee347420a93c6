package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curypulse/pkg/contracts/domain"
)

func validRaw() domain.RawOrder {
	return domain.RawOrder{
		ID:                 " 0x4607 ",
		DriverID:           "INDORES13DEL02",
		DriverAge:          "37 ",
		DriverRating:       "4.9",
		RestaurantLat:      22.745049,
		RestaurantLon:      75.892471,
		DeliveryLat:        22.765049,
		DeliveryLon:        75.912471,
		OrderDate:          "19-03-2022",
		Weather:            "conditions Sunny",
		TrafficDensity:     "High ",
		VehicleCondition:   2,
		OrderType:          "Snack ",
		VehicleType:        "motorcycle ",
		MultipleDeliveries: "0 ",
		Festival:           "No ",
		City:               "Urban ",
		TimeTaken:          "(min) 24",
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize([]domain.RawOrder{validRaw()})

	require.NoError(t, err)
	require.Len(t, got, 1)

	o := got[0]
	assert.Equal(t, "0x4607", o.ID)
	assert.Equal(t, "INDORES13DEL02", o.DriverID)
	assert.Equal(t, 37, o.DriverAge)
	assert.Equal(t, 4.9, o.DriverRating)
	assert.Equal(t, time.Date(2022, 3, 19, 0, 0, 0, 0, time.UTC), o.OrderDate)
	assert.Equal(t, "High", o.TrafficDensity)
	assert.Equal(t, "Snack", o.OrderType)
	assert.Equal(t, "motorcycle", o.VehicleType)
	assert.Equal(t, 0, o.MultipleDeliveries)
	assert.Equal(t, "No", o.Festival)
	assert.Equal(t, "Urban", o.City)
	assert.Equal(t, 24, o.TimeTakenMin)
}

func TestNormalize_DropsMissingMarkerRows(t *testing.T) {
	set := func(mutate func(*domain.RawOrder)) domain.RawOrder {
		r := validRaw()
		mutate(&r)
		return r
	}

	tests := []struct {
		name string
		raw  domain.RawOrder
	}{
		{"missing age", set(func(r *domain.RawOrder) { r.DriverAge = domain.MissingValue })},
		{"missing multiple deliveries", set(func(r *domain.RawOrder) { r.MultipleDeliveries = domain.MissingValue })},
		{"missing traffic", set(func(r *domain.RawOrder) { r.TrafficDensity = domain.MissingValue })},
		{"missing city", set(func(r *domain.RawOrder) { r.City = domain.MissingValue })},
		{"missing festival", set(func(r *domain.RawOrder) { r.Festival = domain.MissingValue })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]domain.RawOrder{tt.raw, validRaw()})

			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "0x4607", got[0].ID)
		})
	}
}

func TestNormalize_MarkerWithoutTrailingSpaceIsKeptAsData(t *testing.T) {
	r := validRaw()
	r.City = "NaN" // only the exact marker with trailing space means missing

	got, err := Normalize([]domain.RawOrder{r})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NaN", got[0].City)
}

func TestNormalize_ConversionErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RawOrder)
		field  string
	}{
		{"bad age", func(r *domain.RawOrder) { r.DriverAge = "thirty" }, "Delivery_person_Age"},
		{"bad rating", func(r *domain.RawOrder) { r.DriverRating = "x" }, "Delivery_person_Ratings"},
		{"bad date", func(r *domain.RawOrder) { r.OrderDate = "2022-03-19" }, "Order_Date"},
		{"bad multiple deliveries", func(r *domain.RawOrder) { r.MultipleDeliveries = "one" }, "multiple_deliveries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRaw()
			tt.mutate(&r)

			got, err := Normalize([]domain.RawOrder{r})

			require.Error(t, err)
			assert.Nil(t, got)

			var convErr *ConversionError
			require.ErrorAs(t, err, &convErr)
			assert.Equal(t, tt.field, convErr.Field)
		})
	}
}

func TestNormalize_TimeTakenFormatError(t *testing.T) {
	r := validRaw()
	r.TimeTaken = "twenty-four"

	_, err := Normalize([]domain.RawOrder{r})

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Time_taken(min)", formatErr.Field)
}

func TestNormalize_Idempotent(t *testing.T) {
	once, err := Normalize([]domain.RawOrder{validRaw()})
	require.NoError(t, err)

	// Feed the cleaned record back through as raw input.
	o := once[0]
	again, err := Normalize([]domain.RawOrder{{
		ID:                 o.ID,
		DriverID:           o.DriverID,
		DriverAge:          "37",
		DriverRating:       "4.9",
		RestaurantLat:      o.RestaurantLat,
		RestaurantLon:      o.RestaurantLon,
		DeliveryLat:        o.DeliveryLat,
		DeliveryLon:        o.DeliveryLon,
		OrderDate:          "19-03-2022",
		Weather:            o.Weather,
		TrafficDensity:     o.TrafficDensity,
		VehicleCondition:   o.VehicleCondition,
		OrderType:          o.OrderType,
		VehicleType:        o.VehicleType,
		MultipleDeliveries: "0",
		Festival:           o.Festival,
		City:               o.City,
		TimeTaken:          "24", // prefix already stripped
	}})

	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, once[0], again[0])
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := []domain.RawOrder{validRaw()}
	missing := validRaw()
	missing.Festival = domain.MissingValue
	raw = append(raw, missing)

	_, err := Normalize(raw)

	require.NoError(t, err)
	assert.Equal(t, domain.MissingValue, raw[1].Festival)
	assert.Equal(t, " 0x4607 ", raw[0].ID)
}

func TestNormalize_Empty(t *testing.T) {
	got, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
