package dataset

import (
	"strconv"
	"strings"
	"time"

	"curypulse/pkg/contracts/domain"
)

// missingFilters are the row filters applied before any type coercion.
// Each filter is independent: a row carrying the marker in several fields
// is removed by the first filter that sees it. The coercion steps below
// rely on these having run, so the order of phases is load-bearing.
var missingFilters = []struct {
	field string
	value func(*domain.RawOrder) string
}{
	{"Delivery_person_Age", func(r *domain.RawOrder) string { return r.DriverAge }},
	{"multiple_deliveries", func(r *domain.RawOrder) string { return r.MultipleDeliveries }},
	{"Road_traffic_density", func(r *domain.RawOrder) string { return r.TrafficDensity }},
	{"City", func(r *domain.RawOrder) string { return r.City }},
	{"Festival", func(r *domain.RawOrder) string { return r.Festival }},
}

// Normalize cleans the raw order log into typed records. Rows with the
// missing-value marker in age, multiple deliveries, traffic density, city
// or festival are dropped; surviving rows are coerced field by field. The
// input slice is never mutated. One raw row maps to at most one record.
//
// A ConversionError or FormatError from a surviving row is unexpected and
// aborts the whole run: no partially cleaned set is ever returned.
func Normalize(raw []domain.RawOrder) ([]domain.Order, error) {
	kept := make([]domain.RawOrder, 0, len(raw))
	kept = append(kept, raw...)
	for _, f := range missingFilters {
		kept = dropMissing(kept, f.value)
	}

	orders := make([]domain.Order, 0, len(kept))
	for i := range kept {
		o, err := normalizeRecord(i, &kept[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// dropMissing keeps rows whose field does not equal the missing marker.
func dropMissing(rows []domain.RawOrder, value func(*domain.RawOrder) string) []domain.RawOrder {
	out := rows[:0]
	for i := range rows {
		if value(&rows[i]) != domain.MissingValue {
			out = append(out, rows[i])
		}
	}
	return out
}

func normalizeRecord(row int, r *domain.RawOrder) (domain.Order, error) {
	var o domain.Order

	age, err := strconv.Atoi(strings.TrimSpace(r.DriverAge))
	if err != nil {
		return o, &ConversionError{Field: "Delivery_person_Age", Value: r.DriverAge, Row: row, Err: err}
	}

	multiple, err := strconv.Atoi(strings.TrimSpace(r.MultipleDeliveries))
	if err != nil {
		return o, &ConversionError{Field: "multiple_deliveries", Value: r.MultipleDeliveries, Row: row, Err: err}
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(r.DriverRating), 64)
	if err != nil {
		return o, &ConversionError{Field: "Delivery_person_Ratings", Value: r.DriverRating, Row: row, Err: err}
	}

	date, err := time.Parse(domain.OrderDateFormat, strings.TrimSpace(r.OrderDate))
	if err != nil {
		return o, &ConversionError{Field: "Order_Date", Value: r.OrderDate, Row: row, Err: err}
	}

	minutes, err := parseTimeTaken(row, r.TimeTaken)
	if err != nil {
		return o, err
	}

	o = domain.Order{
		ID:                 strings.TrimSpace(r.ID),
		DriverID:           r.DriverID,
		DriverAge:          age,
		DriverRating:       rating,
		RestaurantLat:      r.RestaurantLat,
		RestaurantLon:      r.RestaurantLon,
		DeliveryLat:        r.DeliveryLat,
		DeliveryLon:        r.DeliveryLon,
		OrderDate:          date,
		Weather:            r.Weather,
		TrafficDensity:     strings.TrimSpace(r.TrafficDensity),
		VehicleCondition:   r.VehicleCondition,
		OrderType:          strings.TrimSpace(r.OrderType),
		VehicleType:        strings.TrimSpace(r.VehicleType),
		MultipleDeliveries: multiple,
		Festival:           strings.TrimSpace(r.Festival),
		City:               strings.TrimSpace(r.City),
		TimeTakenMin:       minutes,
	}
	return o, nil
}

// parseTimeTaken strips the fixed "(min) " prefix and parses the remaining
// integer minute count. Cells that already lost the prefix (for example on
// a second normalization pass) parse as bare integers.
func parseTimeTaken(row int, value string) (int, error) {
	rest := value
	if idx := strings.Index(value, domain.TimeTakenPrefix); idx >= 0 {
		rest = value[idx+len(domain.TimeTakenPrefix):]
	} else if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
		return 0, &FormatError{Field: "Time_taken(min)", Value: value, Row: row}
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, &ConversionError{Field: "Time_taken(min)", Value: value, Row: row, Err: err}
	}
	return minutes, nil
}
