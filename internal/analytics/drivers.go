package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"curypulse/pkg/contracts/domain"
)

// AgeRange returns the youngest and oldest driver age in the order set.
// Empty input yields (0, 0).
func AgeRange(orders []domain.Order) (min, max int) {
	if len(orders) == 0 {
		return 0, 0
	}
	min, max = orders[0].DriverAge, orders[0].DriverAge
	for _, o := range orders[1:] {
		if o.DriverAge < min {
			min = o.DriverAge
		}
		if o.DriverAge > max {
			max = o.DriverAge
		}
	}
	return min, max
}

// VehicleConditionRange returns the worst and best vehicle condition score
// in the order set. Empty input yields (0, 0).
func VehicleConditionRange(orders []domain.Order) (min, max int) {
	if len(orders) == 0 {
		return 0, 0
	}
	min, max = orders[0].VehicleCondition, orders[0].VehicleCondition
	for _, o := range orders[1:] {
		if o.VehicleCondition < min {
			min = o.VehicleCondition
		}
		if o.VehicleCondition > max {
			max = o.VehicleCondition
		}
	}
	return min, max
}

// DriverRating is one row of the mean-rating-per-driver table.
type DriverRating struct {
	DriverID   string  `json:"driver_id"`
	MeanRating float64 `json:"mean_rating"`
}

// MeanRatingByDriver averages each driver's ratings, rounded to two
// decimals, sorted by driver ID.
func MeanRatingByDriver(orders []domain.Order) []DriverRating {
	ratings := make(map[string][]float64)
	for _, o := range orders {
		ratings[o.DriverID] = append(ratings[o.DriverID], o.DriverRating)
	}

	out := make([]DriverRating, 0, len(ratings))
	for id, rs := range ratings {
		out = append(out, DriverRating{DriverID: id, MeanRating: round2(stat.Mean(rs, nil))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DriverID < out[j].DriverID })
	return out
}

// RatingStats is one row of a rating mean/spread table keyed by a grouping
// category. StdDev is the sample standard deviation and is NaN for groups
// with a single rating.
type RatingStats struct {
	Key    string `json:"key"`
	Mean   Float  `json:"mean"`
	StdDev Float  `json:"std_dev"`
}

// RatingStatsByTraffic computes the mean and sample standard deviation of
// driver ratings per traffic-density category.
func RatingStatsByTraffic(orders []domain.Order) []RatingStats {
	return ratingStatsBy(orders, func(o *domain.Order) string { return o.TrafficDensity })
}

// RatingStatsByWeather computes the mean and sample standard deviation of
// driver ratings per weather condition.
func RatingStatsByWeather(orders []domain.Order) []RatingStats {
	return ratingStatsBy(orders, func(o *domain.Order) string { return o.Weather })
}

func ratingStatsBy(orders []domain.Order, key func(*domain.Order) string) []RatingStats {
	groups := make(map[string][]float64)
	for i := range orders {
		k := key(&orders[i])
		groups[k] = append(groups[k], orders[i].DriverRating)
	}

	out := make([]RatingStats, 0, len(groups))
	for k, rs := range groups {
		out = append(out, RatingStats{
			Key:    k,
			Mean:   Float(stat.Mean(rs, nil)),
			StdDev: Float(stat.StdDev(rs, nil)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DriverDeliveryTime is one row of a per-city deliverer ranking. Minutes
// is the driver's slowest recorded delivery in that city.
type DriverDeliveryTime struct {
	City     string `json:"city"`
	DriverID string `json:"driver_id"`
	Minutes  int    `json:"minutes"`
}

// TopDeliverersByCity ranks drivers per city by their worst delivery time
// and keeps the topN fastest (ascending) or slowest (descending) per city.
// Cities are emitted in the order given; cities absent from the order set
// contribute no rows. Ties rank by driver ID.
func TopDeliverersByCity(orders []domain.Order, cities []string, fastest bool, topN int) []DriverDeliveryTime {
	type key struct{ city, driver string }
	worst := make(map[key]int)
	for _, o := range orders {
		k := key{o.City, o.DriverID}
		if cur, ok := worst[k]; !ok || o.TimeTakenMin > cur {
			worst[k] = o.TimeTakenMin
		}
	}

	perCity := make(map[string][]DriverDeliveryTime)
	for k, minutes := range worst {
		perCity[k.city] = append(perCity[k.city], DriverDeliveryTime{
			City:     k.city,
			DriverID: k.driver,
			Minutes:  minutes,
		})
	}

	var out []DriverDeliveryTime
	for _, city := range cities {
		rows := perCity[city]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Minutes != rows[j].Minutes {
				if fastest {
					return rows[i].Minutes < rows[j].Minutes
				}
				return rows[i].Minutes > rows[j].Minutes
			}
			return rows[i].DriverID < rows[j].DriverID
		})
		if len(rows) > topN {
			rows = rows[:topN]
		}
		out = append(out, rows...)
	}
	return out
}
