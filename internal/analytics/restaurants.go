package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"curypulse/internal/geo"
	"curypulse/pkg/contracts/domain"
)

// UniqueDrivers counts the distinct driver IDs in the order set.
func UniqueDrivers(orders []domain.Order) int {
	ids := make(map[string]struct{})
	for _, o := range orders {
		ids[o.DriverID] = struct{}{}
	}
	return len(ids)
}

// MeanDeliveryDistance averages the restaurant-to-delivery great-circle
// distance over all orders, rounded to two decimals. Empty input yields
// NaN.
func MeanDeliveryDistance(orders []domain.Order) float64 {
	if len(orders) == 0 {
		return math.NaN()
	}
	distances := make([]float64, len(orders))
	for i, o := range orders {
		distances[i] = geo.Haversine(o.RestaurantLat, o.RestaurantLon, o.DeliveryLat, o.DeliveryLon)
	}
	return round2(stat.Mean(distances, nil))
}

// CityDistance is one row of the mean-delivery-distance-per-city table.
type CityDistance struct {
	City   string  `json:"city"`
	MeanKm float64 `json:"mean_km"`
}

// MeanDistanceByCity averages the delivery distance per city, rounded to
// two decimals, sorted by city name.
func MeanDistanceByCity(orders []domain.Order) []CityDistance {
	groups := make(map[string][]float64)
	for _, o := range orders {
		d := geo.Haversine(o.RestaurantLat, o.RestaurantLon, o.DeliveryLat, o.DeliveryLon)
		groups[o.City] = append(groups[o.City], d)
	}

	out := make([]CityDistance, 0, len(groups))
	for city, ds := range groups {
		out = append(out, CityDistance{City: city, MeanKm: round2(stat.Mean(ds, nil))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

// TimeStats carries the mean and sample standard deviation of delivery
// minutes for one group. StdDev is NaN for single-order groups.
type TimeStats struct {
	Mean   Float `json:"mean_min"`
	StdDev Float `json:"std_dev_min"`
}

func timeStats(minutes []float64) TimeStats {
	if len(minutes) == 0 {
		return TimeStats{Mean: Float(math.NaN()), StdDev: Float(math.NaN())}
	}
	return TimeStats{
		Mean:   Float(round2(stat.Mean(minutes, nil))),
		StdDev: Float(round2(stat.StdDev(minutes, nil))),
	}
}

// FestivalTimeStats is one row of the delivery-time-by-festival table.
type FestivalTimeStats struct {
	Festival string `json:"festival"`
	TimeStats
}

// DeliveryTimeByFestival computes delivery-time statistics for festival
// and non-festival days, sorted by flag value.
func DeliveryTimeByFestival(orders []domain.Order) []FestivalTimeStats {
	groups := make(map[string][]float64)
	for _, o := range orders {
		groups[o.Festival] = append(groups[o.Festival], float64(o.TimeTakenMin))
	}

	out := make([]FestivalTimeStats, 0, len(groups))
	for festival, mins := range groups {
		out = append(out, FestivalTimeStats{Festival: festival, TimeStats: timeStats(mins)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Festival < out[j].Festival })
	return out
}

// FestivalTimeStat picks one statistic for one festival flag value, the
// shape the overview tiles consume. Both figures are NaN when no order
// carries the flag.
func FestivalTimeStat(orders []domain.Order, festival string) TimeStats {
	var minutes []float64
	for _, o := range orders {
		if o.Festival == festival {
			minutes = append(minutes, float64(o.TimeTakenMin))
		}
	}
	return timeStats(minutes)
}

// CityTimeStats is one row of the delivery-time-by-city table.
type CityTimeStats struct {
	City string `json:"city"`
	TimeStats
}

// DeliveryTimeByCity computes delivery-time statistics per city, sorted
// by city name.
func DeliveryTimeByCity(orders []domain.Order) []CityTimeStats {
	groups := make(map[string][]float64)
	for _, o := range orders {
		groups[o.City] = append(groups[o.City], float64(o.TimeTakenMin))
	}

	out := make([]CityTimeStats, 0, len(groups))
	for city, mins := range groups {
		out = append(out, CityTimeStats{City: city, TimeStats: timeStats(mins)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

// CityOrderTypeTimeStats is one row of the delivery-time-by-city-and-order-
// type table.
type CityOrderTypeTimeStats struct {
	City      string `json:"city"`
	OrderType string `json:"order_type"`
	TimeStats
}

// DeliveryTimeByCityAndOrderType computes delivery-time statistics per
// (city, order type) pair, sorted by city then order type.
func DeliveryTimeByCityAndOrderType(orders []domain.Order) []CityOrderTypeTimeStats {
	type key struct{ city, orderType string }
	groups := make(map[key][]float64)
	for _, o := range orders {
		k := key{o.City, o.OrderType}
		groups[k] = append(groups[k], float64(o.TimeTakenMin))
	}

	out := make([]CityOrderTypeTimeStats, 0, len(groups))
	for k, mins := range groups {
		out = append(out, CityOrderTypeTimeStats{City: k.city, OrderType: k.orderType, TimeStats: timeStats(mins)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].OrderType < out[j].OrderType
	})
	return out
}

// CityTrafficTimeStats is one row of the delivery-time-by-city-and-traffic
// table.
type CityTrafficTimeStats struct {
	City    string `json:"city"`
	Traffic string `json:"traffic_density"`
	TimeStats
}

// DeliveryTimeByCityAndTraffic computes delivery-time statistics per
// (city, traffic density) pair, sorted by city then traffic category.
func DeliveryTimeByCityAndTraffic(orders []domain.Order) []CityTrafficTimeStats {
	type key struct{ city, traffic string }
	groups := make(map[key][]float64)
	for _, o := range orders {
		k := key{o.City, o.TrafficDensity}
		groups[k] = append(groups[k], float64(o.TimeTakenMin))
	}

	out := make([]CityTrafficTimeStats, 0, len(groups))
	for k, mins := range groups {
		out = append(out, CityTrafficTimeStats{City: k.city, Traffic: k.traffic, TimeStats: timeStats(mins)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Traffic < out[j].Traffic
	})
	return out
}
