package analytics

import (
	"fmt"
	"sort"
	"time"

	"curypulse/pkg/contracts/domain"
)

// DailyOrders is one row of the orders-per-day table.
type DailyOrders struct {
	Date   time.Time `json:"date"`
	Orders int       `json:"orders"`
}

// OrdersByDay counts distinct order IDs per calendar date, sorted by date.
func OrdersByDay(orders []domain.Order) []DailyOrders {
	perDay := make(map[time.Time]map[string]struct{})
	for _, o := range orders {
		ids, ok := perDay[o.OrderDate]
		if !ok {
			ids = make(map[string]struct{})
			perDay[o.OrderDate] = ids
		}
		ids[o.ID] = struct{}{}
	}

	out := make([]DailyOrders, 0, len(perDay))
	for date, ids := range perDay {
		out = append(out, DailyOrders{Date: date, Orders: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TrafficShare is one row of the traffic-condition share table. Percent is
// the group's share of all orders, rounded to two decimals; independently
// rounded shares need not sum to exactly 100.
type TrafficShare struct {
	Traffic string  `json:"traffic_density"`
	Orders  int     `json:"orders"`
	Percent float64 `json:"percent"`
}

// TrafficOrderShare counts orders per traffic-density category and turns
// the counts into percentages of the total. Rows are sorted by category
// name. An empty input yields an empty table.
func TrafficOrderShare(orders []domain.Order) []TrafficShare {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[o.TrafficDensity]++
	}

	out := make([]TrafficShare, 0, len(counts))
	for traffic, n := range counts {
		out = append(out, TrafficShare{Traffic: traffic, Orders: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Traffic < out[j].Traffic })

	for i := range out {
		out[i].Percent = round2(float64(out[i].Orders) / float64(len(orders)) * 100)
	}
	return out
}

// CityTrafficShare is one row of the per-city traffic share table.
type CityTrafficShare struct {
	City    string  `json:"city"`
	Traffic string  `json:"traffic_density"`
	Orders  int     `json:"orders"`
	Percent float64 `json:"percent"`
}

// TrafficShareByCity counts orders per (city, traffic density) pair; each
// group's percentage is taken against the grand total, matching the
// company view's grouped bar chart.
func TrafficShareByCity(orders []domain.Order) []CityTrafficShare {
	type key struct{ city, traffic string }
	counts := make(map[key]int)
	for _, o := range orders {
		counts[key{o.City, o.TrafficDensity}]++
	}

	out := make([]CityTrafficShare, 0, len(counts))
	for k, n := range counts {
		out = append(out, CityTrafficShare{City: k.city, Traffic: k.traffic, Orders: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Traffic < out[j].Traffic
	})

	for i := range out {
		out[i].Percent = round2(float64(out[i].Orders) / float64(len(orders)) * 100)
	}
	return out
}

// WeeklyOrders is one row of the orders-per-week table. Week keys are ISO
// week buckets formatted as "2022-W11".
type WeeklyOrders struct {
	Week   string `json:"week"`
	Orders int    `json:"orders"`
}

// OrdersByWeek counts orders per ISO week, sorted by week key.
func OrdersByWeek(orders []domain.Order) []WeeklyOrders {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[isoWeek(o.OrderDate)]++
	}

	out := make([]WeeklyOrders, 0, len(counts))
	for week, n := range counts {
		out = append(out, WeeklyOrders{Week: week, Orders: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// WeeklyDriverLoad is one row of the deliveries-per-driver-per-week table.
// OrdersPerDriver is NaN when a week bucket has zero distinct drivers; a
// week with orders always has at least one driver in practice, but the
// division is defined either way rather than left to panic.
type WeeklyDriverLoad struct {
	Week            string  `json:"week"`
	Orders          int     `json:"orders"`
	Drivers         int     `json:"drivers"`
	OrdersPerDriver float64 `json:"orders_per_driver"`
}

// OrdersPerDriverByWeek computes the order count and the distinct-driver
// count per ISO week separately, then divides the two, rounded to two
// decimals.
func OrdersPerDriverByWeek(orders []domain.Order) []WeeklyDriverLoad {
	counts := make(map[string]int)
	drivers := make(map[string]map[string]struct{})
	for _, o := range orders {
		week := isoWeek(o.OrderDate)
		counts[week]++
		ids, ok := drivers[week]
		if !ok {
			ids = make(map[string]struct{})
			drivers[week] = ids
		}
		ids[o.DriverID] = struct{}{}
	}

	out := make([]WeeklyDriverLoad, 0, len(counts))
	for week, n := range counts {
		row := WeeklyDriverLoad{Week: week, Orders: n, Drivers: len(drivers[week])}
		row.OrdersPerDriver = round2(float64(row.Orders) / float64(row.Drivers))
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// DeliveryHotspot is the median delivery location for one (city, traffic)
// group, used by the geographic view's map markers.
type DeliveryHotspot struct {
	City    string  `json:"city"`
	Traffic string  `json:"traffic_density"`
	Lat     float64 `json:"latitude"`
	Lon     float64 `json:"longitude"`
}

// CentralDeliveryPoints computes the median delivery latitude/longitude
// per (city, traffic density) group.
func CentralDeliveryPoints(orders []domain.Order) []DeliveryHotspot {
	type key struct{ city, traffic string }
	lats := make(map[key][]float64)
	lons := make(map[key][]float64)
	for _, o := range orders {
		k := key{o.City, o.TrafficDensity}
		lats[k] = append(lats[k], o.DeliveryLat)
		lons[k] = append(lons[k], o.DeliveryLon)
	}

	out := make([]DeliveryHotspot, 0, len(lats))
	for k := range lats {
		out = append(out, DeliveryHotspot{
			City:    k.city,
			Traffic: k.traffic,
			Lat:     median(lats[k]),
			Lon:     median(lons[k]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Traffic < out[j].Traffic
	})
	return out
}

// median is the midpoint of the two central samples for even-sized input.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// isoWeek buckets a date into its ISO 8601 year-week pair.
func isoWeek(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
