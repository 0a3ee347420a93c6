// Package analytics holds the pure group-by-and-reduce transforms behind
// the dashboard views. Every function consumes an already-normalized order
// set and recomputes its result from scratch; nothing here caches state or
// re-validates input.
package analytics

import (
	"math"
	"time"

	"curypulse/pkg/contracts/domain"
)

// Filter holds the user-controlled pre-aggregation predicates supplied by
// the presentation layer: an exclusive upper-bound order date and a subset
// of traffic-density categories.
type Filter struct {
	Before  time.Time
	Traffic []string
}

// Apply returns the orders that pass both predicates. A zero Before keeps
// all dates; an empty Traffic slice keeps all traffic categories.
func (f Filter) Apply(orders []domain.Order) []domain.Order {
	var trafficSet map[string]bool
	if len(f.Traffic) > 0 {
		trafficSet = make(map[string]bool, len(f.Traffic))
		for _, t := range f.Traffic {
			trafficSet[t] = true
		}
	}

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !f.Before.IsZero() && !o.OrderDate.Before(f.Before) {
			continue
		}
		if trafficSet != nil && !trafficSet[o.TrafficDensity] {
			continue
		}
		out = append(out, o)
	}
	return out
}

// round2 rounds to two decimal places, the precision every presented
// figure uses. NaN passes through untouched.
func round2(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
