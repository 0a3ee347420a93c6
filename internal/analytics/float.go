package analytics

import (
	"math"
	"strconv"
)

// Float is a float64 that marshals NaN and infinities as null. Sample
// standard deviations are NaN for single-order groups and encoding/json
// rejects NaN outright.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// IsNaN reports whether the value is NaN.
func (f Float) IsNaN() bool { return math.IsNaN(float64(f)) }
