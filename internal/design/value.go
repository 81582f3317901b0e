package design

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a float64 that survives JSON round-trips when non-finite.
// encoding/json refuses raw NaN and infinities, but both are legitimate
// states here: NaN marks an input that failed numeric coercion, +Inf marks
// an infeasible capacitance requirement. NaN encodes as null, infinities as
// the strings "Infinity" / "-Infinity".
type Value float64

// F returns the underlying float64.
func (v Value) F() float64 { return float64(v) }

// Finite reports whether v is neither NaN nor infinite.
func (v Value) Finite() bool { return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0) }

func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return []byte("null"), nil
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null", `"NaN"`:
		*v = Value(math.NaN())
		return nil
	case `"Infinity"`:
		*v = Value(math.Inf(1))
		return nil
	case `"-Infinity"`:
		*v = Value(math.Inf(-1))
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse numeric value %q: %w", data, err)
	}
	*v = Value(f)
	return nil
}
