// Package format renders raw computation results as human-readable text:
// plain fixed/scientific notation and SI engineering-prefix notation.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Dash is the placeholder shown for values that failed numeric coercion.
const Dash = "—"

// Plain formats v in fixed or scientific notation. Non-finite values render
// as the placeholder dash; magnitudes below 1e-3 or at/above 1e4 use
// scientific notation with three fraction digits; everything else is
// fixed-point with trailing zeros trimmed.
func Plain(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Dash
	}
	if v == 0 {
		return "0"
	}

	a := math.Abs(v)
	if a < 1e-3 || a >= 1e4 {
		return strconv.FormatFloat(v, 'e', 3, 64)
	}
	return trimZeros(strconv.FormatFloat(v, 'f', 4, 64))
}

var siPrefixes = []struct {
	exp    int
	symbol string
}{
	{-12, "p"},
	{-9, "n"},
	{-6, "µ"},
	{-3, "m"},
	{0, ""},
	{3, "k"},
	{6, "M"},
	{9, "G"},
	{12, "T"},
}

// Eng formats v in engineering notation with an SI prefix attached to unit.
// The largest power-of-1000 prefix in [1e-12, 1e12] not exceeding the
// magnitude is chosen; sub-pico values scale to "p" with a fractional
// mantissa. Fraction digits shrink as the scaled magnitude grows: three
// below 10, two below 100, one otherwise.
func Eng(v float64, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Dash
	}
	if v == 0 {
		if unit == "" {
			return "0"
		}
		return "0 " + unit
	}

	a := math.Abs(v)
	chosen := siPrefixes[0]
	for _, p := range siPrefixes {
		if math.Pow(10, float64(p.exp)) <= a {
			chosen = p
		}
	}

	scaled := v / math.Pow(10, float64(chosen.exp))
	digits := 3
	switch m := math.Abs(scaled); {
	case m < 10:
		digits = 3
	case m < 100:
		digits = 2
	default:
		digits = 1
	}

	num := trimZeros(strconv.FormatFloat(scaled, 'f', digits, 64))
	suffix := chosen.symbol + unit
	if suffix == "" {
		return num
	}
	return num + " " + suffix
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
