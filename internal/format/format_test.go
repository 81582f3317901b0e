package format

import (
	"math"
	"testing"
)

func TestPlain(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"nan", math.NaN(), Dash},
		{"positive infinity", math.Inf(1), Dash},
		{"zero", 0, "0"},
		{"small goes scientific", 5e-7, "5.000e-07"},
		{"large goes scientific", 52_500, "5.250e+04"},
		{"mid-range fixed", 12.5, "12.5"},
		{"trailing zeros trimmed", 0.25, "0.25"},
		{"four decimals kept", 3.14159, "3.1416"},
		{"negative mid-range", -9.5, "-9.5"},
		{"lower boundary stays fixed", 1e-3, "0.001"},
	}

	for _, tc := range cases {
		if got := Plain(tc.in); got != tc.want {
			t.Fatalf("%s: Plain(%v) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestEng(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		unit string
		want string
	}{
		{"nan", math.NaN(), "H", Dash},
		{"infinity", math.Inf(1), "F", Dash},
		{"zero with unit", 0, "V", "0 V"},
		{"zero without unit", 0, "", "0"},
		{"half microhenry", 5e-7, "H", "500 nH"},
		{"small capacitance", 4.7e-6, "F", "4.7 µF"},
		{"kilo resistance", 52_500, "Ω", "52.5 kΩ"},
		{"unscaled amps", 2.4, "A", "2.4 A"},
		{"tera", 1.2e13, "Hz", "12 THz"},
		{"below pico clamps", 5e-13, "F", "0.5 pF"},
		{"negative value", -0.0475e-9, "F", "-47.5 pF"},
		{"unitless", 9404.2328, "", "9.404 k"},
	}

	for _, tc := range cases {
		if got := Eng(tc.in, tc.unit); got != tc.want {
			t.Fatalf("%s: Eng(%v, %q) = %q, want %q", tc.name, tc.in, tc.unit, got, tc.want)
		}
	}
}

func TestEngFormatsComputedInductance(t *testing.T) {
	// The datasheet example design point: L = Vout*(Vin-Vout)/(Vin*Fsw*ΔIL)
	// with ΔIL = 2.4 A lands in the hundreds-of-nanohenries range.
	l := 5 * (12 - 5) / (12 * 2.1e6 * 2.4)
	if got := Eng(l, "H"); got != "578.7 nH" {
		t.Fatalf("Eng(%v, H) = %q, want %q", l, got, "578.7 nH")
	}
}

func TestEngFractionDigitsShrinkWithMagnitude(t *testing.T) {
	if got := Eng(1.23456, "V"); got != "1.235 V" {
		t.Fatalf("below 10 keeps three digits, got %q", got)
	}
	if got := Eng(12.3456, "V"); got != "12.35 V" {
		t.Fatalf("below 100 keeps two digits, got %q", got)
	}
	if got := Eng(123.456, "V"); got != "123.5 V" {
		t.Fatalf("above 100 keeps one digit, got %q", got)
	}
}
