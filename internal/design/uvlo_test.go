package design

import (
	"math"
	"testing"
)

func TestUVLODividerExample(t *testing.T) {
	r1 := UVLOResistor1(10, 9, 10e-6)
	relClose(t, "uvloR1", r1, 100_000)

	r2 := UVLOResistor2(r1, 10, 1.0)
	relClose(t, "uvloR2", r2, 100_000.0/9.0)
}

func TestUVLOResistor1Invalid(t *testing.T) {
	cases := []struct {
		name            string
		von, voff, ihys float64
	}{
		{"zero hysteresis current", 10, 9, 0},
		{"negative hysteresis current", 10, 9, -1e-6},
		{"von equals voff", 9, 9, 10e-6},
		{"von below voff", 8, 9, 10e-6},
	}

	for _, tc := range cases {
		if r := UVLOResistor1(tc.von, tc.voff, tc.ihys); !math.IsNaN(r) {
			t.Fatalf("%s: expected NaN, got %v", tc.name, r)
		}
	}
}

func TestUVLOResistor2Invalid(t *testing.T) {
	if r := UVLOResistor2(math.NaN(), 10, 1); !math.IsNaN(r) {
		t.Fatalf("invalid r1 should give NaN, got %v", r)
	}
	if r := UVLOResistor2(0, 10, 1); !math.IsNaN(r) {
		t.Fatalf("non-positive r1 should give NaN, got %v", r)
	}
	if r := UVLOResistor2(100_000, 1, 1); !math.IsNaN(r) {
		t.Fatalf("von at enable threshold should give NaN, got %v", r)
	}
}

func TestApplyUVLOCopiesComputedValues(t *testing.T) {
	in := Defaults()
	res := Recompute(in)

	applied := ApplyUVLO(in, res)
	if applied.UvloR1 != res.UvloR1 || applied.UvloR2 != res.UvloR2 {
		t.Fatalf("expected computed divider copied into inputs, got %v / %v", applied.UvloR1, applied.UvloR2)
	}
}

func TestApplyUVLOSkipsInvalidValues(t *testing.T) {
	in := Defaults()
	in.UvloR1 = 123
	in.UvloR2 = 456

	res := Results{UvloR1: Value(math.NaN()), UvloR2: Value(math.NaN())}
	applied := ApplyUVLO(in, res)
	if applied.UvloR1 != 123 || applied.UvloR2 != 456 {
		t.Fatalf("invalid computed values must not overwrite inputs, got %v / %v", applied.UvloR1, applied.UvloR2)
	}
}
