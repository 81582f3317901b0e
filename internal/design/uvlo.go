package design

import "math"

// UVLOResistor1 is the top resistor of the undervoltage-lockout divider,
// set by the turn-on/turn-off hysteresis and the EN pin hysteresis
// current. Returns NaN when the hysteresis current is not positive or the
// thresholds are not ordered Von > Voff.
func UVLOResistor1(von, voff, ihys float64) float64 {
	if !(ihys > 0) || !(von > voff) {
		return math.NaN()
	}
	return (von - voff) / ihys
}

// UVLOResistor2 is the bottom resistor of the divider, given a valid R1
// and the EN pin threshold. Returns NaN when R1 is invalid or non-positive
// or Von does not exceed the enable threshold.
func UVLOResistor2(r1, von, venable float64) float64 {
	if math.IsNaN(r1) || !(r1 > 0) || !(von > venable) {
		return math.NaN()
	}
	return r1 * venable / (von - venable)
}

// ApplyUVLO copies the computed UVLO divider values into the persisted
// resistor inputs. It is a no-op when either value is not finite.
func ApplyUVLO(in Inputs, res Results) Inputs {
	if res.UvloR1.Finite() && res.UvloR2.Finite() {
		in.UvloR1 = res.UvloR1
		in.UvloR2 = res.UvloR2
	}
	return in
}
