// Package design implements the LM5148 component-value design flow:
// a fixed chain of closed-form equations from the datasheet design
// procedure, evaluated in dependency order on every input change.
//
// Every equation is a pure function over float64. Non-finite operands
// propagate through per IEEE-754; nothing in this package panics on bad
// numeric input.
package design

import "math"

// shortCircuitSlopeVolts is the 24 mV slope term from the datasheet
// short-circuit inductance example. Datasheet-derived; the reference
// derivation gives no formula for it, so it stays a constant.
const shortCircuitSlopeVolts = 0.024

// Advisory notes for the input-capacitance infeasibility cases.
const (
	NoteInputESRDominates = "input capacitor ESR ripple alone meets or exceeds the input ripple spec; no finite capacitance satisfies it"
	NoteNoRippleHeadroom  = "no capacitive ripple headroom remains under the input ripple spec"
)

// RippleCurrent is the target inductor ripple current at the nominal
// operating point.
func RippleCurrent(iout, rippleFrac float64) float64 {
	return iout * rippleFrac
}

// RequiredInductance is the inductance that produces deltaIL of ripple at
// the nominal input voltage (datasheet Eq.31).
func RequiredInductance(vinNom, vout, fsw, deltaIL float64) float64 {
	return vout * (vinNom - vout) / (vinNom * fsw * deltaIL)
}

// InductorRipple is the ripple current for a given inductance at a given
// input voltage. Evaluated at VinMax it gives the worst-case ripple.
func InductorRipple(vin, vout, fsw, l float64) float64 {
	return vout * (vin - vout) / (vin * l * fsw)
}

// PeakInductorCurrent is the DC load current plus half the worst-case
// ripple (datasheet Eq.32).
func PeakInductorCurrent(iout, deltaILMax float64) float64 {
	return iout + deltaILMax/2
}

// ShortCircuitInductance is the minimum inductance that keeps the current
// ramp controllable under a shorted output. rsense is in milliohms.
func ShortCircuitInductance(vout, rsenseMilliOhm, fsw float64) float64 {
	return vout * (rsenseMilliOhm / 1000) / (shortCircuitSlopeVolts * fsw)
}

// SenseResistor is the recommended sense resistance for the current-limit
// threshold with the given margin over peak current (datasheet Eq.34).
func SenseResistor(vcsTh, margin, ilPeak float64) float64 {
	return vcsTh / (margin * ilPeak)
}

// PeakShortCircuitCurrent is the inductor current reached before the
// current limit reacts, given the comparator propagation delay
// (datasheet Eq.35). rsense is in ohms.
func PeakShortCircuitCurrent(vcsTh, rsenseOhm, vinMax, tDelay, l float64) float64 {
	return vcsTh/rsenseOhm + vinMax*tDelay/l
}

// MinOutputCapacitance is the capacitance needed to absorb the inductor
// energy on a full load-off transient within the allowed overshoot
// (datasheet Eq.36). The denominator must be positive; a zero or negative
// overshoot has no solution and yields NaN.
func MinOutputCapacitance(l, iout, vout, overshoot float64) float64 {
	denom := (vout+overshoot)*(vout+overshoot) - vout*vout
	if !(denom > 0) {
		return math.NaN()
	}
	return l * iout * iout / denom
}

// OutputVoltageRipple combines the capacitive and ESR ripple contributions
// in quadrature (datasheet Eq.37).
func OutputVoltageRipple(deltaIL, fsw, cout, esr float64) float64 {
	vc := deltaIL / (8 * fsw * cout)
	vesr := deltaIL * esr
	return math.Sqrt(vc*vc + vesr*vesr)
}

// OutputCapRMSCurrent is the RMS current in the output capacitor for a
// triangular ripple waveform (datasheet Eq.38).
func OutputCapRMSCurrent(deltaIL float64) float64 {
	return deltaIL / math.Sqrt(12)
}

// InputCapRMSCurrent is the RMS current in the input capacitor at the
// given duty cycle (datasheet Eq.39).
func InputCapRMSCurrent(iout, duty float64) float64 {
	return iout * math.Sqrt(duty*(1-duty))
}

// RequiredInputCapacitance is the capacitance that holds total input
// ripple within rippleSpec, after subtracting the ESR contribution in
// quadrature (datasheet Eq.40). When the ESR contribution alone meets or
// exceeds the spec there is no finite solution; the result is +Inf with a
// non-empty advisory note.
func RequiredInputCapacitance(iout, fsw, duty, rippleSpec, esr float64) (float64, string) {
	dvESR := InputCapRMSCurrent(iout, duty) * esr
	if dvESR >= rippleSpec {
		return math.Inf(1), NoteInputESRDominates
	}

	headroom := math.Sqrt(math.Max(rippleSpec*rippleSpec-dvESR*dvESR, 0))
	if headroom <= 0 {
		return math.Inf(1), NoteNoRippleHeadroom
	}

	return iout * duty * (1 - duty) / (fsw * headroom), ""
}

// TimingResistor converts the switching frequency to the RT pin resistance
// (datasheet Eq.41: Fsw(kHz) = 1e6 / (45*Rt(kΩ) + 53)).
func TimingResistor(fsw float64) float64 {
	fswKHz := fsw / 1000
	rtKOhm := (1_000_000/fswKHz - 53) / 45
	return rtKOhm * 1000
}

// FeedbackTopResistor is the upper feedback divider resistor for the
// target output voltage. An output at or below the reference needs no
// divider and yields 0.
func FeedbackTopResistor(vout, vref, rBottom float64) float64 {
	if vout <= vref {
		return 0
	}
	return rBottom * (vout/vref - 1)
}

// CompensationResistor sets the mid-band gain of the error amplifier for
// the target crossover frequency. rsense is in ohms.
func CompensationResistor(vout, rsenseOhm, gm, fc, cout, vref float64) float64 {
	return vout * rsenseOhm * gm / (2 * math.Pi * fc * cout * vref)
}

// CompensationCapacitor places the compensation zero a decade below the
// crossover frequency (datasheet Eq.44).
func CompensationCapacitor(fc, rcomp float64) float64 {
	return 10 / (2 * math.Pi * fc * rcomp)
}

// HighFreqCapacitor places a pole at the output capacitor ESR zero,
// less the error amplifier's parasitic bandwidth capacitance
// (datasheet Eq.45). A negative result means the parasitic capacitance
// already exceeds the requirement; it is a valid numeric outcome.
func HighFreqCapacitor(fEsrZero, rcomp, cbw float64) float64 {
	return 1/(2*math.Pi*fEsrZero*rcomp) - cbw
}

// NominalDuty is the buck duty cycle at the nominal input, clamped to the
// controller's maximum.
func NominalDuty(vout, vinNom float64) float64 {
	d := vout / vinNom
	if d < 0 {
		return 0
	}
	if d > 0.95 {
		return 0.95
	}
	return d
}
