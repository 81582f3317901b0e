package design

import (
	"math"
	"testing"
)

func TestRecomputeMatchesClosedForms(t *testing.T) {
	in := Defaults()
	res := Recompute(in)

	relClose(t, "deltaIlNom", res.DeltaIlNom.F(), 2.4)
	relClose(t, "lRequired", res.LRequired.F(), 5*(12-5)/(12*2.1e6*2.4))
	relClose(t, "deltaIlVinMax", res.DeltaIlVinMax.F(), 5*(18-5)/(18*0.56e-6*2.1e6))
	relClose(t, "ilPeakVinMax", res.IlPeakVinMax.F(), 8+res.DeltaIlVinMax.F()/2)
	relClose(t, "lShortMin", res.LShortMin.F(), 5*0.005/(0.024*2.1e6))
	relClose(t, "rsenseCalc", res.RsenseCalc.F(), 0.060/(1.25*res.IlPeakVinMax.F()))
	relClose(t, "dutyNom", res.DutyNom.F(), 5.0/12.0)
	relClose(t, "rt", res.Rt.F(), (1e6/2100-53)/45*1000)
	relClose(t, "rfbTop", res.RfbTop.F(), 52_500)
	relClose(t, "uvloR1", res.UvloR1.F(), (10.0-9.0)/10e-6)
	relClose(t, "uvloR2", res.UvloR2.F(), res.UvloR1.F()*1.2/(10-1.2))

	if res.CinNote != "" {
		t.Fatalf("default design point should be feasible, got note %q", res.CinNote)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	in := Defaults()

	first := Recompute(in)
	second := Recompute(in)
	if first != second {
		t.Fatalf("recompute with unchanged inputs must be bit-identical:\n%+v\n%+v", first, second)
	}
}

func TestRecomputePropagatesNaNWithoutPanicking(t *testing.T) {
	in := Defaults()
	in.Vout = Value(math.NaN())

	res := Recompute(in)

	if res.LRequired.Finite() {
		t.Fatalf("lRequired should be NaN, got %v", res.LRequired)
	}
	if res.CoutMin.Finite() {
		t.Fatalf("coutMin should be NaN, got %v", res.CoutMin)
	}
	// Equations independent of Vout still produce finite results.
	if !res.DeltaIlNom.Finite() {
		t.Fatalf("deltaIlNom should stay finite, got %v", res.DeltaIlNom)
	}
	if !res.UvloR1.Finite() {
		t.Fatalf("uvloR1 should stay finite, got %v", res.UvloR1)
	}
}

func TestRecomputeSurfacesInfeasibleInputCapacitance(t *testing.T) {
	in := Defaults()
	in.RinESR = 0.050

	res := Recompute(in)

	if !math.IsInf(res.CinRequired.F(), 1) {
		t.Fatalf("expected +Inf cinRequired, got %v", res.CinRequired)
	}
	if res.CinNote == "" {
		t.Fatal("expected a non-empty advisory note")
	}
}

func TestApplyLock(t *testing.T) {
	in := Defaults()
	res := Recompute(in)

	unlocked := ApplyLock(in, res)
	if unlocked.LUsed != in.LUsed {
		t.Fatalf("unlocked inductor must not change, got %v", unlocked.LUsed)
	}

	in.LLock = true
	locked := ApplyLock(in, res)
	if locked.LUsed != res.LRequired {
		t.Fatalf("locked inductor should track lRequired: got %v, want %v", locked.LUsed, res.LRequired)
	}
}

func TestLockedInductorConvergesOnNextPass(t *testing.T) {
	in := Defaults()
	in.LLock = true

	res := Recompute(in)
	in = ApplyLock(in, res)
	res = Recompute(in)

	want := InductorRipple(18, 5, 2.1e6, res.LRequired.F())
	relClose(t, "deltaIlVinMax after lock", res.DeltaIlVinMax.F(), want)
}
