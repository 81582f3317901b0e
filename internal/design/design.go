package design

// Results holds every computed output of one recompute pass. It is rebuilt
// from scratch on every pass and has no identity of its own; JSON tags are
// the unit-suffixed export key names.
type Results struct {
	DeltaIlNom    Value `json:"deltaIlNom_A"`
	LRequired     Value `json:"lRequired_H"`
	DeltaIlVinMax Value `json:"deltaIlVinMax_A"`
	IlPeakVinMax  Value `json:"ilPeakVinMax_A"`
	LShortMin     Value `json:"lShortMin_H"`
	RsenseCalc    Value `json:"rsenseCalc_Ohm"`
	IlPeakShort   Value `json:"ilPeakShort_A"`
	CoutMin       Value `json:"coutMin_F"`
	VoutRipple    Value `json:"voutRipple_Vpp"`
	IoutCapRms    Value `json:"ioutCapRms_A"`
	DutyNom       Value `json:"dutyNom"`
	CinRms        Value `json:"cinRms_A"`
	CinRequired   Value `json:"cinRequired_F"`
	Rt            Value `json:"rt_Ohm"`
	RfbTop        Value `json:"rfbTop_Ohm"`
	Rcomp         Value `json:"rcomp_Ohm"`
	Ccomp         Value `json:"ccomp_F"`
	Chf           Value `json:"chf_F"`
	UvloR1        Value `json:"uvloR1_Ohm"`
	UvloR2        Value `json:"uvloR2_Ohm"`

	// CinNote explains an infinite CinRequired; empty when the spec is
	// satisfiable.
	CinNote string `json:"cinNote,omitempty"`
}

// Recompute runs the full equation chain in dependency order and returns a
// fresh Results. It is deterministic, does no I/O, and never short-circuits:
// every output is computed even when upstream values are non-finite. The
// lock side effect is deliberately not applied here; see ApplyLock.
func Recompute(in Inputs) Results {
	vinNom := in.VinNom.F()
	vinMax := in.VinMax.F()
	vout := in.Vout.F()
	iout := in.Iout.F()
	fsw := in.Fsw.F()
	l := in.LUsed.F()
	rsenseOhm := in.RsenseMilliOhm.F() / 1000

	duty := NominalDuty(vout, vinNom)
	deltaNom := RippleCurrent(iout, in.RippleFrac.F())
	lRequired := RequiredInductance(vinNom, vout, fsw, deltaNom)

	deltaMax := InductorRipple(vinMax, vout, fsw, l)
	ilPeak := PeakInductorCurrent(iout, deltaMax)

	lShortMin := ShortCircuitInductance(vout, in.RsenseMilliOhm.F(), fsw)
	rsenseCalc := SenseResistor(in.VcsTh.F(), in.IlPkMargin.F(), ilPeak)
	ilPeakShort := PeakShortCircuitCurrent(in.VcsTh.F(), rsenseOhm, vinMax, in.TDelay.F(), l)

	coutMin := MinOutputCapacitance(l, iout, vout, in.VoutOvershoot.F())
	voutRipple := OutputVoltageRipple(deltaNom, fsw, coutMin, in.RoutESR.F())
	ioutCapRms := OutputCapRMSCurrent(deltaNom)

	cinRms := InputCapRMSCurrent(iout, duty)
	cinRequired, cinNote := RequiredInputCapacitance(iout, fsw, duty, in.VinRipple.F(), in.RinESR.F())

	rt := TimingResistor(fsw)
	rfbTop := FeedbackTopResistor(vout, in.Vref.F(), in.RfbBottom.F())

	rcomp := CompensationResistor(vout, rsenseOhm, in.Gm.F(), in.Fc.F(), coutMin, in.Vref.F())
	ccomp := CompensationCapacitor(in.Fc.F(), rcomp)
	chf := HighFreqCapacitor(in.FEsrZero.F(), rcomp, in.Cbw.F())

	r1 := UVLOResistor1(in.UvloVon.F(), in.UvloVoff.F(), in.UvloIhys.F())
	r2 := UVLOResistor2(r1, in.UvloVon.F(), in.UvloVen.F())

	return Results{
		DeltaIlNom:    Value(deltaNom),
		LRequired:     Value(lRequired),
		DeltaIlVinMax: Value(deltaMax),
		IlPeakVinMax:  Value(ilPeak),
		LShortMin:     Value(lShortMin),
		RsenseCalc:    Value(rsenseCalc),
		IlPeakShort:   Value(ilPeakShort),
		CoutMin:       Value(coutMin),
		VoutRipple:    Value(voutRipple),
		IoutCapRms:    Value(ioutCapRms),
		DutyNom:       Value(duty),
		CinRms:        Value(cinRms),
		CinRequired:   Value(cinRequired),
		Rt:            Value(rt),
		RfbTop:        Value(rfbTop),
		Rcomp:         Value(rcomp),
		Ccomp:         Value(ccomp),
		Chf:           Value(chf),
		UvloR1:        Value(r1),
		UvloR2:        Value(r2),
		CinNote:       cinNote,
	}
}

// ApplyLock overwrites the locked inductor input with the freshly computed
// required inductance. Sequenced after Recompute so the numeric pass itself
// stays pure; results reflect the pre-lock value and converge on the next
// pass.
func ApplyLock(in Inputs, res Results) Inputs {
	if in.LLock {
		in.LUsed = res.LRequired
	}
	return in
}
