// Command designcalc runs one LM5148 design pass from the command line and
// prints the computed component values, optionally writing the JSON export
// document for downstream tooling.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hwtraining/lm5148calc/internal/design"
	"github.com/hwtraining/lm5148calc/internal/export"
	"github.com/hwtraining/lm5148calc/internal/format"
)

func main() {
	d := design.Defaults()

	vinMin := flag.Float64("vin-min", d.VinMin.F(), "minimum input voltage [V]")
	vinNom := flag.Float64("vin-nom", d.VinNom.F(), "nominal input voltage [V]")
	vinMax := flag.Float64("vin-max", d.VinMax.F(), "maximum input voltage [V]")
	vout := flag.Float64("vout", d.Vout.F(), "output voltage [V]")
	iout := flag.Float64("iout", d.Iout.F(), "output current [A]")
	fsw := flag.Float64("fsw", d.Fsw.F(), "switching frequency [Hz]")

	rippleFrac := flag.Float64("ripple-frac", d.RippleFrac.F(), "inductor ripple target as fraction of IOUT")
	lUsed := flag.Float64("l-used", d.LUsed.F(), "inductance used for peak-current checks [H]")
	lock := flag.Bool("lock", false, "lock the inductance to the computed required value")

	overshoot := flag.Float64("vout-overshoot", d.VoutOvershoot.F(), "allowed load-off overshoot [V]")
	routESR := flag.Float64("rout-esr", d.RoutESR.F(), "output capacitor ESR [Ohm]")
	rinESR := flag.Float64("rin-esr", d.RinESR.F(), "input capacitor ESR [Ohm]")
	vinRipple := flag.Float64("vin-ripple", d.VinRipple.F(), "input ripple spec [Vpp]")

	vcsTh := flag.Float64("vcs-th", d.VcsTh.F(), "current-sense threshold [V]")
	margin := flag.Float64("il-pk-margin", d.IlPkMargin.F(), "peak current margin factor")
	tDelay := flag.Float64("t-delay", d.TDelay.F(), "current-sense propagation delay [s]")
	rsenseMO := flag.Float64("rsense", d.RsenseMilliOhm.F(), "sense resistance [mOhm]")

	vref := flag.Float64("vref", d.Vref.F(), "feedback reference voltage [V]")
	rfbBottom := flag.Float64("rfb-bottom", d.RfbBottom.F(), "feedback bottom resistor [Ohm]")

	fc := flag.Float64("fc", d.Fc.F(), "loop crossover frequency [Hz]")
	gm := flag.Float64("gm", d.Gm.F(), "error amplifier transconductance [A/V]")
	fesr := flag.Float64("fesr", d.FEsrZero.F(), "output capacitor ESR-zero frequency [Hz]")
	cbw := flag.Float64("cbw", d.Cbw.F(), "error amplifier bandwidth capacitance [F]")

	von := flag.Float64("uvlo-von", d.UvloVon.F(), "UVLO turn-on threshold [V]")
	voff := flag.Float64("uvlo-voff", d.UvloVoff.F(), "UVLO turn-off threshold [V]")
	ihys := flag.Float64("uvlo-ihys", d.UvloIhys.F(), "UVLO hysteresis current [A]")
	ven := flag.Float64("uvlo-ven", d.UvloVen.F(), "EN pin threshold [V]")

	out := flag.String("out", "", "write the JSON export document to this path")
	outXlsx := flag.String("out-xlsx", "", "write the standalone results workbook to this path")
	flag.Parse()

	in := design.Inputs{
		VinMin: design.Value(*vinMin),
		VinNom: design.Value(*vinNom),
		VinMax: design.Value(*vinMax),
		Vout:   design.Value(*vout),
		Iout:   design.Value(*iout),
		Fsw:    design.Value(*fsw),

		RippleFrac: design.Value(*rippleFrac),
		LUsed:      design.Value(*lUsed),
		LLock:      *lock,

		VoutOvershoot: design.Value(*overshoot),
		RoutESR:       design.Value(*routESR),
		RinESR:        design.Value(*rinESR),
		VinRipple:     design.Value(*vinRipple),

		VcsTh:      design.Value(*vcsTh),
		IlPkMargin: design.Value(*margin),
		TDelay:     design.Value(*tDelay),

		RsenseMilliOhm: design.Value(*rsenseMO),

		Vref:      design.Value(*vref),
		RfbBottom: design.Value(*rfbBottom),

		Fc:       design.Value(*fc),
		Gm:       design.Value(*gm),
		FEsrZero: design.Value(*fesr),
		Cbw:      design.Value(*cbw),

		UvloVon:  design.Value(*von),
		UvloVoff: design.Value(*voff),
		UvloIhys: design.Value(*ihys),
		UvloVen:  design.Value(*ven),
	}

	res := design.Recompute(in)
	in = design.ApplyLock(in, res)
	if in.LLock {
		// Converge: a locked inductor feeds the fresh required value back
		// into the same pass before printing.
		res = design.Recompute(in)
	}

	printResults(res)

	if *out != "" {
		payload := export.NewPayload(in, res, time.Now())
		data, err := payload.Marshal()
		if err != nil {
			log.Fatalf("build export: %v", err)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			log.Fatalf("write export: %v", err)
		}
		fmt.Printf("\nwrote %s\n", *out)
	}

	if *outXlsx != "" {
		data, err := export.WorkbookBytes(in, res)
		if err != nil {
			log.Fatalf("build results workbook: %v", err)
		}
		if err := os.WriteFile(*outXlsx, data, 0o644); err != nil {
			log.Fatalf("write results workbook: %v", err)
		}
		fmt.Printf("wrote %s\n", *outXlsx)
	}
}

func printResults(res design.Results) {
	rows := []struct {
		label string
		value string
		note  string
	}{
		{"Ripple current @ VIN nom", format.Eng(res.DeltaIlNom.F(), "A"), ""},
		{"Required inductance", format.Eng(res.LRequired.F(), "H"), ""},
		{"Ripple current @ VIN max", format.Eng(res.DeltaIlVinMax.F(), "A"), ""},
		{"Peak inductor current", format.Eng(res.IlPeakVinMax.F(), "A"), ""},
		{"Short-circuit inductance bound", format.Eng(res.LShortMin.F(), "H"), ""},
		{"Sense resistor", format.Eng(res.RsenseCalc.F(), "Ohm"), ""},
		{"Peak current under short", format.Eng(res.IlPeakShort.F(), "A"), ""},
		{"Minimum output capacitance", format.Eng(res.CoutMin.F(), "F"), ""},
		{"Output voltage ripple", format.Eng(res.VoutRipple.F(), "Vpp"), ""},
		{"Output capacitor RMS current", format.Eng(res.IoutCapRms.F(), "A"), ""},
		{"Duty @ VIN nom", format.Plain(res.DutyNom.F()), ""},
		{"Input capacitor RMS current", format.Eng(res.CinRms.F(), "A"), ""},
		{"Required input capacitance", format.Eng(res.CinRequired.F(), "F"), res.CinNote},
		{"Timing resistor RT", format.Eng(res.Rt.F(), "Ohm"), ""},
		{"Feedback top resistor", format.Eng(res.RfbTop.F(), "Ohm"), ""},
		{"Compensation resistor", format.Eng(res.Rcomp.F(), "Ohm"), ""},
		{"Compensation capacitor", format.Eng(res.Ccomp.F(), "F"), ""},
		{"High-frequency capacitor", format.Eng(res.Chf.F(), "F"), ""},
		{"UVLO R1", format.Eng(res.UvloR1.F(), "Ohm"), ""},
		{"UVLO R2", format.Eng(res.UvloR2.F(), "Ohm"), ""},
	}

	for _, row := range rows {
		if row.note != "" {
			fmt.Printf("%-32s %-12s (%s)\n", row.label, row.value, row.note)
			continue
		}
		fmt.Printf("%-32s %s\n", row.label, row.value)
	}
}
