package main

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/hwtraining/lm5148calc/internal/design"
)

// numberField coerces a form field to a numeric value. A missing, empty or
// non-numeric field becomes NaN and flows through the recompute pass as a
// placeholder; it never aborts the pass.
func numberField(r *http.Request, name string) design.Value {
	raw := strings.TrimSpace(r.FormValue(name))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return design.Value(math.NaN())
	}
	return design.Value(f)
}

// parseInputsForm reads every input field from the submitted form. Field
// names match the JSON keys of design.Inputs.
func parseInputsForm(r *http.Request) design.Inputs {
	return design.Inputs{
		VinMin: numberField(r, "vinMin"),
		VinNom: numberField(r, "vinNom"),
		VinMax: numberField(r, "vinMax"),
		Vout:   numberField(r, "vout"),
		Iout:   numberField(r, "iout"),
		Fsw:    numberField(r, "fsw"),

		RippleFrac: numberField(r, "rippleFrac"),
		LUsed:      numberField(r, "lUsed_H"),
		LLock:      r.FormValue("lLock") == "1",

		VoutOvershoot: numberField(r, "voutOvershoot"),
		RoutESR:       numberField(r, "routEsr"),
		RinESR:        numberField(r, "rinEsr"),
		VinRipple:     numberField(r, "vinRipple"),

		VcsTh:      numberField(r, "vcsTh"),
		IlPkMargin: numberField(r, "ilPkMargin"),
		TDelay:     numberField(r, "tDelay"),

		RsenseMilliOhm: numberField(r, "rsense_mOhm"),

		Vref:      numberField(r, "vref"),
		RfbBottom: numberField(r, "rfbBottom"),

		Fc:       numberField(r, "fc"),
		Gm:       numberField(r, "gm"),
		FEsrZero: numberField(r, "fEsrZero"),
		Cbw:      numberField(r, "cbw"),

		UvloVon:  numberField(r, "uvloVon"),
		UvloVoff: numberField(r, "uvloVoff"),
		UvloIhys: numberField(r, "uvloIhys"),
		UvloVen:  numberField(r, "uvloVen"),
		UvloR1:   numberField(r, "uvloR1"),
		UvloR2:   numberField(r, "uvloR2"),
	}
}
