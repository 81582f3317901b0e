package design

// Inputs holds every user-controllable design parameter for the LM5148 buck
// design flow. One typed field per parameter; JSON tags double as the
// persisted-state and export key names.
type Inputs struct {
	VinMin Value `json:"vinMin"`
	VinNom Value `json:"vinNom"`
	VinMax Value `json:"vinMax"`
	Vout   Value `json:"vout"`
	Iout   Value `json:"iout"`
	Fsw    Value `json:"fsw"`

	// Inductor ripple target as a fraction of Iout (datasheet uses ~30%).
	RippleFrac Value `json:"rippleFrac"`

	// Inductance used for peak-current and ripple checks. When LLock is set
	// the recompute pass overwrites LUsed with the freshly computed required
	// inductance and the editor is shown read-only.
	LUsed Value `json:"lUsed_H"`
	LLock bool  `json:"lLock"`

	VoutOvershoot Value `json:"voutOvershoot"`
	RoutESR       Value `json:"routEsr"`
	RinESR        Value `json:"rinEsr"`
	VinRipple     Value `json:"vinRipple"`

	VcsTh      Value `json:"vcsTh"`
	IlPkMargin Value `json:"ilPkMargin"`
	TDelay     Value `json:"tDelay"`

	// Current-sense resistance in milliohms. Stored in ohms by schema v2 and
	// older; the store rescales those values at load time.
	RsenseMilliOhm Value `json:"rsense_mOhm"`

	Vref      Value `json:"vref"`
	RfbBottom Value `json:"rfbBottom"`

	Fc       Value `json:"fc"`
	Gm       Value `json:"gm"`
	FEsrZero Value `json:"fEsrZero"`
	Cbw      Value `json:"cbw"`

	UvloVon  Value `json:"uvloVon"`
	UvloVoff Value `json:"uvloVoff"`
	UvloIhys Value `json:"uvloIhys"`
	UvloVen  Value `json:"uvloVen"`
	UvloR1   Value `json:"uvloR1"`
	UvloR2   Value `json:"uvloR2"`
}

// Defaults returns the datasheet example design point. Every key has a
// default; persisted state is merged over this set so partial records load
// cleanly.
func Defaults() Inputs {
	return Inputs{
		VinMin: 10.0,
		VinNom: 12.0,
		VinMax: 18.0,
		Vout:   5.0,
		Iout:   8.0,
		Fsw:    2.1e6,

		RippleFrac: 0.30,
		LUsed:      0.56e-6,
		LLock:      false,

		VoutOvershoot: 0.075,
		RoutESR:       1e-3,
		RinESR:        2e-3,
		VinRipple:     0.120,

		VcsTh:      0.060,
		IlPkMargin: 1.25,
		TDelay:     45e-9,

		RsenseMilliOhm: 5.0,

		Vref:      0.8,
		RfbBottom: 10_000.0,

		Fc:       60_000.0,
		Gm:       1.2e-3,
		FEsrZero: 500_000.0,
		Cbw:      0.8e-12,

		UvloVon:  10.0,
		UvloVoff: 9.0,
		UvloIhys: 10e-6,
		UvloVen:  1.2,
		UvloR1:   0,
		UvloR2:   0,
	}
}
