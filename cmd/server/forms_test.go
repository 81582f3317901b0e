package main

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hwtraining/lm5148calc/internal/design"
)

func TestNumberFieldCoercesInvalidInputToNaN(t *testing.T) {
	form := url.Values{}
	form.Set("vout", "abc")
	form.Set("iout", "")
	form.Set("fsw", " 2.1e6 ")

	req := httptest.NewRequest("POST", "/", nil)
	req.Form = form

	if v := numberField(req, "vout"); v.Finite() {
		t.Fatalf("non-numeric field should become NaN, got %v", v)
	}
	if v := numberField(req, "iout"); v.Finite() {
		t.Fatalf("empty field should become NaN, got %v", v)
	}
	if v := numberField(req, "missing"); v.Finite() {
		t.Fatalf("missing field should become NaN, got %v", v)
	}
	if v := numberField(req, "fsw"); v != 2.1e6 {
		t.Fatalf("numeric field should parse with whitespace trimmed, got %v", v)
	}
}

func TestParseInputsFormReadsAllFields(t *testing.T) {
	form := url.Values{}
	form.Set("vinMin", "10")
	form.Set("vinNom", "12")
	form.Set("vinMax", "18")
	form.Set("vout", "5")
	form.Set("iout", "8")
	form.Set("fsw", "2.1e6")
	form.Set("rippleFrac", "0.3")
	form.Set("lUsed_H", "5.6e-7")
	form.Set("lLock", "1")
	form.Set("rsense_mOhm", "5")
	form.Set("vref", "0.8")
	form.Set("uvloVon", "10")

	req := httptest.NewRequest("POST", "/", nil)
	req.Form = form

	in := parseInputsForm(req)
	if in.VinNom != 12 || in.Vout != 5 || in.Fsw != 2.1e6 {
		t.Fatalf("operating point not parsed: %+v", in)
	}
	if in.LUsed != design.Value(5.6e-7) || !in.LLock {
		t.Fatalf("inductor fields not parsed: %+v", in)
	}
	if in.RsenseMilliOhm != 5 {
		t.Fatalf("sense resistance not parsed: %+v", in)
	}
	// Absent fields coerce to NaN, never to zero.
	if in.Fc.Finite() {
		t.Fatalf("absent field should be NaN, got %v", in.Fc)
	}
}

func TestParseInputsFormUncheckedLock(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.Form = url.Values{}

	if parseInputsForm(req).LLock {
		t.Fatal("absent checkbox should mean unlocked")
	}
}
