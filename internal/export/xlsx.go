package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/hwtraining/lm5148calc/internal/design"
)

// Sheet names of the standalone results workbook.
const (
	InputsSheet  = "Inputs"
	ResultsSheet = "Results"
)

// sheetRow is one parameter line of a workbook sheet. value is a float64,
// bool or string; floats get a number format, everything else is written
// as-is.
type sheetRow struct {
	label string
	value any
	unit  string
	note  string
}

// WorkbookBytes renders the standalone results report as an .xlsx workbook:
// an Inputs sheet and a Results sheet, one row per parameter under its
// export key name. Values far outside the everyday range use scientific
// number formats so component values like nanohenries stay readable.
// Non-finite values use the same sentinels as the JSON payload.
func WorkbookBytes(in design.Inputs, res design.Results) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", InputsSheet)
	if _, err := f.NewSheet(ResultsSheet); err != nil {
		return nil, fmt.Errorf("add results sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	fixedFmt := "0.0000"
	numStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &fixedFmt})
	if err != nil {
		return nil, fmt.Errorf("create number style: %w", err)
	}

	sciFmt := "0.00E+00"
	sciStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &sciFmt})
	if err != nil {
		return nil, fmt.Errorf("create scientific style: %w", err)
	}

	err = writeSheetRows(f, InputsSheet,
		[]any{"Parameter", "Value", "Units"},
		inputSheetRows(in), headerStyle, numStyle, sciStyle)
	if err != nil {
		return nil, err
	}

	err = writeSheetRows(f, ResultsSheet,
		[]any{"Item", "Value", "Units", "Notes"},
		resultSheetRows(res), headerStyle, numStyle, sciStyle)
	if err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRows(f *excelize.File, sheet string, header []any, rows []sheetRow, headerStyle, numStyle, sciStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("resolve %s header extent: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		n := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", n), row.label); err != nil {
			return fmt.Errorf("write %s!A%d: %w", sheet, n, err)
		}
		if err := writeValueCell(f, sheet, fmt.Sprintf("B%d", n), row.value, numStyle, sciStyle); err != nil {
			return fmt.Errorf("write %s!B%d: %w", sheet, n, err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("C%d", n), row.unit); err != nil {
			return fmt.Errorf("write %s!C%d: %w", sheet, n, err)
		}
		if len(header) > 3 && row.note != "" {
			if err := f.SetCellValue(sheet, fmt.Sprintf("D%d", n), row.note); err != nil {
				return fmt.Errorf("write %s!D%d: %w", sheet, n, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 26); err != nil {
		return fmt.Errorf("size %s columns: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return fmt.Errorf("size %s columns: %w", sheet, err)
	}
	if len(header) > 3 {
		if err := f.SetColWidth(sheet, "D", "D", 48); err != nil {
			return fmt.Errorf("size %s columns: %w", sheet, err)
		}
	}
	return nil
}

func writeValueCell(f *excelize.File, sheet, cell string, value any, numStyle, sciStyle int) error {
	v, ok := value.(float64)
	if !ok {
		return f.SetCellValue(sheet, cell, value)
	}

	switch {
	case math.IsNaN(v):
		return nil // blank cell
	case math.IsInf(v, 1):
		return f.SetCellValue(sheet, cell, "Infinity")
	case math.IsInf(v, -1):
		return f.SetCellValue(sheet, cell, "-Infinity")
	}

	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return err
	}
	style := numStyle
	if a := math.Abs(v); v != 0 && (a < 1e-3 || a >= 1e4) {
		style = sciStyle
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func inputSheetRows(in design.Inputs) []sheetRow {
	return []sheetRow{
		{"vinMin", in.VinMin.F(), "V", ""},
		{"vinNom", in.VinNom.F(), "V", ""},
		{"vinMax", in.VinMax.F(), "V", ""},
		{"vout", in.Vout.F(), "V", ""},
		{"iout", in.Iout.F(), "A", ""},
		{"fsw", in.Fsw.F(), "Hz", ""},
		{"rippleFrac", in.RippleFrac.F(), "", ""},
		{"lUsed_H", in.LUsed.F(), "H", ""},
		{"lLock", in.LLock, "", ""},
		{"voutOvershoot", in.VoutOvershoot.F(), "V", ""},
		{"routEsr", in.RoutESR.F(), "Ohm", ""},
		{"rinEsr", in.RinESR.F(), "Ohm", ""},
		{"vinRipple", in.VinRipple.F(), "Vpp", ""},
		{"vcsTh", in.VcsTh.F(), "V", ""},
		{"ilPkMargin", in.IlPkMargin.F(), "", ""},
		{"tDelay", in.TDelay.F(), "s", ""},
		{"rsense_mOhm", in.RsenseMilliOhm.F(), "mOhm", ""},
		{"vref", in.Vref.F(), "V", ""},
		{"rfbBottom", in.RfbBottom.F(), "Ohm", ""},
		{"fc", in.Fc.F(), "Hz", ""},
		{"gm", in.Gm.F(), "A/V", ""},
		{"fEsrZero", in.FEsrZero.F(), "Hz", ""},
		{"cbw", in.Cbw.F(), "F", ""},
		{"uvloVon", in.UvloVon.F(), "V", ""},
		{"uvloVoff", in.UvloVoff.F(), "V", ""},
		{"uvloIhys", in.UvloIhys.F(), "A", ""},
		{"uvloVen", in.UvloVen.F(), "V", ""},
		{"uvloR1", in.UvloR1.F(), "Ohm", ""},
		{"uvloR2", in.UvloR2.F(), "Ohm", ""},
	}
}

func resultSheetRows(res design.Results) []sheetRow {
	return []sheetRow{
		{"deltaIlNom_A", res.DeltaIlNom.F(), "A", "Eq.31 ripple target"},
		{"lRequired_H", res.LRequired.F(), "H", "Eq.31"},
		{"deltaIlVinMax_A", res.DeltaIlVinMax.F(), "A", "Eq.32"},
		{"ilPeakVinMax_A", res.IlPeakVinMax.F(), "A", "Eq.32"},
		{"lShortMin_H", res.LShortMin.F(), "H", ""},
		{"rsenseCalc_Ohm", res.RsenseCalc.F(), "Ohm", "Eq.34"},
		{"ilPeakShort_A", res.IlPeakShort.F(), "A", "Eq.35"},
		{"coutMin_F", res.CoutMin.F(), "F", "Eq.36 load-off bound"},
		{"voutRipple_Vpp", res.VoutRipple.F(), "Vpp", "Eq.37"},
		{"ioutCapRms_A", res.IoutCapRms.F(), "A", "Eq.38"},
		{"dutyNom", res.DutyNom.F(), "", "Vout/Vin_nom"},
		{"cinRms_A", res.CinRms.F(), "A", "Eq.39"},
		{"cinRequired_F", res.CinRequired.F(), "F", res.CinNote},
		{"rt_Ohm", res.Rt.F(), "Ohm", "Eq.41"},
		{"rfbTop_Ohm", res.RfbTop.F(), "Ohm", "standard divider"},
		{"rcomp_Ohm", res.Rcomp.F(), "Ohm", ""},
		{"ccomp_F", res.Ccomp.F(), "F", "Eq.44 zero at fc/10"},
		{"chf_F", res.Chf.F(), "F", "Eq.45 pole at ESR zero"},
		{"uvloR1_Ohm", res.UvloR1.F(), "Ohm", ""},
		{"uvloR2_Ohm", res.UvloR2.F(), "Ohm", ""},
	}
}
