// Command quickstart fills the TI LM5148/LM25148 quickstart calculator
// workbook with the core inputs from a JSON export document and saves a
// filled copy. Excel recalculates the dependent sheets when the file is
// opened.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Design Regulator"

// Input cells on the "Design Regulator" sheet, as observed in the template:
// E6 VIN(min), E7 VIN(nom), E8 VIN(max), E9 VOUT, E10 IOUT, E11 FSW (kHz).
var inputCells = struct {
	vinMin, vinNom, vinMax, vout, iout, fswKHz string
}{"E6", "E7", "E8", "E9", "E10", "E11"}

type exportInputs struct {
	VinMin *float64 `json:"vinMin"`
	VinNom *float64 `json:"vinNom"`
	VinMax *float64 `json:"vinMax"`
	Vout   *float64 `json:"vout"`
	Iout   *float64 `json:"iout"`
	Fsw    *float64 `json:"fsw"`
}

func main() {
	jsonPath := flag.String("json", "", "path to the lm5148_design.json export (required)")
	templatePath := flag.String("template", "LM5148_LM25148_quickstart_calculator_A4.xlsm", "path to the quickstart template")
	outPath := flag.String("out", "LM5148_quickstart_filled.xlsm", "output .xlsm path")
	outXlsx := flag.String("out-xlsx", "", "optional additional .xlsx output path")
	flag.Parse()

	if *jsonPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	inputs, err := loadInputs(*jsonPath)
	if err != nil {
		log.Fatalf("load export: %v", err)
	}

	if err := fillTemplate(*templatePath, *outPath, inputs); err != nil {
		log.Fatalf("fill quickstart template: %v", err)
	}
	fmt.Printf("wrote %s\n", *outPath)

	if *outXlsx != "" {
		if err := fillTemplate(*templatePath, *outXlsx, inputs); err != nil {
			log.Fatalf("fill quickstart template (xlsx): %v", err)
		}
		fmt.Printf("wrote %s\n", *outXlsx)
	}
}

func loadInputs(path string) (exportInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return exportInputs{}, err
	}

	var doc struct {
		Inputs exportInputs `json:"inputs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return exportInputs{}, fmt.Errorf("parse export document: %w", err)
	}

	in := doc.Inputs
	if in.VinNom == nil || in.Vout == nil || in.Iout == nil || in.Fsw == nil {
		return exportInputs{}, fmt.Errorf("export inputs must include vinNom, vout, iout and fsw")
	}
	// The webapp export may omit the min/max corners; fall back to nominal.
	if in.VinMin == nil {
		in.VinMin = in.VinNom
	}
	if in.VinMax == nil {
		in.VinMax = in.VinNom
	}

	return in, nil
}

func fillTemplate(templatePath, outPath string, in exportInputs) error {
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	cells := []struct {
		cell  string
		value float64
	}{
		{inputCells.vinMin, *in.VinMin},
		{inputCells.vinNom, *in.VinNom},
		{inputCells.vinMax, *in.VinMax},
		{inputCells.vout, *in.Vout},
		{inputCells.iout, *in.Iout},
		{inputCells.fswKHz, *in.Fsw / 1000},
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheetName, c.cell, c.value); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheetName, c.cell, err)
		}
	}

	// Drop cached formula results so Excel recalculates dependent sheets
	// on open.
	if err := f.UpdateLinkedValue(); err != nil {
		return fmt.Errorf("clear cached formula values: %w", err)
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	return nil
}
