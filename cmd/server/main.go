package main

import (
	"database/sql"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hwtraining/lm5148calc/internal/config"
	"github.com/hwtraining/lm5148calc/internal/db"
	"github.com/hwtraining/lm5148calc/internal/design"
	"github.com/hwtraining/lm5148calc/internal/export"
	"github.com/hwtraining/lm5148calc/internal/format"
	"github.com/hwtraining/lm5148calc/internal/migrations"
	"github.com/hwtraining/lm5148calc/internal/state"
)

type server struct {
	db      *sql.DB
	manager *state.Manager
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type resultRow struct {
	Label string
	Value string
	Note  string
}

type calculatorViewData struct {
	baseViewData
	Inputs design.Inputs
	Rows   []resultRow
}

type exportRow struct {
	ID        string
	CreatedAt string
	Vout      string
	Iout      string
	LRequired string
}

type exportsViewData struct {
	baseViewData
	Exports []exportRow
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	srv := &server{
		db:      database,
		manager: state.NewManager(state.NewStore(database)),
	}

	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Get("/", srv.handleCalculator)
	r.Post("/", srv.handleCalculatorSubmit)
	r.Post("/reset", srv.handleReset)
	r.Post("/uvlo/apply", srv.handleApplyUVLO)
	r.Get("/export.json", srv.handleExportDownload)
	r.Get("/export.xlsx", srv.handleWorkbookDownload)
	r.Get("/exports", srv.handleExportsList)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	res, status := s.manager.Run()

	data := calculatorViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Inputs: s.manager.Inputs(),
		Rows:   resultRows(res),
	}
	if status != "" {
		data.ErrorMessage = status
	}

	s.renderTemplate(w, "calculator.html", data)
}

func (s *server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.manager.SetInputs(parseInputsForm(r))
	if _, status := s.manager.Run(); status != "" {
		http.Redirect(w, r, "/?error="+url.QueryEscape(status), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.manager.Reset()
	if _, status := s.manager.Run(); status != "" {
		http.Redirect(w, r, "/?error="+url.QueryEscape(status), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/?success="+url.QueryEscape("Inputs reset to defaults."), http.StatusSeeOther)
}

func (s *server) handleApplyUVLO(w http.ResponseWriter, r *http.Request) {
	res, status := s.manager.Run()
	if status != "" {
		http.Redirect(w, r, "/?error="+url.QueryEscape(status), http.StatusSeeOther)
		return
	}

	s.manager.ApplyUVLO(res)
	if _, status := s.manager.Run(); status != "" {
		http.Redirect(w, r, "/?error="+url.QueryEscape(status), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/?success="+url.QueryEscape("UVLO divider values applied."), http.StatusSeeOther)
}

func (s *server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	res, status := s.manager.Run()
	if status != "" {
		http.Error(w, status, http.StatusInternalServerError)
		return
	}

	payload := export.NewPayload(s.manager.Inputs(), res, time.Now())
	data, err := payload.Marshal()
	if err != nil {
		http.Error(w, "failed to build export", http.StatusInternalServerError)
		return
	}

	if err := export.SaveRecord(s.db, payload); err != nil {
		log.Printf("save export record: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="lm5148_design.json"`)
	w.Write(data)
}

func (s *server) handleWorkbookDownload(w http.ResponseWriter, r *http.Request) {
	res, status := s.manager.Run()
	if status != "" {
		http.Error(w, status, http.StatusInternalServerError)
		return
	}

	data, err := export.WorkbookBytes(s.manager.Inputs(), res)
	if err != nil {
		http.Error(w, "failed to build workbook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="lm5148_design.xlsx"`)
	w.Write(data)
}

func (s *server) handleExportsList(w http.ResponseWriter, r *http.Request) {
	records, err := export.ListRecords(s.db)
	if err != nil {
		http.Error(w, "failed to load export history", http.StatusInternalServerError)
		return
	}

	rows := make([]exportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, exportRow{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			Vout:      format.Eng(rec.Vout.F(), "V"),
			Iout:      format.Eng(rec.Iout.F(), "A"),
			LRequired: format.Eng(rec.LRequired.F(), "H"),
		})
	}

	s.renderTemplate(w, "exports.html", exportsViewData{Exports: rows})
}

func resultRows(res design.Results) []resultRow {
	return []resultRow{
		{"Ripple current ΔIL @ VIN nom", format.Eng(res.DeltaIlNom.F(), "A"), ""},
		{"Required inductance", format.Eng(res.LRequired.F(), "H"), ""},
		{"ΔIL @ VIN max", format.Eng(res.DeltaIlVinMax.F(), "A"), ""},
		{"Peak inductor current", format.Eng(res.IlPeakVinMax.F(), "A"), ""},
		{"Short-circuit inductance bound", format.Eng(res.LShortMin.F(), "H"), ""},
		{"Sense resistor", format.Eng(res.RsenseCalc.F(), "Ω"), ""},
		{"Peak current under short", format.Eng(res.IlPeakShort.F(), "A"), ""},
		{"Minimum output capacitance", format.Eng(res.CoutMin.F(), "F"), ""},
		{"Output voltage ripple", format.Eng(res.VoutRipple.F(), "Vpp"), ""},
		{"Output capacitor RMS current", format.Eng(res.IoutCapRms.F(), "A"), ""},
		{"Duty @ VIN nom", format.Plain(res.DutyNom.F()), ""},
		{"Input capacitor RMS current", format.Eng(res.CinRms.F(), "A"), ""},
		{"Required input capacitance", format.Eng(res.CinRequired.F(), "F"), res.CinNote},
		{"Timing resistor RT", format.Eng(res.Rt.F(), "Ω"), ""},
		{"Feedback top resistor", format.Eng(res.RfbTop.F(), "Ω"), ""},
		{"Compensation resistor", format.Eng(res.Rcomp.F(), "Ω"), ""},
		{"Compensation capacitor", format.Eng(res.Ccomp.F(), "F"), ""},
		{"High-frequency capacitor", format.Eng(res.Chf.F(), "F"), ""},
		{"UVLO R1", format.Eng(res.UvloR1.F(), "Ω"), ""},
		{"UVLO R2", format.Eng(res.UvloR2.F(), "Ω"), ""},
	}
}

var templateFuncs = template.FuncMap{
	"num": func(v design.Value) string {
		if !v.Finite() {
			return ""
		}
		return strconv.FormatFloat(v.F(), 'g', -1, 64)
	},
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFiles(
		"web/templates/layout.html",
		"web/templates/"+page,
	)
	if err != nil {
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}
