// Package export builds the downloadable JSON payload (meta + inputs +
// results) and keeps a history of exports in the database.
package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hwtraining/lm5148calc/internal/design"
)

const (
	// ToolID identifies this tool in payloads consumed by downstream
	// scripts (spreadsheet filler and friends).
	ToolID = "lm5148-designcalc"

	// SchemaVersion tracks the payload shape; bump together with the
	// persisted-state slot key.
	SchemaVersion = 3
)

// Meta describes one export.
type Meta struct {
	Tool          string `json:"tool"`
	SchemaVersion int    `json:"schemaVersion"`
	ExportID      string `json:"exportId"`
	ExportedAt    string `json:"exportedAt"`
}

// resultsDoc is the exported results section: every computed output under
// its unit-suffixed key, plus the legacy alias older tooling still reads
// for the short-circuit inductance bound.
type resultsDoc struct {
	design.Results
	LShortLegacy design.Value `json:"lsc_H"`
}

// Payload is the full export document.
type Payload struct {
	Meta    Meta          `json:"meta"`
	Inputs  design.Inputs `json:"inputs"`
	Results resultsDoc    `json:"results"`
}

// NewPayload assembles an export for the given state at the given time.
func NewPayload(in design.Inputs, res design.Results, now time.Time) Payload {
	return Payload{
		Meta: Meta{
			Tool:          ToolID,
			SchemaVersion: SchemaVersion,
			ExportID:      uuid.NewString(),
			ExportedAt:    now.UTC().Format(time.RFC3339),
		},
		Inputs:  in,
		Results: resultsDoc{Results: res, LShortLegacy: res.LShortMin},
	}
}

// Marshal renders the payload as indented JSON.
func (p Payload) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export payload: %w", err)
	}
	return data, nil
}

// ParseInputs extracts the inputs section of an export document, merged
// over defaults so partial payloads import cleanly.
func ParseInputs(data []byte) (design.Inputs, error) {
	var doc struct {
		Inputs json.RawMessage `json:"inputs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return design.Defaults(), fmt.Errorf("parse export document: %w", err)
	}
	if len(doc.Inputs) == 0 {
		return design.Defaults(), fmt.Errorf("export document has no inputs section")
	}

	in := design.Defaults()
	if err := json.Unmarshal(doc.Inputs, &in); err != nil {
		return design.Defaults(), fmt.Errorf("parse export inputs: %w", err)
	}
	return in, nil
}

// Record is one row of the export history listing.
type Record struct {
	ID        string
	CreatedAt string
	Vout      design.Value
	Iout      design.Value
	LRequired design.Value
}

// SaveRecord appends the payload to the export history.
func SaveRecord(db *sql.DB, p Payload) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO exports (id, payload_json)
		VALUES (?, ?)
	`, p.Meta.ExportID, string(data))
	if err != nil {
		return fmt.Errorf("insert export record: %w", err)
	}

	return nil
}

// ListRecords returns the export history, newest first, with a few headline
// values pulled out of each payload for display.
func ListRecords(db *sql.DB) ([]Record, error) {
	rows, err := db.Query(`
		SELECT id, created_at, payload_json
		FROM exports
		ORDER BY datetime(created_at) DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var payload string
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan export record: %w", err)
		}

		var p Payload
		if err := json.Unmarshal([]byte(payload), &p); err == nil {
			rec.Vout = p.Inputs.Vout
			rec.Iout = p.Inputs.Iout
			rec.LRequired = p.Results.LRequired
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}

	return records, nil
}
