// Package state owns the persisted InputSet lifecycle: load at startup
// (merge over defaults, migrate legacy units), recompute on every change,
// best-effort save after every pass.
package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hwtraining/lm5148calc/internal/design"
)

// SlotKey is the fixed, version-qualified identifier of the single
// persisted-state record. Bump the suffix when the schema changes shape.
const SlotKey = "lm5148-design-v3"

// legacyRsenseCeiling bounds the v2 detection window: a sense resistance
// in (0, 0.2) can only be an ohm-denominated value from the old schema.
const legacyRsenseCeiling = 0.2

// Store reads and writes the single design-state slot.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the persisted inputs merged over defaults. A missing record,
// unreadable store, or corrupt payload all fall back to defaults; partial
// payloads keep defaults for absent keys. The legacy sense-resistance unit
// migration is applied to whatever was loaded.
func (s *Store) Load() design.Inputs {
	in := design.Defaults()

	var payload string
	err := s.db.QueryRow(`
		SELECT payload_json
		FROM design_state
		WHERE slot_key = ?
	`, SlotKey).Scan(&payload)
	if err != nil {
		return in
	}

	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		return design.Defaults()
	}

	return migrateLegacyUnits(in)
}

// Save writes the current inputs into the slot. Callers treat failures as
// best-effort; in-memory state is never affected.
func (s *Store) Save(in design.Inputs) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal design state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO design_state (slot_key, payload_json)
		VALUES (?, ?)
		ON CONFLICT(slot_key) DO UPDATE SET
			payload_json = excluded.payload_json,
			updated_at = CURRENT_TIMESTAMP
	`, SlotKey, string(payload))
	if err != nil {
		return fmt.Errorf("upsert design state: %w", err)
	}

	return nil
}

// Exists reports whether a persisted record is present, mostly for tests
// and status output.
func (s *Store) Exists() (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM design_state WHERE slot_key = ?`, SlotKey).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query design state: %w", err)
	}
	return true, nil
}

// migrateLegacyUnits rescales a sense resistance persisted in ohms by
// schema v2 and older into milliohms. Values at or above the ceiling are
// already milliohm-denominated and pass through untouched.
func migrateLegacyUnits(in design.Inputs) design.Inputs {
	if rs := in.RsenseMilliOhm.F(); rs > 0 && rs < legacyRsenseCeiling {
		in.RsenseMilliOhm = design.Value(rs * 1000)
	}
	return in
}
