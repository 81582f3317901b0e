package state

import (
	"fmt"
	"log"
	"sync"

	"github.com/hwtraining/lm5148calc/internal/design"
)

// Manager holds the current InputSet and runs the single logical recompute
// entry point. There is exactly one Manager per process and no overlapping
// passes: the mutex serializes external events (edit, reset, UVLO apply)
// arriving from concurrent HTTP handlers, so each pass runs to completion
// before the next is handled and the single-slot store write stays ordered.
type Manager struct {
	mu     sync.Mutex
	store  *Store
	inputs design.Inputs
}

// NewManager loads the persisted state (or defaults) and returns a ready
// manager.
func NewManager(store *Store) *Manager {
	return &Manager{store: store, inputs: store.Load()}
}

// Inputs returns the current input set.
func (m *Manager) Inputs() design.Inputs {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inputs
}

// SetInputs replaces the current input set, typically from an edited form.
func (m *Manager) SetInputs(in design.Inputs) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = in
}

// Reset restores the default input set.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = design.Defaults()
}

// Run executes one full recompute pass: evaluate the equation chain, apply
// the inductor lock, persist. The pass is guarded; an unexpected fault is
// reported through status instead of propagating, and the next event is
// still processed. Persistence failures are logged and swallowed.
func (m *Manager) Run() (res design.Results, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			status = fmt.Sprintf("recompute failed: %v", r)
		}
	}()

	res = design.Recompute(m.inputs)
	m.inputs = design.ApplyLock(m.inputs, res)

	if err := m.store.Save(m.inputs); err != nil {
		log.Printf("save design state: %v", err)
	}

	return res, ""
}

// ApplyUVLO copies the computed UVLO divider values into the inputs. The
// caller runs a pass afterwards to recompute and persist.
func (m *Manager) ApplyUVLO(res design.Results) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = design.ApplyUVLO(m.inputs, res)
}
