package state

import (
	"sync"
	"testing"

	"github.com/hwtraining/lm5148calc/internal/design"
)

func TestManagerRunIsIdempotent(t *testing.T) {
	m := NewManager(NewStore(newStateTestDB(t)))

	first, status := m.Run()
	if status != "" {
		t.Fatalf("unexpected status: %q", status)
	}
	second, _ := m.Run()

	if first != second {
		t.Fatalf("two passes over unchanged inputs must match:\n%+v\n%+v", first, second)
	}
}

func TestManagerSerializesConcurrentPasses(t *testing.T) {
	m := NewManager(NewStore(newStateTestDB(t)))

	// Pairs of edit+pass and plain passes from separate goroutines, the way
	// concurrent HTTP handlers drive the shared manager.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		vout := float64(i%5 + 1)
		go func() {
			defer wg.Done()
			in := m.Inputs()
			in.Vout = design.Value(vout)
			m.SetInputs(in)
			m.Run()
		}()
		go func() {
			defer wg.Done()
			m.Run()
		}()
	}
	wg.Wait()

	res, status := m.Run()
	if status != "" {
		t.Fatalf("unexpected status after concurrent passes: %q", status)
	}
	if !res.LRequired.Finite() {
		t.Fatalf("results should stay finite, got %+v", res)
	}
	if got := m.Inputs().Vout; got < 1 || got > 5 {
		t.Fatalf("inputs were corrupted by interleaved passes: vout = %v", got)
	}
}

func TestManagerRunPersistsAfterEveryPass(t *testing.T) {
	store := NewStore(newStateTestDB(t))
	m := NewManager(store)

	in := m.Inputs()
	in.Vout = 3.3
	m.SetInputs(in)
	m.Run()

	if got := store.Load(); got.Vout != 3.3 {
		t.Fatalf("expected pass to persist inputs, got %+v", got)
	}
}

func TestManagerRunAppliesLock(t *testing.T) {
	m := NewManager(NewStore(newStateTestDB(t)))

	in := m.Inputs()
	in.LLock = true
	m.SetInputs(in)

	res, _ := m.Run()
	if m.Inputs().LUsed != res.LRequired {
		t.Fatalf("locked inductor should be overwritten: got %v, want %v", m.Inputs().LUsed, res.LRequired)
	}

	// The next pass sees the lock-mutated value.
	next, _ := m.Run()
	want := design.InductorRipple(18, 5, 2.1e6, res.LRequired.F())
	if got := next.DeltaIlVinMax.F(); got != want {
		t.Fatalf("second pass should use the locked inductance: got %v, want %v", got, want)
	}
}

func TestManagerSwallowsPersistenceFailure(t *testing.T) {
	db := newStateTestDB(t)
	m := NewManager(NewStore(db))

	// A closed database makes every save fail; the pass must still
	// complete and leave in-memory state intact.
	db.Close()

	res, status := m.Run()
	if status != "" {
		t.Fatalf("persistence failure must not surface as status, got %q", status)
	}
	if !res.LRequired.Finite() {
		t.Fatalf("results should still be computed, got %+v", res)
	}
	if m.Inputs() != design.Defaults() {
		t.Fatalf("in-memory state must not be corrupted: %+v", m.Inputs())
	}
}

func TestManagerReset(t *testing.T) {
	m := NewManager(NewStore(newStateTestDB(t)))

	in := m.Inputs()
	in.Iout = 1
	m.SetInputs(in)
	m.Reset()

	if m.Inputs() != design.Defaults() {
		t.Fatalf("reset should restore defaults, got %+v", m.Inputs())
	}
}

func TestManagerApplyUVLO(t *testing.T) {
	m := NewManager(NewStore(newStateTestDB(t)))

	res, _ := m.Run()
	m.ApplyUVLO(res)

	if m.Inputs().UvloR1 != res.UvloR1 || m.Inputs().UvloR2 != res.UvloR2 {
		t.Fatalf("expected UVLO values applied, got %+v", m.Inputs())
	}
}
