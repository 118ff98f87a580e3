package runtime

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
)

// buildToggle wires a two-state machine whose outputs append to a journal
// slice, so tests can assert ordering and partial-effect semantics.
func buildToggle(t *testing.T, journal *[]string) *Automaton {
	t.Helper()
	b := NewBuilder()

	on, err := b.DeclareState(domain.State{Name: "on", Initial: true, Serialized: "ON"})
	if err != nil {
		t.Fatal(err)
	}
	off, err := b.DeclareState(domain.State{Name: "off", Serialized: "OFF"})
	if err != nil {
		t.Fatal(err)
	}
	broken, err := b.DeclareState(domain.State{Name: "broken"})
	if err != nil {
		t.Fatal(err)
	}

	toggle, err := b.DeclareInput("toggle", nil)
	if err != nil {
		t.Fatal(err)
	}
	smash, err := b.DeclareInput("smash", []string{"tool"})
	if err != nil {
		t.Fatal(err)
	}

	record := func(name string, v any) *domain.Output {
		out, err := b.DeclareOutput(name, func(args ...any) (any, error) {
			*journal = append(*journal, name)
			return v, nil
		})
		if err != nil {
			t.Fatal(err)
		}
		return out
	}
	first := record("first", "a")
	second := record("second", "b")
	third := record("third", "c")

	fail, err := b.DeclareOutput("fail", func(args ...any) (any, error) {
		*journal = append(*journal, "fail")
		return nil, errors.New("boom")
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := b.AddTransition(on, toggle, []*domain.Output{first, second, third}, off, nil); err != nil {
		t.Fatal(err)
	}
	if err := b.AddTransition(off, toggle, nil, on, nil); err != nil {
		t.Fatal(err)
	}
	if err := b.AddTransition(on, smash, []*domain.Output{first, fail, third}, broken, nil); err != nil {
		t.Fatal(err)
	}

	a, err := b.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestTransitioner_OutputOrderingAndDefaultCollector(t *testing.T) {
	var journal []string
	tr := NewTransitioner(buildToggle(t, &journal), nil)

	got, err := tr.Handle("toggle")
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	values, ok := got.([]any)
	if !ok {
		t.Fatalf("default collector should return []any, got %T", got)
	}
	if len(values) != 3 || values[0] != "a" || values[1] != "b" || values[2] != "c" {
		t.Errorf("collected values out of order: %v", values)
	}
	if fmt.Sprint(journal) != "[first second third]" {
		t.Errorf("outputs ran out of order: %v", journal)
	}
	if tr.Current().Name != "off" {
		t.Errorf("state = %q, want off", tr.Current().Name)
	}
}

func TestTransitioner_Determinism(t *testing.T) {
	var journal []string
	a := buildToggle(t, &journal)

	var destinations []string
	var collected []string
	for i := 0; i < 5; i++ {
		tr := NewTransitioner(a, nil)
		got, err := tr.Handle("toggle")
		if err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
		destinations = append(destinations, tr.Current().Name)
		collected = append(collected, fmt.Sprint(got))
	}
	for i := 1; i < len(destinations); i++ {
		if destinations[i] != destinations[0] || collected[i] != collected[0] {
			t.Errorf("run %d diverged: state %q value %q", i, destinations[i], collected[i])
		}
	}
}

func TestTransitioner_NoTransitionLeavesState(t *testing.T) {
	var journal []string
	tr := NewTransitioner(buildToggle(t, &journal), nil)

	_, err := tr.Handle("smashh")
	var noTr *domain.NoTransitionError
	if !errors.As(err, &noTr) {
		t.Fatalf("expected NoTransitionError, got %v", err)
	}
	if noTr.State != "on" || noTr.Input != "smashh" {
		t.Errorf("error should name state and input, got %+v", noTr)
	}
	if tr.Current().Name != "on" {
		t.Errorf("state mutated on failed lookup: %q", tr.Current().Name)
	}
	if len(journal) != 0 {
		t.Errorf("no output should have run: %v", journal)
	}
}

func TestTransitioner_ArityCheckedBeforeOutputs(t *testing.T) {
	var journal []string
	tr := NewTransitioner(buildToggle(t, &journal), nil)

	_, err := tr.Handle("smash") // declared with one parameter
	var arity *domain.ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("expected ArityError, got %v", err)
	}
	if arity.Want != 1 || arity.Got != 0 {
		t.Errorf("unexpected arity report: %+v", arity)
	}
	if len(journal) != 0 {
		t.Errorf("outputs ran despite arity failure: %v", journal)
	}
	if tr.Current().Name != "on" {
		t.Errorf("state mutated: %q", tr.Current().Name)
	}
}

func TestTransitioner_OutputErrorKeepsStateAndPartialEffects(t *testing.T) {
	var journal []string
	tr := NewTransitioner(buildToggle(t, &journal), nil)

	_, err := tr.Handle("smash", "hammer")
	if err == nil || err.Error() != "boom" {
		t.Fatalf("output error should propagate unchanged, got %v", err)
	}
	if tr.Current().Name != "on" {
		t.Errorf("state must stay at pre-transition state, got %q", tr.Current().Name)
	}
	// first ran and its effect stands; third never ran.
	if fmt.Sprint(journal) != "[first fail]" {
		t.Errorf("unexpected journal: %v", journal)
	}

	// The instance remains usable.
	if _, err := tr.Handle("toggle"); err != nil {
		t.Fatalf("Handle after output failure: %v", err)
	}
	if tr.Current().Name != "off" {
		t.Errorf("state = %q, want off", tr.Current().Name)
	}
}

func TestTransitioner_ReentrancyDetected(t *testing.T) {
	b := NewBuilder()
	s, err := b.DeclareState(domain.State{Name: "s", Initial: true})
	if err != nil {
		t.Fatal(err)
	}
	loop, err := b.DeclareInput("loop", nil)
	if err != nil {
		t.Fatal(err)
	}

	var tr *Transitioner
	var nested error
	recurse, err := b.DeclareOutput("recurse", func(args ...any) (any, error) {
		_, nested = tr.Handle("loop")
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AddTransition(s, loop, []*domain.Output{recurse}, s, nil); err != nil {
		t.Fatal(err)
	}
	a, err := b.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	tr = NewTransitioner(a, nil)
	if _, err := tr.Handle("loop"); err != nil {
		t.Fatalf("outer Handle failed: %v", err)
	}
	var reentrant *domain.ReentrancyError
	if !errors.As(nested, &reentrant) {
		t.Fatalf("nested Handle should fail with ReentrancyError, got %v", nested)
	}

	// The guard resets once the outer call returns.
	if _, err := tr.Handle("loop"); err != nil {
		t.Errorf("Handle after reentrancy failure: %v", err)
	}
}

func TestTransitioner_TracerCallbacks(t *testing.T) {
	var journal []string
	tr := NewTransitioner(buildToggle(t, &journal), nil)

	var events []string
	tr.SetTracer(func(from, input, to string) domain.OutputTracer {
		events = append(events, fmt.Sprintf("transition %s --%s--> %s", from, input, to))
		return func(output string) {
			events = append(events, "output "+output)
		}
	})

	if _, err := tr.Handle("toggle"); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	want := []string{
		"transition on --toggle--> off",
		"output first",
		"output second",
		"output third",
	}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("trace events = %v, want %v", events, want)
	}

	// Detach; no further events.
	tr.SetTracer(nil)
	if _, err := tr.Handle("toggle"); err != nil {
		t.Fatal(err)
	}
	if len(events) != len(want) {
		t.Errorf("detached tracer still fired: %v", events)
	}
}

func TestTransitioner_TracerNonInterference(t *testing.T) {
	run := func(traced bool) (string, string) {
		var journal []string
		tr := NewTransitioner(buildToggle(t, &journal), nil)
		if traced {
			tr.SetTracer(func(from, input, to string) domain.OutputTracer {
				return func(output string) {}
			})
		}
		got, err := tr.Handle("toggle")
		if err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
		return tr.Current().Name, fmt.Sprint(got)
	}

	plainState, plainValue := run(false)
	tracedState, tracedValue := run(true)
	if plainState != tracedState || plainValue != tracedValue {
		t.Errorf("tracer altered outcome: (%s, %s) vs (%s, %s)",
			plainState, plainValue, tracedState, tracedValue)
	}
}

func TestTransitioner_ExportRestore(t *testing.T) {
	var journal []string
	a := buildToggle(t, &journal)

	tr := NewTransitioner(a, nil)
	tok, err := tr.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if tok != "ON" {
		t.Errorf("Export = %q, want ON", tok)
	}

	// Fresh instance restored from the token lands on the same state and
	// exports the same token.
	fresh := NewTransitioner(a, nil)
	if err := fresh.Restore("OFF"); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if fresh.Current().Name != "off" {
		t.Errorf("restored state = %q, want off", fresh.Current().Name)
	}
	if tok, err := fresh.Export(); err != nil || tok != "OFF" {
		t.Errorf("Export after Restore = %q, %v", tok, err)
	}

	// Round trip from a transitioned instance.
	if _, err := tr.Handle("toggle"); err != nil {
		t.Fatal(err)
	}
	tok, err = tr.Export()
	if err != nil {
		t.Fatal(err)
	}
	again := NewTransitioner(a, nil)
	if err := again.Restore(tok); err != nil {
		t.Fatal(err)
	}
	if again.Current().Name != tr.Current().Name {
		t.Errorf("round trip landed on %q, want %q", again.Current().Name, tr.Current().Name)
	}
}

func TestTransitioner_RestoreErrors(t *testing.T) {
	var journal []string
	a := buildToggle(t, &journal)

	tr := NewTransitioner(a, nil)
	err := tr.Restore("NOPE")
	var unknown *domain.UnknownSerializedStateError
	if !errors.As(err, &unknown) || unknown.Token != "NOPE" {
		t.Fatalf("expected UnknownSerializedStateError, got %v", err)
	}
	// A failed restore leaves the instance fresh.
	if tr.Current().Name != "on" {
		t.Errorf("state = %q after failed restore", tr.Current().Name)
	}
	if err := tr.Restore("OFF"); err != nil {
		t.Errorf("Restore after failed attempt: %v", err)
	}

	if _, err := tr.Handle("toggle"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Restore("OFF"); !errors.Is(err, domain.ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestTransitioner_ExportWithoutToken(t *testing.T) {
	b := NewBuilder()
	s, _ := b.DeclareState(domain.State{Name: "plain", Initial: true})
	in, _ := b.DeclareInput("go", nil)
	if err := b.AddTransition(s, in, nil, s, nil); err != nil {
		t.Fatal(err)
	}
	a, err := b.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	plain := NewTransitioner(a, nil)

	_, err = plain.Export()
	var unser *domain.UnserializableStateError
	if !errors.As(err, &unser) || unser.State != "plain" {
		t.Fatalf("expected UnserializableStateError, got %v", err)
	}
}

func TestTransitioner_CustomCollector(t *testing.T) {
	b := NewBuilder()
	s, _ := b.DeclareState(domain.State{Name: "s", Initial: true})
	in, _ := b.DeclareInput("go", nil)
	one, _ := b.DeclareOutput("one", func(args ...any) (any, error) { return 1, nil })
	two, _ := b.DeclareOutput("two", func(args ...any) (any, error) { return 2, nil })

	last := func(values []any) any { return values[len(values)-1] }
	if err := b.AddTransition(s, in, []*domain.Output{one, two}, s, last); err != nil {
		t.Fatal(err)
	}
	a, err := b.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	tr := NewTransitioner(a, nil)
	got, err := tr.Handle("go")
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("collector result = %v, want 2", got)
	}
}
