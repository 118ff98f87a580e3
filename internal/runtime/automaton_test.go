package runtime

import (
	"errors"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
)

func declare(t *testing.T, b *Builder) (on, off *domain.State, toggle *domain.Input, flip *domain.Output) {
	t.Helper()

	on, err := b.DeclareState(domain.State{Name: "on", Initial: true, Serialized: "ON"})
	if err != nil {
		t.Fatalf("DeclareState(on) failed: %v", err)
	}
	off, err = b.DeclareState(domain.State{Name: "off", Serialized: "OFF"})
	if err != nil {
		t.Fatalf("DeclareState(off) failed: %v", err)
	}
	toggle, err = b.DeclareInput("toggle", nil)
	if err != nil {
		t.Fatalf("DeclareInput failed: %v", err)
	}
	flip, err = b.DeclareOutput("flip", func(args ...any) (any, error) { return nil, nil })
	if err != nil {
		t.Fatalf("DeclareOutput failed: %v", err)
	}
	return on, off, toggle, flip
}

func TestBuilder_DuplicateDeclarations(t *testing.T) {
	b := NewBuilder()
	declare(t, b)

	if _, err := b.DeclareState(domain.State{Name: "on"}); err == nil {
		t.Error("expected duplicate state error")
	} else {
		var dup *domain.DuplicateStateError
		if !errors.As(err, &dup) || dup.Name != "on" {
			t.Errorf("wrong error: %v", err)
		}
	}

	if _, err := b.DeclareInput("toggle", nil); err == nil {
		t.Error("expected duplicate input error")
	}
	if _, err := b.DeclareOutput("flip", nil); err == nil {
		t.Error("expected duplicate output error")
	}
}

func TestBuilder_DuplicateTransitionLeavesTableUnchanged(t *testing.T) {
	b := NewBuilder()
	on, off, toggle, flip := declare(t, b)

	if err := b.AddTransition(on, toggle, []*domain.Output{flip}, off, nil); err != nil {
		t.Fatalf("first AddTransition failed: %v", err)
	}

	err := b.AddTransition(on, toggle, nil, on, nil)
	var dup *domain.DuplicateTransitionError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTransitionError, got %v", err)
	}
	if dup.Existing != "off" || dup.Proposed != "on" {
		t.Errorf("error should name both destinations, got %+v", dup)
	}

	a, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	infos := a.Transitions()
	if len(infos) != 1 {
		t.Fatalf("table changed after rejected registration: %d entries", len(infos))
	}
	if infos[0].To != "off" {
		t.Errorf("surviving transition should point to off, got %q", infos[0].To)
	}
}

func TestBuilder_UnknownReferences(t *testing.T) {
	b := NewBuilder()
	on, _, toggle, flip := declare(t, b)

	other := NewBuilder()
	foreign, err := other.DeclareState(domain.State{Name: "foreign"})
	if err != nil {
		t.Fatalf("DeclareState failed: %v", err)
	}

	if err := b.AddTransition(foreign, toggle, nil, on, nil); err == nil {
		t.Error("expected unknown state error for foreign source")
	}
	if err := b.AddTransition(on, toggle, nil, foreign, nil); err == nil {
		t.Error("expected unknown state error for foreign destination")
	}
	if err := b.AddTransition(on, &domain.Input{Name: "ghost"}, nil, on, nil); err == nil {
		t.Error("expected unknown input error")
	}
	if err := b.AddTransition(on, toggle, []*domain.Output{{Name: "ghost"}}, on, nil); err == nil {
		t.Error("expected unknown output error")
	}
	_ = flip
}

func TestBuilder_InitialStateInvariants(t *testing.T) {
	b := NewBuilder()
	if _, err := b.DeclareState(domain.State{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Finalize(); !errors.Is(err, domain.ErrNoInitialState) {
		t.Errorf("expected ErrNoInitialState, got %v", err)
	}

	b = NewBuilder()
	if _, err := b.DeclareState(domain.State{Name: "a", Initial: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.DeclareState(domain.State{Name: "b", Initial: true}); err != nil {
		t.Fatal(err)
	}
	_, err := b.Finalize()
	var multi *domain.MultipleInitialStatesError
	if !errors.As(err, &multi) {
		t.Fatalf("expected MultipleInitialStatesError, got %v", err)
	}
	if len(multi.States) != 2 {
		t.Errorf("expected both states named, got %v", multi.States)
	}
}

func TestBuilder_DuplicateToken(t *testing.T) {
	b := NewBuilder()
	if _, err := b.DeclareState(domain.State{Name: "a", Initial: true, Serialized: "tok"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.DeclareState(domain.State{Name: "b", Serialized: "tok"}); err != nil {
		t.Fatal(err)
	}
	_, err := b.Finalize()
	var dup *domain.DuplicateTokenError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTokenError, got %v", err)
	}
	if dup.Token != "tok" {
		t.Errorf("expected token named, got %+v", dup)
	}
}

func TestAutomaton_Introspection(t *testing.T) {
	b := NewBuilder()
	on, off, toggle, flip := declare(t, b)
	press, err := b.DeclareInput("press", []string{"force"})
	if err != nil {
		t.Fatal(err)
	}

	if err := b.AddTransition(on, toggle, []*domain.Output{flip}, off, nil); err != nil {
		t.Fatal(err)
	}
	if err := b.AddTransition(off, press, nil, on, nil); err != nil {
		t.Fatal(err)
	}

	a, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if a.Initial().Name != "on" {
		t.Errorf("initial state = %q, want on", a.Initial().Name)
	}

	infos := a.Transitions()
	if len(infos) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(infos))
	}
	// Declaration order, not map order.
	if infos[0].From != "on" || infos[0].Input != "toggle" || infos[0].To != "off" {
		t.Errorf("unexpected first transition: %+v", infos[0])
	}
	if len(infos[0].Outputs) != 1 || infos[0].Outputs[0] != "flip" {
		t.Errorf("unexpected outputs: %v", infos[0].Outputs)
	}
	if infos[1].From != "off" || infos[1].Input != "press" {
		t.Errorf("unexpected second transition: %+v", infos[1])
	}

	if got := a.StateNames(); len(got) != 2 || got[0] != "off" || got[1] != "on" {
		t.Errorf("StateNames = %v", got)
	}
	if got := a.InputNames(); len(got) != 2 || got[0] != "press" || got[1] != "toggle" {
		t.Errorf("InputNames = %v", got)
	}
	if got := a.OutputNames(); len(got) != 1 || got[0] != "flip" {
		t.Errorf("OutputNames = %v", got)
	}

	if s, ok := a.StateByToken("OFF"); !ok || s.Name != "off" {
		t.Errorf("StateByToken(OFF) = %v, %v", s, ok)
	}
	if _, ok := a.StateByToken("NOPE"); ok {
		t.Error("StateByToken should miss for unknown token")
	}
}
