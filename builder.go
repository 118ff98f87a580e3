package espalier

import (
	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/domain"
)

// Builder is the registration surface of the engine. Each Declare call
// returns an opaque handle usable in AddTransition; each call validates
// eagerly, so a malformed declaration fails where it is written.
//
// Build finalizes the accumulated declarations into an immutable Machine.
// A Builder is not safe for concurrent use and should be discarded after
// Build.
type Builder struct {
	rb   *runtime.Builder
	name string
}

// NewBuilder creates an empty machine builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{rb: runtime.NewBuilder()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DeclareState registers a state by name and returns its handle.
func (b *Builder) DeclareState(name string, opts ...StateOption) (*domain.State, error) {
	s := domain.State{Name: name}
	for _, opt := range opts {
		opt(&s)
	}
	return b.rb.DeclareState(s)
}

// DeclareInput registers an input with its ordered parameter names.
func (b *Builder) DeclareInput(name string, params ...string) (*domain.Input, error) {
	return b.rb.DeclareInput(name, params)
}

// DeclareOutput registers a named behavior.
func (b *Builder) DeclareOutput(name string, fn domain.OutputFunc) (*domain.Output, error) {
	return b.rb.DeclareOutput(name, fn)
}

// AddTransition registers `(from, input) -> (outputs, to)`. Outputs run in
// the given order; the collector defaults to domain.CollectAll. Registering
// a second transition for the same (from, input) pair fails with
// domain.DuplicateTransitionError and leaves the table unchanged.
func (b *Builder) AddTransition(from *domain.State, in *domain.Input, outputs []*domain.Output, to *domain.State, opts ...TransitionOption) error {
	cfg := transitionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return b.rb.AddTransition(from, in, outputs, to, cfg.collect)
}

// Build finalizes the machine. It fails with domain.ErrNoInitialState,
// domain.MultipleInitialStatesError or domain.DuplicateTokenError when the
// whole-machine invariants are violated.
func (b *Builder) Build() (*Machine, error) {
	automaton, err := b.rb.Finalize()
	if err != nil {
		return nil, err
	}
	return &Machine{automaton: automaton, name: b.name}, nil
}
