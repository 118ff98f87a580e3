package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
)

// Builder accumulates fluent declarations and compiles them into a
// Machine. All declaration errors are deferred to Build.
type Builder struct {
	mb   *espalier.Builder
	errs []error
}

// State is a declared state bound to its builder, so transitions can be
// chained off it.
type State struct {
	b      *Builder
	handle *domain.State
}

// New creates a fluent builder for a machine with the given name.
func New(name string) *Builder {
	return &Builder{mb: espalier.NewBuilder(espalier.WithName(name))}
}

// State declares a state. Redeclaring a name is an error, reported by
// Build.
func (b *Builder) State(name string, opts ...espalier.StateOption) *State {
	handle, err := b.mb.DeclareState(name, opts...)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return &State{b: b, handle: handle}
}

// Input declares an input with its ordered parameter names.
func (b *Builder) Input(name string, params ...string) *domain.Input {
	handle, err := b.mb.DeclareInput(name, params...)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return handle
}

// Output declares a named behavior.
func (b *Builder) Output(name string, fn domain.OutputFunc) *domain.Output {
	handle, err := b.mb.DeclareOutput(name, fn)
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return handle
}

// Build finalizes the machine, reporting any declaration errors collected
// along the way.
func (b *Builder) Build() (*espalier.Machine, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("invalid machine declaration: %w", errors.Join(b.errs...))
	}
	return b.mb.Build()
}

type uponConfig struct {
	enter   *State
	outputs []*domain.Output
	collect domain.Collector
}

// UponOption configures a transition declared with Upon.
type UponOption func(*uponConfig)

// Enter sets the destination state. Omitting it makes the transition a
// self-loop.
func Enter(s *State) UponOption {
	return func(cfg *uponConfig) {
		cfg.enter = s
	}
}

// Outputs sets the ordered output sequence.
func Outputs(outs ...*domain.Output) UponOption {
	return func(cfg *uponConfig) {
		cfg.outputs = outs
	}
}

// Collect replaces the default collector for this transition.
func Collect(c domain.Collector) UponOption {
	return func(cfg *uponConfig) {
		cfg.collect = c
	}
}

// Upon declares a transition out of this state for the given input. It
// returns the state so further transitions can chain.
func (s *State) Upon(in *domain.Input, opts ...UponOption) *State {
	cfg := uponConfig{enter: s}
	for _, opt := range opts {
		opt(&cfg)
	}

	if s.handle == nil || cfg.enter == nil || cfg.enter.handle == nil {
		// A prior declaration already failed; Build will report it.
		return s
	}

	var tOpts []espalier.TransitionOption
	if cfg.collect != nil {
		tOpts = append(tOpts, espalier.WithCollector(cfg.collect))
	}
	if err := s.b.mb.AddTransition(s.handle, in, cfg.outputs, cfg.enter.handle, tOpts...); err != nil {
		s.b.errs = append(s.b.errs, err)
	}
	return s
}
