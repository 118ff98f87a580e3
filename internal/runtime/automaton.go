package runtime

import (
	"sort"

	"github.com/aretw0/espalier/pkg/domain"
)

type tableKey struct {
	state string
	input string
}

// Builder accumulates state/input/output declarations and transition
// entries. It validates each call eagerly so a malformed machine fails at
// the offending declaration, not at dispatch time.
type Builder struct {
	states  map[string]*domain.State
	inputs  map[string]*domain.Input
	outputs map[string]*domain.Output
	table   map[tableKey]*domain.Transition
	order   []tableKey // declaration order, kept for deterministic introspection
}

// NewBuilder creates an empty machine builder.
func NewBuilder() *Builder {
	return &Builder{
		states:  make(map[string]*domain.State),
		inputs:  make(map[string]*domain.Input),
		outputs: make(map[string]*domain.Output),
		table:   make(map[tableKey]*domain.Transition),
	}
}

// DeclareState registers a state and returns its handle.
func (b *Builder) DeclareState(s domain.State) (*domain.State, error) {
	if _, ok := b.states[s.Name]; ok {
		return nil, &domain.DuplicateStateError{Name: s.Name}
	}
	state := s
	b.states[state.Name] = &state
	return &state, nil
}

// DeclareInput registers an input with its parameter-name list.
func (b *Builder) DeclareInput(name string, params []string) (*domain.Input, error) {
	if _, ok := b.inputs[name]; ok {
		return nil, &domain.DuplicateInputError{Name: name}
	}
	in := &domain.Input{Name: name, Params: params}
	b.inputs[name] = in
	return in, nil
}

// DeclareOutput registers a named behavior.
func (b *Builder) DeclareOutput(name string, fn domain.OutputFunc) (*domain.Output, error) {
	if _, ok := b.outputs[name]; ok {
		return nil, &domain.DuplicateOutputError{Name: name}
	}
	out := &domain.Output{Name: name, Fn: fn}
	b.outputs[name] = out
	return out, nil
}

// AddTransition registers `(from, input) -> (outputs, to)` with the given
// collector (nil means domain.CollectAll). All handles must have been
// returned by this builder; a second transition for the same (from, input)
// pair is rejected and the table is left untouched.
func (b *Builder) AddTransition(from *domain.State, in *domain.Input, outputs []*domain.Output, to *domain.State, collect domain.Collector) error {
	if from == nil || b.states[from.Name] != from {
		return &domain.UnknownStateError{Name: stateName(from)}
	}
	if to == nil || b.states[to.Name] != to {
		return &domain.UnknownStateError{Name: stateName(to)}
	}
	if in == nil || b.inputs[in.Name] != in {
		return &domain.UnknownInputError{Name: inputName(in)}
	}
	for _, out := range outputs {
		if out == nil || b.outputs[out.Name] != out {
			return &domain.UnknownOutputError{Name: outputName(out)}
		}
	}

	key := tableKey{state: from.Name, input: in.Name}
	if existing, ok := b.table[key]; ok {
		return &domain.DuplicateTransitionError{
			From:     from.Name,
			Input:    in.Name,
			Existing: existing.To.Name,
			Proposed: to.Name,
		}
	}

	if collect == nil {
		collect = domain.CollectAll
	}
	b.table[key] = &domain.Transition{
		From:    from,
		In:      in,
		Outputs: append([]*domain.Output(nil), outputs...),
		To:      to,
		Collect: collect,
	}
	b.order = append(b.order, key)
	return nil
}

// Finalize checks the whole-machine invariants (exactly one initial state,
// token bijection) and freezes the table into an immutable Automaton.
func (b *Builder) Finalize() (*Automaton, error) {
	var initials []string
	for _, name := range sortedKeys(b.states) {
		if b.states[name].Initial {
			initials = append(initials, name)
		}
	}
	switch {
	case len(initials) == 0:
		return nil, domain.ErrNoInitialState
	case len(initials) > 1:
		return nil, &domain.MultipleInitialStatesError{States: initials}
	}

	tokens := make(map[string]*domain.State)
	for _, name := range sortedKeys(b.states) {
		s := b.states[name]
		if s.Serialized == "" {
			continue
		}
		if prev, ok := tokens[s.Serialized]; ok {
			return nil, &domain.DuplicateTokenError{
				Token:  s.Serialized,
				States: [2]string{prev.Name, s.Name},
			}
		}
		tokens[s.Serialized] = s
	}

	return &Automaton{
		states:  b.states,
		inputs:  b.inputs,
		outputs: b.outputs,
		table:   b.table,
		order:   b.order,
		initial: b.states[initials[0]],
		tokens:  tokens,
	}, nil
}

// Automaton is the finalized, read-only transition table. It is shared by
// every instance of a machine kind and is safe for concurrent reads.
type Automaton struct {
	states  map[string]*domain.State
	inputs  map[string]*domain.Input
	outputs map[string]*domain.Output
	table   map[tableKey]*domain.Transition
	order   []tableKey
	initial *domain.State
	tokens  map[string]*domain.State
}

// Lookup returns the transition for (state, input), or ok=false when none
// is registered. It never fails so the dispatcher can build the precise
// error itself.
func (a *Automaton) Lookup(state, input string) (*domain.Transition, bool) {
	t, ok := a.table[tableKey{state: state, input: input}]
	return t, ok
}

// Initial returns the machine's initial state.
func (a *Automaton) Initial() *domain.State {
	return a.initial
}

// StateByToken resolves a serialized token back to its owning state.
func (a *Automaton) StateByToken(token string) (*domain.State, bool) {
	s, ok := a.tokens[token]
	return s, ok
}

// Transitions returns the introspection view of the table in declaration
// order.
func (a *Automaton) Transitions() []domain.TransitionInfo {
	infos := make([]domain.TransitionInfo, 0, len(a.order))
	for _, key := range a.order {
		t := a.table[key]
		names := make([]string, 0, len(t.Outputs))
		for _, out := range t.Outputs {
			names = append(names, out.Name)
		}
		infos = append(infos, domain.TransitionInfo{
			From:    t.From.Name,
			Input:   t.In.Name,
			To:      t.To.Name,
			Outputs: names,
		})
	}
	return infos
}

// StateNames returns all declared state names, sorted.
func (a *Automaton) StateNames() []string {
	return sortedKeys(a.states)
}

// InputNames returns all declared input names, sorted.
func (a *Automaton) InputNames() []string {
	return sortedKeys(a.inputs)
}

// OutputNames returns all declared output names, sorted.
func (a *Automaton) OutputNames() []string {
	return sortedKeys(a.outputs)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stateName(s *domain.State) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name
}

func inputName(in *domain.Input) string {
	if in == nil {
		return "<nil>"
	}
	return in.Name
}

func outputName(out *domain.Output) string {
	if out == nil {
		return "<nil>"
	}
	return out.Name
}
