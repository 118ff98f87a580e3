package espalier

import (
	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/domain"
)

// Machine is the finalized, immutable definition of a state machine kind:
// the catalog of states, inputs and outputs plus the transition table.
// A Machine carries no runtime state; it is safe to share across any
// number of instances and goroutines.
type Machine struct {
	automaton *runtime.Automaton
	name      string
}

// Name returns the machine's descriptive name (may be empty).
func (m *Machine) Name() string {
	return m.name
}

// Transitions returns the introspection view of the transition table, in
// declaration order. The result reflects exactly the finalized table.
func (m *Machine) Transitions() []domain.TransitionInfo {
	return m.automaton.Transitions()
}

// InitialStateName returns the name of the machine's initial state.
func (m *Machine) InitialStateName() string {
	return m.automaton.Initial().Name
}

// StateNames returns all state names, sorted.
func (m *Machine) StateNames() []string {
	return m.automaton.StateNames()
}

// InputNames returns all input names, sorted.
func (m *Machine) InputNames() []string {
	return m.automaton.InputNames()
}

// OutputNames returns all output names, sorted.
func (m *Machine) OutputNames() []string {
	return m.automaton.OutputNames()
}

// NewInstance creates an independent runtime instance of this machine,
// positioned at the initial state (or at a restored state when WithToken
// is given).
func (m *Machine) NewInstance(opts ...InstanceOption) (*Instance, error) {
	cfg := instanceConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	inst := &Instance{
		machine:      m,
		transitioner: runtime.NewTransitioner(m.automaton, cfg.logger),
	}
	if cfg.tracer != nil {
		inst.transitioner.SetTracer(cfg.tracer)
	}
	if cfg.token != "" {
		if err := inst.transitioner.Restore(cfg.token); err != nil {
			return nil, err
		}
	}
	return inst, nil
}
