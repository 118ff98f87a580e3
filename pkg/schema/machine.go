package schema

import (
	"fmt"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
)

// Machine builds an introspection-only espalier.Machine from the
// document. Outputs are declared with placeholder behaviors: tooling
// walks the table but never dispatches, so the placeholders exist only to
// satisfy registration.
func (d *Definition) Machine() (*espalier.Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	b := espalier.NewBuilder(espalier.WithName(d.Name))

	states := make(map[string]*domain.State, len(d.States))
	for _, s := range d.States {
		var opts []espalier.StateOption
		if s.Initial {
			opts = append(opts, espalier.Initial())
		}
		if s.Doc != "" {
			opts = append(opts, espalier.Doc(s.Doc))
		}
		if s.Serialized != "" {
			opts = append(opts, espalier.Serialized(s.Serialized))
		}
		handle, err := b.DeclareState(s.Name, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to declare state %q: %w", s.Name, err)
		}
		states[s.Name] = handle
	}

	inputs := make(map[string]*domain.Input, len(d.Inputs))
	for _, in := range d.Inputs {
		handle, err := b.DeclareInput(in.Name, in.Params...)
		if err != nil {
			return nil, fmt.Errorf("failed to declare input %q: %w", in.Name, err)
		}
		inputs[in.Name] = handle
	}

	outputs := make(map[string]*domain.Output, len(d.Outputs))
	for _, name := range d.Outputs {
		handle, err := b.DeclareOutput(name, func(args ...any) (any, error) {
			return nil, nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to declare output %q: %w", name, err)
		}
		outputs[name] = handle
	}

	for _, t := range d.Transitions {
		outs := make([]*domain.Output, 0, len(t.Outputs))
		for _, name := range t.Outputs {
			outs = append(outs, outputs[name])
		}
		if err := b.AddTransition(states[t.From], inputs[t.Input], outs, states[t.To]); err != nil {
			return nil, fmt.Errorf("failed to add transition (%s, %s): %w", t.From, t.Input, err)
		}
	}

	return b.Build()
}
