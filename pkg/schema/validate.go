package schema

import "fmt"

// Validate checks the document's structural invariants: unique names,
// exactly one initial state, unique serialized tokens, and transition
// references that resolve. All failures are reported together.
func (d *Definition) Validate() error {
	var errs []error
	fail := func(field, reason string) {
		errs = append(errs, &ValidationError{Field: field, Reason: reason})
	}

	if len(d.States) == 0 {
		fail("states", "at least one state is required")
	}

	states := make(map[string]bool)
	tokens := make(map[string]string)
	var initials []string
	for i, s := range d.States {
		field := fmt.Sprintf("states[%d]", i)
		if s.Name == "" {
			fail(field, "name is required")
			continue
		}
		if states[s.Name] {
			fail(field, fmt.Sprintf("state %q declared twice", s.Name))
		}
		states[s.Name] = true
		if s.Initial {
			initials = append(initials, s.Name)
		}
		if s.Serialized != "" {
			if owner, ok := tokens[s.Serialized]; ok {
				fail(field, fmt.Sprintf("serialized token %q already used by state %q", s.Serialized, owner))
			}
			tokens[s.Serialized] = s.Name
		}
	}
	if len(d.States) > 0 {
		switch len(initials) {
		case 0:
			fail("states", "no state is marked initial")
		case 1:
		default:
			fail("states", fmt.Sprintf("multiple states marked initial: %v", initials))
		}
	}

	inputs := make(map[string]bool)
	for i, in := range d.Inputs {
		field := fmt.Sprintf("inputs[%d]", i)
		if in.Name == "" {
			fail(field, "name is required")
			continue
		}
		if inputs[in.Name] {
			fail(field, fmt.Sprintf("input %q declared twice", in.Name))
		}
		inputs[in.Name] = true
	}

	outputs := make(map[string]bool)
	for i, name := range d.Outputs {
		field := fmt.Sprintf("outputs[%d]", i)
		if name == "" {
			fail(field, "name is required")
			continue
		}
		if outputs[name] {
			fail(field, fmt.Sprintf("output %q declared twice", name))
		}
		outputs[name] = true
	}

	seen := make(map[[2]string]string)
	for i, t := range d.Transitions {
		field := fmt.Sprintf("transitions[%d]", i)
		if !states[t.From] {
			fail(field, fmt.Sprintf("unknown source state %q", t.From))
		}
		if !states[t.To] {
			fail(field, fmt.Sprintf("unknown destination state %q", t.To))
		}
		if !inputs[t.Input] {
			fail(field, fmt.Sprintf("unknown input %q", t.Input))
		}
		for _, out := range t.Outputs {
			if !outputs[out] {
				fail(field, fmt.Sprintf("unknown output %q", out))
			}
		}
		key := [2]string{t.From, t.Input}
		if prior, ok := seen[key]; ok {
			fail(field, fmt.Sprintf("duplicate transition for (%s, %s): destinations %q and %q",
				t.From, t.Input, prior, t.To))
		} else {
			seen[key] = t.To
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
