package domain

// OutputFunc is the unit of behavior bound to an Output. The engine calls
// it synchronously with the arguments passed to Handle; it may return a
// value and may have side effects on whatever the closure captures.
// Go has no implicit receiver rebinding, so behaviors close over the
// application value that owns the machine instance.
type OutputFunc func(args ...any) (any, error)

// Collector folds the ordered return values of a transition's outputs into
// the single value returned to the caller of Handle.
type Collector func(values []any) any

// CollectAll is the default collector. It returns the full ordered slice
// of output return values.
func CollectAll(values []any) any {
	return values
}

// CollectLast returns only the last output's return value, or nil when the
// transition has no outputs.
func CollectLast(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[len(values)-1]
}

// State is a named configuration of a machine instance.
type State struct {
	// Name is the unique identity of the state within its machine.
	Name string

	// Doc is optional human-readable documentation.
	Doc string

	// Serialized is the opaque token representing this state to external
	// systems. Empty means the state does not participate in
	// serialization.
	Serialized string

	// Initial marks the state the machine starts in. Exactly one state
	// per machine may be initial; this is enforced at build time.
	Initial bool
}

// Input is a named, parameterized event that may trigger a transition.
// Inputs never carry behavior.
type Input struct {
	Name string

	// Params is the ordered list of parameter names. It is used purely to
	// validate call-site arguments (arity) at dispatch time.
	Params []string
}

// Output pairs a unique name with its behavior.
type Output struct {
	Name string
	Fn   OutputFunc
}

// Transition maps a (source state, input) pair to an ordered output
// sequence, a destination state and a collector. Output order matters:
// outputs execute in this order and their return values collect in this
// order.
type Transition struct {
	From    *State
	In      *Input
	Outputs []*Output
	To      *State
	Collect Collector
}

// TransitionInfo is the read-only introspection view of a transition,
// consumed by visualization and tooling.
type TransitionInfo struct {
	From    string   `json:"from" yaml:"from"`
	Input   string   `json:"input" yaml:"input"`
	To      string   `json:"to" yaml:"to"`
	Outputs []string `json:"outputs" yaml:"outputs"`
}
