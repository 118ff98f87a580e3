package espalier

import (
	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/domain"
)

// Instance is one running occurrence of a Machine: a current state plus
// the shared transition table. Instances are single-threaded; wrap calls
// with external synchronization if multiple goroutines must share one.
type Instance struct {
	machine      *Machine
	transitioner *runtime.Transitioner
}

// Machine returns the definition this instance runs.
func (i *Instance) Machine() *Machine {
	return i.machine
}

// Handle dispatches one input with its arguments and returns the value
// produced by the transition's collector.
//
// When no transition is registered for (current state, input) it fails
// with domain.NoTransitionError and the state is unchanged. Errors from
// outputs propagate unchanged; the state is then also unchanged, though
// side effects of outputs that ran before the failure stand.
func (i *Instance) Handle(input string, args ...any) (any, error) {
	return i.transitioner.Handle(input, args...)
}

// StateName returns the name of the current state.
func (i *Instance) StateName() string {
	return i.transitioner.Current().Name
}

// SetTracer attaches a tracer to this instance, replacing any previous
// one. Passing nil detaches. At most one tracer is active at a time; use
// trace.Multi to fan out.
func (i *Instance) SetTracer(t domain.Tracer) {
	i.transitioner.SetTracer(t)
}

// Export returns the serialized token of the current state, for
// persistence. Callers bundle it with whatever other instance state they
// own; the engine only supplies the state token.
func (i *Instance) Export() (string, error) {
	return i.transitioner.Export()
}

// Restore positions a freshly constructed instance at the state owning
// the given token. It never runs outputs and never consults the
// transition table. Instances that already handled an input return
// domain.ErrAlreadyStarted.
func (i *Instance) Restore(token string) error {
	return i.transitioner.Restore(token)
}
