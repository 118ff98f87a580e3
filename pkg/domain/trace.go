package domain

// OutputTracer observes individual output invocations during the handling
// of a single input. It is called with the output's name immediately
// before that output runs.
type OutputTracer func(output string)

// Tracer observes transitions on a machine instance. It is called once per
// handled input, before any output runs, with the source state, the input
// and the destination state. A non-nil return value becomes the
// OutputTracer for that handling.
//
// Tracers must be side-effect-only with respect to the instance: calling
// Handle from a tracer trips the reentrancy guard.
type Tracer func(from, input, to string) OutputTracer
