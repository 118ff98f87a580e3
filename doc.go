/*
Package espalier is a deterministic finite-state transducer engine: named
states, named inputs and named outputs are wired into an immutable
transition table, and a per-instance dispatcher routes each input to the
single applicable transition, runs its outputs in declared order, folds
their return values through a collector and advances the state.

# Concept

A machine definition (the Machine) is built once and never mutated again;
it is freely shared across instances and goroutines. Each Instance owns
exactly one piece of mutable data, its current state, and changes it only
as the final step of successfully handling an input. Everything else —
tracing, serialization, visualization — observes the machine without being
able to steer it.

# Key Features

  - Deterministic dispatch: at most one transition per (state, input) pair,
    enforced at build time.
  - Ordered outputs with pluggable collectors for the caller-visible value.
  - Reentrancy detection: dispatching from inside an output or tracer
    fails fast instead of corrupting the in-flight collection.
  - Serialization bridge: opaque per-state tokens with a round-trip
    guarantee, independent of the transition table.
  - Attachable tracers (logging, metrics) that cannot mutate machine state.

# Usage

	b := espalier.NewBuilder(espalier.WithName("coffee"))

	noBeans, _ := b.DeclareState("NoBeans", espalier.Initial())
	haveBeans, _ := b.DeclareState("HaveBeans")

	putInBeans, _ := b.DeclareInput("putInBeans", "beans")
	brew, _ := b.DeclareInput("brew")

	saveBeans, _ := b.DeclareOutput("saveBeans", func(args ...any) (any, error) {
		// stash args[0] somewhere
		return nil, nil
	})
	heat, _ := b.DeclareOutput("heat", func(args ...any) (any, error) {
		return nil, nil
	})

	b.AddTransition(noBeans, putInBeans, []*domain.Output{saveBeans}, haveBeans)
	b.AddTransition(haveBeans, brew, []*domain.Output{heat}, noBeans)

	machine, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	inst, _ := machine.NewInstance()
	inst.Handle("putInBeans", "arabica")
	inst.Handle("brew")

The fluent front-end in pkg/dsl wraps the same registration surface with
deferred error collection, and pkg/schema loads machine definitions from
YAML for tooling (graph export, validation, introspection server).
*/
package espalier
