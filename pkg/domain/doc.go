// Package domain holds the pure data model of the espalier engine:
// states, inputs, outputs, transitions, collectors, tracer callbacks and
// the error taxonomy. It has no behavior beyond formatting errors, so it
// can be imported by every layer without dragging dependencies along.
package domain
