// Package trace provides ready-made domain.Tracer implementations:
// a no-op, a fan-out combinator, a slog-backed tracer and a Prometheus
// metrics tracer. All of them are observers only; none can reach back
// into the instance they watch.
package trace
