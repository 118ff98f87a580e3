package trace

import "github.com/aretw0/espalier/pkg/domain"

// Nop returns a tracer that discards everything. Attaching it is
// equivalent to attaching no tracer at all; it exists so call sites can
// unconditionally pass a tracer.
func Nop() domain.Tracer {
	return func(from, input, to string) domain.OutputTracer {
		return nil
	}
}

// Multi fans transitions out to all non-nil tracers. Per-output callbacks
// returned by the underlying tracers are invoked in the same order the
// tracers were given.
func Multi(tracers ...domain.Tracer) domain.Tracer {
	filtered := make([]domain.Tracer, 0, len(tracers))
	for _, t := range tracers {
		if t != nil {
			filtered = append(filtered, t)
		}
	}

	return func(from, input, to string) domain.OutputTracer {
		var outs []domain.OutputTracer
		for _, t := range filtered {
			if ot := t(from, input, to); ot != nil {
				outs = append(outs, ot)
			}
		}
		if len(outs) == 0 {
			return nil
		}
		return func(output string) {
			for _, ot := range outs {
				ot(output)
			}
		}
	}
}
