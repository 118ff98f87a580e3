package trace

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/espalier/pkg/domain"
)

// Metrics returns a tracer that counts transitions and output invocations
// as Prometheus metrics registered on reg (pass
// prometheus.DefaultRegisterer for the global registry).
func Metrics(reg prometheus.Registerer) domain.Tracer {
	transitions := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "espalier_transitions_total",
		Help: "Transitions handled, labelled by source state, input and destination state.",
	}, []string{"from", "input", "to"})

	outputs := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "espalier_outputs_total",
		Help: "Output invocations, labelled by output name.",
	}, []string{"output"})

	return func(from, input, to string) domain.OutputTracer {
		transitions.WithLabelValues(from, input, to).Inc()
		return func(output string) {
			outputs.WithLabelValues(output).Inc()
		}
	}
}
