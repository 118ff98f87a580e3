package trace

import (
	"log/slog"

	"github.com/aretw0/espalier/pkg/domain"
)

// Slog returns a tracer that records transitions and output invocations
// on the given logger at Debug level.
func Slog(logger *slog.Logger) domain.Tracer {
	return func(from, input, to string) domain.OutputTracer {
		logger.Debug("transition", "from", from, "input", input, "to", to)
		return func(output string) {
			logger.Debug("output", "input", input, "output", output)
		}
	}
}
