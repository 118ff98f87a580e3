package espalier

import (
	"log/slog"

	"github.com/aretw0/espalier/pkg/domain"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithName sets a descriptive machine name, surfaced by introspection and
// graph exports.
func WithName(name string) BuilderOption {
	return func(b *Builder) {
		b.name = name
	}
}

// StateOption configures a state declaration.
type StateOption func(*domain.State)

// Initial marks the state as the machine's starting state. Exactly one
// state must be marked initial; Build enforces this.
func Initial() StateOption {
	return func(s *domain.State) {
		s.Initial = true
	}
}

// Doc attaches human-readable documentation to the state.
func Doc(doc string) StateOption {
	return func(s *domain.State) {
		s.Doc = doc
	}
}

// Serialized assigns the opaque token that represents this state to
// external systems. Tokens must be unique across the machine's states.
func Serialized(token string) StateOption {
	return func(s *domain.State) {
		s.Serialized = token
	}
}

type transitionConfig struct {
	collect domain.Collector
}

// TransitionOption configures a transition registration.
type TransitionOption func(*transitionConfig)

// WithCollector replaces the default collector (domain.CollectAll) for
// one transition.
func WithCollector(c domain.Collector) TransitionOption {
	return func(cfg *transitionConfig) {
		cfg.collect = c
	}
}

type instanceConfig struct {
	tracer domain.Tracer
	logger *slog.Logger
	token  string
}

// InstanceOption configures a new instance.
type InstanceOption func(*instanceConfig)

// WithTracer attaches a tracer at construction time.
func WithTracer(t domain.Tracer) InstanceOption {
	return func(cfg *instanceConfig) {
		cfg.tracer = t
	}
}

// WithLogger sets a structured logger for the instance. The default
// discards everything.
func WithLogger(logger *slog.Logger) InstanceOption {
	return func(cfg *instanceConfig) {
		cfg.logger = logger
	}
}

// WithToken restores the instance to the state owning the given
// serialized token instead of the initial state.
func WithToken(token string) InstanceOption {
	return func(cfg *instanceConfig) {
		cfg.token = token
	}
}
