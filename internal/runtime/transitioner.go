package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/espalier/pkg/domain"
)

// Transitioner combines a current state with a shared Automaton. It is the
// per-instance dispatcher: single-threaded by contract, with a reentrancy
// guard so a recursive Handle fails fast instead of corrupting the
// in-flight collection.
type Transitioner struct {
	automaton *Automaton
	current   *domain.State
	tracer    domain.Tracer
	logger    *slog.Logger
	inFlight  bool
	started   bool
}

// NewTransitioner creates a dispatcher positioned at the automaton's
// initial state. A nil logger disables logging.
func NewTransitioner(a *Automaton, logger *slog.Logger) *Transitioner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Transitioner{
		automaton: a,
		current:   a.Initial(),
		logger:    logger,
	}
}

// Handle dispatches one input: it looks up the transition for the current
// state, notifies the tracer, invokes the outputs in declared order,
// folds their return values through the transition's collector and only
// then commits the destination state.
//
// If any output returns an error the error propagates unchanged, the
// current state is left at the pre-transition state, and side effects of
// outputs that already ran stand.
func (t *Transitioner) Handle(input string, args ...any) (any, error) {
	if t.inFlight {
		return nil, &domain.ReentrancyError{State: t.current.Name, Input: input}
	}
	t.inFlight = true
	defer func() { t.inFlight = false }()

	tr, ok := t.automaton.Lookup(t.current.Name, input)
	if !ok {
		return nil, &domain.NoTransitionError{State: t.current.Name, Input: input}
	}
	if len(args) != len(tr.In.Params) {
		return nil, &domain.ArityError{Input: input, Want: len(tr.In.Params), Got: len(args)}
	}

	var outputTracer domain.OutputTracer
	if t.tracer != nil {
		outputTracer = t.tracer(tr.From.Name, tr.In.Name, tr.To.Name)
	}

	values := make([]any, 0, len(tr.Outputs))
	for _, out := range tr.Outputs {
		if outputTracer != nil {
			outputTracer(out.Name)
		}
		v, err := out.Fn(args...)
		if err != nil {
			t.logger.Debug("output failed", "state", t.current.Name, "input", input, "output", out.Name, "err", err)
			return nil, err
		}
		values = append(values, v)
	}

	result := tr.Collect(values)
	t.current = tr.To
	t.started = true
	t.logger.Debug("transition", "from", tr.From.Name, "input", tr.In.Name, "to", tr.To.Name)
	return result, nil
}

// Current returns the state the instance is in.
func (t *Transitioner) Current() *domain.State {
	return t.current
}

// SetTracer attaches a tracer, replacing any previous one. Nil detaches.
func (t *Transitioner) SetTracer(tracer domain.Tracer) {
	t.tracer = tracer
}

// Export returns the serialized token of the current state. This never
// consults the transition table and never runs outputs.
func (t *Transitioner) Export() (string, error) {
	if t.current.Serialized == "" {
		return "", &domain.UnserializableStateError{State: t.current.Name}
	}
	return t.current.Serialized, nil
}

// Restore positions a fresh instance at the state owning the given token.
// Instances that already handled an input refuse to be repositioned.
func (t *Transitioner) Restore(token string) error {
	if t.started {
		return domain.ErrAlreadyStarted
	}
	s, ok := t.automaton.StateByToken(token)
	if !ok {
		return &domain.UnknownSerializedStateError{Token: token}
	}
	t.current = s
	return nil
}
