package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoInitialState is returned by Build when no state was declared
// initial.
var ErrNoInitialState = errors.New("no initial state declared")

// ErrAlreadyStarted is returned by Restore when the instance has already
// handled an input. Restore only applies to fresh instances.
var ErrAlreadyStarted = errors.New("instance has already handled an input")

// ErrInstanceNotFound is returned by token stores when an instance ID has
// no persisted token.
var ErrInstanceNotFound = errors.New("instance not found")

// DuplicateStateError reports a state name declared twice.
type DuplicateStateError struct {
	Name string
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("state %q already declared", e.Name)
}

// DuplicateInputError reports an input name declared twice.
type DuplicateInputError struct {
	Name string
}

func (e *DuplicateInputError) Error() string {
	return fmt.Sprintf("input %q already declared", e.Name)
}

// DuplicateOutputError reports an output name declared twice.
type DuplicateOutputError struct {
	Name string
}

func (e *DuplicateOutputError) Error() string {
	return fmt.Sprintf("output %q already declared", e.Name)
}

// DuplicateTransitionError reports a second transition registered for the
// same (state, input) pair. It names both destinations so the conflict is
// obvious at a glance.
type DuplicateTransitionError struct {
	From     string
	Input    string
	Existing string // destination of the transition already in the table
	Proposed string // destination of the rejected transition
}

func (e *DuplicateTransitionError) Error() string {
	return fmt.Sprintf("transition (%s, %s) already declared: existing destination %q, proposed %q",
		e.From, e.Input, e.Existing, e.Proposed)
}

// MultipleInitialStatesError reports more than one state marked initial.
type MultipleInitialStatesError struct {
	States []string
}

func (e *MultipleInitialStatesError) Error() string {
	return fmt.Sprintf("multiple initial states declared: %s", strings.Join(e.States, ", "))
}

// UnknownStateError reports a reference to a state that was never
// declared on this builder.
type UnknownStateError struct {
	Name string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %q", e.Name)
}

// UnknownInputError reports a reference to an undeclared input.
type UnknownInputError struct {
	Name string
}

func (e *UnknownInputError) Error() string {
	return fmt.Sprintf("unknown input %q", e.Name)
}

// UnknownOutputError reports a reference to an undeclared output.
type UnknownOutputError struct {
	Name string
}

func (e *UnknownOutputError) Error() string {
	return fmt.Sprintf("unknown output %q", e.Name)
}

// DuplicateTokenError reports two states sharing a serialized token.
// Tokens must form a bijection with the states that define them.
type DuplicateTokenError struct {
	Token  string
	States [2]string
}

func (e *DuplicateTokenError) Error() string {
	return fmt.Sprintf("serialized token %q declared by both %q and %q",
		e.Token, e.States[0], e.States[1])
}

// NoTransitionError reports an input with no transition from the current
// state. It is the only expected dispatch-time failure: callers may treat
// it as "input not valid now" and recover.
type NoTransitionError struct {
	State string
	Input string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition for input %q in state %q", e.Input, e.State)
}

// ReentrancyError reports a Handle call made while another Handle on the
// same instance is in flight (typically an output or tracer dispatching
// recursively). This is a programming error and should propagate.
type ReentrancyError struct {
	State string
	Input string
}

func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("reentrant dispatch of input %q while handling in state %q", e.Input, e.State)
}

// ArityError reports a call-site argument count that does not match the
// input's declared parameter list. No output runs when this is returned.
type ArityError struct {
	Input string
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("input %q takes %d argument(s), got %d", e.Input, e.Want, e.Got)
}

// UnknownSerializedStateError reports a Restore token owned by no state.
type UnknownSerializedStateError struct {
	Token string
}

func (e *UnknownSerializedStateError) Error() string {
	return fmt.Sprintf("no state owns serialized token %q", e.Token)
}

// UnserializableStateError reports an Export from a state that declares
// no serialized token.
type UnserializableStateError struct {
	State string
}

func (e *UnserializableStateError) Error() string {
	return fmt.Sprintf("state %q has no serialized token", e.State)
}
