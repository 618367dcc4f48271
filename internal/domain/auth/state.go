package auth

import (
	"errors"
	"fmt"
)

// AuthState is the state of the login affordance for a session.
type AuthState string

const (
	StateIdle          AuthState = "idle"
	StateSubmitting    AuthState = "submitting"
	StateAuthenticated AuthState = "authenticated"
	StateFailed        AuthState = "failed"
)

// Event drives AuthState transitions.
type Event string

const (
	EventSubmit  Event = "submit"
	EventMatch   Event = "match"
	EventNoMatch Event = "no_match"
	EventFault   Event = "fault"
	EventReset   Event = "reset"
)

// ErrInvalidTransition is returned when an event is not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid auth state transition")

// Next returns the state reached from s on ev.
// Authenticated is terminal; Failed only returns to Idle.
func (s AuthState) Next(ev Event) (AuthState, error) {
	switch {
	case s == StateIdle && ev == EventSubmit:
		return StateSubmitting, nil
	case s == StateSubmitting && ev == EventMatch:
		return StateAuthenticated, nil
	case s == StateSubmitting && (ev == EventNoMatch || ev == EventFault):
		return StateFailed, nil
	case s == StateFailed && ev == EventReset:
		return StateIdle, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, s, ev)
}
