package session

import "errors"

var (
	// ErrInvalidTransition is returned for a lifecycle call that is not
	// legal in the current state (e.g. Pause while Idle). It is
	// informational: the session is unaffected and the controller stays
	// fully usable.
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrNoSession is returned by End when no session is in progress.
	ErrNoSession = errors.New("no session in progress")

	// ErrNotAuthorized is returned by Start when the authorization gate
	// denies sensor access.
	ErrNotAuthorized = errors.New("sensor access not authorized")
)
