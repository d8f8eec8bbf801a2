package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCafeNotFound marks absence: the id does not exist server-side.
	// Absence is not an error state in the UI; views render "not found".
	ErrCafeNotFound = errors.New("cafe not found")

	// ErrInvalidCredentials covers malformed or rejected sign-in/sign-up input.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotSignedIn is returned when an operation requires a session.
	ErrNotSignedIn = errors.New("not signed in")
)

// RemoteError is a non-success HTTP response carrying the backend's
// human-readable message. Views decide whether to surface the message
// (auth forms, admin mutations) or degrade to an empty result (list and
// detail fetches).
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// TransportError is a network-level failure: the backend was never reached
// or the response could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
