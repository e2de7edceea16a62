// Package errkind provides a small typed-error taxonomy shared across the
// shared-memory, IPC, arbiter and player-runtime packages, so callers can
// branch on failure category instead of string-matching.
package errkind

import (
	"errors"
	"fmt"
)

// Kind tags the category of a failure so callers can branch on it with
// errors.As instead of comparing error strings.
type Kind int

const (
	Unknown Kind = iota
	ResourceUnavailable
	InvalidArgument
	IOFailure
	BrokenPipe
	Interrupted
	PolicyGaveUp
)

func (k Kind) String() string {
	switch k {
	case ResourceUnavailable:
		return "resource-unavailable"
	case InvalidArgument:
		return "invalid-argument"
	case IOFailure:
		return "io-failure"
	case BrokenPipe:
		return "broken-pipe"
	case Interrupted:
		return "interrupted"
	case PolicyGaveUp:
		return "policy-gave-up"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so the caller can recover it
// with errors.As without depending on a specific sentinel value.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target has the same Kind, so
// errors.Is(err, errkind.New(errkind.BrokenPipe, "", nil)) works without the
// Op/Err needing to match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Of returns the Kind of err if it is (or wraps) an *Error, else Unknown.
func Of(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
