package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized is returned for any HTTP 401. It is always fatal to
	// the current session: the top-level auth handler clears the session
	// store and navigates to login. The gateway itself performs no side
	// effects beyond returning this value.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable wraps transport-level failures (no response at all).
	ErrUnavailable = errors.New("server unreachable")

	// ErrAlreadyApplied marks the backend's "You have already applied"
	// rejection. The backend exposes it only as a message string, so it is
	// detected by matching that message, not an invented error code.
	ErrAlreadyApplied = errors.New("already applied")

	// ErrUnexpectedShape reports a list response that is neither a bare
	// array nor a recognized envelope object.
	ErrUnexpectedShape = errors.New("unexpected list shape")
)

// APIError is a non-2xx, non-401 backend response, carrying the parsed
// {message} body. When the body is not valid JSON the Message degrades to
// a generic text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrAlreadyApplied) match on the observed message.
func (e *APIError) Is(target error) bool {
	return target == ErrAlreadyApplied &&
		strings.Contains(strings.ToLower(e.Message), "already applied")
}
