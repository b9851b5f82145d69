// Package common defines shared constants and sentinel errors used across
// jobdeck components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation / payload errors surfaced before any network call.
	ErrorInvalidPayload = errors.New("invalid payload")
)
