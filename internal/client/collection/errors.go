package collection

import "errors"

var (
	// ErrIndexOutOfRange reports an update aimed at a list position that
	// does not exist. A programming error on the caller's side.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoServerID reports a remote mutation attempted on an item the
	// backend has never acknowledged. Such items may only be removed
	// locally; the UI is expected to disable the action, so reaching this
	// error is a programming error, not a runtime condition to retry.
	ErrNoServerID = errors.New("item has no server id")

	// ErrMutationInFlight reports a second concurrent edit to an item
	// that already has a remote mutation pending.
	ErrMutationInFlight = errors.New("mutation already in flight for item")
)
