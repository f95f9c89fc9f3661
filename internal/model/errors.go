// Domain errors shared across the storage layers and the ledger service.
// Callers branch on these with errors.Is; the concrete cause is carried in
// the wrapping message.

package model

import "errors"

var (
	// ErrValidation marks a data-model invariant violation: bad category
	// for the kind, negative amount, oversized description. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an operation that targets a record outside the
	// current owner scope or a nonexistent id. Never retried.
	ErrNotFound = errors.New("transaction not found")

	// ErrStoreUnavailable marks an infrastructure failure of the remote
	// backend. Retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
)
