// Package models holds types shared across domain packages.
package models

import "errors"

// Error taxonomy for the storage layer. Handlers route on these with
// errors.Is to pick the right HTTP status.
var (
	// ErrBackendUnavailable means the database could not serve the call at
	// all; the UI shows a generic retry message.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNotFound means the referenced id/email does not exist. It is an
	// expected outcome for lookups (client login by email), not a failure.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is the storage-side uniqueness violation on the
	// client email column, surfaced to the admin as a validation error.
	ErrDuplicateEmail = errors.New("email already registered")
)
