package core

import "errors"

// Failure taxonomy for the external collaborators. Adapters wrap vendor errors with
// these sentinels so the dispatcher can branch with errors.Is without knowing which
// vendor sits behind an interface.
var (
	// ErrLookupUnavailable means the unit directory source is unreachable or
	// misconfigured (bad credentials, missing header row, network failure).
	ErrLookupUnavailable = errors.New("unit directory unavailable")

	// ErrUnitNotFound means the directory answered but no active row matched.
	ErrUnitNotFound = errors.New("unit not found")

	// ErrCompletionUnavailable means the free-text completion call failed.
	ErrCompletionUnavailable = errors.New("completion service unavailable")
)
