package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrNotFound marks an unknown contributor handle.
	ErrNotFound = errors.New("contributor not found")
	// ErrStoreUnavailable marks a store that cannot be reached or timed
	// out. It fails the whole orchestration; no partial results escape.
	ErrStoreUnavailable = errors.New("rollup store unavailable")
)
