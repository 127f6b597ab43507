package models

import "errors"

// Sentinel errors shared by the engine and the HTTP layer.
// Callers classify failures with errors.Is.
var (
	// ErrInvalidInput means a request carried a missing or malformed skill, mode or limit
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means a referenced question or item does not exist
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable means a transient failure reading or writing the store
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrUnauthenticated means no learner identity was supplied
	ErrUnauthenticated = errors.New("unauthenticated")
)
