package cache

import (
	"errors"
	"fmt"
)

// Sentinel errors for cache setup.
var (
	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")

	// ErrMissingAddress is returned by Open when a network backend has no
	// connection string.
	ErrMissingAddress = errors.New("missing cache address")
)

// BackendError records which backend operation failed.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string { return fmt.Sprintf("%s cache %s: %v", e.Backend, e.Op, e.Err) }

// Unwrap returns the wrapped error.
func (e *BackendError) Unwrap() error { return e.Err }

func backendErr(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}
