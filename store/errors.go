package store

import (
	"errors"
	"fmt"
)

var (
	ErrNoSources      = errors.New("store: derivation needs at least one source")
	ErrNilSource      = errors.New("store: derivation source is nil")
	ErrTooManySources = errors.New("store: derivation supports at most 64 sources")

	ErrDispatcherMismatch = errors.New("store: derivation source is bound to another dispatcher")
)

// ComputeError wraps a failure returned by a derivation's compute function.
// The derived store keeps its previous value.
type ComputeError struct {
	StoreID uint64
	Store   string
	Err     error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("store %s: compute: %v", e.Store, e.Err)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}

// OnErrorFunc receives compute failures. With no handler installed the
// dispatcher panics with the error instead.
type OnErrorFunc func(err error)
