package core

import (
	"errors"
	"fmt"
)

// ErrNoQuery marks a request missing its required query parameter. Surfaced
// as a client error with no server-side side effects.
var ErrNoQuery = errors.New("no query provided")

// ProviderError wraps a completion or analysis provider failure (transport,
// auth, quota). The relay recovers it at the top level: the user sees a fixed
// apology and the cause goes to the log.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StorageError wraps a persistence failure. Fatal to the request; there is no
// stateless-degrade mode.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
