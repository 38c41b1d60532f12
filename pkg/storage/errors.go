package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrAlreadyInTx is returned when a transaction is begun on a handle that
	// is already bound to one.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned when Commit or Rollback is called on a handle
	// that is not bound to a transaction.
	ErrNotInTx = errors.New("not in tx")
)
