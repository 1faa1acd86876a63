package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("entry not found")

// StoreError wraps any I/O or constraint failure of the ledger store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
