package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown store backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrStoreUnavailable indicates the catalog store could not be reached.
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// ErrNegativeStock indicates a stock count below zero.
	// It wraps ErrInvalidInput so callers can match either.
	ErrNegativeStock = fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
)
