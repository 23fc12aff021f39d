package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Range/domain errors: caller misuse, raised before any randomized work.
	ErrOutOfRange             = errors.New("value out of range")
	ErrInvalidAreasDefinition = errors.New("invalid plate areas definition")
	ErrPlateIDMismatch        = errors.New("records have different plate IDs")

	// Recoverable data conditions: expected outcomes of real survey data.
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrNoData           = errors.New("no usable data for analysis")

	// Consistency violations: indicate a bug in accumulation logic.
	ErrCountMismatch = errors.New("observed and expected value counts are not equal")

	// Control flow
	ErrAnalysisCanceled = errors.New("analysis canceled")
)

// NewOutOfRangeError reports a value outside its allowed domain.
func NewOutOfRangeError(what string, value, lo, hi int) error {
	return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrOutOfRange, what, lo, hi, value)
}

// IsDataError reports whether err is a recoverable insufficient/no-data condition.
func IsDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData) || errors.Is(err, ErrNoData)
}
