package bogo

import (
	"errors"
	"fmt"
)

// Domain errors for dispersion evaluation.
var (
	// ErrInvalidParameter indicates a physical parameter outside its
	// valid range (Δn < 0 or λ0 ≤ 0). Raised before any computation.
	ErrInvalidParameter = errors.New("bogo: invalid parameter")

	// ErrAxisTooShort indicates an axis with fewer than two samples.
	ErrAxisTooShort = errors.New("bogo: axis needs at least two samples")

	// ErrAxisMismatch indicates an axis the relation does not define.
	ErrAxisMismatch = errors.New("bogo: axis not defined for this relation")

	// ErrCanceled indicates the evaluation was interrupted.
	ErrCanceled = errors.New("bogo: evaluation canceled by context")
)

// ParameterError wraps ErrInvalidParameter with the offending value.
type ParameterError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%v: %s=%g", e.Wrapped, e.Name, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return e.Wrapped
}
