// Package sgemm structured error types for validation failures
package sgemm

import (
	"fmt"
)

// ErrorKind represents categories of validation errors
type ErrorKind int

const (
	// Negative row or column count at construction
	ErrInvalidDimension ErrorKind = iota
	// Fill sequence length does not match rows*cols
	ErrLengthMismatch
	// Element access outside the matrix bounds
	ErrIndexOutOfRange
	// Inner dimensions of a multiply do not agree
	ErrDimensionMismatch
	// Benchmark requested with a non-positive iteration count
	ErrZeroIterations
)

// String returns the error kind as a string
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidDimension:
		return "InvalidDimension"
	case ErrLengthMismatch:
		return "LengthMismatch"
	case ErrIndexOutOfRange:
		return "IndexOutOfRange"
	case ErrDimensionMismatch:
		return "DimensionMismatch"
	case ErrZeroIterations:
		return "ZeroIterations"
	default:
		return "Unknown"
	}
}

// Error implements the error interface so a bare kind can be used as an
// errors.Is target.
func (k ErrorKind) Error() string {
	return "sgemm: " + k.String()
}

// Error represents a structured validation error with context
type Error struct {
	Kind ErrorKind
	Op   string // Operation that failed
	Msg  string // Human-readable message with the offending values
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("sgemm %s error in %s: %s", e.Kind, e.Op, e.Msg)
}

// Is matches against a bare ErrorKind target
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && e.Kind == k
}

// Common error constructors

// NewInvalidDimensionError reports a negative row or column count
func NewInvalidDimensionError(op string, rows, cols int) error {
	return &Error{
		Kind: ErrInvalidDimension,
		Op:   op,
		Msg:  fmt.Sprintf("rows=%d cols=%d, both must be >= 0", rows, cols),
	}
}

// NewLengthMismatchError reports a fill sequence of the wrong length
func NewLengthMismatchError(op string, want, got int) error {
	return &Error{
		Kind: ErrLengthMismatch,
		Op:   op,
		Msg:  fmt.Sprintf("need %d values, got %d", want, got),
	}
}

// NewIndexOutOfRangeError reports an element access outside the bounds
func NewIndexOutOfRangeError(op string, i, j, rows, cols int) error {
	return &Error{
		Kind: ErrIndexOutOfRange,
		Op:   op,
		Msg:  fmt.Sprintf("index (%d,%d) outside %dx%d", i, j, rows, cols),
	}
}

// NewDimensionMismatchError reports incompatible multiply operands
func NewDimensionMismatchError(op string, aRows, aCols, bRows, bCols int) error {
	return &Error{
		Kind: ErrDimensionMismatch,
		Op:   op,
		Msg:  fmt.Sprintf("%dx%d x %dx%d, inner dimensions must agree", aRows, aCols, bRows, bCols),
	}
}

// NewShapeError reports a destination of the wrong shape
func NewShapeError(op string, wantRows, wantCols, gotRows, gotCols int) error {
	return &Error{
		Kind: ErrDimensionMismatch,
		Op:   op,
		Msg:  fmt.Sprintf("destination is %dx%d, need %dx%d", gotRows, gotCols, wantRows, wantCols),
	}
}

// NewZeroIterationsError reports a non-positive benchmark iteration count
func NewZeroIterationsError(op string, iterations int) error {
	return &Error{
		Kind: ErrZeroIterations,
		Op:   op,
		Msg:  fmt.Sprintf("iterations=%d, must be > 0", iterations),
	}
}
