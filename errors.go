// Package striad structured error types for better error handling
package striad

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Invalid argument errors
	ErrTypeInvalidArg ErrorType = iota
	// Memory errors
	ErrTypeMemory
	// Calibration errors
	ErrTypeCalibration
	// Result validation errors
	ErrTypeValidation
	// Execution errors
	ErrTypeExecution
)

// TriadError represents a structured error with context
type TriadError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *TriadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("striad %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("striad %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *TriadError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeMemory:
		return "Memory"
	case ErrTypeCalibration:
		return "Calibration"
	case ErrTypeValidation:
		return "Validation"
	case ErrTypeExecution:
		return "Execution"
	default:
		return "Unknown"
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &TriadError{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewMemoryError creates a memory-related error
func NewMemoryError(op string, message string, err error) error {
	return &TriadError{
		Type:    ErrTypeMemory,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewCalibrationError creates a calibration error
func NewCalibrationError(op string, message string) error {
	return &TriadError{
		Type:    ErrTypeCalibration,
		Op:      op,
		Message: message,
	}
}

// NewValidationError creates a result validation error
func NewValidationError(op string, message string) error {
	return &TriadError{
		Type:    ErrTypeValidation,
		Op:      op,
		Message: message,
	}
}

// NewExecutionError creates an execution error
func NewExecutionError(op string, message string, err error) error {
	return &TriadError{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

var (
	// ErrInvalidSize indicates a non-positive element count
	ErrInvalidSize = NewInvalidArgError("AllocAligned", "size must be positive")

	// ErrDoubleFree indicates the arrays were released twice
	ErrDoubleFree = NewMemoryError("Free", "double free detected", nil)

	// ErrTooFewTrials indicates there is nothing left once the warm-up is dropped
	ErrTooFewTrials = NewInvalidArgError("Run", "at least 2 trials are required")
)

func hasType(err error, t ErrorType) bool {
	var e *TriadError
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	return hasType(err, ErrTypeInvalidArg)
}

// IsMemoryError checks if an error is a memory error
func IsMemoryError(err error) bool {
	return hasType(err, ErrTypeMemory)
}

// IsCalibrationError checks if an error is a calibration error
func IsCalibrationError(err error) bool {
	return hasType(err, ErrTypeCalibration)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrTypeValidation)
}

// IsExecutionError checks if an error is an execution error
func IsExecutionError(err error) bool {
	return hasType(err, ErrTypeExecution)
}
