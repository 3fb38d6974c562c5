// Package frontier structured error types for better error handling
package frontier

import (
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Configuration errors: precondition violations such as an empty
	// device list or mismatched buffer sizes
	ErrTypeConfig ErrorType = iota
	// Memory errors
	ErrTypeMemory
	// Invalid argument errors
	ErrTypeInvalidArg
	// Execution errors
	ErrTypeExecution
	// Device errors
	ErrTypeDevice
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("frontier %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("frontier %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConfig:
		return "Configuration"
	case ErrTypeMemory:
		return "Memory"
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeExecution:
		return "Execution"
	case ErrTypeDevice:
		return "Device"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewConfigError creates a configuration error
func NewConfigError(op string, message string) error {
	return &Error{
		Type:    ErrTypeConfig,
		Op:      op,
		Message: message,
	}
}

// NewMemoryError creates a memory-related error
func NewMemoryError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeMemory,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &Error{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewExecutionError creates an execution error
func NewExecutionError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewDeviceError creates a device error
func NewDeviceError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeDevice,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Common pre-defined errors

var (
	// ErrNoDevices indicates no compute device was supplied for a run
	ErrNoDevices = NewConfigError("Partition", "no compute devices available")

	// ErrSizeMismatch indicates the output buffer does not match the batch
	ErrSizeMismatch = NewConfigError("Run", "output buffer size does not match numResults * vertexCount")

	// ErrNilGraph indicates a nil graph was supplied
	ErrNilGraph = NewConfigError("Run", "graph is nil")

	// ErrInvalidSize indicates invalid size parameter
	ErrInvalidSize = NewInvalidArgError("Malloc", "size must be positive")

	// ErrDoubleFree indicates double free attempt
	ErrDoubleFree = NewMemoryError("Free", "double free detected", nil)

	// ErrInvalidDevice indicates invalid device
	ErrInvalidDevice = NewDeviceError("NewContext", "invalid device", nil)
)

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrTypeConfig
	}
	return false
}

// IsMemoryError checks if an error is a memory error
func IsMemoryError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrTypeMemory
	}
	return false
}

// IsDeviceError checks if an error is a device error
func IsDeviceError(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == ErrTypeDevice
	}
	return false
}
