// Package errors provides typed error definitions for dockpanel.
// Errors carry a code that maps onto an HTTP status for the panel API and
// a message suitable for the console buffer.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"

	// Container and image errors
	ErrContainerNotFound  ErrorCode = "CONTAINER_NOT_FOUND"
	ErrContainerInvalidID ErrorCode = "CONTAINER_INVALID_ID"
	ErrRestartFailed      ErrorCode = "RESTART_FAILED"
	ErrRunFailed          ErrorCode = "RUN_FAILED"
	ErrComposeFailed      ErrorCode = "COMPOSE_FAILED"
	ErrInventoryFailed    ErrorCode = "INVENTORY_FAILED"

	// Validation errors
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrInvalidPort      ErrorCode = "INVALID_PORT"
	ErrInvalidCompose   ErrorCode = "INVALID_COMPOSE"

	// File errors
	ErrFileWrite ErrorCode = "FILE_WRITE"

	// Internal errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
)

// PanelError represents a structured error with additional context
type PanelError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *PanelError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause error
func (e *PanelError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PanelError) WithContext(key string, value interface{}) *PanelError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetHTTPStatus returns the appropriate HTTP status code for this error
func (e *PanelError) GetHTTPStatus() int {
	switch e.Code {
	case ErrContainerNotFound:
		return http.StatusNotFound
	case ErrValidationFailed, ErrInvalidInput, ErrInvalidPort, ErrContainerInvalidID, ErrInvalidCompose:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new PanelError
func New(code ErrorCode, message string) *PanelError {
	return &PanelError{Code: code, Message: message}
}

// NewWithDetails creates a new PanelError with details
func NewWithDetails(code ErrorCode, message, details string) *PanelError {
	return &PanelError{Code: code, Message: message, Details: details}
}

// Wrap creates a new PanelError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *PanelError {
	return &PanelError{Code: code, Message: message, Cause: cause}
}

// GetCode extracts the error code from an error, if it's a PanelError
func GetCode(err error) ErrorCode {
	var pe *PanelError
	if As(err, &pe) {
		return pe.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// ValidationFailed reports a rejected user-supplied field
func ValidationFailed(field, value, reason string) *PanelError {
	return NewWithDetails(ErrValidationFailed, "Validation failed",
		fmt.Sprintf("Field: %s, Value: %s, Reason: %s", field, value, reason))
}

// ContainerInvalidID reports an ID that cannot be passed to docker safely
func ContainerInvalidID(id string) *PanelError {
	return NewWithDetails(ErrContainerInvalidID, "Invalid container ID", fmt.Sprintf("ID: %s", id))
}

// InvalidPort reports a malformed port publish spec
func InvalidPort(port interface{}, reason string) *PanelError {
	return NewWithDetails(ErrInvalidPort, "Invalid port",
		fmt.Sprintf("Port: %v, Reason: %s", port, reason))
}

// InvalidCompose reports a compose body that is not usable
func InvalidCompose(reason string, cause error) *PanelError {
	return &PanelError{Code: ErrInvalidCompose, Message: "Invalid compose file", Details: reason, Cause: cause}
}
