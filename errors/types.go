package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Registry errors
	ErrCodeHandlerNotFound    ErrorCode = "HANDLER_NOT_FOUND"
	ErrCodeInvalidHandlerKind ErrorCode = "INVALID_HANDLER_KIND"
	ErrCodeInvalidItemType    ErrorCode = "INVALID_ITEM_TYPE"
	ErrCodeTypeMismatch       ErrorCode = "TYPE_MISMATCH"

	// Action preconditions
	ErrCodeAlreadyDragging    ErrorCode = "ALREADY_DRAGGING"
	ErrCodeNotDragging        ErrorCode = "NOT_DRAGGING"
	ErrCodeAlreadyDropped     ErrorCode = "ALREADY_DROPPED"
	ErrCodeDuplicateTargetIDs ErrorCode = "DUPLICATE_TARGET_IDS"
	ErrCodeNoItemToDrag       ErrorCode = "NO_ITEM_TO_DRAG"

	// Backend errors
	ErrCodeBackendAlreadyActive ErrorCode = "BACKEND_ALREADY_ACTIVE"
	ErrCodeInvalidNode          ErrorCode = "INVALID_NODE"

	// Remote endpoint errors
	ErrCodeServerRunning ErrorCode = "SERVER_RUNNING"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Scenario errors
	ErrCodeScenarioInvalid ErrorCode = "SCENARIO_INVALID"
	ErrCodeStepFailed      ErrorCode = "STEP_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// DragError represents a structured error with context
type DragError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *DragError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DragError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *DragError) WithDetail(key string, value interface{}) *DragError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *DragError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new DragError
func New(code ErrorCode, message string) *DragError {
	return &DragError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a DragError
func Wrap(err error, code ErrorCode, message string) *DragError {
	return &DragError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific DragError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	dragErr, ok := err.(*DragError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return dragErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	dragErr, ok := err.(*DragError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return dragErr.Code
}
