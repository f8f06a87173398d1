package errors

import (
	"fmt"
	"testing"
)

func TestDragError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeHandlerNotFound, "handler not found")
	if err.Code != ErrCodeHandlerNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeHandlerNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeStepFailed, "step failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeStepFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeHandlerNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("id", "S1").WithDetail("count", 2)
	if detailed.Details["id"] != "S1" {
		t.Error("WithDetail should add details")
	}
}

func TestIsUnwrapsForeignErrors(t *testing.T) {
	inner := NotDragging("hover")
	outer := fmt.Errorf("dispatch: %w", inner)

	if !Is(outer, ErrCodeNotDragging) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeNotDragging {
		t.Errorf("expected code %s, got %s", ErrCodeNotDragging, GetCode(outer))
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("GetCode should be empty for plain errors")
	}
}

func TestStepFailedKeepsCauseCode(t *testing.T) {
	err := StepFailed(3, "hover", AlreadyDropped("hover"))
	if err.Code != ErrCodeStepFailed {
		t.Errorf("expected code %s, got %s", ErrCodeStepFailed, err.Code)
	}
	if GetCode(err.Cause) != ErrCodeAlreadyDropped {
		t.Errorf("expected cause code %s, got %s", ErrCodeAlreadyDropped, GetCode(err.Cause))
	}
}

func TestErrorConstructors(t *testing.T) {
	err := HandlerNotFound("T4", "target")
	if err.Code != ErrCodeHandlerNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeHandlerNotFound, err.Code)
	}
	if err.Details["id"] != "T4" {
		t.Error("HandlerNotFound should include id detail")
	}

	err = BackendAlreadyActive("pointer")
	if err.Code != ErrCodeBackendAlreadyActive {
		t.Errorf("expected code %s, got %s", ErrCodeBackendAlreadyActive, err.Code)
	}
	if err.Details["modality"] != "pointer" {
		t.Error("BackendAlreadyActive should include modality detail")
	}

	err = InvalidHandlerKind("source", 42)
	if err.Details["handlerType"] != "int" {
		t.Errorf("expected handlerType int, got %v", err.Details["handlerType"])
	}
}
