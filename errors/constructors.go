package errors

import (
	"fmt"
)

// HandlerNotFound creates an error for an identifier that is not registered
// under the expected role.
func HandlerNotFound(id string, role string) *DragError {
	return New(ErrCodeHandlerNotFound, fmt.Sprintf("no %s registered with id '%s'", role, id)).
		WithDetail("id", id).
		WithDetail("role", role)
}

// InvalidHandlerKind creates an error for a handler that lacks the
// capabilities its role requires.
func InvalidHandlerKind(role string, handler interface{}) *DragError {
	return New(ErrCodeInvalidHandlerKind,
		fmt.Sprintf("handler of type %T cannot be registered as a %s", handler, role)).
		WithDetail("role", role).
		WithDetail("handlerType", fmt.Sprintf("%T", handler))
}

// InvalidItemType creates an error for an empty or malformed item type
func InvalidItemType(role string, reason string) *DragError {
	return New(ErrCodeInvalidItemType, fmt.Sprintf("invalid %s type: %s", role, reason)).
		WithDetail("role", role)
}

// TypeMismatch creates an error for a receive upgrade that changes the
// declared type of a registered handler.
func TypeMismatch(id string, registered, received interface{}) *DragError {
	return New(ErrCodeTypeMismatch,
		fmt.Sprintf("handler '%s' is registered with type %v, cannot receive type %v; unregister and register again", id, registered, received)).
		WithDetail("id", id).
		WithDetail("registered", fmt.Sprintf("%v", registered)).
		WithDetail("received", fmt.Sprintf("%v", received))
}

// AlreadyDragging creates an error for a re-entrant begin drag
func AlreadyDragging() *DragError {
	return New(ErrCodeAlreadyDragging, "cannot call beginDrag while dragging")
}

// NotDragging creates an error for an action that requires an active drag
func NotDragging(action string) *DragError {
	return New(ErrCodeNotDragging, fmt.Sprintf("cannot call %s while not dragging", action)).
		WithDetail("action", action)
}

// AlreadyDropped creates an error for hover or drop after a drop
func AlreadyDropped(action string) *DragError {
	return New(ErrCodeAlreadyDropped, fmt.Sprintf("cannot call %s after drop", action)).
		WithDetail("action", action)
}

// DuplicateTargetIDs creates an error for a hover with repeated target ids
func DuplicateTargetIDs(id string) *DragError {
	return New(ErrCodeDuplicateTargetIDs, "expected targetIds to be unique in the passed list").
		WithDetail("id", id)
}

// NoItemToDrag creates an error for a begin drag where no candidate source
// produced an item.
func NoItemToDrag(candidates []string) *DragError {
	return New(ErrCodeNoItemToDrag, fmt.Sprintf("none of %d candidate sources produced an item", len(candidates))).
		WithDetail("candidates", candidates)
}

// BackendAlreadyActive creates an error for a second concurrent setup of a
// backend modality.
func BackendAlreadyActive(modality string) *DragError {
	return New(ErrCodeBackendAlreadyActive,
		fmt.Sprintf("cannot have two %s backends at the same time", modality)).
		WithDetail("modality", modality)
}

// InvalidNode creates an error for a native handle the backend cannot use
func InvalidNode(backend string, node interface{}) *DragError {
	return New(ErrCodeInvalidNode, fmt.Sprintf("%s backend cannot connect a node of type %T", backend, node)).
		WithDetail("backend", backend).
		WithDetail("nodeType", fmt.Sprintf("%T", node))
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *DragError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *DragError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// StepFailed wraps an error raised while replaying a scenario step
func StepFailed(index int, action string, err error) *DragError {
	return Wrap(err, ErrCodeStepFailed, fmt.Sprintf("step %d (%s) failed", index, action)).
		WithDetail("step", index).
		WithDetail("action", action)
}

// ServerRunning reports a live pid file held by another dndctl serve
func ServerRunning(path string, pid int) *DragError {
	return New(ErrCodeServerRunning, fmt.Sprintf("server already running with PID %d", pid)).
		WithDetail("path", path).
		WithDetail("pid", pid)
}
