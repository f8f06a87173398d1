package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/grovetools/dragdrop/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message tailored to the error's code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	var dragErr *errors.DragError
	stderrors.As(err, &dragErr)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "❌ Configuration not found at %v. Create a dnd.yml or pass --config.\n", detail(dragErr, "path"))

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Out, "❌ Invalid configuration: %v\n", err)
		fmt.Fprintf(h.Out, "Run 'dndctl schema config' to see the accepted keys.\n")

	case errors.ErrCodeScenarioInvalid:
		fmt.Fprintf(h.Out, "❌ Invalid scenario %v: %v\n", detail(dragErr, "path"), err)
		fmt.Fprintf(h.Out, "Run 'dndctl schema scenario' to see the accepted keys.\n")

	case errors.ErrCodeStepFailed:
		fmt.Fprintf(h.Out, "❌ Step %v (%v) did not go as expected: %v\n",
			detail(dragErr, "step"), detail(dragErr, "action"), dragErr.Cause)

	case errors.ErrCodeBackendAlreadyActive:
		fmt.Fprintf(h.Out, "❌ Another %v backend is already running in this process.\n", detail(dragErr, "modality"))

	case errors.ErrCodeServerRunning:
		fmt.Fprintf(h.Out, "❌ dndctl serve is already running (PID %v, pid file %v).\n",
			detail(dragErr, "pid"), detail(dragErr, "path"))

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && dragErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", dragErr.ToJSON())
	}
	return err
}

func detail(err *errors.DragError, key string) interface{} {
	if err == nil || err.Details == nil {
		return "?"
	}
	if v, ok := err.Details[key]; ok {
		return v
	}
	return "?"
}
