package pointer

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/dragdrop/config"
	"github.com/grovetools/dragdrop/errors"
)

// Options tunes how presses and motion turn into a drag.
type Options struct {
	// Delay is how long a press must be held before motion may start a drag.
	Delay time.Duration
	// TouchSlop is the distance in cells the pointer must travel from the
	// press before the drag begins.
	TouchSlop float64
	// EnableKeyboardEvents lets CancelKey end an active drag.
	EnableKeyboardEvents bool
	// EnableHoverOutsideTarget keeps a target hovered while it contains the
	// dragged source, even when the pointer is outside it.
	EnableHoverOutsideTarget bool
	// CancelOnSourceDisconnect ends the drag when the dragged source's node
	// is disconnected.
	CancelOnSourceDisconnect bool
	CancelKey                key.Binding
}

// DefaultOptions starts a drag on the first motion and cancels on esc.
func DefaultOptions() Options {
	return Options{
		EnableKeyboardEvents: true,
		CancelKey: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
	}
}

// OptionsFromConfig maps the pointer section of dnd.yml onto Options.
func OptionsFromConfig(cfg config.PointerConfig) (Options, error) {
	delay, err := cfg.Delay()
	if err != nil {
		return Options{}, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid pointer configuration")
	}

	opts := DefaultOptions()
	opts.Delay = delay
	opts.TouchSlop = cfg.TouchSlop
	opts.EnableKeyboardEvents = cfg.KeyboardEnabled()
	opts.EnableHoverOutsideTarget = cfg.EnableHoverOutsideTarget
	opts.CancelOnSourceDisconnect = cfg.CancelOnSourceDisconnect
	if len(cfg.CancelKeys) > 0 {
		opts.CancelKey = key.NewBinding(
			key.WithKeys(cfg.CancelKeys...),
			key.WithHelp(strings.Join(cfg.CancelKeys, "/"), "cancel drag"),
		)
	}
	return opts, nil
}
