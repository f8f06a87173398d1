package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/dragdrop/config"
)

// SectionName is the dnd.yml extension holding keybinding overrides.
const SectionName = "keybindings"

// Overrides maps snake_case binding names to replacement keys, e.g.
//
//	keybindings:
//	  quit: [Q, ctrl+c]
//	  reset: [ctrl+r]
type Overrides map[string][]string

// Base contains the bindings shared by dragdrop TUIs.
type Base struct {
	Quit key.Binding
	Help key.Binding
}

// NewBase returns the default bindings.
func NewBase() Base {
	return Base{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Demo is the keymap of the dustbin demo. Cancel is owned by the pointer
// backend (pointer.cancel_keys) and only listed here so help shows it.
type Demo struct {
	Base
	Cancel key.Binding `keymap:"-"`
	Reset  key.Binding
}

// NewDemo builds the demo keymap around the backend's cancel binding.
func NewDemo(cancel key.Binding) Demo {
	return Demo{
		Base:   NewBase(),
		Cancel: cancel,
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset bins"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k Demo) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Demo) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Cancel, k.Reset},
		{k.Help, k.Quit},
	}
}

// Load reads the keybindings section of cfg. A nil config or a missing
// section yields no overrides.
func Load(cfg *config.Config) (Overrides, error) {
	if cfg == nil {
		return nil, nil
	}
	var overrides Overrides
	if err := cfg.UnmarshalExtension(SectionName, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}
