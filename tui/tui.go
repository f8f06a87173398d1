// Package tui holds terminal setup shared by the dndctl demo and CLI output.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI forces a true-colour lipgloss profile when CLICOLOR_FORCE=1
// or COLORTERM=truecolor is set, so colours survive piping into files and
// recorded terminal sessions. Without those variables it does nothing.
// NO_COLOR=1 always wins and selects the ASCII profile.
func InitializeTUI() {
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
