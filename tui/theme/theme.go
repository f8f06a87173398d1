package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultThemeName = "kanagawa"

// Colors is one palette.
type Colors struct {
	Green, Yellow, Red, Orange, Cyan, Blue, Violet, Pink lipgloss.TerminalColor
	LightText, MutedText, DarkText                       lipgloss.TerminalColor
	Border, SelectedBackground, SubtleBackground         lipgloss.TerminalColor
}

var palettes = map[string]Colors{
	"kanagawa": {
		Green:              lipgloss.Color("#98BB6C"),
		Yellow:             lipgloss.Color("#FF9E3B"),
		Red:                lipgloss.Color("#FF5D62"),
		Orange:             lipgloss.Color("#FFA066"),
		Cyan:               lipgloss.Color("#7E9CD8"),
		Blue:               lipgloss.Color("#7FB4CA"),
		Violet:             lipgloss.Color("#957FB8"),
		Pink:               lipgloss.Color("#D27E99"),
		LightText:          lipgloss.Color("#DCD7BA"),
		MutedText:          lipgloss.Color("#727169"),
		DarkText:           lipgloss.Color("#1D1C19"),
		Border:             lipgloss.Color("#363646"),
		SelectedBackground: lipgloss.Color("#223249"),
		SubtleBackground:   lipgloss.Color("#1F1F28"),
	},
	"gruvbox": {
		Green:              lipgloss.Color("#B8BB26"),
		Yellow:             lipgloss.Color("#FABD2F"),
		Red:                lipgloss.Color("#FB4934"),
		Orange:             lipgloss.Color("#FE8019"),
		Cyan:               lipgloss.Color("#83A598"),
		Blue:               lipgloss.Color("#458588"),
		Violet:             lipgloss.Color("#B16286"),
		Pink:               lipgloss.Color("#D3869B"),
		LightText:          lipgloss.Color("#EBDBB2"),
		MutedText:          lipgloss.Color("#BDAE93"),
		DarkText:           lipgloss.Color("#1D2021"),
		Border:             lipgloss.Color("#504945"),
		SelectedBackground: lipgloss.Color("#32302F"),
		SubtleBackground:   lipgloss.Color("#282828"),
	},
}

// Theme holds the styles shared by dragdrop TUIs and CLI output.
type Theme struct {
	Colors Colors

	Header    lipgloss.Style
	Title     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Muted     lipgloss.Style
	Italic    lipgloss.Style
	Accent    lipgloss.Style
	Highlight lipgloss.Style

	// Drag and drop surfaces
	Source         lipgloss.Style
	SourceDragging lipgloss.Style
	Target         lipgloss.Style
	TargetActive   lipgloss.Style
	TargetOver     lipgloss.Style
}

// DefaultTheme is selected from DND_THEME at startup.
var DefaultTheme = NewTheme(os.Getenv("DND_THEME"))

// NewTheme builds a theme for the named palette, falling back to kanagawa.
func NewTheme(name string) *Theme {
	colors, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		colors = palettes[defaultThemeName]
	}

	return &Theme{
		Colors: colors,

		Header: lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginBottom(1),

		Success: lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(colors.Cyan).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Faint(true),

		Italic: lipgloss.NewStyle().
			Italic(true),

		Accent: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Source: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Foreground(colors.LightText).
			Padding(0, 1),

		SourceDragging: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.MutedText).
			Foreground(colors.MutedText).
			Faint(true).
			Padding(0, 1),

		Target: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colors.Border).
			Foreground(colors.LightText).
			Align(lipgloss.Center, lipgloss.Center),

		TargetActive: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colors.Cyan).
			Foreground(colors.Cyan).
			Align(lipgloss.Center, lipgloss.Center),

		TargetOver: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colors.Green).
			Foreground(colors.Green).
			Bold(true).
			Align(lipgloss.Center, lipgloss.Center),
	}
}
