package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/dragdrop/cli"
	"github.com/grovetools/dragdrop/config"
	"github.com/grovetools/dragdrop/internal/dustbin"
	"github.com/grovetools/dragdrop/pkg/backend/pointer"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/tui/keymap"
	"github.com/grovetools/dragdrop/tui/theme"
)

// NewDemoCmd runs the dustbin board in the terminal.
func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Drag items into bins with the mouse",
		Long: `Opens a full-screen board of bins and items driven by the pointer
backend. Press on an item, move, and release over a bin that accepts it.
The pointer section of dnd.yml is reloaded while the demo runs.`,
		Args: cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		log := cli.GetLogger(cmd, "demo")
		cfg, path, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		opts, err := pointer.OptionsFromConfig(cfg.Pointer)
		if err != nil {
			return err
		}
		overrides, err := keymap.Load(cfg)
		if err != nil {
			return err
		}

		manager := dnd.NewManager(pointer.New(opts), dnd.WithLogger(log))
		defer manager.Teardown()
		board, err := dustbin.New(manager)
		if err != nil {
			return err
		}
		defer board.Close()
		backend, _ := pointer.From(manager)

		model := newDemoModel(board, backend, overrides, log)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

		if path != "" {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			watcher, err := config.NewWatcher(path, 0, func(cfg *config.Config, err error) {
				program.Send(configReloadedMsg{cfg: cfg, err: err})
			}, log)
			if err != nil {
				log.WithError(err).Warn("Config hot reload disabled")
			} else {
				defer watcher.Close()
				go watcher.Start(ctx)
			}
		}

		_, err = program.Run()
		return err
	}
	return cmd
}

type configReloadedMsg struct {
	cfg *config.Config
	err error
}

type demoModel struct {
	board     *dustbin.Board
	backend   *pointer.Backend
	overrides keymap.Overrides
	keys      keymap.Demo
	help      help.Model
	theme     *theme.Theme
	notice    string
	log       *logrus.Entry
}

func newDemoModel(board *dustbin.Board, backend *pointer.Backend, overrides keymap.Overrides, log *logrus.Entry) *demoModel {
	m := &demoModel{
		board:     board,
		backend:   backend,
		overrides: overrides,
		help:      help.New(),
		theme:     theme.DefaultTheme,
		log:       log,
	}
	m.rebuildKeys()
	return m
}

// rebuildKeys follows the backend's cancel binding, which changes on
// config reload.
func (m *demoModel) rebuildKeys() {
	m.keys = keymap.NewDemo(m.backend.CancelKey())
	applied := keymap.ApplyOverrides(&m.keys, m.overrides)
	if len(applied) == len(m.overrides) {
		return
	}
	known := make(map[string]bool, len(applied))
	for _, name := range applied {
		known[name] = true
	}
	for name := range m.overrides {
		if !known[name] && len(m.overrides[name]) > 0 {
			m.log.WithFields(logrus.Fields{
				"binding": name,
				"valid":   keymap.Names(m.keys),
			}).Warn("Ignoring unknown keybinding override")
		}
	}
}

func (m *demoModel) Init() tea.Cmd {
	return nil
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.board.Layout(msg.Width)
		return m, nil

	case configReloadedMsg:
		m.applyConfig(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			if !m.board.Dragging() {
				m.board.Reset()
				m.notice = "Bins emptied."
			}
			return m, nil
		}
	}

	return m, m.backend.Update(msg)
}

func (m *demoModel) applyConfig(msg configReloadedMsg) {
	if msg.err != nil {
		m.notice = m.theme.Error.Render(fmt.Sprintf("Config reload failed: %v", msg.err))
		return
	}
	opts, err := pointer.OptionsFromConfig(msg.cfg.Pointer)
	if err != nil {
		m.notice = m.theme.Error.Render(err.Error())
		return
	}
	overrides, err := keymap.Load(msg.cfg)
	if err != nil {
		m.notice = m.theme.Error.Render(err.Error())
		return
	}
	m.backend.SetOptions(opts)
	m.overrides = overrides
	m.rebuildKeys()
	m.notice = "Config reloaded."
	m.log.WithFields(logrus.Fields{
		"delay": opts.Delay,
		"slop":  opts.TouchSlop,
	}).Debug("Pointer options updated")
}

func (m *demoModel) View() string {
	header := m.theme.Header.Render("dustbin") + "  " + m.theme.Muted.Render(m.board.Status())
	// The board is laid out from row dustbin.Top, so exactly one line
	// separates it from the header.
	view := header + "\n\n" + m.board.View(m.theme) + "\n\n"
	if m.notice != "" {
		view += m.notice + "\n"
	}
	return view + m.help.View(m.keys)
}
