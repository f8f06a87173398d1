package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/dragdrop/cli"
	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/profiling"
	"github.com/grovetools/dragdrop/pkg/scenario"
	"github.com/grovetools/dragdrop/tui/theme"
)

// NewReplayCmd runs scenario files against the simulation backend.
func NewReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Replay a scenario file and print what every step did",
		Long: `Replays a YAML or TOML scenario on a fresh manager backed by the
simulation backend. Each step prints the handler calls it caused and the
resulting drag state. The command fails at the first step whose outcome
differs from its expect_error.

Examples:
  dndctl replay examples/scenarios/nested-bins.yml
  dndctl replay --format yaml examples/scenarios/deferred-publish.toml`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().String("format", "text", "Output format: text, json, yaml")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if cli.GetOptions(cmd).JSONOutput {
			format = "json"
		}

		load := profiling.Start("load " + args[0])
		s, err := scenario.Load(args[0])
		load.Stop()
		if err != nil {
			return err
		}

		log := cli.GetLogger(cmd, "replay")
		replay := profiling.Start("replay")
		result, runErr := scenario.Run(s, log)
		replay.Stop()
		if result != nil {
			if err := writeResult(cmd.OutOrStdout(), format, result); err != nil {
				return err
			}
		}
		return runErr
	}
	return cmd
}

func writeResult(w io.Writer, format string, result *scenario.Result) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		renderResult(w, theme.DefaultTheme, result)
	default:
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown format '%s', want text, json or yaml", format))
	}
	return nil
}

func renderResult(w io.Writer, t *theme.Theme, result *scenario.Result) {
	if result.Name != "" {
		fmt.Fprintln(w, t.Title.Render(result.Name))
	}
	index := lipgloss.NewStyle().Width(4).Align(lipgloss.Right).Foreground(t.Colors.MutedText)
	action := lipgloss.NewStyle().Width(14).Bold(true)

	for _, step := range result.Steps {
		outcome := t.Success.Render("ok")
		if step.Error != "" {
			outcome = t.Warning.Render(string(step.Error))
		}
		fmt.Fprintf(w, "%s  %s %s\n", index.Render(fmt.Sprintf("%d", step.Index)), action.Render(string(step.Action)), outcome)
		if len(step.Calls) > 0 {
			fmt.Fprintf(w, "%s  %s\n", index.Render(""), t.Muted.Render("calls: "+strings.Join(step.Calls, " ")))
		}
		fmt.Fprintf(w, "%s  %s\n", index.Render(""), describeStep(step))
	}

	summary := t.Success.Render("passed")
	if !result.Passed {
		summary = t.Error.Render("failed")
	}
	fmt.Fprintf(w, "\n%d steps, %d notifications, %s\n", len(result.Steps), result.Notifications, summary)
}

func describeStep(step scenario.StepResult) string {
	snap := step.Snapshot
	if !snap.Dragging {
		return "idle"
	}
	parts := []string{fmt.Sprintf("dragging %s (%s)", step.Source, snap.ItemType)}
	if !snap.SourcePublic {
		parts = append(parts, "unpublished")
	}
	if len(step.Targets) > 0 {
		parts = append(parts, "over "+strings.Join(step.Targets, " > "))
	}
	if snap.DidDrop {
		parts = append(parts, fmt.Sprintf("dropped: %v", snap.DropResult))
	}
	if snap.ClientOffset != nil {
		parts = append(parts, fmt.Sprintf("at %g,%g", snap.ClientOffset.X, snap.ClientOffset.Y))
	}
	return strings.Join(parts, ", ")
}
