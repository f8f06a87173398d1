// Package cmd holds the dndctl subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/dragdrop/cli"
	"github.com/grovetools/dragdrop/pkg/profiling"
	"github.com/grovetools/dragdrop/version"
)

// NewRootCmd assembles dndctl.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"dndctl",
		"Drive, replay and inspect drag and drop interactions",
	)
	root.Long = `dndctl exercises the dragdrop engine from the terminal.

Examples:
  # Replay a scripted interaction and print each step
  dndctl replay examples/scenarios/nested-bins.yml

  # Drag items into bins with the mouse
  dndctl demo

  # Accept pointer events over a websocket and watch the result
  dndctl serve
  dndctl watch ws://127.0.0.1:7878/pointer`

	cli.SetVersionTemplate(root, version.GetInfo())
	profiling.NewCobraProfiler().Attach(root)

	root.AddCommand(cli.NewVersionCommand("dndctl"))
	root.AddCommand(NewSchemaCmd())
	root.AddCommand(NewReplayCmd())
	root.AddCommand(NewDemoCmd())
	root.AddCommand(NewServeCmd())
	root.AddCommand(NewWatchCmd())

	cli.ApplyStyledHelpRecursive(root)
	return root
}
