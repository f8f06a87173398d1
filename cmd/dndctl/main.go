package main

import (
	"os"

	"github.com/grovetools/dragdrop/cli"
	"github.com/grovetools/dragdrop/cmd"
	"github.com/grovetools/dragdrop/tui"
)

func main() {
	tui.InitializeTUI()

	rootCmd := cmd.NewRootCmd()
	executed, err := rootCmd.ExecuteC()
	if err != nil {
		verbose, _ := executed.Flags().GetBool("verbose")
		_ = cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
