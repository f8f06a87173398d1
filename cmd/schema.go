package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/dragdrop/config"
	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/scenario"
)

// NewSchemaCmd prints the JSON Schema of dnd.yml or of scenario files.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [config|scenario]",
		Short:     "Print the JSON Schema for dnd.yml or scenario files",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"config", "scenario"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "config"
			if len(args) == 1 {
				kind = args[0]
			}

			var data []byte
			var err error
			switch kind {
			case "config":
				data, err = config.GenerateSchema()
			case "scenario":
				data, err = scenario.GenerateSchema()
			default:
				return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown schema '%s', want config or scenario", kind))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
