package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nine/pkg/nine"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nine version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"version": nine.Version,
					"module":  nine.ModulePath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "nine v%s\nmodule: %s\n", nine.Version, nine.ModulePath)
			return nil
		},
	}
}
