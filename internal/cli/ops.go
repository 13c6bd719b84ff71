package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nine/pkg/ops"
)

type opJSON struct {
	ID    ops.ID   `json:"id"`
	Label string   `json:"label"`
	Kind  ops.Kind `json:"kind"`
	Fixed bool     `json:"fixed"`
}

func newOpsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the registered operations",
		Long:  "List every operation in registry order. Fixed operations are playable in every puzzle.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixed := make(map[ops.ID]bool)
			for _, id := range ops.Fixed {
				fixed[id] = true
			}
			all := ops.All()
			rows := make([]opJSON, len(all))
			for i, op := range all {
				rows[i] = opJSON{ID: op.ID, Label: op.Label, Kind: op.Kind, Fixed: fixed[op.ID]}
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tKIND\tFIXED")
			for _, r := range rows {
				mark := ""
				if r.Fixed {
					mark = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Label, r.Kind, mark)
			}
			return tw.Flush()
		},
	}
}
