package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize stored puzzles and attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			store, err := a.attachStore()
			if err != nil {
				return err
			}
			defer detach(store, &err)

			sum, err := a.newService(store).Summary()
			if err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pages:    %d\n", sum.Pages)
			fmt.Fprintf(w, "puzzles:  %d\n", sum.Puzzles)
			fmt.Fprintf(w, "solved:   %d\n", sum.Solved)
			fmt.Fprintf(w, "attempts: %d\n", sum.Attempts)
			return nil
		},
	}
}
