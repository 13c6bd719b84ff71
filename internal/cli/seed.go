package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var pageCount int
	cmd := &cobra.Command{
		Use:   "seed [page...]",
		Short: "Generate puzzles for whole pages",
		Long: `Seed fills every empty cell of the given pages with a new puzzle.
Existing puzzles are never replaced, so seeding is idempotent.

Without page arguments, pages 0 through --pages-1 are seeded.

Example:
  nine seed
  nine seed --pages 3
  nine seed 4 7`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var pages []int
			if len(args) > 0 {
				if cmd.Flags().Changed("pages") {
					return userError(errors.New("--pages cannot be combined with page arguments"))
				}
				for _, arg := range args {
					page, err := parseIndex("page", arg)
					if err != nil {
						return err
					}
					pages = append(pages, page)
				}
			} else {
				if pageCount < 1 {
					return userError(errors.New("--pages must be at least 1"))
				}
				for page := 0; page < pageCount; page++ {
					pages = append(pages, page)
				}
			}

			store, err := a.attachStore()
			if err != nil {
				return err
			}
			defer detach(store, &err)

			results, err := a.newFactory(store).SeedPages(cmd.Context(), pages)
			if err != nil {
				return classify(err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "page %d: %d created, %d skipped\n", r.Page, r.Created, r.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pageCount, "pages", 1, "number of pages to seed, starting at page 0")
	return cmd
}
