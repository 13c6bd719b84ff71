package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nine/internal/progress"
)

func newPageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "page <page>",
		Short: "Show the cells of a page",
		Long:  "Show every cell of a page with its lock status, start number, best score and attempt count.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			page, err := parseIndex("page", args[0])
			if err != nil {
				return err
			}

			store, err := a.attachStore()
			if err != nil {
				return err
			}
			defer detach(store, &err)

			cells, err := a.newService(store).Page(page)
			if err != nil {
				return classify(err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"page": page, "cells": cells})
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CELL\tSTATUS\tSTART\tBEST\tATTEMPTS")
			for _, c := range cells {
				start, best := "-", "-"
				if c.PuzzleID != "" {
					start = fmt.Sprint(c.Start)
				}
				if c.Solved {
					best = fmt.Sprint(c.Best)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", c.Cell, cellStatus(c), start, best, c.Attempts)
			}
			return tw.Flush()
		},
	}
}

func cellStatus(c progress.Cell) string {
	switch {
	case c.Solved:
		return "solved"
	case c.Unlocked:
		return "open"
	default:
		return "locked"
	}
}
