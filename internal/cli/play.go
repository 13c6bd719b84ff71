package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nine/internal/play"
	"github.com/mesh-intelligence/nine/internal/session"
	"github.com/mesh-intelligence/nine/pkg/ops"
)

// step is one submitted move and its outcome.
type step struct {
	Operation ops.ID         `json:"op"`
	Applied   bool           `json:"applied"`
	Reason    session.Reason `json:"reason,omitempty"`
	Value     int            `json:"value"`
	Moves     int            `json:"moves"`
}

type playJSON struct {
	PuzzleID   string       `json:"puzzle_id"`
	Page       int          `json:"page"`
	Cell       int          `json:"cell"`
	Start      int          `json:"start"`
	Operations []ops.ID     `json:"operations"`
	Steps      []step       `json:"steps"`
	Complete   bool         `json:"complete"`
	Result     *play.Result `json:"result,omitempty"`
}

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play <page> <cell> <op>...",
		Short: "Replay a list of moves against a puzzle",
		Long: `Play opens the puzzle at (page, cell), applies the operations in order and
records an attempt if the value reaches 9. Rejected moves are reported and
leave the value unchanged. Run "nine ops" for operation ids.

Example:
  nine play 0 0 add1 divideBy2 digitSum add9Once`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			page, err := parseIndex("page", args[0])
			if err != nil {
				return err
			}
			cell, err := parseIndex("cell", args[1])
			if err != nil {
				return err
			}
			moves := make([]ops.ID, 0, len(args)-2)
			for _, raw := range args[2:] {
				id := ops.ID(raw)
				if !id.Valid() {
					return userError(fmt.Errorf("unknown operation %q", raw))
				}
				moves = append(moves, id)
			}

			store, err := a.attachStore()
			if err != nil {
				return err
			}
			defer detach(store, &err)

			svc := a.newService(store)
			var steps []step
			sess, err := svc.Open(cmd.Context(), page, cell, func(e session.Event) {
				switch e.Kind {
				case session.MoveApplied:
					steps = append(steps, step{Operation: e.Operation, Applied: true, Value: e.Value, Moves: e.Moves})
				case session.MoveRejected:
					steps = append(steps, step{Operation: e.Operation, Reason: e.Reason, Value: e.Value, Moves: e.Moves})
				}
			})
			if err != nil {
				return classify(err)
			}
			defer svc.Release(sess)

			out := playJSON{
				PuzzleID:   sess.PuzzleID(),
				Page:       page,
				Cell:       cell,
				Start:      sess.Start(),
				Operations: sess.Playable(),
			}
			for _, id := range moves {
				sess.ApplyMove(id)
			}
			out.Steps = steps
			out.Complete = sess.IsComplete()
			if out.Complete {
				if out.Result, err = svc.Complete(sess); err != nil {
					return classify(err)
				}
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), out)
			}
			printPlay(cmd, out)
			return nil
		},
	}
}

func printPlay(cmd *cobra.Command, p playJSON) {
	w := cmd.OutOrStdout()
	labels := make([]string, len(p.Operations))
	for i, id := range p.Operations {
		labels[i] = id.Label()
	}
	fmt.Fprintf(w, "puzzle %d:%d  start %d  ops: %s\n", p.Page, p.Cell, p.Start, strings.Join(labels, "  "))
	for _, s := range p.Steps {
		if s.Applied {
			fmt.Fprintf(w, "  %-16s -> %d\n", s.Operation, s.Value)
		} else {
			fmt.Fprintf(w, "  %-16s rejected (%s)\n", s.Operation, s.Reason)
		}
	}
	if p.Result == nil {
		fmt.Fprintf(w, "not solved: value %d after %d moves\n", lastValue(p), lastMoves(p))
		return
	}
	fb := p.Result.Feedback
	fmt.Fprintf(w, "solved in %d moves: %s - %s (best %d, attempts %d)\n",
		p.Result.Attempt.MovesUsed, fb.Title(), fb.Subtitle(), p.Result.Best, p.Result.Attempts)
}

func lastValue(p playJSON) int {
	if len(p.Steps) == 0 {
		return p.Start
	}
	return p.Steps[len(p.Steps)-1].Value
}

func lastMoves(p playJSON) int {
	if len(p.Steps) == 0 {
		return 0
	}
	return p.Steps[len(p.Steps)-1].Moves
}
