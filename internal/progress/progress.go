// Package progress derives progression facts from the full puzzle and
// attempt history: which cells are unlocked, best scores, attempt counts and
// the classification of a finished attempt. Nothing here is cached beyond a
// single Index, and nothing is persisted.
package progress

import "github.com/mesh-intelligence/nine/pkg/types"

type coord struct{ page, cell int }

// Index answers progression queries over one snapshot of the history.
type Index struct {
	puzzles map[coord]*types.Puzzle
	best    map[string]int
	count   map[string]int
}

// NewIndex builds an Index from every known puzzle and attempt.
func NewIndex(puzzles []*types.Puzzle, attempts []*types.Attempt) *Index {
	ix := &Index{
		puzzles: make(map[coord]*types.Puzzle, len(puzzles)),
		best:    make(map[string]int),
		count:   make(map[string]int),
	}
	for _, p := range puzzles {
		ix.puzzles[coord{p.PageIndex, p.CellIndex}] = p
	}
	for _, a := range attempts {
		ix.count[a.PuzzleID]++
		if b, ok := ix.best[a.PuzzleID]; !ok || a.MovesUsed < b {
			ix.best[a.PuzzleID] = a.MovesUsed
		}
	}
	return ix
}

// Puzzle returns the puzzle at (page, cell), if any.
func (ix *Index) Puzzle(page, cell int) (*types.Puzzle, bool) {
	p, ok := ix.puzzles[coord{page, cell}]
	return p, ok
}

// IsUnlocked reports whether the cell is playable. Cell 0 of every page is
// always unlocked; cell i > 0 is unlocked iff the puzzle at cell i-1 of the
// same page exists and has at least one attempt. Pages are independent.
func (ix *Index) IsUnlocked(page, cell int) bool {
	if cell == 0 {
		return true
	}
	prev, ok := ix.puzzles[coord{page, cell - 1}]
	if !ok {
		return false
	}
	return ix.count[prev.PuzzleID] > 0
}

// IsSolved reports whether puzzleID has at least one attempt.
func (ix *Index) IsSolved(puzzleID string) bool {
	return ix.count[puzzleID] > 0
}

// Best returns the fewest moves recorded for puzzleID.
func (ix *Index) Best(puzzleID string) (int, bool) {
	b, ok := ix.best[puzzleID]
	return b, ok
}

// AttemptCount returns the number of attempts recorded for puzzleID.
func (ix *Index) AttemptCount(puzzleID string) int {
	return ix.count[puzzleID]
}

// Cell summarizes one slot of a page.
type Cell struct {
	Cell     int    `json:"cell"`
	PuzzleID string `json:"puzzle_id,omitempty"`
	Start    int    `json:"start,omitempty"`
	Unlocked bool   `json:"unlocked"`
	Solved   bool   `json:"solved"`
	Best     int    `json:"best,omitempty"`
	Attempts int    `json:"attempts"`
}

// Page returns the summary of every cell of page in cell order.
func (ix *Index) Page(page int) []Cell {
	cells := make([]Cell, types.PageSize)
	for i := range cells {
		c := Cell{Cell: i, Unlocked: ix.IsUnlocked(page, i)}
		if p, ok := ix.Puzzle(page, i); ok {
			c.PuzzleID = p.PuzzleID
			c.Start = p.StartNumber
			c.Solved = ix.IsSolved(p.PuzzleID)
			c.Best, _ = ix.Best(p.PuzzleID)
			c.Attempts = ix.AttemptCount(p.PuzzleID)
		}
		cells[i] = c
	}
	return cells
}

// IsUnlocked evaluates the unlock policy for p without building an Index
// over unrelated pages.
func IsUnlocked(p *types.Puzzle, puzzles []*types.Puzzle, attempts []*types.Attempt) bool {
	if p.CellIndex == 0 {
		return true
	}
	var prevID string
	found := false
	for _, q := range puzzles {
		if q.PageIndex == p.PageIndex && q.CellIndex == p.CellIndex-1 {
			prevID, found = q.PuzzleID, true
			break
		}
	}
	if !found {
		return false
	}
	for _, a := range attempts {
		if a.PuzzleID == prevID {
			return true
		}
	}
	return false
}
