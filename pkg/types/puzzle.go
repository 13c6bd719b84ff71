package types

import (
	"time"

	"github.com/mesh-intelligence/nine/pkg/ops"
)

// PageSize is the number of puzzle cells on one page.
const PageSize = 50

// Puzzle is a generated challenge addressed by (PageIndex, CellIndex).
// Operation identifiers are persisted as raw strings.
type Puzzle struct {
	PuzzleID     string    `json:"puzzle_id"`
	CreatedAt    time.Time `json:"created_at"`
	PageIndex    int       `json:"page_index"`
	CellIndex    int       `json:"cell_index"`
	StartNumber  int       `json:"start_number"`
	OperationRaw []string  `json:"operations"`
}

// NewPuzzle returns an unsaved puzzle for the given coordinate.
func NewPuzzle(page, cell, start int, operations []ops.ID) *Puzzle {
	return &Puzzle{
		PageIndex:    page,
		CellIndex:    cell,
		StartNumber:  start,
		OperationRaw: ops.Encode(operations),
	}
}

// Operations decodes the persisted identifiers, dropping values that are no
// longer registered.
func (p *Puzzle) Operations() []ops.ID {
	return ops.Decode(p.OperationRaw)
}

// Validate checks the coordinate of the puzzle.
func (p *Puzzle) Validate() error {
	return ValidateCoordinate(p.PageIndex, p.CellIndex)
}

// ValidateCoordinate returns ErrInvalidCoordinate unless page >= 0 and
// 0 <= cell < PageSize.
func ValidateCoordinate(page, cell int) error {
	if page < 0 || cell < 0 || cell >= PageSize {
		return ErrInvalidCoordinate
	}
	return nil
}
