package types

import "errors"

// Store is the storage collaborator for puzzles and attempts. Records are
// insert-only: there is no update or delete.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent. After Detach, every
	// other method returns ErrDetached.
	Detach() error

	// PuzzleAt returns the puzzle at (page, cell), or ErrNotFound.
	PuzzleAt(page, cell int) (*Puzzle, error)

	// PuzzleByID returns the puzzle with the given ID, or ErrNotFound.
	PuzzleByID(id string) (*Puzzle, error)

	// InsertPuzzle stores a new puzzle. An empty PuzzleID is replaced by a
	// UUID v7 and a zero CreatedAt by the current time. Returns
	// ErrDuplicateCoordinate if the (page, cell) slot is already taken.
	InsertPuzzle(p *Puzzle) (string, error)

	// InsertAttempt stores a completed attempt. Returns ErrNotFound if the
	// referenced puzzle does not exist.
	InsertAttempt(a *Attempt) (string, error)

	// Puzzles returns the puzzles of page ordered by cell index. A negative
	// page returns every puzzle ordered by page, then cell.
	Puzzles(page int) ([]*Puzzle, error)

	// Attempts returns the attempts for puzzleID ordered by completion time.
	// An empty puzzleID returns every attempt.
	Attempts(puzzleID string) ([]*Attempt, error)
}

// Store lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Record errors.
var (
	ErrNotFound            = errors.New("entity not found")
	ErrInvalidID           = errors.New("invalid entity ID")
	ErrInvalidData         = errors.New("invalid entity data")
	ErrDuplicateCoordinate = errors.New("puzzle already exists at coordinate")
	ErrInvalidCoordinate   = errors.New("invalid page or cell index")
	ErrInvalidMoves        = errors.New("moves used must be positive")
)
