package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/nine/pkg/types"
)

const puzzleColumns = "puzzle_id, created_at, page_index, cell_index, start_number, operations"

// PuzzleAt returns the puzzle stored at (page, cell).
func (b *Backend) PuzzleAt(page, cell int) (*types.Puzzle, error) {
	if err := types.ValidateCoordinate(page, cell); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	row := b.db.QueryRow(
		"SELECT "+puzzleColumns+" FROM puzzles WHERE page_index = ? AND cell_index = ?", page, cell)
	return scanPuzzle(row)
}

// PuzzleByID returns the puzzle with the given ID.
func (b *Backend) PuzzleByID(id string) (*types.Puzzle, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	row := b.db.QueryRow("SELECT "+puzzleColumns+" FROM puzzles WHERE puzzle_id = ?", id)
	return scanPuzzle(row)
}

// InsertPuzzle stores p and fills in its ID and creation time when unset.
func (b *Backend) InsertPuzzle(p *types.Puzzle) (string, error) {
	if p == nil {
		return "", types.ErrInvalidData
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrDetached
	}

	var exists int
	err := b.db.QueryRow(
		"SELECT 1 FROM puzzles WHERE page_index = ? AND cell_index = ?", p.PageIndex, p.CellIndex).Scan(&exists)
	switch {
	case err == nil:
		return "", types.ErrDuplicateCoordinate
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("checking coordinate: %w", err)
	}

	if p.PuzzleID == "" {
		p.PuzzleID = newUUID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.OperationRaw == nil {
		p.OperationRaw = []string{}
	}
	opsJSON, err := json.Marshal(p.OperationRaw)
	if err != nil {
		return "", fmt.Errorf("encoding operations: %w", err)
	}

	_, err = b.db.Exec(
		"INSERT INTO puzzles ("+puzzleColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		p.PuzzleID, formatTime(p.CreatedAt), p.PageIndex, p.CellIndex, p.StartNumber, string(opsJSON))
	if err != nil {
		return "", fmt.Errorf("inserting puzzle: %w", err)
	}

	if err := b.persist(puzzlesJSONL); err != nil {
		return "", fmt.Errorf("persisting puzzles: %w", err)
	}
	return p.PuzzleID, nil
}

// Puzzles returns the puzzles of page, or every puzzle when page < 0.
func (b *Backend) Puzzles(page int) ([]*types.Puzzle, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.queryPuzzles(page)
}

// queryPuzzles runs the page query. The caller must hold b.mu.
func (b *Backend) queryPuzzles(page int) ([]*types.Puzzle, error) {
	query := "SELECT " + puzzleColumns + " FROM puzzles"
	var args []any
	if page >= 0 {
		query += " WHERE page_index = ?"
		args = append(args, page)
	}
	query += " ORDER BY page_index, cell_index"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying puzzles: %w", err)
	}
	defer rows.Close()

	var puzzles []*types.Puzzle
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPuzzle(row rowScanner) (*types.Puzzle, error) {
	var (
		p         types.Puzzle
		createdAt string
		opsJSON   string
	)
	err := row.Scan(&p.PuzzleID, &createdAt, &p.PageIndex, &p.CellIndex, &p.StartNumber, &opsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning puzzle: %w", err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at for puzzle %s: %w", p.PuzzleID, err)
	}
	if err := json.Unmarshal([]byte(opsJSON), &p.OperationRaw); err != nil {
		return nil, fmt.Errorf("parsing operations for puzzle %s: %w", p.PuzzleID, err)
	}
	if p.OperationRaw == nil {
		p.OperationRaw = []string{}
	}
	return &p, nil
}
