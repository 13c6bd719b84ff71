package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/nine/pkg/types"
)

const attemptColumns = "attempt_id, puzzle_id, moves_used, completed_at"

// InsertAttempt stores a completed attempt for an existing puzzle.
func (b *Backend) InsertAttempt(a *types.Attempt) (string, error) {
	if a == nil {
		return "", types.ErrInvalidData
	}
	if err := a.Validate(); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrDetached
	}

	var exists int
	err := b.db.QueryRow("SELECT 1 FROM puzzles WHERE puzzle_id = ?", a.PuzzleID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("checking puzzle: %w", err)
	}

	if a.AttemptID == "" {
		a.AttemptID = newUUID()
	}
	if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now().UTC()
	}

	_, err = b.db.Exec(
		"INSERT INTO attempts ("+attemptColumns+") VALUES (?, ?, ?, ?)",
		a.AttemptID, a.PuzzleID, a.MovesUsed, formatTime(a.CompletedAt))
	if err != nil {
		return "", fmt.Errorf("inserting attempt: %w", err)
	}

	if err := b.persist(attemptsJSONL); err != nil {
		return "", fmt.Errorf("persisting attempts: %w", err)
	}
	return a.AttemptID, nil
}

// Attempts returns the attempts for puzzleID, or all attempts when empty,
// ordered by completion time.
func (b *Backend) Attempts(puzzleID string) ([]*types.Attempt, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.queryAttempts(puzzleID)
}

func (b *Backend) queryAttempts(puzzleID string) ([]*types.Attempt, error) {
	query := "SELECT " + attemptColumns + " FROM attempts"
	var args []any
	if puzzleID != "" {
		query += " WHERE puzzle_id = ?"
		args = append(args, puzzleID)
	}
	query += " ORDER BY completed_at, rowid"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*types.Attempt
	for rows.Next() {
		var (
			a           types.Attempt
			completedAt string
		)
		if err := rows.Scan(&a.AttemptID, &a.PuzzleID, &a.MovesUsed, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}
		if a.CompletedAt, err = parseTime(completedAt); err != nil {
			return nil, fmt.Errorf("parsing completed_at for attempt %s: %w", a.AttemptID, err)
		}
		attempts = append(attempts, &a)
	}
	return attempts, rows.Err()
}
