package types

import "time"

// Attempt records one successful completion of a puzzle. A puzzle may have
// any number of attempts; they are never updated or deleted.
type Attempt struct {
	AttemptID   string    `json:"attempt_id"`
	PuzzleID    string    `json:"puzzle_id"`
	MovesUsed   int       `json:"moves_used"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewAttempt returns an unsaved attempt completed now.
func NewAttempt(puzzleID string, movesUsed int) *Attempt {
	return &Attempt{
		PuzzleID:    puzzleID,
		MovesUsed:   movesUsed,
		CompletedAt: time.Now().UTC(),
	}
}

// Validate checks the attempt's references and move count.
func (a *Attempt) Validate() error {
	if a.PuzzleID == "" {
		return ErrInvalidID
	}
	if a.MovesUsed <= 0 {
		return ErrInvalidMoves
	}
	return nil
}
