package sqlite

import "time"

// JSONL file names in the data directory.
const (
	puzzlesJSONL  = "puzzles.jsonl"
	attemptsJSONL = "attempts.jsonl"
)

// jsonlFiles lists every JSONL file the backend owns, in load order.
var jsonlFiles = []string{puzzlesJSONL, attemptsJSONL}

// timeLayout is a fixed-width UTC layout so that stored timestamps sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// puzzleJSON represents a puzzle in puzzles.jsonl.
type puzzleJSON struct {
	PuzzleID    string   `json:"puzzle_id"`
	CreatedAt   string   `json:"created_at"`
	PageIndex   int      `json:"page_index"`
	CellIndex   int      `json:"cell_index"`
	StartNumber int      `json:"start_number"`
	Operations  []string `json:"operations"`
}

// attemptJSON represents an attempt in attempts.jsonl.
type attemptJSON struct {
	AttemptID   string `json:"attempt_id"`
	PuzzleID    string `json:"puzzle_id"`
	MovesUsed   int    `json:"moves_used"`
	CompletedAt string `json:"completed_at"`
}
