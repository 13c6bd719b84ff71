// Package sqlite implements the SQLite storage backend. SQLite is the query
// engine; JSONL files in the data directory are the source of truth and are
// loaded into a fresh database on every Attach.
package sqlite

// Schema DDL for all tables.
const (
	createPuzzles = `CREATE TABLE puzzles (
    puzzle_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    page_index INTEGER NOT NULL,
    cell_index INTEGER NOT NULL,
    start_number INTEGER NOT NULL,
    operations TEXT NOT NULL
);`

	createAttempts = `CREATE TABLE attempts (
    attempt_id TEXT PRIMARY KEY,
    puzzle_id TEXT NOT NULL,
    moves_used INTEGER NOT NULL,
    completed_at TEXT NOT NULL,
    FOREIGN KEY (puzzle_id) REFERENCES puzzles(puzzle_id)
);`
)

// Index DDL. The coordinate index makes page seeding idempotent.
const (
	idxPuzzlesCoordinate = `CREATE UNIQUE INDEX idx_puzzles_coordinate ON puzzles(page_index, cell_index);`
	idxAttemptsPuzzle    = `CREATE INDEX idx_attempts_puzzle ON attempts(puzzle_id, completed_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createPuzzles,
	createAttempts,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPuzzlesCoordinate,
	idxAttemptsPuzzle,
}
