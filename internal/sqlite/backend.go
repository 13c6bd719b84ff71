package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/nine/pkg/types"
)

// dbFileName is the SQLite file created in the data directory. It is
// rebuilt from the JSONL files on every Attach.
const dbFileName = "nine.db"

// Backend implements types.Store using SQLite as the query engine and JSONL
// files as the source of truth. It is safe for concurrent use.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB

	// dirty holds JSONL files whose rewrite is deferred until Detach
	// (SyncOnClose).
	dirty map[string]bool
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{dirty: make(map[string]bool)}
}

// Attach initializes the backend with the given configuration. It creates
// DataDir if needed, recreates the SQLite schema and loads the JSONL files.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	if err := ensureJSONLFiles(dataDir); err != nil {
		return err
	}

	// The database is a cache of the JSONL files; start fresh.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.dirty = make(map[string]bool)
	b.attached = true
	return nil
}

// Detach flushes deferred JSONL writes and closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.flushLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}
	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.attached = false
	return nil
}

// DataDir returns the directory holding the JSONL files.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dataDir
}

// newUUID generates a UUID v7 string, falling back to v4.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// persist rewrites file now or marks it for Detach, depending on the sync
// strategy. A failed immediate write leaves file dirty so a later write or
// Detach picks up the row already in the database. The caller must hold b.mu.
func (b *Backend) persist(file string) error {
	if b.config.SyncStrategy() == types.SyncOnClose {
		b.dirty[file] = true
		return nil
	}
	if err := b.writeFile(file); err != nil {
		b.dirty[file] = true
		return err
	}
	delete(b.dirty, file)
	return nil
}

// flushLocked rewrites every dirty file. The caller must hold b.mu.
func (b *Backend) flushLocked() error {
	for _, file := range jsonlFiles {
		if !b.dirty[file] {
			continue
		}
		if err := b.writeFile(file); err != nil {
			return fmt.Errorf("flush %s: %w", file, err)
		}
		delete(b.dirty, file)
	}
	return nil
}

func (b *Backend) writeFile(file string) error {
	path := filepath.Join(b.dataDir, file)
	switch file {
	case puzzlesJSONL:
		puzzles, err := b.queryPuzzles(-1)
		if err != nil {
			return err
		}
		records := make([]puzzleJSON, len(puzzles))
		for i, p := range puzzles {
			records[i] = puzzleJSON{
				PuzzleID:    p.PuzzleID,
				CreatedAt:   formatTime(p.CreatedAt),
				PageIndex:   p.PageIndex,
				CellIndex:   p.CellIndex,
				StartNumber: p.StartNumber,
				Operations:  p.OperationRaw,
			}
		}
		return writeJSONL(path, records)
	case attemptsJSONL:
		attempts, err := b.queryAttempts("")
		if err != nil {
			return err
		}
		records := make([]attemptJSON, len(attempts))
		for i, a := range attempts {
			records[i] = attemptJSON{
				AttemptID:   a.AttemptID,
				PuzzleID:    a.PuzzleID,
				MovesUsed:   a.MovesUsed,
				CompletedAt: formatTime(a.CompletedAt),
			}
		}
		return writeJSONL(path, records)
	default:
		return fmt.Errorf("unknown JSONL file %q", file)
	}
}
