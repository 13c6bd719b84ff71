package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL files to their SQLite tables and columns.
// Puzzles load before attempts, which reference them.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{puzzlesJSONL, "puzzles", []string{"puzzle_id", "created_at", "page_index", "cell_index", "start_number", "operations"}},
	{attemptsJSONL, "attempts", []string{"attempt_id", "puzzle_id", "moves_used", "completed_at"}},
}

// loadAllJSONL reads each JSONL file from dataDir into its table inside one
// transaction. Malformed lines, records missing required columns and records
// that violate a constraint (such as a second puzzle at the same coordinate)
// are skipped. Unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into table. Only the listed
// columns are extracted; array values are re-serialized as JSON text.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			switch v := obj[col].(type) {
			case []any, map[string]any:
				b, err := json.Marshal(v)
				if err != nil {
					continue
				}
				args[i] = string(b)
			default:
				args[i] = v
			}
		}
		// NOT NULL and UNIQUE violations drop the record.
		_, _ = stmt.Exec(args...)
	}
	return nil
}
