package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jsonl")
	content := "{\"a\":1}\n\nnot json\n{\"a\":2}\n{\"a\":\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"a":1}`, string(records[0]))
	assert.JSONEq(t, `{"a":2}`, string(records[1]))
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, err := readJSONL(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestWriteJSONLReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, attemptsJSONL)
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	records := []attemptJSON{
		{AttemptID: "a1", PuzzleID: "p1", MovesUsed: 5, CompletedAt: "2026-01-01T00:00:00.000000000Z"},
		{AttemptID: "a2", PuzzleID: "p1", MovesUsed: 4, CompletedAt: "2026-01-01T00:00:01.000000000Z"},
	}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		`{"attempt_id":"a1","puzzle_id":"p1","moves_used":5,"completed_at":"2026-01-01T00:00:00.000000000Z"}`+"\n"+
			`{"attempt_id":"a2","puzzle_id":"p1","moves_used":4,"completed_at":"2026-01-01T00:00:01.000000000Z"}`+"\n",
		string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestFormatTimeSortsLexically(t *testing.T) {
	earlier, err := parseTime("2026-03-01T10:00:00.5Z")
	require.NoError(t, err)
	later, err := parseTime("2026-03-01T10:00:01Z")
	require.NoError(t, err)
	assert.Less(t, formatTime(earlier), formatTime(later))
}
