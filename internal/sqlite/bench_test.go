// Store performance benchmarks.
package sqlite

import (
	"testing"

	"github.com/mesh-intelligence/nine/pkg/types"
)

func newBenchBackend(b *testing.B, sync string) *Backend {
	b.Helper()
	backend := NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: b.TempDir(), Sync: sync}
	if err := backend.Attach(cfg); err != nil {
		b.Fatalf("failed to attach backend: %v", err)
	}
	b.Cleanup(func() { backend.Detach() })
	return backend
}

func benchmarkInsertPuzzle(b *testing.B, sync string) {
	backend := newBenchBackend(b, sync)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		page, cell := i/types.PageSize, i%types.PageSize
		if _, err := backend.InsertPuzzle(samplePuzzle(page, cell)); err != nil {
			b.Fatalf("InsertPuzzle failed: %v", err)
		}
	}
}

func BenchmarkInsertPuzzleImmediate(b *testing.B) { benchmarkInsertPuzzle(b, types.SyncImmediate) }
func BenchmarkInsertPuzzleOnClose(b *testing.B)   { benchmarkInsertPuzzle(b, types.SyncOnClose) }

func BenchmarkPuzzles(b *testing.B) {
	backend := newBenchBackend(b, types.SyncOnClose)
	for cell := 0; cell < types.PageSize; cell++ {
		if _, err := backend.InsertPuzzle(samplePuzzle(0, cell)); err != nil {
			b.Fatalf("InsertPuzzle failed: %v", err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := backend.Puzzles(0); err != nil {
			b.Fatalf("Puzzles failed: %v", err)
		}
	}
}
