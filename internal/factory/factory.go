// Package factory creates puzzles on demand and seeds whole pages. A stored
// puzzle is never regenerated: once a (page, cell) slot holds a puzzle the
// factory only reads it.
package factory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/nine/internal/generator"
	"github.com/mesh-intelligence/nine/internal/metrics"
	"github.com/mesh-intelligence/nine/pkg/types"
)

// DefaultConcurrency bounds how many pages SeedPages generates at once.
const DefaultConcurrency = 4

// Factory generates puzzles into a Store.
type Factory struct {
	store       types.Store
	opts        generator.Options
	seed        uint64
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// Option configures a Factory.
type Option func(*Factory)

// WithOptions sets the generator options.
func WithOptions(opts generator.Options) Option {
	return func(f *Factory) { f.opts = opts }
}

// WithSeed makes generation reproducible. Every slot derives its own random
// source from seed, page and cell. Zero seeds from the clock.
func WithSeed(seed uint64) Option {
	return func(f *Factory) { f.seed = seed }
}

// WithConcurrency bounds SeedPages. Values below 1 mean DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(f *Factory) { f.concurrency = n }
}

// WithLogger sets the logger. nil means zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(f *Factory) { f.logger = l }
}

// WithMetrics records generation counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Factory) { f.metrics = m }
}

// New returns a Factory writing to store, which must be attached.
func New(store types.Store, opts ...Option) *Factory {
	f := &Factory{
		store: store,
		opts:  generator.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.seed == 0 {
		f.seed = uint64(time.Now().UnixNano())
	}
	if f.concurrency < 1 {
		f.concurrency = DefaultConcurrency
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// SeedResult counts the outcome of seeding one page.
type SeedResult struct {
	Page    int `json:"page"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// GetOrCreate returns the puzzle at (page, cell), generating and storing it
// first if the slot is empty.
func (f *Factory) GetOrCreate(ctx context.Context, page, cell int) (*types.Puzzle, error) {
	p, _, err := f.getOrCreate(ctx, page, cell)
	return p, err
}

func (f *Factory) getOrCreate(ctx context.Context, page, cell int) (*types.Puzzle, bool, error) {
	if err := types.ValidateCoordinate(page, cell); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	existing, err := f.store.PuzzleAt(page, cell)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup puzzle (%d, %d): %w", page, cell, err)
	}

	gen := generator.New(generator.NewRand(slotSeed(f.seed, page, cell)), f.opts)
	candidate := gen.Generate(cell)

	p := types.NewPuzzle(page, cell, candidate.Start, candidate.Operations)
	if _, err := f.store.InsertPuzzle(p); err != nil {
		if errors.Is(err, types.ErrDuplicateCoordinate) {
			// Another writer filled the slot first; theirs wins.
			existing, err := f.store.PuzzleAt(page, cell)
			if err != nil {
				return nil, false, fmt.Errorf("reload puzzle (%d, %d): %w", page, cell, err)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("insert puzzle (%d, %d): %w", page, cell, err)
	}

	f.metrics.Generated(candidate.Attempts, candidate.Draws)
	fields := []zap.Field{
		zap.Int("page", page),
		zap.Int("cell", cell),
		zap.Int("start", candidate.Start),
		zap.Strings("operations", p.OperationRaw),
		zap.Int("candidates", candidate.Attempts),
	}
	if f.opts.VerifySolvable && !candidate.Verified {
		f.logger.Warn("puzzle kept unverified", fields...)
	} else {
		f.logger.Debug("puzzle generated", append(fields, zap.Int("min_moves", candidate.MinMoves))...)
	}
	return p, true, nil
}

// SeedPage fills every empty cell of page in increasing cell order.
// Cancellation is observed between cells.
func (f *Factory) SeedPage(ctx context.Context, page int) (SeedResult, error) {
	res := SeedResult{Page: page}
	for cell := 0; cell < types.PageSize; cell++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		_, created, err := f.getOrCreate(ctx, page, cell)
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Skipped++
			f.metrics.Skipped()
		}
	}
	f.logger.Info("page seeded",
		zap.Int("page", page),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

// SeedPages seeds pages concurrently. Each page is generated sequentially;
// results are returned in the order of pages. The first error cancels the
// remaining pages.
func (f *Factory) SeedPages(ctx context.Context, pages []int) ([]SeedResult, error) {
	results := make([]SeedResult, len(pages))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(f.concurrency)
	for i, page := range pages {
		eg.Go(func() error {
			res, err := f.SeedPage(egCtx, page)
			results[i] = res
			if err != nil {
				return fmt.Errorf("seed page %d: %w", page, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// slotSeed mixes the factory seed with a coordinate so that every slot draws
// from an independent stream.
func slotSeed(seed uint64, page, cell int) uint64 {
	s := seed ^ (uint64(page)*0x9e3779b97f4a7c15 + uint64(cell)*0xbf58476d1ce4e5b9 + 1)
	if s == 0 {
		s = 1
	}
	return s
}
