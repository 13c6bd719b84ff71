// Package play connects sessions to storage: it opens sessions for unlocked
// cells, records completions as attempts and reports progression.
package play

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/nine/internal/factory"
	"github.com/mesh-intelligence/nine/internal/metrics"
	"github.com/mesh-intelligence/nine/internal/progress"
	"github.com/mesh-intelligence/nine/internal/session"
	"github.com/mesh-intelligence/nine/pkg/types"
)

// Play errors.
var (
	ErrLocked          = errors.New("puzzle is locked")
	ErrNotComplete     = errors.New("session is not complete")
	ErrAlreadyRecorded = errors.New("completion already recorded")
	ErrUnknownSession  = errors.New("session was not opened by this service")
)

// round tracks one opened session. completions counts Completed events;
// recorded counts how many of them were stored.
type round struct {
	puzzle      *types.Puzzle
	completions int
	recorded    int
}

// Service opens sessions and records their completions.
type Service struct {
	store   types.Store
	factory *factory.Factory
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	rounds map[*session.Session]*round
}

// New returns a Service. Puzzles missing from store are generated by f.
// logger and m may be nil.
func New(store types.Store, f *factory.Factory, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		factory: f,
		logger:  logger,
		metrics: m,
		rounds:  make(map[*session.Session]*round),
	}
}

// Open returns a fresh session for (page, cell). It returns ErrLocked unless
// the cell is unlocked. The puzzle is generated on first open. listeners
// receive every session event after the service has seen it.
func (s *Service) Open(ctx context.Context, page, cell int, listeners ...session.Listener) (*session.Session, error) {
	if err := types.ValidateCoordinate(page, cell); err != nil {
		return nil, err
	}
	ix, err := s.index(page)
	if err != nil {
		return nil, err
	}
	if !ix.IsUnlocked(page, cell) {
		return nil, fmt.Errorf("open (%d, %d): %w", page, cell, ErrLocked)
	}

	p, err := s.factory.GetOrCreate(ctx, page, cell)
	if err != nil {
		return nil, fmt.Errorf("open (%d, %d): %w", page, cell, err)
	}

	r := &round{puzzle: p}
	log := s.logger.With(zap.String("puzzle_id", p.PuzzleID))
	sess := session.FromPuzzle(p, session.WithListener(func(e session.Event) {
		switch e.Kind {
		case session.MoveApplied:
			s.metrics.Move("applied")
			log.Debug("move applied", zap.String("op", string(e.Operation)), zap.Int("value", e.Value))
		case session.MoveRejected:
			s.metrics.Move(string(e.Reason))
			log.Debug("move rejected", zap.String("op", string(e.Operation)), zap.String("reason", string(e.Reason)))
		case session.Completed:
			s.mu.Lock()
			r.completions++
			s.mu.Unlock()
		}
		for _, l := range listeners {
			l(e)
		}
	}))

	s.mu.Lock()
	s.rounds[sess] = r
	s.mu.Unlock()
	return sess, nil
}

// Result is the outcome of recording a completion.
type Result struct {
	Attempt  *types.Attempt    `json:"attempt"`
	Feedback progress.Feedback `json:"feedback"`
	Best     int               `json:"best"`
	Attempts int               `json:"attempts"`
}

// Complete stores one attempt for a completed session and classifies it
// against the attempts recorded before it. Each completion is stored once;
// after Reset the session can complete and be recorded again.
func (s *Service) Complete(sess *session.Session) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rounds[sess]
	if !ok {
		return nil, ErrUnknownSession
	}
	if !sess.IsComplete() {
		return nil, ErrNotComplete
	}
	if r.recorded >= r.completions {
		return nil, ErrAlreadyRecorded
	}

	prior, err := s.store.Attempts(r.puzzle.PuzzleID)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	fb := progress.Classify(sess.Moves(), prior)

	a := types.NewAttempt(r.puzzle.PuzzleID, sess.Moves())
	if _, err := s.store.InsertAttempt(a); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}
	r.recorded = r.completions

	best := a.MovesUsed
	for _, p := range prior {
		best = min(best, p.MovesUsed)
	}

	s.metrics.Completion(string(fb.Kind))
	s.logger.Info("attempt recorded",
		zap.String("puzzle_id", r.puzzle.PuzzleID),
		zap.Int("page", r.puzzle.PageIndex),
		zap.Int("cell", r.puzzle.CellIndex),
		zap.Int("moves", a.MovesUsed),
		zap.Stringer("feedback", fb))

	return &Result{Attempt: a, Feedback: fb, Best: best, Attempts: len(prior) + 1}, nil
}

// Release forgets a session opened by Open.
func (s *Service) Release(sess *session.Session) {
	s.mu.Lock()
	delete(s.rounds, sess)
	s.mu.Unlock()
}

// Page summarizes every cell of page.
func (s *Service) Page(page int) ([]progress.Cell, error) {
	if page < 0 {
		return nil, types.ErrInvalidCoordinate
	}
	ix, err := s.index(page)
	if err != nil {
		return nil, err
	}
	return ix.Page(page), nil
}

// Summary aggregates the stored history.
type Summary struct {
	Pages    int `json:"pages"`
	Puzzles  int `json:"puzzles"`
	Solved   int `json:"solved"`
	Attempts int `json:"attempts"`
}

// Summary counts puzzles, solved puzzles and attempts across all pages.
func (s *Service) Summary() (Summary, error) {
	puzzles, err := s.store.Puzzles(-1)
	if err != nil {
		return Summary{}, fmt.Errorf("load puzzles: %w", err)
	}
	attempts, err := s.store.Attempts("")
	if err != nil {
		return Summary{}, fmt.Errorf("load attempts: %w", err)
	}
	ix := progress.NewIndex(puzzles, attempts)

	sum := Summary{Puzzles: len(puzzles), Attempts: len(attempts)}
	pages := make(map[int]bool)
	for _, p := range puzzles {
		pages[p.PageIndex] = true
		if ix.IsSolved(p.PuzzleID) {
			sum.Solved++
		}
	}
	sum.Pages = len(pages)
	return sum, nil
}

func (s *Service) index(page int) (*progress.Index, error) {
	puzzles, err := s.store.Puzzles(page)
	if err != nil {
		return nil, fmt.Errorf("load page %d: %w", page, err)
	}
	attempts, err := s.store.Attempts("")
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	return progress.NewIndex(puzzles, attempts), nil
}
