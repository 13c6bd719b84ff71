// Package session implements the state machine of one player attempting one
// puzzle: the current value, the move counter, the single-use flag of
// add9Once and win detection. Illegal or disallowed moves are silent no-ops.
package session

import (
	"github.com/mesh-intelligence/nine/pkg/ops"
	"github.com/mesh-intelligence/nine/pkg/types"
)

// State is the lifecycle state of a Session.
type State int

// Session states. Complete is terminal until Reset.
const (
	InProgress State = iota
	Complete
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Session is the transient, mutable play state derived from one puzzle. It is
// driven by a single stream of moves and is not safe for concurrent use.
type Session struct {
	puzzleID string
	start    int
	playable []ops.ID
	allowed  map[ops.ID]bool

	value    int
	moves    int
	add9Used bool
	state    State

	listener Listener
}

// Option configures a Session.
type Option func(*Session)

// WithListener registers fn to receive the session's events.
func WithListener(fn Listener) Option {
	return func(s *Session) { s.listener = fn }
}

// New starts a session at start with the fixed operations plus subset.
func New(start int, subset []ops.ID, opts ...Option) *Session {
	s := &Session{
		start:    start,
		playable: ops.Playable(subset),
	}
	s.allowed = make(map[ops.ID]bool, len(s.playable))
	for _, id := range s.playable {
		s.allowed[id] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restart()
	return s
}

// FromPuzzle starts a session for a stored puzzle.
func FromPuzzle(p *types.Puzzle, opts ...Option) *Session {
	s := New(p.StartNumber, p.Operations(), opts...)
	s.puzzleID = p.PuzzleID
	return s
}

// ApplyMove applies the operation id to the current value and reports whether
// the move was taken. The call is a no-op when the session is complete, when
// id is not playable, when add9Once was already used, or when the transform is
// illegal for the current value.
func (s *Session) ApplyMove(id ops.ID) bool {
	if reason := s.blocked(id); reason != "" {
		s.emit(Event{Kind: MoveRejected, Operation: id, Reason: reason})
		return false
	}
	next, ok := ops.Apply(id, s.value)
	if !ok {
		s.emit(Event{Kind: MoveRejected, Operation: id, Reason: ReasonIllegal})
		return false
	}

	s.value = next
	s.moves++
	if id == ops.Add9Once {
		s.add9Used = true
	}
	s.emit(Event{Kind: MoveApplied, Operation: id})

	if s.value == ops.Target {
		s.state = Complete
		s.emit(Event{Kind: Completed, Operation: id})
	}
	return true
}

// ApplyByName decodes raw and applies it. Unknown names are rejected.
func (s *Session) ApplyByName(raw string) bool {
	return s.ApplyMove(ops.ID(raw))
}

// Reset returns the session to its starting state. It is allowed from any
// state and is idempotent.
func (s *Session) Reset() {
	s.restart()
	s.emit(Event{Kind: Restarted})
}

func (s *Session) restart() {
	s.value = s.start
	s.moves = 0
	s.add9Used = false
	s.state = InProgress
}

// blocked returns why id cannot be played now, or "" if it can be tried.
func (s *Session) blocked(id ops.ID) Reason {
	switch {
	case s.state == Complete:
		return ReasonComplete
	case !s.allowed[id]:
		return ReasonNotPlayable
	case id == ops.Add9Once && s.add9Used:
		return ReasonUsed
	}
	return ""
}

// PuzzleID returns the ID of the puzzle the session was built from, if any.
func (s *Session) PuzzleID() string { return s.puzzleID }

// Start returns the starting value.
func (s *Session) Start() int { return s.start }

// Value returns the current value.
func (s *Session) Value() int { return s.value }

// Moves returns the number of moves taken since the last reset.
func (s *Session) Moves() int { return s.moves }

// Add9Used reports whether add9Once was used since the last reset.
func (s *Session) Add9Used() bool { return s.add9Used }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// IsComplete reports whether the target was reached.
func (s *Session) IsComplete() bool { return s.state == Complete }

// Playable returns the ordered playable operations.
func (s *Session) Playable() []ops.ID {
	out := make([]ops.ID, len(s.playable))
	copy(out, s.playable)
	return out
}
