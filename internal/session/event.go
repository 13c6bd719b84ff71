package session

import "github.com/mesh-intelligence/nine/pkg/ops"

// EventKind names a session event.
type EventKind string

// Event kinds.
const (
	MoveApplied  EventKind = "move_applied"
	MoveRejected EventKind = "move_rejected"
	Completed    EventKind = "completed"
	Restarted    EventKind = "restarted"
)

// Reason explains a rejected move.
type Reason string

// Rejection reasons.
const (
	ReasonComplete    Reason = "complete"
	ReasonNotPlayable Reason = "not_playable"
	ReasonUsed        Reason = "already_used"
	ReasonIllegal     Reason = "illegal"
)

// Event is fired after every state-relevant call. Value and Moves are the
// session state after the call.
type Event struct {
	Kind      EventKind
	Operation ops.ID
	Reason    Reason
	Value     int
	Moves     int
}

// Listener receives session events. It runs synchronously on the caller's
// goroutine.
type Listener func(Event)

func (s *Session) emit(e Event) {
	if s.listener == nil {
		return
	}
	e.Value = s.value
	e.Moves = s.moves
	s.listener(e)
}
