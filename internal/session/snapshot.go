package session

import "github.com/mesh-intelligence/nine/pkg/ops"

// Button is one playable operation as shown to the player.
type Button struct {
	ID      ops.ID `json:"id"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// Snapshot is the per-frame view of a session.
type Snapshot struct {
	PuzzleID string   `json:"puzzle_id,omitempty"`
	Value    int      `json:"value"`
	Moves    int      `json:"moves"`
	Complete bool     `json:"complete"`
	Buttons  []Button `json:"operations"`
}

// Snapshot returns the current view. A button is disabled when the session
// is complete, or when it is add9Once and already used.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		PuzzleID: s.puzzleID,
		Value:    s.value,
		Moves:    s.moves,
		Complete: s.IsComplete(),
		Buttons:  make([]Button, 0, len(s.playable)),
	}
	for _, id := range s.playable {
		enabled := !snap.Complete && !(id == ops.Add9Once && s.add9Used)
		snap.Buttons = append(snap.Buttons, Button{ID: id, Label: id.Label(), Enabled: enabled})
	}
	return snap
}
