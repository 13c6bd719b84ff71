package progress

import (
	"fmt"

	"github.com/mesh-intelligence/nine/pkg/types"
)

// FeedbackKind classifies a finished attempt against earlier ones.
type FeedbackKind string

// Feedback kinds.
const (
	NewBest     FeedbackKind = "new_best"
	MatchedBest FeedbackKind = "matched_best"
	OffBy       FeedbackKind = "off_by"
)

// Feedback is the completion signal sent to the presentation layer. OffBy is
// set only for kind OffBy.
type Feedback struct {
	Kind  FeedbackKind `json:"kind"`
	OffBy int          `json:"off_by,omitempty"`
}

// Classify compares moves against the best of prior, the attempts recorded
// for the same puzzle before this one. No prior attempts means NewBest.
func Classify(moves int, prior []*types.Attempt) Feedback {
	best, ok := 0, false
	for _, a := range prior {
		if !ok || a.MovesUsed < best {
			best, ok = a.MovesUsed, true
		}
	}
	switch {
	case !ok || moves < best:
		return Feedback{Kind: NewBest}
	case moves == best:
		return Feedback{Kind: MatchedBest}
	default:
		return Feedback{Kind: OffBy, OffBy: moves - best}
	}
}

// Title is the headline shown for the feedback.
func (f Feedback) Title() string {
	switch f.Kind {
	case NewBest:
		return "New Optimal"
	case MatchedBest:
		return "Matched Best"
	default:
		return "Close"
	}
}

// Subtitle explains the feedback.
func (f Feedback) Subtitle() string {
	switch f.Kind {
	case NewBest:
		return "Best solution so far"
	case MatchedBest:
		return "You hit your record"
	}
	if f.OffBy == 1 {
		return "1 move away"
	}
	return fmt.Sprintf("%d moves away", f.OffBy)
}

// String renders the feedback as kind or kind(n).
func (f Feedback) String() string {
	if f.Kind == OffBy {
		return fmt.Sprintf("%s(%d)", f.Kind, f.OffBy)
	}
	return string(f.Kind)
}
