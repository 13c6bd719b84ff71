package ops

import "github.com/mesh-intelligence/nine/pkg/ordered"

// Fixed lists the operations offered in every session, ahead of the
// puzzle's own subset.
var Fixed = []ID{Subtract1, Add9Once}

// Playable returns Fixed followed by subset with repeated identifiers
// collapsed to their first occurrence.
func Playable(subset []ID) []ID {
	return ordered.Dedup(Fixed, subset)
}
