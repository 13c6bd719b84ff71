package generator

import "github.com/mesh-intelligence/nine/pkg/ops"

// Search limits. Values beyond searchBound are not expanded and the search
// stops after searchBudget states.
const (
	searchBound  = 1_000_000
	searchBudget = 250_000
)

type searchState struct {
	value    int
	usedAdd9 bool
}

// Solve runs a breadth-first search from start to target using the playable
// operations of subset, honoring the single use of add9Once. It returns the
// minimum number of moves, or ok=false when target is not reachable within
// maxDepth moves or the search budget.
func Solve(start int, subset []ops.ID, target, maxDepth int) (moves int, ok bool) {
	if start == target {
		return 0, true
	}
	playable := ops.Playable(subset)

	frontier := []searchState{{value: start}}
	visited := map[searchState]bool{frontier[0]: true}
	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []searchState
		for _, st := range frontier {
			for _, id := range playable {
				if id == ops.Add9Once && st.usedAdd9 {
					continue
				}
				v, legal := ops.Apply(id, st.value)
				if !legal {
					continue
				}
				if v == target {
					return depth, true
				}
				if absInt(v) > searchBound {
					continue
				}
				ns := searchState{value: v, usedAdd9: st.usedAdd9 || id == ops.Add9Once}
				if visited[ns] {
					continue
				}
				if len(visited) >= searchBudget {
					return 0, false
				}
				visited[ns] = true
				next = append(next, ns)
			}
		}
		frontier = next
	}
	return 0, false
}
