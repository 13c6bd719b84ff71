package generator

import (
	"github.com/mesh-intelligence/nine/pkg/ops"
	"github.com/mesh-intelligence/nine/pkg/ordered"
)

// SetSize is the number of operations chosen for one puzzle.
const SetSize = 4

// Selection pools. add9Once is never drawn; it is added to every session.
var (
	amplifierPool = []ops.ID{ops.Add1, ops.MultiplyBy2}
	reducerPool   = ops.OfKind(ops.KindReducer)
	wildcardPool  = []ops.ID{ops.ReverseDigits, ops.RotateDigits, ops.Subtract1}
)

// fallbackSet is returned when the draw budget runs out. It is balanced and
// contains no mod10, so it is valid for every seed.
var fallbackSet = []ops.ID{ops.Add1, ops.DigitSum, ops.DivideBy2, ops.ReverseDigits}

// DefaultMaxDraws bounds the reject-and-retry loop of Select.
const DefaultMaxDraws = 1000

// Select picks four distinct operations for a puzzle whose seed is seed. The
// set always contains one of add1/multiplyBy2 and one reducer; the other two
// slots are sampled from the remaining amplifier, reducer and wildcard pools.
// A draw containing mod10 is rejected when seed%10 == 9, because that would
// solve the puzzle in one move.
func Select(r Rand, seed int) []ops.ID {
	ids, _ := selectN(r, seed, DefaultMaxDraws)
	return ids
}

// selectN runs at most maxDraws draws and reports how many were needed. When
// no draw passes, it returns fallbackSet.
func selectN(r Rand, seed, maxDraws int) ([]ops.ID, int) {
	for draw := 1; draw <= maxDraws; draw++ {
		chosen := ordered.NewSet(pick(r, amplifierPool), pick(r, reducerPool))

		var remaining []ops.ID
		for _, id := range ordered.Dedup(amplifierPool, reducerPool, wildcardPool) {
			if !chosen.Contains(id) {
				remaining = append(remaining, id)
			}
		}
		for _, id := range sample(r, remaining, SetSize-chosen.Len()) {
			chosen.Add(id)
		}

		if chosen.Contains(ops.Mod10) && seed%10 == 9 {
			continue
		}
		if chosen.Len() != SetSize {
			continue
		}
		return chosen.Items(), draw
	}
	out := make([]ops.ID, len(fallbackSet))
	copy(out, fallbackSet)
	return out, maxDraws
}
