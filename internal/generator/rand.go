package generator

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source used by the generator. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewRand returns a PCG-backed source. A zero seed draws one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between returns a uniform value in [lo, hi].
func between(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// pick returns a uniform element of items.
func pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// sample draws k distinct elements of items without replacement using a
// partial Fisher-Yates shuffle over a copy.
func sample[T any](r Rand, items []T, k int) []T {
	pool := make([]T, len(items))
	copy(pool, items)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
