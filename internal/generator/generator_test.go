package generator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/nine/pkg/ops"
)

// scriptRand replays fixed values, reduced modulo n.
type scriptRand struct {
	vals []int
	i    int
}

func (s *scriptRand) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 42))
}

func TestSelectProperties(t *testing.T) {
	seeds := []int{9, 19, 0, 7, -1, -11, 12345, 99999}
	for _, seed := range seeds {
		for i := uint64(0); i < 300; i++ {
			got := Select(seeded(i), seed)

			require.Len(t, got, SetSize)
			distinct := map[ops.ID]bool{}
			hasAmp, hasReducer := false, false
			for _, id := range got {
				require.True(t, id.Valid(), "unknown id %q", id)
				assert.NotEqual(t, ops.Add9Once, id)
				distinct[id] = true
				if id == ops.Add1 || id == ops.MultiplyBy2 {
					hasAmp = true
				}
				if id.Kind() == ops.KindReducer {
					hasReducer = true
				}
			}
			assert.Len(t, distinct, SetSize, "duplicates in %v", got)
			assert.True(t, hasAmp, "no amplifier in %v", got)
			assert.True(t, hasReducer, "no reducer in %v", got)
			if seed%10 == 9 {
				assert.NotContains(t, got, ops.Mod10, "seed %d", seed)
			}
		}
	}
}

func TestSelectCanPickMod10WhenSafe(t *testing.T) {
	found := false
	for i := uint64(0); i < 2000 && !found; i++ {
		for _, id := range Select(seeded(i), 12) {
			if id == ops.Mod10 {
				found = true
			}
		}
	}
	assert.True(t, found, "mod10 should be reachable for seeds not ending in 9")
}

func TestSelectFallback(t *testing.T) {
	got, draws := selectN(seeded(1), 19, 0)
	assert.Equal(t, fallbackSet, got)
	assert.Equal(t, 0, draws)

	got[0] = ops.Mod10
	assert.Equal(t, ops.Add1, fallbackSet[0], "fallback must be copied")
}

func TestSelectDeterministic(t *testing.T) {
	assert.Equal(t, Select(seeded(77), 9), Select(seeded(77), 9))
}

func TestStartValueScripted(t *testing.T) {
	tests := []struct {
		name     string
		vals     []int
		ops      []ops.ID
		seq      int
		min, max int
		want     int
	}{
		{
			name: "small positive trivial walk is replaced",
			vals: []int{0, 0, 0, 0, 0, 5},
			ops:  []ops.ID{ops.Add1},
			seq:  1, min: 4, max: 4,
			want: 26,
		},
		{
			name: "small positive equal to target is offset",
			vals: []int{0},
			ops:  []ops.ID{ops.DigitSum},
			seq:  5, min: 4, max: 4,
			want: 21,
		},
		{
			name: "small negative equal to target keeps class sign",
			vals: []int{0},
			ops:  []ops.ID{ops.DigitSum},
			seq:  2, min: 4, max: 4,
			want: -21,
		},
		{
			name: "big negative zero walk keeps class sign",
			vals: []int{0, 0, 1, 0, 7},
			ops:  []ops.ID{ops.Add1, ops.Mod10},
			seq:  3, min: 2, max: 2,
			want: -28,
		},
		{
			name: "big positive takes the random scale",
			vals: []int{0, 0, 0, 0, 0, 1234},
			ops:  []ops.ID{ops.Add1},
			seq:  4, min: 4, max: 4,
			want: 11234,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptRand{vals: tt.vals}
			got := StartValue(r, tt.ops, tt.seq, tt.min, tt.max, Target)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStartValueProperties(t *testing.T) {
	for i := uint64(0); i < 400; i++ {
		r := seeded(i)
		subset := Select(r, Target)
		seq := int(i)
		got := StartValue(r, subset, seq, 4, 7, Target)

		assert.LessOrEqual(t, got, MaxMagnitude)
		assert.GreaterOrEqual(t, got, -MaxMagnitude)
		assert.NotZero(t, got)
		assert.NotEqual(t, 9, got)
		assert.NotEqual(t, -9, got)
		assert.Greater(t, absInt(got), 20, "start %d for seq %d", got, seq)

		switch seq % 4 {
		case 0, 1:
			assert.Positive(t, got)
		default:
			assert.Negative(t, got)
		}
		if seq%4 == 1 || seq%4 == 2 {
			assert.Less(t, absInt(got), 1000)
		}
	}
}

func TestStartValueEmptyOperations(t *testing.T) {
	got := StartValue(seeded(3), nil, 1, 4, 7, Target)
	assert.Greater(t, got, 20)
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		subset    []ops.ID
		depth     int
		wantMoves int
		wantOK    bool
	}{
		{"already at target", 9, nil, 5, 0, true},
		{"worked example", 23, []ops.ID{ops.Add1, ops.DigitSum, ops.DivideBy2, ops.ReverseDigits}, 12, 4, true},
		{"single fixed move", 10, nil, 3, 1, true},
		{"add9Once is single use", -9, []ops.ID{ops.DivideBy3}, 6, 0, false},
		{"depth limit", 23, []ops.ID{ops.Add1, ops.DigitSum, ops.DivideBy2, ops.ReverseDigits}, 3, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves, ok := Solve(tt.start, tt.subset, Target, tt.depth)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMoves, moves)
		})
	}
}

func TestGenerate(t *testing.T) {
	g := New(seeded(2024), DefaultOptions())
	for seq := 0; seq < 100; seq++ {
		p := g.Generate(seq)
		require.Len(t, p.Operations, SetSize)
		assert.NotContains(t, p.Operations, ops.Mod10)
		assert.NotZero(t, p.Start)
		assert.Greater(t, absInt(p.Start), 20)
		assert.LessOrEqual(t, absInt(p.Start), MaxMagnitude)
		assert.GreaterOrEqual(t, p.Attempts, 1)
		assert.LessOrEqual(t, p.Attempts, g.Options().MaxRegenerations)
		if p.Verified {
			moves, ok := Solve(p.Start, p.Operations, Target, g.Options().SolverDepth)
			require.True(t, ok)
			assert.Equal(t, moves, p.MinMoves)
		}
	}
}

func TestGenerateWithoutVerification(t *testing.T) {
	opts := DefaultOptions()
	opts.VerifySolvable = false
	p := New(seeded(5), opts).Generate(0)
	assert.Equal(t, 1, p.Attempts)
	assert.False(t, p.Verified)
}

func TestGenerateDeterministic(t *testing.T) {
	a := New(seeded(99), DefaultOptions())
	b := New(seeded(99), DefaultOptions())
	for seq := 0; seq < 20; seq++ {
		assert.Equal(t, a.Generate(seq), b.Generate(seq))
	}
}

func TestNewFillsDefaults(t *testing.T) {
	g := New(seeded(1), Options{})
	def := DefaultOptions()
	assert.Equal(t, def.MinSteps, g.Options().MinSteps)
	assert.Equal(t, def.MaxSteps, g.Options().MaxSteps)
	assert.Equal(t, def.SolverDepth, g.Options().SolverDepth)
	assert.Equal(t, def.MaxRegenerations, g.Options().MaxRegenerations)
	assert.False(t, g.Options().VerifySolvable)
}

func BenchmarkGenerate(b *testing.B) {
	g := New(seeded(17), DefaultOptions())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Generate(i)
	}
}

func BenchmarkSolve(b *testing.B) {
	subset := []ops.ID{ops.Add1, ops.DigitSum, ops.DivideBy2, ops.ReverseDigits}
	for i := 0; i < b.N; i++ {
		Solve(23, subset, Target, DefaultOptions().SolverDepth)
	}
}
