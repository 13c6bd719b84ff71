package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/nine/pkg/ops"
	"github.com/mesh-intelligence/nine/pkg/types"
)

var exampleSubset = []ops.ID{ops.Add1, ops.DigitSum, ops.DivideBy2, ops.ReverseDigits}

type state struct {
	value, moves int
	add9Used     bool
	st           State
}

func capture(s *Session) state {
	return state{s.Value(), s.Moves(), s.Add9Used(), s.State()}
}

func TestEndToEndScenario(t *testing.T) {
	s := New(23, exampleSubset)
	require.Equal(t, []ops.ID{ops.Subtract1, ops.Add9Once, ops.Add1, ops.DigitSum, ops.DivideBy2, ops.ReverseDigits}, s.Playable())

	steps := []struct {
		op        ops.ID
		applied   bool
		wantValue int
		wantMoves int
	}{
		{ops.Add1, true, 24, 1},
		{ops.DivideBy2, true, 12, 2},
		{ops.DigitSum, true, 3, 3},
		{ops.Add9Once, true, 12, 4},
		{ops.Add9Once, false, 12, 4},
		{ops.DigitSum, true, 3, 5},
		{ops.Add9Once, false, 3, 5},
		{ops.Add1, true, 4, 6},
		{ops.Add1, true, 5, 7},
		{ops.Add1, true, 6, 8},
		{ops.Add1, true, 7, 9},
		{ops.Add1, true, 8, 10},
	}
	for i, st := range steps {
		got := s.ApplyMove(st.op)
		assert.Equal(t, st.applied, got, "step %d (%s)", i, st.op)
		assert.Equal(t, st.wantValue, s.Value(), "step %d value", i)
		assert.Equal(t, st.wantMoves, s.Moves(), "step %d moves", i)
		assert.False(t, s.IsComplete())
	}
	assert.True(t, s.Add9Used())

	require.True(t, s.ApplyMove(ops.Add1))
	assert.Equal(t, 9, s.Value())
	assert.Equal(t, 11, s.Moves())
	assert.Equal(t, Complete, s.State())
}

func TestIllegalMovesLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		start int
		op    ops.ID
	}{
		{"divideBy2 odd", 23, ops.DivideBy2},
		{"divideBy3 non multiple", 26, ops.DivideBy3},
		{"dropLastDigit single digit", -7, ops.DropLastDigit},
		{"rotateDigits single digit", -4, ops.RotateDigits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.start, []ops.ID{tt.op, ops.Add1, ops.DigitSum, ops.Mod9})
			s.ApplyMove(ops.Add9Once)
			s.ApplyMove(ops.Subtract1)
			before := capture(s)

			assert.False(t, s.ApplyMove(tt.op))
			assert.Equal(t, before, capture(s))
		})
	}
}

func TestAdd9OnceOncePerReset(t *testing.T) {
	s := New(40, exampleSubset)
	require.True(t, s.ApplyMove(ops.Add9Once))
	assert.Equal(t, 49, s.Value())
	assert.Equal(t, 1, s.Moves())

	assert.False(t, s.ApplyMove(ops.Add9Once))
	assert.Equal(t, 49, s.Value())
	assert.Equal(t, 1, s.Moves())

	s.Reset()
	assert.True(t, s.ApplyMove(ops.Add9Once), "reset clears the single-use flag")
}

func TestResetIsIdempotent(t *testing.T) {
	want := state{value: 23, st: InProgress}

	s := New(23, exampleSubset)
	s.Reset()
	assert.Equal(t, want, capture(s))

	s.ApplyMove(ops.Add9Once)
	s.ApplyMove(ops.DigitSum)
	s.Reset()
	s.Reset()
	assert.Equal(t, want, capture(s))

	c := New(10, nil)
	require.True(t, c.ApplyMove(ops.Subtract1))
	require.True(t, c.IsComplete())
	c.Reset()
	assert.Equal(t, state{value: 10, st: InProgress}, capture(c))
}

func TestCompleteIsTerminal(t *testing.T) {
	s := New(18, exampleSubset)
	require.True(t, s.ApplyMove(ops.DivideBy2))
	require.Equal(t, Complete, s.State())
	before := capture(s)

	for _, id := range s.Playable() {
		assert.False(t, s.ApplyMove(id), "%s after completion", id)
	}
	assert.Equal(t, before, capture(s))
}

func TestNonPlayableOperationRejected(t *testing.T) {
	s := New(30, exampleSubset)
	assert.False(t, s.ApplyMove(ops.Mod9))
	assert.False(t, s.ApplyByName("teleport"))
	assert.Equal(t, 0, s.Moves())
	assert.True(t, s.ApplyByName("digitSum"))
	assert.Equal(t, 3, s.Value())
}

func TestFromPuzzle(t *testing.T) {
	p := &types.Puzzle{
		PuzzleID:     "p-1",
		StartNumber:  -77,
		OperationRaw: []string{"subtract1", "mod9", "retired", "rotateDigits"},
	}
	s := FromPuzzle(p)
	assert.Equal(t, "p-1", s.PuzzleID())
	assert.Equal(t, -77, s.Start())
	assert.Equal(t, -77, s.Value())
	assert.Equal(t, []ops.ID{ops.Subtract1, ops.Add9Once, ops.Mod9, ops.RotateDigits}, s.Playable())
}

func TestSnapshot(t *testing.T) {
	s := New(23, exampleSubset)
	snap := s.Snapshot()
	require.Len(t, snap.Buttons, 6)
	for _, b := range snap.Buttons {
		assert.True(t, b.Enabled, b.ID)
		assert.Equal(t, b.ID.Label(), b.Label)
	}

	s.ApplyMove(ops.Add9Once)
	snap = s.Snapshot()
	assert.Equal(t, 32, snap.Value)
	assert.Equal(t, 1, snap.Moves)
	for _, b := range snap.Buttons {
		assert.Equal(t, b.ID != ops.Add9Once, b.Enabled, b.ID)
	}

	s.ApplyMove(ops.ReverseDigits) // 23
	s.ApplyMove(ops.Add1)          // 24
	s.ApplyMove(ops.DivideBy2)     // 12
	s.ApplyMove(ops.DivideBy2)     // 6
	s.ApplyMove(ops.Add1)          // 7
	s.ApplyMove(ops.Add1)          // 8
	s.ApplyMove(ops.Add1)          // 9
	snap = s.Snapshot()
	assert.True(t, snap.Complete)
	for _, b := range snap.Buttons {
		assert.False(t, b.Enabled, b.ID)
	}
}

func TestListener(t *testing.T) {
	var events []Event
	s := New(10, []ops.ID{ops.DivideBy2}, WithListener(func(e Event) { events = append(events, e) }))

	s.ApplyMove(ops.DivideBy2)
	s.ApplyMove(ops.Add9Once)
	s.ApplyMove(ops.Add9Once)
	s.ApplyMove(ops.Subtract1)
	s.Reset()

	kinds := make([]EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []EventKind{
		MoveApplied,  // 10/2 = 5
		MoveApplied,  // 5+9 = 14
		MoveRejected, // add9Once used
		MoveApplied,  // 13
		Restarted,
	}, kinds)
	assert.Equal(t, ReasonUsed, events[2].Reason)
	assert.Equal(t, 14, events[2].Value)
	assert.Equal(t, 10, events[4].Value)

	events = nil
	s.ApplyMove(ops.Subtract1)
	require.Len(t, events, 2)
	assert.Equal(t, MoveApplied, events[0].Kind)
	assert.Equal(t, Completed, events[1].Kind)
	assert.Equal(t, 1, events[1].Moves)

	events = nil
	s.ApplyMove(ops.Subtract1)
	require.Len(t, events, 1)
	assert.Equal(t, ReasonComplete, events[0].Reason)

	events = nil
	New(3, nil, WithListener(func(e Event) { events = append(events, e) })).ApplyMove(ops.DivideBy3)
	require.Len(t, events, 1)
	assert.Equal(t, ReasonNotPlayable, events[0].Reason)
}
