package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/nine/pkg/ops"
)

func TestPuzzleOperationsDecodeLossily(t *testing.T) {
	p := &Puzzle{OperationRaw: []string{"add1", "cubeRoot", "digitSum", "reverseDigits"}}
	assert.Equal(t, []ops.ID{ops.Add1, ops.DigitSum, ops.ReverseDigits}, p.Operations())
}

func TestNewPuzzle(t *testing.T) {
	p := NewPuzzle(2, 7, -431, []ops.ID{ops.MultiplyBy2, ops.Mod9})
	assert.Equal(t, 2, p.PageIndex)
	assert.Equal(t, 7, p.CellIndex)
	assert.Equal(t, -431, p.StartNumber)
	assert.Equal(t, []string{"multiplyBy2", "mod9"}, p.OperationRaw)
	assert.Empty(t, p.PuzzleID)
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name       string
		page, cell int
		wantErr    error
	}{
		{"first cell", 0, 0, nil},
		{"last cell", 3, PageSize - 1, nil},
		{"negative page", -1, 0, ErrInvalidCoordinate},
		{"negative cell", 0, -1, ErrInvalidCoordinate},
		{"cell past page", 0, PageSize, ErrInvalidCoordinate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.page, tt.cell)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, err, (&Puzzle{PageIndex: tt.page, CellIndex: tt.cell}).Validate())
		})
	}
}

func TestAttemptValidate(t *testing.T) {
	assert.NoError(t, NewAttempt("p1", 3).Validate())
	assert.ErrorIs(t, NewAttempt("", 3).Validate(), ErrInvalidID)
	assert.ErrorIs(t, NewAttempt("p1", 0).Validate(), ErrInvalidMoves)
	assert.False(t, NewAttempt("p1", 3).CompletedAt.IsZero())
}
