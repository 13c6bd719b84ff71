package ordered

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDedup(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]string
		want  []string
	}{
		{"empty", nil, []string{}},
		{"no duplicates", [][]string{{"a", "b"}, {"c"}}, []string{"a", "b", "c"}},
		{"duplicate across lists keeps first position", [][]string{{"x", "y"}, {"a", "x", "b"}}, []string{"x", "y", "a", "b"}},
		{"duplicate within list", [][]string{{"a", "a", "b", "a"}}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedup(tt.lists...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Dedup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := NewSet(3, 1, 3, 2)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{3, 1, 2}, s.Items())
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(4))
	assert.True(t, s.Add(4))
	assert.False(t, s.Add(1))

	items := s.Items()
	items[0] = 99
	assert.Equal(t, 3, s.Items()[0], "Items must return a copy")

	var zero Set[string]
	assert.True(t, zero.Add("a"))
	assert.Equal(t, []string{"a"}, zero.Items())
}
