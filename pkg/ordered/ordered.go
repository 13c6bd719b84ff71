// Package ordered provides an insertion-ordered set.
package ordered

// Set keeps the first occurrence of each element in insertion order.
// Membership checks are O(1); iteration is O(n).
type Set[T comparable] struct {
	seen  map[T]struct{}
	items []T
}

// NewSet returns a set holding the first occurrence of each item.
func NewSet[T comparable](items ...T) *Set[T] {
	s := &Set[T]{seen: make(map[T]struct{}, len(items))}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add appends v unless it is already present. It reports whether v was added.
func (s *Set[T]) Add(v T) bool {
	if s.seen == nil {
		s.seen = make(map[T]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.seen[v]
	return ok
}

// Len returns the number of distinct elements.
func (s *Set[T]) Len() int { return len(s.items) }

// Items returns a copy of the elements in first-seen order.
func (s *Set[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Dedup concatenates the given slices and drops repeated elements, keeping
// the position of each first occurrence.
func Dedup[T comparable](lists ...[]T) []T {
	s := &Set[T]{}
	for _, l := range lists {
		for _, v := range l {
			s.Add(v)
		}
	}
	return s.Items()
}
