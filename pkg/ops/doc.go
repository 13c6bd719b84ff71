// Package ops defines the closed registry of operations a player can apply to
// the current number, together with the classification used to balance the
// operation set of a puzzle.
//
// Every transform is pure. A transform reports an illegal move through its
// second return value; digit-based transforms work on the absolute value and
// never clamp magnitude or enforce usage limits.
package ops
