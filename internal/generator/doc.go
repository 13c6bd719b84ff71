// Package generator produces new puzzles: a balanced four-operation subset
// (Select) and a starting number derived from it (StartValue). Generator
// combines both and optionally checks, with a bounded breadth-first search,
// that the target is reachable before accepting a puzzle.
//
// Randomness is always injected through Rand so that callers and tests can
// replay a generation from a fixed seed.
package generator
