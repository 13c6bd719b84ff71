package generator

import "github.com/mesh-intelligence/nine/pkg/ops"

// Target is the value every puzzle must reach.
const Target = ops.Target

// Options tune puzzle generation.
type Options struct {
	MinSteps int // shortest walk from the target
	MaxSteps int // longest walk from the target

	// VerifySolvable regenerates a puzzle whose target cannot be reached
	// within SolverDepth moves. After MaxRegenerations failed attempts the
	// last candidate is kept unverified.
	VerifySolvable   bool
	SolverDepth      int
	MaxRegenerations int

	// MaxDraws bounds the operation selector's reject-and-retry loop.
	MaxDraws int
}

// DefaultOptions returns the generation defaults.
func DefaultOptions() Options {
	return Options{
		MinSteps:         4,
		MaxSteps:         7,
		VerifySolvable:   true,
		SolverDepth:      12,
		MaxRegenerations: 32,
		MaxDraws:         DefaultMaxDraws,
	}
}

// Puzzle is a generated start value and operation subset.
type Puzzle struct {
	Operations []ops.ID
	Start      int

	// Verified is true when Solve found a path; MinMoves is its length.
	Verified bool
	MinMoves int

	// Attempts counts candidates generated, including the accepted one.
	Attempts int
	// Draws counts selector draws across all candidates.
	Draws int
}

// Generator creates puzzles from an injected random source. It is not safe
// for concurrent use; give each goroutine its own Generator.
type Generator struct {
	rng  Rand
	opts Options
}

// New returns a Generator. Zero-valued limits in opts fall back to
// DefaultOptions.
func New(rng Rand, opts Options) *Generator {
	def := DefaultOptions()
	if opts.MinSteps <= 0 {
		opts.MinSteps = def.MinSteps
	}
	if opts.MaxSteps < opts.MinSteps {
		opts.MaxSteps = max(def.MaxSteps, opts.MinSteps)
	}
	if opts.SolverDepth <= 0 {
		opts.SolverDepth = def.SolverDepth
	}
	if opts.MaxRegenerations <= 0 {
		opts.MaxRegenerations = def.MaxRegenerations
	}
	if opts.MaxDraws <= 0 {
		opts.MaxDraws = def.MaxDraws
	}
	return &Generator{rng: rng, opts: opts}
}

// Options returns the effective options.
func (g *Generator) Options() Options { return g.opts }

// Select picks an operation subset for seed.
func (g *Generator) Select(seed int) []ops.ID {
	ids, _ := selectN(g.rng, seed, g.opts.MaxDraws)
	return ids
}

// StartValue derives a start value for operations at sequenceIndex.
func (g *Generator) StartValue(operations []ops.ID, sequenceIndex int) int {
	return StartValue(g.rng, operations, sequenceIndex, g.opts.MinSteps, g.opts.MaxSteps, Target)
}

// Generate creates the puzzle for sequenceIndex. Operations are selected with
// the target as seed, so mod10 is never part of a generated subset.
func (g *Generator) Generate(sequenceIndex int) Puzzle {
	var p Puzzle
	for p.Attempts < g.opts.MaxRegenerations {
		ids, draws := selectN(g.rng, Target, g.opts.MaxDraws)
		p.Attempts++
		p.Draws += draws
		p.Operations = ids
		p.Start = g.StartValue(ids, sequenceIndex)
		if !g.opts.VerifySolvable {
			return p
		}
		if moves, ok := Solve(p.Start, ids, Target, g.opts.SolverDepth); ok {
			p.Verified = true
			p.MinMoves = moves
			return p
		}
	}
	return p
}
