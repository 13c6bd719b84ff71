package generator

import "github.com/mesh-intelligence/nine/pkg/ops"

// Start value bounds.
const (
	MaxMagnitude = 99_999
	trivialLimit = 20
)

// magnitudeClass is the scale and sign forced onto a start value.
type magnitudeClass int

const (
	bigPositive magnitudeClass = iota
	smallPositive
	smallNegative
	bigNegative
)

// magnitudeCycle assigns classes to consecutive sequence indexes.
var magnitudeCycle = []magnitudeClass{bigPositive, smallPositive, smallNegative, bigNegative}

func classFor(sequenceIndex int) magnitudeClass {
	i := sequenceIndex % len(magnitudeCycle)
	if i < 0 {
		i += len(magnitudeCycle)
	}
	return magnitudeCycle[i]
}

// StartValue derives a starting number for a puzzle using operations.
//
// It walks forward from target for a random number of steps in
// [minSteps, maxSteps], applying a random operation each step and skipping
// steps whose operation is illegal for the current value. The walk result is
// then forced into the magnitude class of sequenceIndex, moved away from
// trivial values and clamped to [-MaxMagnitude, MaxMagnitude].
func StartValue(r Rand, operations []ops.ID, sequenceIndex, minSteps, maxSteps, target int) int {
	value := walk(r, operations, minSteps, maxSteps, target)
	magnitude, sign := shape(r, classFor(sequenceIndex), value)
	magnitude = normalize(r, magnitude, target)
	return clamp(sign * magnitude)
}

func walk(r Rand, operations []ops.ID, minSteps, maxSteps, target int) int {
	value := target
	if len(operations) == 0 {
		return value
	}
	if maxSteps < minSteps {
		maxSteps = minSteps
	}
	steps := between(r, minSteps, maxSteps)
	for i := 0; i < steps; i++ {
		if next, ok := ops.Apply(pick(r, operations), value); ok {
			value = next
		}
	}
	return value
}

// shape returns the magnitude and sign dictated by class.
func shape(r Rand, class magnitudeClass, value int) (int, int) {
	abs := absInt(value)
	switch class {
	case bigPositive, bigNegative:
		scale := between(r, 10_000, MaxMagnitude)
		if abs != 0 {
			abs = scale
		}
	default:
		abs %= 1_000
	}
	if class == smallNegative || class == bigNegative {
		return abs, -1
	}
	return abs, 1
}

// normalize keeps the magnitude away from zero, the target and the trivial
// range.
func normalize(r Rand, magnitude, target int) int {
	switch {
	case magnitude == 0:
		return between(r, 21, 99)
	case magnitude == target:
		return target + between(r, 12, 25)
	case magnitude <= trivialLimit:
		return between(r, 21, 99)
	}
	return magnitude
}

func clamp(n int) int {
	return max(min(n, MaxMagnitude), -MaxMagnitude)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
