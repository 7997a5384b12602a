package entities

import "math"

const FullTurn = 360.0

// SpinOutcome is the result of a wheel spin. It is decided before the
// animation starts; the animation only eases the wheel towards Rotation.
type SpinOutcome struct {
	Index    int      // index of the chosen category in wheel order
	Category Category // chosen category
	Spins    int      // whole turns added for visual effect
	Rotation float64  // total rotation in degrees: Spins*360 + Index*degreesPerCategory
}

// DegreesPerCategory returns the width of a single wheel segment.
func DegreesPerCategory(count int) float64 {
	if count <= 0 {
		return 0
	}
	return FullTurn / float64(count)
}

// RotationFor builds the total rotation for the given number of whole
// turns and the segment index.
func RotationFor(spins, index, count int) float64 {
	return float64(spins)*FullTurn + float64(index)*DegreesPerCategory(count)
}

// IndexAtAngle returns the segment under a pointer fixed at angle 0 for a
// wheel rotated by angle degrees.
func IndexAtAngle(angle float64, count int) int {
	if count <= 0 {
		return 0
	}

	a := math.Mod(angle, FullTurn)
	if a < 0 {
		a += FullTurn
	}

	// Round to absorb float noise near segment boundaries.
	idx := int(math.Round(a/DegreesPerCategory(count)*1e6) / 1e6)
	return idx % count
}

// IndicatedIndex returns the segment that a pointer at angle 0 points to
// once the wheel rests at o.Rotation.
func (o SpinOutcome) IndicatedIndex(count int) int {
	return IndexAtAngle(o.Rotation, count)
}
