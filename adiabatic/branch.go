package adiabatic

import "math/cmplx"

// BranchTracker follows a square root along a path of closely spaced
// samples and keeps it continuous. The principal square root jumps sign
// whenever its argument crosses the negative real axis; the tracker undoes
// those jumps and counts them.
//
// A zero value is ready to use. It is not safe for concurrent use.
type BranchTracker struct {
	prev    complex128
	sign    complex128
	started bool
	jumps   int
}

// Follow takes the principal value of the next sample and returns the
// value on the branch continuous with the previous samples.
func (b *BranchTracker) Follow(principal complex128) complex128 {
	if !b.started {
		b.started = true
		b.sign = 1
		b.prev = principal
		return principal
	}

	candidate := b.sign * principal
	if cmplx.Abs(-candidate-b.prev) < cmplx.Abs(candidate-b.prev) {
		b.sign = -b.sign
		candidate = -candidate
		b.jumps++
	}
	b.prev = candidate
	return candidate
}

// Jumps returns how many times the principal branch deviated from the
// continuous one.
func (b *BranchTracker) Jumps() int {
	return b.jumps
}

// Flipped reports whether the continuous branch currently differs from the
// principal one.
func (b *BranchTracker) Flipped() bool {
	return b.started && b.sign == -1
}
