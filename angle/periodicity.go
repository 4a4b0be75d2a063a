package angle

import "math"

// Period of a Pauli exponential exp(-i·θ/2·P) in θ. The double cover of
// SU(2) makes it 4π, not 2π.
const Period = 4 * math.Pi

// FixPeriodicity reduces θ into [0, 4π).
func FixPeriodicity(theta float64) float64 {
	r := math.Mod(theta, Period)
	if r < 0 {
		r += Period
	}
	// -tiny + 4π rounds to 4π exactly
	if r >= Period {
		r -= Period
	}
	return r
}

// NearZero reports whether θ, after periodicity normalization, lies within
// threshold of 0 (from either side of the period).
func NearZero(theta, threshold float64) bool {
	r := FixPeriodicity(theta)
	return r <= threshold || Period-r <= threshold
}
