package sim

import (
	"math"
	"math/cmplx"

	"qgenenc/pauli"
)

// applyPauli returns P|s⟩ for the operator part of ps, coefficient ignored.
func (s *StateVector) applyPauli(ps pauli.String) []Complex {
	flip, ys, zs := 0, 0, 0
	nY := 0
	for q, op := range ps.Ops() {
		switch op {
		case pauli.X:
			flip |= 1 << q
		case pauli.Y:
			flip |= 1 << q
			ys |= 1 << q
			nY++
		case pauli.Z:
			zs |= 1 << q
		}
	}
	// Y = i·X·Z, so P = i^nY · X^flip · Z^(ys|zs)
	base := []Complex{1, 1i, -1, -1i}[nY%4]
	phaseMask := ys | zs

	out := make([]Complex, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		if amp == 0 {
			continue
		}
		ph := base
		if parity(i&phaseMask) {
			ph = -ph
		}
		out[i^flip] += ph * amp
	}
	return out
}

func parity(x int) bool {
	odd := false
	for x != 0 {
		odd = !odd
		x &= x - 1
	}
	return odd
}

// ApplyPauliExp applies exp(-i·θ/2·ps), the coefficient of ps included.
func (s *StateVector) ApplyPauliExp(ps pauli.String, theta float64) {
	half := theta * ps.Coeff / 2
	if ps.IsIdentity() {
		ph := cmplx.Exp(complex(0, -half))
		for i := range s.Amplitudes {
			s.Amplitudes[i] *= ph
		}
		return
	}
	p := s.applyPauli(ps)
	c := complex(math.Cos(half), 0)
	js := complex(0, -math.Sin(half))
	for i := range s.Amplitudes {
		s.Amplitudes[i] = c*s.Amplitudes[i] + js*p[i]
	}
}

// applySum returns G|s⟩ for a weighted Pauli sum.
func (s *StateVector) applySum(gen pauli.Sum) []Complex {
	out := make([]Complex, len(s.Amplitudes))
	for _, term := range gen {
		c := complex(term.Coeff, 0)
		if term.IsIdentity() {
			for i, amp := range s.Amplitudes {
				out[i] += c * amp
			}
			continue
		}
		p := s.applyPauli(term)
		for i := range out {
			out[i] += c * p[i]
		}
	}
	return out
}

// ApplyGenerator applies exp(-i·θ/2·G). Commuting terms are applied one
// after the other; otherwise the exponential is summed as a Taylor series
// over enough slices to keep every slice's norm below one.
func (s *StateVector) ApplyGenerator(gen pauli.Sum, theta float64) {
	if gen.Commuting() {
		for _, term := range gen {
			s.ApplyPauliExp(term, theta)
		}
		return
	}

	bound := 0.0
	for _, term := range gen {
		bound += math.Abs(term.Coeff)
	}
	bound *= math.Abs(theta) / 2
	parts := max(1, int(math.Ceil(bound)))
	step := complex(0, -theta/2/float64(parts))

	const tol = 1e-15
	for range parts {
		cur := s.Clone()
		acc := s.Clone()
		for k := 1; k < 64; k++ {
			next := cur.applySum(gen)
			f := step / complex(float64(k), 0)
			size := 0.0
			for i := range next {
				next[i] *= f
				acc.Amplitudes[i] += next[i]
				size += real(next[i] * cmplx.Conj(next[i]))
			}
			cur.Amplitudes = next
			if size < tol*tol {
				break
			}
		}
		s.Amplitudes = acc.Amplitudes
	}
}
