// Package sim is a dense state-vector simulator for checking that circuits
// act the same and for showing qubit probabilities in the inspector.
package sim

import (
	"math"
	"math/cmplx"
)

type Complex = complex128

// StateVector holds 2^NumQubits amplitudes. Qubit q is bit q of the index.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns |0…0⟩ on numQubits qubits.
func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// NewBasisState returns the computational basis state |index⟩.
func NewBasisState(numQubits, index int) *StateVector {
	s := NewStateVector(numQubits)
	s.Amplitudes[0] = 0
	s.Amplitudes[index] = 1
	return s
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// mask returns the bit mask of qubits.
func mask(qubits []int) int {
	m := 0
	for _, q := range qubits {
		m |= 1 << q
	}
	return m
}

// The apply helpers only touch amplitudes whose control bits are all set.

func (s *StateVector) applyH(q, ctrl int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 && i&ctrl == ctrl {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a + b)
			s.Amplitudes[j] = hFactor * (a - b)
		}
	}
}

func (s *StateVector) applyX(q, ctrl int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 && i&ctrl == ctrl {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q, ctrl int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 && i&ctrl == ctrl {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q, ctrl int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 && i&ctrl == ctrl {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyRX(q, ctrl int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		if i&bit == 0 && i&ctrl == ctrl {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a + js*b
			s.Amplitudes[j] = js*a + c*b
		}
	}
}

func (s *StateVector) applyRY(q, ctrl int, theta float64) {
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	for i := range s.Amplitudes {
		if i&bit == 0 && i&ctrl == ctrl {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a - sn*b
			s.Amplitudes[j] = sn*a + c*b
		}
	}
}

func (s *StateVector) applyRZ(q, ctrl int, theta float64) {
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := range s.Amplitudes {
		if i&ctrl != ctrl {
			continue
		}
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal probability of each qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, amp := range s.Amplitudes {
		prob := real(amp * cmplx.Conj(amp))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}

// Norm returns the 2-norm of the state.
func (s *StateVector) Norm() float64 {
	sum := 0.0
	for _, amp := range s.Amplitudes {
		sum += real(amp * cmplx.Conj(amp))
	}
	return math.Sqrt(sum)
}

// Inner returns ⟨s|o⟩.
func (s *StateVector) Inner(o *StateVector) Complex {
	var sum Complex
	for i, amp := range s.Amplitudes {
		sum += cmplx.Conj(amp) * o.Amplitudes[i]
	}
	return sum
}

// EqualUpToPhase reports whether s and o differ by at most a global phase.
func (s *StateVector) EqualUpToPhase(o *StateVector, tol float64) bool {
	if len(s.Amplitudes) != len(o.Amplitudes) {
		return false
	}
	return math.Abs(cmplx.Abs(s.Inner(o))-s.Norm()*o.Norm()) <= tol
}
