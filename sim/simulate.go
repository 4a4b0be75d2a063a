package sim

import (
	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/errors"
)

// NumQubits returns one more than the highest qubit any operation touches.
func NumQubits(seq circuit.Sequence) int {
	n := 0
	for _, op := range seq.Operations() {
		for _, q := range op.Targets() {
			n = max(n, q+1)
		}
		for _, q := range op.Controls() {
			n = max(n, q+1)
		}
	}
	return n
}

// Simulate runs seq on |0…0⟩ over max(numQubits, NumQubits(seq)) qubits.
func Simulate(seq circuit.Sequence, numQubits int, vars angle.Variables) (*StateVector, error) {
	state := NewStateVector(max(numQubits, NumQubits(seq), 1))
	if err := Run(state, seq, vars); err != nil {
		return nil, err
	}
	return state, nil
}

// Run applies every operation of seq to state in order. Every parameter must
// resolve against vars.
func Run(state *StateVector, seq circuit.Sequence, vars angle.Variables) error {
	if n := NumQubits(seq); n > state.NumQubits {
		return errors.Newf("circuit needs %d qubits, state has %d", n, state.NumQubits)
	}
	for i, op := range seq.Operations() {
		theta, err := op.Angle().Resolve(vars)
		if err != nil {
			return errors.Wrapf(err, "gate %d", i)
		}
		state.apply(op, theta)
	}
	return nil
}

func (s *StateVector) apply(op circuit.Operation, theta float64) {
	ctrl := mask(op.Controls())
	param := op.Parameter()
	unitPower := param == nil
	if c, ok := param.(angle.Constant); ok && c == 1 {
		unitPower = true
	}

	switch kind := op.Kind(); {
	case kind == circuit.Rx:
		for _, t := range op.Targets() {
			s.applyRX(t, ctrl, theta)
		}
	case kind == circuit.Ry:
		for _, t := range op.Targets() {
			s.applyRY(t, ctrl, theta)
		}
	case kind == circuit.Rz:
		for _, t := range op.Targets() {
			s.applyRZ(t, ctrl, theta)
		}
	case kind.Fixed() && unitPower:
		for _, t := range op.Targets() {
			switch kind {
			case circuit.H:
				s.applyH(t, ctrl)
			case circuit.X:
				s.applyX(t, ctrl)
			case circuit.Y:
				s.applyY(t, ctrl)
			case circuit.Z:
				s.applyZ(t, ctrl)
			}
		}
	default:
		s.ApplyGenerator(op.Generator(true), theta)
	}
}
