package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/pauli"
)

const tol = 1e-9

// scrambled returns a state with non-trivial amplitudes on every basis state.
func scrambled(t *testing.T, n int) *StateVector {
	t.Helper()
	c := circuit.New()
	for q := range n {
		c.Add(
			circuit.RotY(angle.Constant(0.3+0.4*float64(q)), q),
			circuit.RotZ(angle.Constant(1.1-0.2*float64(q)), q),
		)
	}
	for q := 1; q < n; q++ {
		c.Add(circuit.RotX(angle.Constant(0.7), q, q-1))
	}
	s, err := Simulate(c, n, nil)
	require.NoError(t, err)
	return s
}

func assertStatesEqual(t *testing.T, want, got *StateVector) {
	t.Helper()
	require.Len(t, got.Amplitudes, len(want.Amplitudes))
	for i := range want.Amplitudes {
		assert.InDelta(t, real(want.Amplitudes[i]), real(got.Amplitudes[i]), tol, "re[%d]", i)
		assert.InDelta(t, imag(want.Amplitudes[i]), imag(got.Amplitudes[i]), tol, "im[%d]", i)
	}
}

func TestPauliY(t *testing.T) {
	s := NewStateVector(1)
	s.applyY(0, 0)
	assert.Equal(t, Complex(0), s.Amplitudes[0])
	assert.Equal(t, Complex(1i), s.Amplitudes[1])
}

func TestPauliExpMatchesRotations(t *testing.T) {
	for _, c := range []struct {
		op    pauli.Op
		apply func(*StateVector, int, int, float64)
	}{
		{pauli.X, (*StateVector).applyRX},
		{pauli.Y, (*StateVector).applyRY},
		{pauli.Z, (*StateVector).applyRZ},
	} {
		want := scrambled(t, 3)
		got := want.Clone()
		c.apply(want, 1, 0, 0.9)
		got.ApplyPauliExp(pauli.Single(1, c.op, 1), 0.9)
		assertStatesEqual(t, want, got)
	}
}

func TestPauliExpCoefficient(t *testing.T) {
	want := scrambled(t, 2)
	got := want.Clone()
	want.ApplyPauliExp(pauli.New(1, map[int]pauli.Op{0: pauli.X, 1: pauli.Y}), 1.5)
	got.ApplyPauliExp(pauli.New(3, map[int]pauli.Op{0: pauli.X, 1: pauli.Y}), 0.5)
	assertStatesEqual(t, want, got)
}

func TestGeneratorMatchesFixedGates(t *testing.T) {
	gates := []circuit.Gate{
		circuit.Hadamard(0),
		circuit.Hadamard(2, 0),
		circuit.PauliX(1, 2),
		circuit.PauliY(0, 1, 2),
		circuit.PauliZ(2),
		circuit.RotX(angle.Constant(1.3), 1, 0),
		circuit.RotZ(angle.Constant(-0.4), 0, 1, 2),
	}
	for _, g := range gates {
		theta, err := g.Angle().Resolve(nil)
		require.NoError(t, err)

		want := scrambled(t, 3)
		got := want.Clone()
		want.apply(g, theta)
		got.ApplyGenerator(g.Generator(true), theta)
		assertStatesEqual(t, want, got)
	}
}

func TestFractionalPower(t *testing.T) {
	// T = Z^0.25 is diag(1, e^{iπ/4})
	s := NewBasisState(1, 1)
	require.NoError(t, Run(s, circuit.New(circuit.NewGate(circuit.Z, []int{0}, nil, angle.Constant(0.25))), nil))
	assert.InDelta(t, math.Cos(math.Pi/4), real(s.Amplitudes[1]), tol)
	assert.InDelta(t, math.Sin(math.Pi/4), imag(s.Amplitudes[1]), tol)
}

func TestSimulateBell(t *testing.T) {
	s, err := Simulate(circuit.New(circuit.Hadamard(0), circuit.PauliX(1, 0)), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumQubits)
	assert.InDelta(t, 1/math.Sqrt2, real(s.Amplitudes[0]), tol)
	assert.InDelta(t, 1/math.Sqrt2, real(s.Amplitudes[3]), tol)

	for _, p := range s.QubitProbabilities() {
		assert.InDelta(t, 0.5, p.Prob0, tol)
		assert.InDelta(t, 0.5, p.Prob1, tol)
	}
	assert.InDelta(t, 1, s.Norm(), tol)
}

func TestRunResolvesVariables(t *testing.T) {
	c := circuit.New(circuit.RotX(angle.Symbol("a"), 0))

	_, err := Simulate(c, 1, nil)
	var unresolved *angle.UnresolvedError
	require.ErrorAs(t, err, &unresolved)

	s, err := Simulate(c, 1, angle.Variables{"a": math.Pi})
	require.NoError(t, err)
	assert.InDelta(t, 1, real(s.Amplitudes[1]*complex(0, 1)), tol)
}

func TestRunRejectsSmallState(t *testing.T) {
	err := Run(NewStateVector(1), circuit.New(circuit.PauliX(3)), nil)
	assert.Error(t, err)
}

func TestEqualUpToPhase(t *testing.T) {
	a := scrambled(t, 2)
	b := a.Clone()
	for i := range b.Amplitudes {
		b.Amplitudes[i] *= complex(math.Cos(0.8), math.Sin(0.8))
	}
	assert.True(t, a.EqualUpToPhase(b, tol))

	b.applyX(0, 0)
	assert.False(t, a.EqualUpToPhase(b, tol))
	assert.False(t, a.EqualUpToPhase(NewStateVector(3), tol))
}
