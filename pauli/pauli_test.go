package pauli

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgenenc/errors"
)

func TestNakedRendersAscendingQubits(t *testing.T) {
	s := New(1, map[int]Op{4: X, 2: Z, 0: Y})
	assert.Equal(t, "Y(0)Z(2)X(4)", s.Naked())
	assert.Equal(t, "YZX", s.Letters())
	assert.Equal(t, []int{0, 2, 4}, s.Qubits())
	assert.Equal(t, 3, s.Len())
}

func TestEqualIgnoresOrderAndCoeff(t *testing.T) {
	a, err := FromLetters(0.5, "XY", []int{0, 3})
	require.NoError(t, err)
	b, err := FromLetters(2, "YX", []int{3, 0})
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())

	c := New(0.5, map[int]Op{0: X, 3: Z})
	assert.False(t, a.Equal(c))
}

func TestParseSumErrorNamesInput(t *testing.T) {
	_, err := ParseSum("X(0)X(0)")
	require.Error(t, err)
	assert.EqualError(t, err, `parse "X(0)X(0)": qubit 0 appears twice in one term`)
	assert.EqualError(t, errors.UnwrapAll(err), "qubit 0 appears twice in one term")
}

func TestFromLettersRejectsBadInput(t *testing.T) {
	_, err := FromLetters(1, "XQ", []int{0, 1})
	assert.Error(t, err)
	_, err = FromLetters(1, "XX", []int{1, 1})
	assert.Error(t, err)
	_, err = FromLetters(1, "X", []int{0, 1})
	assert.Error(t, err)
}

func TestOpMul(t *testing.T) {
	cases := []struct {
		a, b  Op
		r     Op
		phase complex128
	}{
		{X, X, 0, 1},
		{X, Y, Z, 1i},
		{Y, X, Z, -1i},
		{Y, Z, X, 1i},
		{Z, Y, X, -1i},
		{Z, X, Y, 1i},
		{X, Z, Y, -1i},
	}
	for _, c := range cases {
		r, ph := c.a.Mul(c.b)
		assert.Equal(t, c.r, r, "%s·%s", c.a, c.b)
		assert.Equal(t, c.phase, ph, "%s·%s", c.a, c.b)
	}
}

func TestStringMul(t *testing.T) {
	a := New(2, map[int]Op{0: X, 1: Z})
	b := New(3, map[int]Op{1: Z, 2: Y})
	p, phase := a.Mul(b)
	assert.Equal(t, complex128(1), phase)
	assert.Equal(t, "X(0)Y(2)", p.Naked())
	assert.Equal(t, 6.0, p.Coeff)

	_, phase = Single(1, X, 0).Mul(Single(1, Y, 0))
	assert.Equal(t, 1i, phase)
}

func TestCommutes(t *testing.T) {
	xx := New(1, map[int]Op{0: X, 1: X})
	zz := New(1, map[int]Op{0: Z, 1: Z})
	zi := Single(1, Z, 0)
	assert.True(t, xx.Commutes(zz))
	assert.False(t, xx.Commutes(zi))
	assert.True(t, Sum{xx, zz}.Commuting())
	assert.False(t, Sum{xx, zz, zi}.Commuting())
}

func TestSumMulAndSimplify(t *testing.T) {
	// (X(4) - I)·(0.5 - 0.5 Z(2))
	g := Sum{Single(1, X, 4), Identity(-1)}
	proj := Sum{Identity(0.5), Single(-0.5, Z, 2)}
	prod, err := g.Mul(proj)
	require.NoError(t, err)
	prod = prod.Simplify()
	require.Len(t, prod, 4)
	assert.Equal(t, "+0.5000X(4)-0.5000Z(2)X(4)-0.5000+0.5000Z(2)", prod.String())

	merged := Sum{Single(1, X, 0), Single(2, X, 0), Single(1, Z, 1), Single(-1, Z, 1)}.Simplify()
	require.Len(t, merged, 1)
	assert.Equal(t, 3.0, merged[0].Coeff)
}

func TestSumMulRejectsImaginary(t *testing.T) {
	_, err := Sum{Single(1, X, 0)}.Mul(Sum{Single(1, Z, 0)})
	assert.Error(t, err)
}

func TestParseSum(t *testing.T) {
	s, err := ParseSum("1.0X(0)Y(1)+0.5Z(2)")
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, "X(0)Y(1)", s[0].Naked())
	assert.Equal(t, 1.0, s[0].Coeff)
	assert.Equal(t, "Z(2)", s[1].Naked())
	assert.Equal(t, 0.5, s[1].Coeff)

	s, err = ParseSum(" -X(3) + 2*y(0)Z(1) - 1e-05Z(7) ")
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.Equal(t, -1.0, s[0].Coeff)
	assert.Equal(t, "Y(0)Z(1)", s[1].Naked())
	assert.Equal(t, 2.0, s[1].Coeff)
	assert.InDelta(t, -1e-5, s[2].Coeff, 1e-18)

	s, err = ParseSum("0.2500")
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.True(t, s[0].IsIdentity())
}

func TestParseSumErrors(t *testing.T) {
	for _, bad := range []string{
		"",
		"X",
		"X(",
		"X(a)",
		"X(0)X(0)",
		"X(0)Q(1)",
		"1.0.0X(0)",
		"X(0)+",
		"X(0)*Y(1)",
	} {
		_, err := ParseSum(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	orig := New(12.0664, map[int]Op{4: X, 2: Z})
	back, err := ParseString(orig.String())
	require.NoError(t, err)
	assert.True(t, orig.Equal(back))
	assert.InDelta(t, orig.Coeff, back.Coeff, 1e-12)

	_, err = ParseString("X(0)+Y(1)")
	assert.Error(t, err)
}

func TestSumScale(t *testing.T) {
	s := Sum{Single(1, X, 0), Single(-2, Y, 1)}.Scale(math.Pi)
	assert.InDelta(t, math.Pi, s[0].Coeff, 1e-12)
	assert.InDelta(t, -2*math.Pi, s[1].Coeff, 1e-12)
}
