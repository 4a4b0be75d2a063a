package generator

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/pauli"
)

func TestMakeConnectivity(t *testing.T) {
	all, err := MakeConnectivity(AllToAll, 3)
	require.NoError(t, err)
	assert.Equal(t, Connectivity{0: {1, 2}, 1: {0, 2}, 2: {0, 1}}, all)

	line, err := MakeConnectivity("LOCAL_LINE", 4)
	require.NoError(t, err)
	assert.Equal(t, Connectivity{0: {1}, 1: {2, 0}, 2: {3, 1}, 3: {2}}, line)

	ring, err := MakeConnectivity(LocalRing, 4)
	require.NoError(t, err)
	assert.Equal(t, Connectivity{0: {1, 3}, 1: {2, 0}, 2: {3, 1}, 3: {0, 2}}, ring)

	small, err := MakeConnectivity(LocalRing, 2)
	require.NoError(t, err)
	assert.Equal(t, Connectivity{0: {1}, 1: {0}}, small)

	for _, layout := range Layouts {
		single, err := MakeConnectivity(layout, 1)
		require.NoError(t, err, layout)
		assert.Equal(t, Connectivity{0: {}}, single, layout)
		assert.NoError(t, single.Validate(), layout)
	}
}

func TestMakeConnectivityErrors(t *testing.T) {
	_, err := MakeConnectivity("star", 3)
	assert.ErrorContains(t, err, "unknown connectivity")

	_, err = MakeConnectivity(AllToAll, 0)
	assert.Error(t, err)

	_, err = ConnectivityFromCircuit(circuit.New(circuit.PauliX(1, 0)))
	assert.Error(t, err)

	assert.Error(t, Connectivity{0: {5}}.Validate())
	assert.Error(t, Connectivity{0: {0}}.Validate())
	assert.Error(t, Connectivity{}.Validate())
}

func TestNormalizeGenerator(t *testing.T) {
	for in, want := range map[string]string{"yx": "XY", "ZZ": "ZZ", " zxy ": "XYZ"} {
		got, err := NormalizeGenerator(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := NormalizeGenerator("XA")
	assert.Error(t, err)
	_, err = NormalizeGenerator("")
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	g, err := New(3, WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumQubits())
	assert.Equal(t, 3, g.Depth())
	assert.Equal(t, []int{0, 1, 2}, g.Qubits())
	assert.Equal(t, DefaultGenerators, g.Generators())
	assert.Equal(t, 2, g.MaxCoupling())
	assert.Contains(t, g.String(), "all_to_all")

	_, err = New(3, WithGenerators("XQ"))
	assert.Error(t, err)
	_, err = New(3, WithGenerators())
	assert.Error(t, err)
	_, err = New(3, WithDepth(-1))
	assert.Error(t, err)
	_, err = New(0)
	assert.Error(t, err)

	custom, err := New(0, WithConnectivity(Connectivity{4: {7}, 7: {4}}), WithGenerators("yx", "Z"))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 7}, custom.Qubits())
	assert.Equal(t, 2, custom.Depth())
	assert.Equal(t, []string{"XY", "Z"}, custom.Generators())
}

// checkCoupling asserts that every gate acts on qubits that are neighbours
// in conn.
func checkCoupling(t *testing.T, c *circuit.Circuit, conn Connectivity) {
	t.Helper()
	for _, g := range c.Gates {
		require.Equal(t, circuit.ExpPauli, g.Kind())
		qs := g.Targets()
		for i, a := range qs {
			for _, b := range qs[i+1:] {
				assert.True(t, slices.Contains(conn[a], b), "gate %s couples %d and %d", g, a, b)
			}
		}
	}
}

func TestRandomRespectsConnectivity(t *testing.T) {
	for _, layout := range Layouts {
		g, err := New(5, WithLayout(layout), WithDepth(6), WithSeed(42))
		require.NoError(t, err)
		c := g.Random(nil)
		require.NoError(t, c.Validate())
		assert.NotZero(t, c.Len(), layout)
		assert.LessOrEqual(t, c.Len(), 6*5)
		assert.LessOrEqual(t, c.NumQubits(), 5)
		checkCoupling(t, c, g.Connectivity())
	}
}

func TestRandomOneMomentUsesEachQubitOnce(t *testing.T) {
	g, err := New(6, WithDepth(1), WithSeed(3))
	require.NoError(t, err)
	c := g.Random(nil)
	seen := map[int]bool{}
	for _, gate := range c.Gates {
		for _, q := range gate.Targets() {
			assert.False(t, seen[q], "qubit %d used twice", q)
			seen[q] = true
		}
	}
	// all_to_all never strands a qubit: single-qubit primitives fill in
	assert.Len(t, seen, 6)
}

func TestRandomAngleNames(t *testing.T) {
	g, err := New(2, WithGenerators("X", "ZZ"), WithFixedAngles(map[string]float64{"zz": 0.5}), WithSeed(9))
	require.NoError(t, err)
	c := g.Random(nil)
	for i, gate := range c.Gates {
		ps, _ := gate.PauliString()
		switch ps.Letters() {
		case "ZZ":
			assert.Equal(t, angle.Constant(0.5), gate.Parameter())
		case "X":
			assert.Equal(t, angle.Symbol("a_X_"+strconv.Itoa(i)), gate.Parameter())
		default:
			t.Fatalf("unexpected generator %s", ps)
		}
	}
}

func TestRandomSkipsRepeatOfPastMoment(t *testing.T) {
	// one qubit and a single primitive: every moment repeats the one before
	g, err := New(1, WithGenerators("Z"), WithDepth(4), WithSeed(5))
	require.NoError(t, err)

	c := g.Random(nil)
	require.Equal(t, 1, c.Len(), "a skipped repeat still counts as drawn")
	ps, _ := c.Gates[0].PauliString()
	assert.True(t, ps.Equal(pauli.Single(1, pauli.Z, 0)))

	past := circuit.New(circuit.RotZ(angle.Constant(1), 0))
	assert.Zero(t, g.Random(past).Len())

	other := g.RandomAfter([]pauli.String{pauli.Single(1, pauli.X, 0)})
	assert.Equal(t, 1, other.Len())
}

func TestPastMoment(t *testing.T) {
	ps := PastMoment(circuit.New(circuit.RotX(angle.Symbol("a"), 1), circuit.PauliZ(0)))
	require.Len(t, ps, 2)
	assert.Equal(t, "X(1)", ps[0].Naked())
	assert.Equal(t, "Z(0)", ps[1].Naked())
	assert.Nil(t, PastMoment(nil))
}

func TestRandomUnplaceableTerminates(t *testing.T) {
	// two-qubit primitives on a line of three always strand one qubit
	g, err := New(3, WithLayout(LocalLine), WithGenerators("XX"), WithDepth(3), WithSeed(11))
	require.NoError(t, err)
	c := g.Random(nil)
	assert.Positive(t, c.Len())
	for _, gate := range c.Gates {
		assert.Len(t, gate.Targets(), 2)
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a, err := New(4, WithSeed(77))
	require.NoError(t, err)
	b, err := New(4, WithSeed(77))
	require.NoError(t, err)
	assert.Equal(t, a.Random(nil).String(), b.Random(nil).String())
}
