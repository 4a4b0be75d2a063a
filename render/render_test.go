package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/errors"
	"qgenenc/pauli"
)

func bell() *circuit.Circuit {
	return circuit.New(circuit.Hadamard(0), circuit.PauliX(1, 0))
}

func TestDiagramPlain(t *testing.T) {
	out := Diagram(bell(), PlainStyles())
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "q[0]")
	assert.Contains(t, out, "q[1]")
	assert.Contains(t, out, "┤ H ├")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "⊕")

	// header plus three lines per qubit
	assert.Equal(t, 7, strings.Count(out, "\n"))
}

func TestDiagramANSI(t *testing.T) {
	out := Diagram(bell(), ANSIStyles())
	assert.Contains(t, out, "\x1b[")
}

func TestDiagramEmpty(t *testing.T) {
	assert.Contains(t, Diagram(circuit.New(), PlainStyles()), "empty circuit")
}

func TestDiagramLabels(t *testing.T) {
	ps := pauli.New(1, map[int]pauli.Op{0: pauli.X, 2: pauli.Y})
	c := circuit.New(
		circuit.RotX(angle.Symbol("theta"), 1),
		circuit.Exp(ps, angle.Constant(0.5)),
		circuit.NewGate(circuit.Z, []int{1}, nil, angle.Constant(0.5)),
	)
	out := Diagram(c, PlainStyles())
	assert.Contains(t, out, "Rx(theta)")
	assert.Contains(t, out, "X(0.5)")
	assert.Contains(t, out, "┤ Y ├")
	assert.Contains(t, out, "Z^0.5")
	// the ExpPauli spans q[1] without acting on it
	assert.Contains(t, out, "┼")
}

func TestLayersPackDisjointGates(t *testing.T) {
	c := circuit.New(
		circuit.RotX(angle.Constant(1), 0),
		circuit.RotX(angle.Constant(1), 2),
		circuit.PauliX(1, 0),
		circuit.RotZ(angle.Constant(1), 2),
	)
	cols := layers(c)
	require.Len(t, cols, 2)
	assert.Len(t, cols[0].gates, 2)
	assert.Len(t, cols[1].gates, 2)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		".txt": FormatText, "text": FormatText, "ANSI": FormatANSI,
		"json": FormatJSON, ".yml": FormatYAML, "qasm": FormatQASM,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := FormatFor("circuit.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestExpand(t *testing.T) {
	cx := circuit.New(circuit.PauliX(1, 0))

	decomposed := Expand(cx, true)
	require.Equal(t, 3, decomposed.Len())
	for _, g := range decomposed.Gates {
		assert.Equal(t, circuit.ExpPauli, g.Kind())
		assert.Empty(t, g.Controls())
	}

	kept := Expand(cx, false)
	require.Equal(t, 1, kept.Len())
	assert.Equal(t, []int{0}, kept.Gates[0].Controls())
	ps, _ := kept.Gates[0].PauliString()
	assert.Equal(t, "X(1)", ps.Naked())
}

func TestExportFormats(t *testing.T) {
	dir := t.TempDir()
	c := circuit.New(circuit.RotX(angle.Constant(2.5), 0), circuit.PauliX(1, 0))

	for _, f := range Formats {
		path := filepath.Join(dir, "circuit."+string(f))
		require.NoError(t, Export(c, path, Options{}), f)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, data, f)
	}

	back, err := circuit.LoadFile(filepath.Join(dir, "circuit.json"))
	require.NoError(t, err)
	assert.Equal(t, c.Len(), back.Len())

	back, err = circuit.LoadFile(filepath.Join(dir, "circuit.qasm"))
	require.NoError(t, err)
	assert.Equal(t, c.Len(), back.Len())
}

func TestExportErrors(t *testing.T) {
	dir := t.TempDir()
	sym := circuit.New(circuit.RotX(angle.Symbol("a"), 0))

	err := Export(sym, filepath.Join(dir, "c.qasm"), Options{})
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))

	err = Export(sym, filepath.Join(dir, "c.png"), Options{})
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))

	err = Export(sym, filepath.Join(dir, "missing", "c.txt"), Options{})
	assert.Error(t, err)
}
