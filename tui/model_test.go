package tui

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgenenc/angle"
	"qgenenc/errors"
	"qgenenc/generator"
	"qgenenc/render"
)

func newTestModel(t *testing.T, input string) Model {
	t.Helper()
	gen, err := generator.New(3, generator.WithSeed(4))
	require.NoError(t, err)
	st := render.PlainStyles()
	m := New(Options{
		Generator:  gen,
		Input:      input,
		ExportPath: filepath.Join(t.TempDir(), "circuit.yaml"),
		Styles:     &st,
	})
	return update(t, m, tea.WindowSizeMsg{Width: 140, Height: 50})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestLoadingBeforeSize(t *testing.T) {
	assert.Equal(t, "Loading...", New(Options{}).View())
}

func TestTypingDecodesLive(t *testing.T) {
	m := newTestModel(t, "")
	m = typeText(t, m, "@1.0000X(0)|")
	require.NoError(t, m.Err())
	assert.Equal(t, 1, m.Circuit().Len())

	require.NotNil(t, m.state)
	p := m.state.QubitProbabilities()
	assert.InDelta(t, math.Pow(math.Sin(0.5), 2), p[0].Prob1, 1e-9)

	view := m.View()
	assert.Contains(t, view, "q[0]")
	assert.Contains(t, view, "P(1)=0.230")
}

func TestDecodeErrorKeepsLastCircuit(t *testing.T) {
	m := newTestModel(t, "@1.0000X(0)|")
	m = typeText(t, m, "@@")
	require.Error(t, m.Err())
	assert.True(t, errors.IsDecodeFormatError(m.Err()))
	assert.Equal(t, 1, m.Circuit().Len())
	assert.Contains(t, m.View(), "✗")
}

func TestRandomAndReset(t *testing.T) {
	m := newTestModel(t, "")
	m = update(t, m, key(tea.KeyCtrlG))
	assert.NotEmpty(t, m.Input())
	assert.Positive(t, m.Circuit().Len())
	// generated angles are symbolic, so nothing can be simulated yet
	assert.Nil(t, m.state)
	assert.Contains(t, m.note, "unresolved")

	m = update(t, m, key(tea.KeyCtrlR))
	assert.Empty(t, m.Input())
	assert.Zero(t, m.Circuit().Len())
	assert.Equal(t, "Reset", m.statusMsg)
}

func TestSetVariable(t *testing.T) {
	m := newTestModel(t, "theta@1.0000X(0)|")
	assert.Nil(t, m.state)

	m = update(t, m, key(tea.KeyCtrlT))
	assert.Equal(t, focusInputVar, m.focus)
	assert.Contains(t, m.View(), "Set Variable")
	m = typeText(t, m, "theta=pi")
	m = update(t, m, key(tea.KeyEnter))

	assert.Equal(t, focusEditor, m.focus)
	assert.Equal(t, angle.Variables{"theta": math.Pi}, m.vars)
	require.NotNil(t, m.state)
	assert.InDelta(t, 1, m.state.QubitProbabilities()[0].Prob1, 1e-9)

	m = update(t, m, key(tea.KeyCtrlT))
	m = typeText(t, m, "nonsense")
	m = update(t, m, key(tea.KeyEnter))
	assert.Contains(t, m.statusMsg, "name=value")
}

func TestPrune(t *testing.T) {
	m := newTestModel(t, "1e-05@1.0000X(0)|@1.0000Z(1)|")
	require.Equal(t, 2, m.Circuit().Len())
	m = update(t, m, key(tea.KeyCtrlX))
	assert.Equal(t, "@1.0000Z(1)|", m.Input())
	assert.Equal(t, 1, m.Circuit().Len())
	assert.Equal(t, "Pruned 1 gates", m.statusMsg)
}

func TestExport(t *testing.T) {
	m := newTestModel(t, "@1.0000X(0)|")
	m = update(t, m, key(tea.KeyCtrlS))
	assert.Contains(t, m.statusMsg, "Exported")
	_, err := os.Stat(m.exportPath)
	assert.NoError(t, err)
}

func TestMenu(t *testing.T) {
	m := newTestModel(t, "")
	m = update(t, m, key(tea.KeyCtrlO))
	assert.Equal(t, focusMenu, m.focus)
	assert.Contains(t, m.View(), "Actions")

	// the menu swallows editor keys
	m = typeText(t, m, "x")
	assert.Empty(t, m.Input())

	m = update(t, m, key(tea.KeyEsc))
	assert.Equal(t, focusEditor, m.focus)

	// first item draws a random circuit
	m = update(t, m, key(tea.KeyCtrlO))
	m = update(t, m, key(tea.KeyEnter))
	assert.NotEmpty(t, m.Input())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "")
	_, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestOverlayAt(t *testing.T) {
	out := overlayAt("abcdef\nghijkl\nmnopqr", "XY\nZW", 2, 1)
	assert.Equal(t, "abcdef\nghXYkl\nmnZWqr", out)
	assert.Equal(t, "ab  XY", spliceLineAt("ab", "XY", 4))
}
