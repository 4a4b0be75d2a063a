// Package tui is an interactive inspector for circuit strings: the string is
// edited on one side and decoded live into a diagram and the qubit
// probabilities of the simulated state.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/codec"
	"qgenenc/generator"
	"qgenenc/logger"
	"qgenenc/render"
	"qgenenc/sim"
)

// maxSimQubits bounds the live simulation.
const maxSimQubits = 12

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusEditor focus = iota
	focusMenu
	focusInputVar
)

// Options configure the inspector.
type Options struct {
	Codec     *codec.Codec
	Generator *generator.Generator // nil disables ctrl+g
	Vars      angle.Variables
	Input     string
	// ExportPath is where ctrl+s writes. Its extension picks the format.
	ExportPath string
	Threshold  float64
	Styles     *render.Styles
}

// Model represents the TUI application state.
type Model struct {
	codec      *codec.Codec
	gen        *generator.Generator
	vars       angle.Variables
	exportPath string
	threshold  float64
	styles     render.Styles

	editor    textarea.Model
	lastInput string
	circuit   *circuit.Circuit // last string that decoded
	state     *sim.StateVector
	err       error
	note      string // why there is no state
	statusMsg string // transient status message (e.g. export confirmation)

	width  int
	height int
	focus  focus

	menuItem int
	varInput string
}

// New returns the inspector model.
func New(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste or type a circuit string, e.g. @1.5708X(0)|"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(40)
	ta.SetHeight(12)
	ta.Focus()

	m := Model{
		codec:      opts.Codec,
		gen:        opts.Generator,
		vars:       angle.Variables{},
		exportPath: opts.ExportPath,
		threshold:  opts.Threshold,
		editor:     ta,
		circuit:    circuit.New(),
	}
	if m.codec == nil {
		m.codec = codec.Default()
	}
	if m.exportPath == "" {
		m.exportPath = "circuit.txt"
	}
	if m.threshold <= 0 {
		m.threshold = codec.DefaultPruneThreshold
	}
	if opts.Styles != nil {
		m.styles = *opts.Styles
	} else {
		m.styles = render.DefaultStyles()
	}
	for k, v := range opts.Vars {
		m.vars[k] = v
	}
	m.setInput(opts.Input)
	return m
}

// Run starts the inspector on the terminal and blocks until it quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

// Input returns the current editor text.
func (m Model) Input() string { return m.editor.Value() }

// Circuit returns the last successfully decoded circuit.
func (m Model) Circuit() *circuit.Circuit { return m.circuit }

// Err returns the decode error of the current text, if any.
func (m Model) Err() error { return m.err }

func (m *Model) setInput(s string) {
	m.editor.SetValue(s)
	m.decode()
}

// refresh decodes again when the editor text changed.
func (m *Model) refresh() {
	if m.editor.Value() != m.lastInput {
		m.decode()
	}
}

func (m *Model) decode() {
	m.lastInput = m.editor.Value()
	m.err, m.state, m.note = nil, nil, ""
	if strings.TrimSpace(m.lastInput) == "" {
		m.circuit = circuit.New()
		return
	}
	c, err := m.codec.Decode(m.lastInput, m.vars)
	if err != nil {
		// keep showing the last circuit that decoded
		m.err = err
		return
	}
	m.circuit = c
	m.simulate()
}

func (m *Model) simulate() {
	n := m.circuit.NumQubits()
	switch {
	case n == 0:
		return
	case n > maxSimQubits:
		m.note = fmt.Sprintf("%d qubits, simulation is limited to %d", n, maxSimQubits)
		return
	}
	st, err := sim.Simulate(m.circuit, n, m.vars)
	if err != nil {
		m.note = err.Error()
		return
	}
	m.state = st
}

// ──────────────────────────── Actions ────────────────────────────

func (m *Model) random() {
	if m.gen == nil {
		m.statusMsg = "No generator configured"
		return
	}
	c := m.gen.Random(nil)
	s, err := m.codec.Encode(c, m.vars)
	if err != nil {
		m.statusMsg = "Encode error: " + err.Error()
		return
	}
	m.setInput(s)
	m.statusMsg = fmt.Sprintf("Random circuit with %d gates", c.Len())
}

func (m *Model) prune() {
	pruned, dropped := codec.Prune(m.circuit, m.vars, m.threshold)
	s, err := m.codec.Encode(pruned, m.vars)
	if err != nil {
		m.statusMsg = "Encode error: " + err.Error()
		return
	}
	m.setInput(s)
	m.statusMsg = fmt.Sprintf("Pruned %d gates", dropped)
}

func (m *Model) export() {
	if err := codec.ExportTo(m.circuit, m.exportPath); err != nil {
		m.statusMsg = fmt.Sprintf("Export error: %v", err)
		logger.Named("tui").Warnw("export failed", logger.FieldFile, m.exportPath, logger.FieldError, err)
		return
	}
	m.statusMsg = "Exported " + m.exportPath
}

func (m *Model) reset() {
	m.vars = angle.Variables{}
	m.setInput("")
	m.statusMsg = "Reset"
}

func (m *Model) setVariable() {
	name, v, err := angle.ParseAssignment(m.varInput)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.vars[name] = v
	m.decode()
	m.statusMsg = fmt.Sprintf("%s = %s", name, angle.Format(v))
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width/3-6, 20))
		m.editor.SetHeight(max(msg.Height-statePanelHeight(m.circuit)-controlsHeight-12, 4))

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusEditor:
			m.statusMsg = ""
			switch key {
			case "esc":
				return m, tea.Quit
			case "ctrl+g":
				m.random()
			case "ctrl+x":
				m.prune()
			case "ctrl+s":
				m.export()
			case "ctrl+r":
				m.reset()
			case "ctrl+t":
				m.varInput = ""
				m.focus = focusInputVar
			case "ctrl+o":
				m.menuItem = 0
				m.focus = focusMenu
			default:
				var cmd tea.Cmd
				m.editor, cmd = m.editor.Update(msg)
				cmds = append(cmds, cmd)
				m.refresh()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusEditor
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(actionMenu)-1 {
					m.menuItem++
				}
			case "enter":
				m.focus = focusEditor
				actionMenu[m.menuItem].run(&m)
			}

		case focusInputVar:
			switch key {
			case "esc":
				m.varInput = ""
				m.focus = focusEditor
			case "backspace":
				if len(m.varInput) > 0 {
					m.varInput = m.varInput[:len(m.varInput)-1]
				}
			case "enter":
				m.setVariable()
				m.varInput = ""
				m.focus = focusEditor
			default:
				if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
					m.varInput += string(msg.Runes)
				}
			}
		}

	default:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
