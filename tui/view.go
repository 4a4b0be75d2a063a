package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"qgenenc/angle"
	"qgenenc/circuit"
	"qgenenc/render"
)

const (
	controlsHeight = 2
	barWidth       = 20
)

func statePanelHeight(c *circuit.Circuit) int {
	return max(c.NumQubits(), 1) + 2
}

func (m Model) panel(color string) lipgloss.Style {
	return m.styles.Border.BorderForeground(lipgloss.Color(color))
}

func (m Model) menuBorder() lipgloss.Style {
	return m.styles.Border.Padding(0, 1).BorderForeground(lipgloss.Color("#ff9e64"))
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	editorWidth := m.width / 3
	circuitWidth := m.width - editorWidth - 4
	stateHeight := statePanelHeight(m.circuit)
	mainHeight := max(m.height-stateHeight-controlsHeight-8, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, mainHeight)
	editorPanel := m.renderEditorPanel(editorWidth, mainHeight)
	statePanel := m.renderStatePanel(m.width-4, stateHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, editorPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, statePanel, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputVar:
		frame = overlayAt(frame, m.renderVarInput(), 2, 2)
	}
	return frame
}

// renderCircuitPanel draws the decoded circuit, cut to the panel width.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := fmt.Sprintf("Circuit  %d gates", m.circuit.Len())
	if vars := m.circuit.Variables(); len(vars) > 0 {
		title += "  " + angle.FormatNames(vars)
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n\n")

	inner := max(width-4, 1)
	for _, line := range strings.Split(strings.TrimRight(render.Diagram(m.circuit, m.styles), "\n"), "\n") {
		sb.WriteString(ansi.Truncate(line, inner, "…"))
		sb.WriteString("\n")
	}

	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "\n  %s", m.styles.Angle.Render(m.statusMsg))
	}

	return m.panel("#7aa2f7").Width(width).Height(height).Render(sb.String())
}

// renderEditorPanel renders the circuit string editor and its decode error.
func (m Model) renderEditorPanel(width, height int) string {
	var sb strings.Builder

	title := "Encoded"
	if m.focus == focusEditor {
		title += " [ACTIVE]"
	}
	sb.WriteString(m.styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Dim.Render(m.codec.Symbols().String()))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())

	if m.err != nil {
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Error.Width(max(width-4, 10)).Render("✗ " + m.err.Error()))
	}

	return m.panel("#bb9af7").Width(width).Height(height).Render(sb.String())
}

// renderStatePanel shows P(1) per qubit of the simulated state.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("State"))
	sb.WriteString("\n")

	switch {
	case m.state != nil:
		for q, p := range m.state.QubitProbabilities() {
			filled := int(p.Prob1*barWidth + 0.5)
			fmt.Fprintf(&sb, "%s %s%s P(1)=%.3f\n",
				m.styles.Label.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q))),
				m.styles.Gate.Render(strings.Repeat("█", filled)),
				m.styles.Dim.Render(strings.Repeat("░", barWidth-filled)),
				p.Prob1,
			)
		}
	case m.note != "":
		sb.WriteString(m.styles.Dim.Render(m.note))
	default:
		sb.WriteString(m.styles.Dim.Render("nothing to simulate"))
	}

	return m.panel("#9ece6a").Padding(0, 1).Width(width).Height(height).Render(strings.TrimRight(sb.String(), "\n"))
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(m.styles.Angle.Render("Actions: "))
	sb.WriteString("^G Random  ^X Prune  ^T Variable  ^S Export " + m.exportPath + "  ^R Reset  ^O Menu")
	sb.WriteString("\n")
	sb.WriteString(m.styles.Angle.Render("Quit:    "))
	sb.WriteString("Esc/^C")
	if len(m.vars) > 0 {
		sb.WriteString("    " + m.styles.Dim.Render(formatVars(m.vars)))
	}

	return m.panel("#9ece6a").Padding(0, 1).Width(width).Height(height).Render(sb.String())
}

func formatVars(vars angle.Variables) string {
	parts := make([]string, 0, len(vars))
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		parts = append(parts, k+"="+angle.Format(vars[k]))
	}
	return strings.Join(parts, " ")
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites overlay on top of bg at visible position (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, ovLine := range strings.Split(overlay, "\n") {
		if idx := y + i; idx >= 0 && idx < len(bgLines) {
			bgLines[idx] = spliceLineAt(bgLines[idx], ovLine, x)
		}
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine from x on with overlay,
// keeping escape sequences on both sides intact.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(prefix); w < x {
		prefix += strings.Repeat(" ", x-w)
	}
	suffix := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}
