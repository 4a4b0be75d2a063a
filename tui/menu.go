package tui

import (
	"fmt"
	"strings"
)

// menuItem represents a single action in the menu.
type menuItem struct {
	name string
	key  string
	hint string
	run  func(*Model)
}

// actionMenu lists everything the inspector can do besides editing.
var actionMenu = []menuItem{
	{name: "Random circuit", key: "^G", hint: "draw and encode a new circuit", run: (*Model).random},
	{name: "Prune", key: "^X", hint: "drop gates with angle ≈ 0 (mod 4π)", run: (*Model).prune},
	{name: "Set variable", key: "^T", hint: "bind a symbolic angle", run: func(m *Model) {
		m.varInput = ""
		m.focus = focusInputVar
	}},
	{name: "Export", key: "^S", hint: "write the compiled circuit", run: (*Model).export},
	{name: "Reset", key: "^R", hint: "clear text and variables", run: (*Model).reset},
}

// renderMenu renders the floating action popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Actions"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Dim.Render(strings.Repeat("─", 44)))
	sb.WriteString("\n")

	for i, item := range actionMenu {
		if i == m.menuItem {
			sb.WriteString(m.styles.Title.Render(" ▸ "))
			sb.WriteString(m.styles.Title.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(m.styles.Gate.Render(item.key))
		} else {
			sb.WriteString("   ")
			sb.WriteString(fmt.Sprintf("%-16s", item.name))
			sb.WriteString(m.styles.Dim.Render(item.key))
		}
		sb.WriteString(m.styles.Dim.Render("  " + item.hint))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Dim.Render(" ↑↓ Select  ⏎ Ok  Esc ✕"))

	return m.menuBorder().Render(sb.String())
}

// renderVarInput renders the variable input overlay.
func (m Model) renderVarInput() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Set Variable"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Assignment: %s_", m.varInput))
	sb.WriteString("\n\n")
	if len(m.vars) > 0 {
		sb.WriteString(m.styles.Dim.Render("Bound: " + formatVars(m.vars)))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Dim.Render("Examples: theta=pi/2, a_XY_3=0.25"))
	return m.menuBorder().Render(sb.String())
}
