// Package render draws circuits as box diagrams and writes them out in the
// export formats.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qgenenc/angle"
	"qgenenc/circuit"
)

// Layout constants
const (
	labelVisualW = 7 // visual width of qubit label area
	minCellW     = 5
)

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	total := width - w
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// angleLabel renders an angle compactly for a gate box.
func angleLabel(a angle.Angle) string {
	c, ok := a.(angle.Constant)
	if !ok {
		return a.String()
	}
	v := float64(c)
	if f := angle.Format(v); strings.Contains(f, "pi") {
		return f
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// boxName returns the text shown in g's box on qubit q.
func boxName(g circuit.Gate, q int) string {
	first := len(g.Targets()) > 0 && g.Targets()[0] == q
	switch g.Kind() {
	case circuit.ExpPauli:
		ps, _ := g.PauliString()
		op, _ := ps.At(q)
		if !first {
			return op.String()
		}
		return op.String() + "(" + angleLabel(g.Angle()) + ")"
	case circuit.Rx, circuit.Ry, circuit.Rz:
		if !first {
			return string(g.Kind())
		}
		return string(g.Kind()) + "(" + angleLabel(g.Angle()) + ")"
	}
	if p := g.Parameter(); p != nil {
		if c, ok := p.(angle.Constant); !ok || c != 1 {
			return string(g.Kind()) + "^" + angleLabel(p)
		}
	}
	return string(g.Kind())
}

// targetSymbol returns the wire symbol for a controlled target, or "" when
// the gate is drawn as a box.
func targetSymbol(g circuit.Gate) string {
	if len(g.Controls()) == 0 || g.Kind() != circuit.X {
		return ""
	}
	if p := g.Parameter(); p != nil {
		if c, ok := p.(angle.Constant); !ok || c != 1 {
			return ""
		}
	}
	return "⊕"
}

// layer is one diagram column: gates whose qubit spans do not overlap.
type layer struct {
	gates []circuit.Gate
	width int
}

func span(g circuit.Gate) (lo, hi int) {
	lo, hi = math.MaxInt, -1
	for _, q := range append(g.Targets(), g.Controls()...) {
		lo, hi = min(lo, q), max(hi, q)
	}
	return lo, hi
}

// layers packs gates into columns. A gate goes into the first column after
// every column that already uses a qubit of its span, so gate order on any
// wire is preserved.
func layers(c *circuit.Circuit) []layer {
	var out []layer
	last := map[int]int{}
	for _, g := range c.Gates {
		lo, hi := span(g)
		col := 0
		for q := lo; q <= hi; q++ {
			if l, ok := last[q]; ok {
				col = max(col, l+1)
			}
		}
		for q := lo; q <= hi; q++ {
			last[q] = col
		}
		for len(out) <= col {
			out = append(out, layer{width: minCellW})
		}
		out[col].gates = append(out[col].gates, g)
		for _, q := range g.Targets() {
			out[col].width = max(out[col].width, lipgloss.Width(boxName(g, q))+4)
		}
	}
	return out
}

// cell describes what occupies one (column, qubit) slot.
type cell struct {
	gate        *circuit.Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

func (l layer) cellAt(q int) cell {
	for i := range l.gates {
		g := &l.gates[i]
		lo, hi := span(*g)
		if q < lo || q > hi {
			continue
		}
		info := cell{gate: g, vertAbove: q > lo, vertBelow: q < hi}
		for _, t := range g.Targets() {
			info.isTarget = info.isTarget || t == q
		}
		for _, ctrl := range g.Controls() {
			info.isControl = info.isControl || ctrl == q
		}
		info.passThrough = !info.isTarget && !info.isControl
		return info
	}
	return cell{}
}

// renderCell returns 3 lines (top, mid, bot) for a single cell, each
// exactly w visual characters wide.
func renderCell(info cell, q, w int, st Styles) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", w)
	halfW := w / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", w-halfW-1)
	dashL := (w - 1) / 2
	dashR := w - dashL - 1

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case info.gate == nil:
		mid = strings.Repeat("─", w)

	case info.passThrough:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)

	case info.isControl:
		mid = strings.Repeat("─", dashL) + st.Gate.Render("●") + strings.Repeat("─", dashR)

	case targetSymbol(*info.gate) != "":
		mid = strings.Repeat("─", dashL) + st.Gate.Render(targetSymbol(*info.gate)) + strings.Repeat("─", dashR)

	default:
		name := boxName(*info.gate, q)
		nameW := lipgloss.Width(name) + 2
		boxW := nameW + 2
		margin := (w - boxW) / 2
		rightMargin := w - margin - boxW

		edgeTop, edgeBot := "─", "─"
		if info.vertAbove {
			edgeTop = "┴"
		}
		if info.vertBelow {
			edgeBot = "┬"
		}
		innerL := (nameW - 1) / 2
		innerR := nameW - innerL - 1
		top = strings.Repeat(" ", margin) +
			st.Gate.Render("┌"+strings.Repeat("─", innerL)+edgeTop+strings.Repeat("─", innerR)+"┐") +
			strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) +
			st.Gate.Render("┤") + " " + st.Angle.Render(name) + " " + st.Gate.Render("├") +
			strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) +
			st.Gate.Render("└"+strings.Repeat("─", innerL)+edgeBot+strings.Repeat("─", innerR)+"┘") +
			strings.Repeat(" ", rightMargin)
	}
	return top, mid, bot
}

// Diagram draws c with one row of three lines per qubit.
func Diagram(c *circuit.Circuit, st Styles) string {
	n := c.NumQubits()
	if n == 0 {
		return st.Dim.Render("(empty circuit)") + "\n"
	}
	cols := layers(c)

	var sb strings.Builder
	header := strings.Repeat(" ", labelVisualW)
	for i, l := range cols {
		header += st.Dim.Render(padCenter(strconv.Itoa(i), l.width))
	}
	sb.WriteString(strings.TrimRight(header, " ") + "\n")

	for q := range n {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := st.Label.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q))) + "──"
		botLine := strings.Repeat(" ", labelVisualW)
		for _, l := range cols {
			top, mid, bot := renderCell(l.cellAt(q), q, l.width, st)
			topLine += top
			midLine += mid
			botLine += bot
		}
		sb.WriteString(strings.TrimRight(topLine, " ") + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(strings.TrimRight(botLine, " ") + "\n")
	}
	return sb.String()
}
