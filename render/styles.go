package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles used by the diagram. Build them from a renderer so exported files
// get a fixed color profile rather than whatever stdout supports.
type Styles struct {
	Title  lipgloss.Style
	Gate   lipgloss.Style
	Label  lipgloss.Style
	Angle  lipgloss.Style
	Dim    lipgloss.Style
	Wire   lipgloss.Style
	Border lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles returns the palette rendered through r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64")),
		Gate: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca")),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")),
		Angle: r.NewStyle().
			Foreground(lipgloss.Color("#e0af68")),
		Dim: r.NewStyle().
			Foreground(lipgloss.Color("#565f89")),
		Wire: r.NewStyle(),
		Border: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1),
		Error: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f7768e")),
	}
}

// DefaultStyles renders through lipgloss's default renderer (stdout).
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// PlainStyles never emits escape sequences.
func PlainStyles() Styles {
	return NewStyles(profileRenderer(io.Discard, termenv.Ascii))
}

// ANSIStyles always emits 256-color escape sequences.
func ANSIStyles() Styles {
	return NewStyles(profileRenderer(io.Discard, termenv.ANSI256))
}

func profileRenderer(w io.Writer, p termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(p)
	return r
}
