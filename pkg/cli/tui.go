package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the terminal color scheme.
type Theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
	Warn    lipgloss.Color
}

// DefaultTheme is the bright green theme shared by the giztoy tools.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Warn:    lipgloss.Color("#f2cc60"),
}

// Styles holds the styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Meta    lipgloss.Style
	Box     lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Meta:  lipgloss.NewStyle().Foreground(t.Dim),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),
		Warning: lipgloss.NewStyle().Foreground(t.Warn),
	}
}

// Panel renders a bordered box of the given total width with a title
// line, an optional dim meta line and body wrapped inside.
func (s Styles) Panel(title, meta, body string, width int) string {
	lines := []string{s.Title.Render(title)}
	if meta != "" {
		lines = append(lines, s.Meta.Render(meta))
	}
	if body = strings.TrimSpace(body); body != "" {
		lines = append(lines, "", body)
	}

	box := s.Box
	// Width covers padding and content; the border adds one column each side.
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(strings.Join(lines, "\n"))
}
