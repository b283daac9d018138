package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme styles the few emphasized pieces of console output. Styles are bound
// to the destination writer, so piped output and test buffers stay plain.
type Theme struct {
	banner lipgloss.Style
	alert  lipgloss.Style
}

// NewTheme creates a theme for the given output.
func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		alert:  r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Banner styles a multi-line title. Lines are styled one at a time so no
// padding is added.
func (t Theme) Banner(text string) string {
	return styleLines(t.banner, text)
}

// Alert styles warnings such as an invalid menu selection.
func (t Theme) Alert(text string) string {
	return styleLines(t.alert, text)
}

func styleLines(s lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = s.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
