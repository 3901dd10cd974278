package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
}

// NewStyles creates styles bound to w, so color output is only produced
// when w supports it.
func NewStyles(w io.Writer) *Styles {
	re := lipgloss.NewRenderer(w)
	return &Styles{
		Header:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   re.NewStyle().Foreground(lipgloss.Color("8")),
		Added:   re.NewStyle().Foreground(lipgloss.Color("2")),
		Removed: re.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
