// Package render formats analytics results as styled terminal text.
// Colors use lipgloss.Color values; styles are built per output so piping
// to a file drops escape codes.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the semantic colors of the report.
type Theme struct {
	Primary lipgloss.Color // headers
	Accent  lipgloss.Color // bars and values
	Muted   lipgloss.Color // borders and captions
	Warning lipgloss.Color // undefined values
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		Primary: lipgloss.Color("39"),
		Accent:  lipgloss.Color("42"),
		Muted:   lipgloss.Color("243"),
		Warning: lipgloss.Color("214"),
	}
}

type styles struct {
	box     lipgloss.Style
	header  lipgloss.Style
	column  lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	bar     lipgloss.Style
}

func newStyles(out io.Writer, t Theme) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		box: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		header:  r.NewStyle().Bold(true).Foreground(t.Primary),
		column:  r.NewStyle().Bold(true),
		value:   r.NewStyle().Foreground(t.Accent),
		muted:   r.NewStyle().Foreground(t.Muted),
		warning: r.NewStyle().Foreground(t.Warning),
		bar:     r.NewStyle().Foreground(t.Accent),
	}
}

// padRight pads s to width terminal cells.
func padRight(s string, width int) string {
	if vw := lipgloss.Width(s); vw < width {
		return s + strings.Repeat(" ", width-vw)
	}
	return s
}

// padLeft pads s on the left to width terminal cells.
func padLeft(s string, width int) string {
	if vw := lipgloss.Width(s); vw < width {
		return strings.Repeat(" ", width-vw) + s
	}
	return s
}
