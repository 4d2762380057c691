package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles renders headings and status lines. The renderer is bound to the
// output writer, so anything that is not a terminal gets plain text.
type styles struct {
	title lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

const ruleWidth = 50

func rule() string { return strings.Repeat("=", ruleWidth) }
