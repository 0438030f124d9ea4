package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// thinSpace pads the ERROR badge.
const thinSpace = "\u2009"

// PrintError writes err to w as a single line with a black-on-red ERROR
// badge. Colors are dropped when w is not a terminal.
func PrintError(w io.Writer, err error) {
	r := lipgloss.NewRenderer(w)
	badge := r.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("1"))
	msg := r.NewStyle().Foreground(lipgloss.Color("1"))

	_, _ = fmt.Fprintf(w, "%s %s\n",
		badge.Render(thinSpace+"ERROR"+thinSpace),
		msg.Render(err.Error()),
	)
}
