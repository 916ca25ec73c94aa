package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	// Cyan, matching the accent colour of the status line.
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printStyled writes msg on its own line, styled only on a terminal.
func printStyled(w io.Writer, style lipgloss.Style, msg string) {
	if isTerminal(w) {
		msg = style.Render(msg)
	}
	fmt.Fprintln(w, msg)
}
