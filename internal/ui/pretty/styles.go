// Package pretty renders diagnostics for human eyes: colored severity
// badges, dimmed positions, and a run summary line.
package pretty

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Styles bundles the lipgloss styles used for diagnostic output.
type Styles struct {
	Enabled bool

	Path     lipgloss.Style
	Position lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	RuleID   lipgloss.Style
	Message  lipgloss.Style
}

// NewStyles creates the style set. With color disabled every style is a
// no-op passthrough.
func NewStyles(color bool) Styles {
	if !color {
		return Styles{}
	}
	return Styles{
		Enabled:  true,
		Path:     lipgloss.NewStyle().Underline(true),
		Position: lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		RuleID:   lipgloss.NewStyle().Faint(true),
		Message:  lipgloss.NewStyle(),
	}
}

// ColorEnabled resolves the --color flag value ("auto", "always",
// "never") against the terminal.
func ColorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) && term.IsTerminal(int(fd))
	}
}

// Summary renders the closing problem-count line.
func (s Styles) Summary(errors, warnings int) string {
	text := fmt.Sprintf("%d problems (%d errors, %d warnings)",
		errors+warnings, errors, warnings)
	if !s.Enabled {
		return text
	}
	if errors > 0 {
		return s.Error.Render(text)
	}
	if warnings > 0 {
		return s.Warning.Render(text)
	}
	return text
}
