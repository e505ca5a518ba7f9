package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether the writer is a terminal that should
// receive ANSI color output. Pipes, buffers, and regular files do not.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Lines      []string // Related output lines or files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	var b strings.Builder
	colorize := ColorEnabled(out)

	if colorize {
		b.WriteString("\x1b[33m")
	}
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Lines) > 0 {
		b.WriteString("    ")
		if len(w.Lines) == 1 {
			b.WriteString("Offending line:\n")
		} else {
			b.WriteString("Offending lines:\n")
		}
		for i, line := range w.Lines {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, line))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if colorize {
		b.WriteString("\x1b[0m")
	}

	fmt.Fprint(out, b.String())
}

// WarnEscalatedLines creates a warning banner for escalated compiler
// warning lines.
func WarnEscalatedLines(title string, lines []string) Warning {
	return Warning{
		Title: title,
		Lines: lines,
	}
}
