package util

import (
	"os"

	"golang.org/x/term"
)

// ANSI color sequences used by the table renderer.
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

const defaultTerminalWidth = 120

// IsTerminal reports whether stdout is attached to a terminal. Colors are
// disabled when it is not (pipes, CI).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the current terminal width, or a fixed default when
// stdout is not a terminal (pipes, CI).
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// SeverityColor maps a severity name to its display color.
func SeverityColor(severity string) string {
	switch severity {
	case "ERROR":
		return ColorRed
	case "WARN":
		return ColorYellow
	case "INFO":
		return ColorGreen
	default:
		return ColorCyan
	}
}

// Colorize wraps text in the given color when enabled.
func Colorize(text, color string, enabled bool) string {
	if !enabled || color == "" {
		return text
	}
	return color + text + ColorReset
}
