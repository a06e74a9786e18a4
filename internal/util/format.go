package util

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// FormatCount renders an entry count compactly.
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// TruncateString shortens text to at most width display columns, appending
// an ellipsis when anything was cut. Width is measured in terminal cells so
// wide runes do not break table alignment.
func TruncateString(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "...")
}

// PadRight pads text with spaces to the given display width.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// DisplayWidth returns the terminal cell width of text.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}
