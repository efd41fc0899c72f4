package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas returns width x height blank cells.
func canvas(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// overlayAt composites overlay on top of base with its top-left corner at
// (x, y). Both are line-based grids of the given width and height. Parts of
// the overlay outside the grid, including a negative x or y, are clipped.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		line = padRight(line, overlayWidth)
		start := x
		if start < 0 {
			line = ansi.TruncateLeft(line, -start, "")
			start = 0
		}
		if width > 0 {
			if start >= width {
				continue
			}
			line = ansi.Truncate(line, width-start, "")
		}
		lineWidth := ansi.StringWidth(line)
		if lineWidth == 0 {
			continue
		}

		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, start, "")
		if w := ansi.StringWidth(left); w < start {
			left += strings.Repeat(" ", start-w)
		}
		right := ansi.TruncateLeft(target, start+lineWidth, "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to width cells, appending an ellipsis if truncated.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
