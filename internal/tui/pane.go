package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pane is a bordered box with its title set into the top edge.
type Pane struct {
	Title   string
	Content string
	// Rounded draws ╭╮╰╯ corners instead of ┌┐└┘.
	Rounded bool
	Focused bool
	// Raw content is already styled and is not wrapped in Foreground.
	Raw bool

	Border     lipgloss.Color
	Foreground lipgloss.Color
}

func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}

	border := p.Border
	if border == "" {
		border = colorBorder
	}
	if p.Focused {
		border = colorFocus
	}
	fg := p.Foreground
	if fg == "" {
		fg = colorText
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(fg).Bold(true)
	contentStyle := lipgloss.NewStyle().Foreground(fg)

	innerWidth := width - 2
	contentWidth := innerWidth - 2

	titleText := ""
	if t := strings.TrimSpace(p.Title); t != "" {
		titleText = " " + t + " "
		if ansi.StringWidth(titleText) > innerWidth {
			titleText = " " + ansi.Truncate(t, max(1, innerWidth-2), "") + " "
		}
	}
	dashes := innerWidth - ansi.StringWidth(titleText)
	leftDash := min(1, dashes)
	if titleText == "" {
		leftDash = dashes
	}
	rightDash := dashes - leftDash

	tl, tr, bl, br := "┌", "┐", "└", "┘"
	if p.Rounded {
		tl, tr, bl, br = "╭", "╮", "╰", "╯"
	}
	v := borderStyle.Render("│")

	top := borderStyle.Render(tl+strings.Repeat("─", leftDash)) +
		titleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", rightDash)+tr)

	innerHeight := height - 2
	contentLines := paneLines(p.Content)
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < innerHeight; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		line = ansi.Truncate(line, contentWidth, "")
		if !p.Raw {
			line = contentStyle.Render(line)
		}
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render(bl+strings.Repeat("─", innerWidth)+br))

	return strings.Join(rows, "\n")
}

func paneLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
