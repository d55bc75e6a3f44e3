package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderGrid renders two side-by-side panes sharing their middle border:
// [1] sources on the left, [2] details on the right.
//
// leftW includes the shared separator column, so rightW = totalW - leftW + 1.
// totalH is the pane area only (status bar excluded).
func renderGrid(
	totalW, totalH int,
	leftW, rightW int,
	leftBody, rightBody []string,
	focused PaneID,
	rightTitle string,
) string {
	if totalW <= 0 || totalH <= 0 {
		return ""
	}

	leftActive := focused == PaneSources
	rightActive := focused == PaneDetails

	borderStyle := func(active bool) lipgloss.Style {
		if active {
			return paneBorderActiveStyle
		}
		return paneBorderInactiveStyle
	}
	labelStyle := func(active bool) lipgloss.Style {
		if active {
			return paneHeaderActiveStyle
		}
		return paneHeaderInactiveStyle
	}

	leftInnerW := max(0, leftW-2)
	rightInnerW := max(0, rightW-2)
	innerH := max(0, totalH-2)

	leftBody = padLines(leftBody, innerH, leftInnerW)
	rightBody = padLines(rightBody, innerH, rightInnerW)

	leftLabel := fitLabelRaw(fmt.Sprintf("[1]-%s-", PaneSources), leftInnerW)
	rightLabel := fitLabelRaw(fmt.Sprintf("[2]-%s-", rightTitle), rightInnerW)

	out := make([]string, 0, totalH)

	// ┌ ... ┬ ... ┐
	{
		leftFill := max(0, leftInnerW-lipgloss.Width(leftLabel))
		rightFill := max(0, rightInnerW-lipgloss.Width(rightLabel))
		line := borderStyle(leftActive).Render("┌") +
			labelStyle(leftActive).Render(leftLabel) +
			borderStyle(leftActive).Render(strings.Repeat("─", leftFill)) +
			separatorStyle().Render("┬") +
			labelStyle(rightActive).Render(rightLabel) +
			borderStyle(rightActive).Render(strings.Repeat("─", rightFill)) +
			borderStyle(rightActive).Render("┐")
		out = append(out, padWidth(line, totalW))
	}

	for i := 0; i < innerH; i++ {
		line := borderStyle(leftActive).Render("│") +
			leftBody[i] +
			separatorStyle().Render("│") +
			rightBody[i] +
			borderStyle(rightActive).Render("│")
		out = append(out, padWidth(line, totalW))
	}

	// └ ... ┴ ... ┘
	{
		line := borderStyle(leftActive).Render("└") +
			borderStyle(leftActive).Render(strings.Repeat("─", leftInnerW)) +
			separatorStyle().Render("┴") +
			borderStyle(rightActive).Render(strings.Repeat("─", rightInnerW)) +
			borderStyle(rightActive).Render("┘")
		out = append(out, padWidth(line, totalW))
	}

	out = padExact(out, totalH)
	return strings.Join(out, "\n")
}

// separatorStyle styles the shared middle column. With two panes it always
// borders the focused one, so it always takes the active style.
func separatorStyle() lipgloss.Style {
	return paneBorderActiveStyle
}

func fitLabelRaw(label string, innerW int) string {
	if innerW <= 0 {
		return ""
	}
	if lipgloss.Width(label) <= innerW {
		return label
	}
	r := []rune(label)
	for len(r) > 0 && lipgloss.Width(string(r)) > innerW {
		r = r[:len(r)-1]
	}
	return string(r)
}

func padLines(lines []string, height int, width int) []string {
	lines = padExact(lines, height)
	out := make([]string, 0, height)
	for _, l := range lines {
		out = append(out, padWidth(l, width))
	}
	return out
}

func padExact(lines []string, height int) []string {
	if height < 0 {
		height = 0
	}
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func padWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}
