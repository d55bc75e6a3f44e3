package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nickromney/certcheck/internal/check"
)

var (
	accentColor    = lipgloss.Color("#7aa2f7")
	dimColor       = lipgloss.Color("#565f89")
	textColor      = lipgloss.Color("#c0caf5")
	paneTextColor  = lipgloss.Color("#c0caf5") // may differ for high-contrast themes
	bgColor        = lipgloss.Color("#1a1b26")
	activeBorder   = lipgloss.Color("#7aa2f7")
	inactiveBorder = lipgloss.Color("#3b4261")
	okColor        = lipgloss.Color("#9ece6a")
	warningColor   = lipgloss.Color("#e0af68")
	criticalColor  = lipgloss.Color("#f7768e")
	unknownColor   = lipgloss.Color("#bb9af7")

	statusBarStyle          lipgloss.Style
	statusKeyStyle          lipgloss.Style
	statusDescStyle         lipgloss.Style
	detailKeyStyle          lipgloss.Style
	detailValueStyle        lipgloss.Style
	errorStyle              lipgloss.Style
	paneHeaderActiveStyle   lipgloss.Style
	paneHeaderInactiveStyle lipgloss.Style
	paneBorderActiveStyle   lipgloss.Style
	paneBorderInactiveStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	statusBarStyle = lipgloss.NewStyle().
		Foreground(textColor).
		Padding(0, 1)
	statusKeyStyle = lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)
	statusDescStyle = lipgloss.NewStyle().
		Foreground(dimColor)

	detailKeyStyle = lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)
	detailValueStyle = lipgloss.NewStyle().
		Foreground(paneTextColor)

	errorStyle = lipgloss.NewStyle().Foreground(criticalColor)

	paneHeaderActiveStyle = lipgloss.NewStyle().
		Foreground(bgColor).
		Background(activeBorder).
		Bold(true)
	paneHeaderInactiveStyle = lipgloss.NewStyle().
		Foreground(dimColor)

	// Active borders are bold and share the pane text colour so focus does
	// not depend on colour alone.
	paneBorderActiveStyle = lipgloss.NewStyle().
		Foreground(paneTextColor).
		Bold(true)
	paneBorderInactiveStyle = lipgloss.NewStyle().
		Foreground(inactiveBorder)
}

func severityColor(s check.Severity) lipgloss.Color {
	switch s {
	case check.OK:
		return okColor
	case check.Warning:
		return warningColor
	case check.Critical:
		return criticalColor
	default:
		return unknownColor
	}
}

// severityBadge renders a fixed-width tag so source names line up.
func severityBadge(s check.Severity) string {
	label := s.String()
	if len(label) > 4 {
		label = label[:4]
	}
	return lipgloss.NewStyle().
		Foreground(severityColor(s)).
		Bold(s != check.OK).
		Width(6).
		Render("[" + label + "]")
}
