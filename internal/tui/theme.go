package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette for the browser. Severity colours avoid a pure
// red/green split in the high-contrast variant.
type Theme struct {
	Name string

	Accent         lipgloss.Color
	Dim            lipgloss.Color
	Text           lipgloss.Color
	PaneText       lipgloss.Color // optional override for pane content text
	Bg             lipgloss.Color
	ActiveBorder   lipgloss.Color
	InactiveBorder lipgloss.Color

	OK       lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
	Unknown  lipgloss.Color
}

// Tokyo Night.
var themeDefault = Theme{
	Name:           "default",
	Accent:         lipgloss.Color("#7aa2f7"),
	Dim:            lipgloss.Color("#565f89"),
	Text:           lipgloss.Color("#c0caf5"),
	Bg:             lipgloss.Color("#1a1b26"),
	ActiveBorder:   lipgloss.Color("#7aa2f7"),
	InactiveBorder: lipgloss.Color("#3b4261"),
	OK:             lipgloss.Color("#9ece6a"),
	Warning:        lipgloss.Color("#e0af68"),
	Critical:       lipgloss.Color("#f7768e"),
	Unknown:        lipgloss.Color("#bb9af7"),
}

// Primer functional colours.
var themeGitHubDark = Theme{
	Name:           "github-dark",
	Accent:         lipgloss.Color("#4493f8"),
	Dim:            lipgloss.Color("#9198a1"),
	Text:           lipgloss.Color("#f0f6fc"),
	Bg:             lipgloss.Color("#0d1117"),
	ActiveBorder:   lipgloss.Color("#4493f8"),
	InactiveBorder: lipgloss.Color("#3d444d"),
	OK:             lipgloss.Color("#3fb950"),
	Warning:        lipgloss.Color("#d29922"),
	Critical:       lipgloss.Color("#f85149"),
	Unknown:        lipgloss.Color("#ab7df8"),
}

var themeGitHubDarkHighContrast = Theme{
	Name:           "github-dark-high-contrast",
	Accent:         lipgloss.Color("#74b9ff"),
	Dim:            lipgloss.Color("#b7bdc8"),
	Text:           lipgloss.Color("#ffffff"),
	PaneText:       lipgloss.Color("#f7f056"),
	Bg:             lipgloss.Color("#010409"),
	ActiveBorder:   lipgloss.Color("#74b9ff"),
	InactiveBorder: lipgloss.Color("#b7bdc8"),
	OK:             lipgloss.Color("#74b9ff"),
	Warning:        lipgloss.Color("#f0b72f"),
	Critical:       lipgloss.Color("#ff9492"),
	Unknown:        lipgloss.Color("#dbb7ff"),
}

// ANSI base colours, so the user's terminal palette applies.
var themeTerminal = Theme{
	Name:           "terminal",
	Accent:         lipgloss.Color("11"),
	Dim:            lipgloss.Color("7"),
	Text:           lipgloss.Color("15"),
	Bg:             lipgloss.Color("0"),
	ActiveBorder:   lipgloss.Color("10"),
	InactiveBorder: lipgloss.Color("8"),
	OK:             lipgloss.Color("10"),
	Warning:        lipgloss.Color("11"),
	Critical:       lipgloss.Color("9"),
	Unknown:        lipgloss.Color("13"),
}

// ThemeByName returns a named theme. Falls back to default for unknown names.
func ThemeByName(name string) Theme {
	switch name {
	case "github-dark":
		return themeGitHubDark
	case "github-dark-high-contrast", "high-contrast":
		return themeGitHubDarkHighContrast
	case "terminal":
		return themeTerminal
	default:
		return themeDefault
	}
}

// ApplyTheme sets the package-level colours and rebuilds the styles.
func ApplyTheme(t Theme) {
	accentColor = t.Accent
	dimColor = t.Dim
	textColor = t.Text
	paneTextColor = t.Text
	if string(t.PaneText) != "" {
		paneTextColor = t.PaneText
	}
	bgColor = t.Bg
	activeBorder = t.ActiveBorder
	inactiveBorder = t.InactiveBorder
	okColor = t.OK
	warningColor = t.Warning
	criticalColor = t.Critical
	unknownColor = t.Unknown
	rebuildStyles()
}

// ThemeNames returns the available theme names in cycle order.
func ThemeNames() []string {
	return []string{
		"default",
		"github-dark",
		"github-dark-high-contrast",
		"terminal",
	}
}
