// Package tui is an interactive browser over batch check results.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nickromney/certcheck/internal/batch"
	"github.com/nickromney/certcheck/internal/config"
)

// Model is the root Bubbletea model for the TUI.
type Model struct {
	items   []batch.Item
	sources sourcePane
	details detailPane

	focused       PaneID
	width, height int
	themeName     string
	configPath    string
	statusMsg     string
	statusIsErr   bool

	// saveTheme persists the theme; swapped out in tests.
	saveTheme func(theme string) (string, error)
}

// New creates a model over already-checked items.
func New(items []batch.Item, cfg config.Config) Model {
	theme := ThemeByName(cfg.Theme)
	ApplyTheme(theme)

	m := Model{
		items:      items,
		sources:    newSourcePane(items),
		details:    newDetailPane(),
		focused:    PaneSources,
		themeName:  theme.Name,
		configPath: displayConfigPath(),
		saveTheme:  config.SaveTheme,
	}
	if len(items) > 0 {
		m.details.SetItem(items[0])
	}
	return m
}

func displayConfigPath() string {
	p, err := config.Path()
	if err != nil || strings.TrimSpace(p) == "" {
		return "~/.config/certcheck/config.yml"
	}
	if home, herr := os.UserHomeDir(); herr == nil && strings.HasPrefix(p, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(p, home)
	}
	return p
}

func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanes()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case SourceFocusedMsg:
		if msg.Index >= 0 && msg.Index < len(m.items) {
			m.details.SetItem(m.items[msg.Index])
		}
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Text
		m.statusIsErr = msg.IsErr
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Tab):
		m.focused = m.focused.Next()
		return m, nil
	case key.Matches(msg, keys.ShiftTab):
		m.focused = m.focused.Prev()
		return m, nil
	case key.Matches(msg, keys.Theme):
		m.cycleTheme()
		m.statusMsg = "Theme: " + m.themeName
		m.statusIsErr = false
		return m, nil
	case key.Matches(msg, keys.SaveTheme):
		return m, m.saveThemeCmd()
	}

	switch m.focused {
	case PaneSources:
		return m, m.sources.Update(msg)
	case PaneDetails:
		return m, m.details.Update(msg)
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	names := ThemeNames()
	idx := 0
	for i, name := range names {
		if name == m.themeName {
			idx = i
			break
		}
	}
	m.themeName = names[(idx+1)%len(names)]
	ApplyTheme(ThemeByName(m.themeName))
	m.details.render()
}

func (m Model) saveThemeCmd() tea.Cmd {
	theme := m.themeName
	save := m.saveTheme
	disp := m.configPath
	return func() tea.Msg {
		if save == nil {
			return StatusMsg{Text: "Saving is not available", IsErr: true}
		}
		if _, err := save(theme); err != nil {
			return StatusMsg{Text: "Failed to save theme: " + err.Error(), IsErr: true}
		}
		return StatusMsg{Text: "Saved theme to " + disp}
	}
}

// leftPaneWidth includes the shared separator column.
func (m Model) leftPaneWidth() int {
	w := m.width * 35 / 100
	w = max(w, 24)
	return min(w, max(0, m.width-20))
}

func (m *Model) layoutPanes() {
	leftW := m.leftPaneWidth()
	rightW := m.width - leftW + 1
	innerH := max(0, m.height-1-2) // status bar, top and bottom borders
	m.sources.SetSize(max(0, leftW-2), innerH)
	m.details.SetSize(max(0, rightW-2), innerH)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	leftW := m.leftPaneWidth()
	panes := renderGrid(
		m.width, max(0, m.height-1),
		leftW, m.width-leftW+1,
		m.sources.View(m.focused == PaneSources),
		m.details.View(),
		m.focused,
		PaneDetails.String(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panes, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	left := m.statusMsg
	if left == "" {
		left = fmt.Sprintf("%d sources, worst %s", len(m.items), batch.Worst(m.items))
	} else if m.statusIsErr {
		left = errorStyle.Render(left)
	}

	hints := make([]string, 0, len(statusBindings))
	for _, b := range statusBindings {
		h := b.Help()
		hints = append(hints, statusKeyStyle.Render(h.Key)+" "+statusDescStyle.Render(h.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := max(1, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return statusBarStyle.Width(m.width).MaxWidth(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
