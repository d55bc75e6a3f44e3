package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nickromney/certcheck/internal/batch"
)

// sourcePane lists the checked sources with a severity badge each.
type sourcePane struct {
	items  []batch.Item
	cursor int
	offset int // scroll offset
	width  int
	height int
}

func newSourcePane(items []batch.Item) sourcePane {
	return sourcePane{items: items}
}

func (sp *sourcePane) SetSize(w, h int) {
	sp.width = w
	sp.height = h
	sp.ensureVisible()
}

// Update moves the cursor and reports the newly focused source, if any.
func (sp *sourcePane) Update(msg tea.KeyMsg) tea.Cmd {
	if len(sp.items) == 0 {
		return nil
	}
	prev := sp.cursor
	page := max(1, sp.height)

	switch {
	case key.Matches(msg, keys.Up):
		sp.cursor = max(0, sp.cursor-1)
	case key.Matches(msg, keys.Down):
		sp.cursor = min(len(sp.items)-1, sp.cursor+1)
	case key.Matches(msg, keys.PageUp):
		sp.cursor = max(0, sp.cursor-page)
	case key.Matches(msg, keys.PageDown):
		sp.cursor = min(len(sp.items)-1, sp.cursor+page)
	case key.Matches(msg, keys.Top):
		sp.cursor = 0
	case key.Matches(msg, keys.Bottom):
		sp.cursor = len(sp.items) - 1
	}
	sp.ensureVisible()

	if sp.cursor == prev {
		return nil
	}
	idx := sp.cursor
	return func() tea.Msg { return SourceFocusedMsg{Index: idx} }
}

func (sp *sourcePane) ensureVisible() {
	visible := max(1, sp.height)
	if sp.cursor < sp.offset {
		sp.offset = sp.cursor
	}
	if sp.cursor >= sp.offset+visible {
		sp.offset = sp.cursor - visible + 1
	}
}

func (sp sourcePane) View(focused bool) []string {
	visible := max(1, sp.height)
	end := min(len(sp.items), sp.offset+visible)

	lines := make([]string, 0, visible)
	for i := sp.offset; i < end; i++ {
		it := sp.items[i]
		name := it.Source.Name()
		// Badge is 6 cells; keep room for it plus a space.
		if room := sp.width - 8; room > 3 && lipgloss.Width(name) > room {
			name = truncate(name, room-3) + "..."
		}

		style := lipgloss.NewStyle().Foreground(textColor)
		if i == sp.cursor {
			if focused {
				style = lipgloss.NewStyle().Foreground(bgColor).Background(accentColor).Bold(true)
			} else {
				style = style.Bold(true)
			}
		}
		line := severityBadge(it.Result.Severity()) + " " + style.Render(name)
		lines = append(lines, line)
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
