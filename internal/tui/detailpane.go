package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nickromney/certcheck/internal/batch"
	"github.com/nickromney/certcheck/internal/check"
)

// detailPane shows the status line and per-field findings for one source.
type detailPane struct {
	viewport viewport.Model
	item     *batch.Item
}

func newDetailPane() detailPane {
	return detailPane{viewport: viewport.New(0, 0)}
}

func (dp *detailPane) SetSize(w, h int) {
	dp.viewport.Width = w
	dp.viewport.Height = h
	dp.render()
}

func (dp *detailPane) SetItem(it batch.Item) {
	dp.item = &it
	dp.render()
	dp.viewport.GotoTop()
}

func (dp *detailPane) render() {
	if dp.item == nil {
		dp.viewport.SetContent("")
		return
	}
	dp.viewport.SetContent(detailText(*dp.item, dp.viewport.Width))
}

func (dp *detailPane) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Down):
		dp.viewport.LineDown(1)
	case key.Matches(msg, keys.Up):
		dp.viewport.LineUp(1)
	case key.Matches(msg, keys.PageDown):
		dp.viewport.ViewDown()
	case key.Matches(msg, keys.PageUp):
		dp.viewport.ViewUp()
	case key.Matches(msg, keys.Top):
		dp.viewport.GotoTop()
	case key.Matches(msg, keys.Bottom):
		dp.viewport.GotoBottom()
	}
	return nil
}

func (dp detailPane) View() []string {
	return strings.Split(dp.viewport.View(), "\n")
}

// detailText renders an item as labelled rows. Mismatched fields show the
// expected value on the following row.
func detailText(it batch.Item, width int) string {
	wrap := lipgloss.NewStyle()
	if width > 0 {
		wrap = wrap.Width(width)
	}

	var b strings.Builder
	sev := it.Result.Severity()
	b.WriteString(wrap.Render(lipgloss.NewStyle().Foreground(severityColor(sev)).Bold(true).Render(it.Result.String())))
	b.WriteString("\n\n")

	if it.Result.Err != nil {
		b.WriteString(wrap.Render(errorStyle.Render(it.Result.Err.Error())))
		b.WriteString("\n")
		return b.String()
	}

	row := func(k, v string) {
		b.WriteString(wrap.Render(detailKeyStyle.Render(k+":") + " " + detailValueStyle.Render(v)))
		b.WriteString("\n")
	}

	byField := make(map[check.Field]check.Finding, len(it.Result.Report.Findings))
	for _, f := range it.Result.Report.Findings {
		byField[f.Field] = f
	}

	if it.Fields != nil {
		values := map[check.Field]string{
			check.FieldSerial:             it.Fields.Serial,
			check.FieldSubject:            it.Fields.Subject,
			check.FieldIssuer:             it.Fields.Issuer,
			check.FieldSignatureAlgorithm: it.Fields.SignatureAlgorithm,
			check.FieldPublicKeyAlgorithm: it.Fields.PublicKeyAlgorithm,
			check.FieldPublicKeySize:      strconv.Itoa(it.Fields.PublicKeySize),
		}
		for _, field := range check.AllFields {
			row(field.Label(), values[field])
			if f, ok := byField[field]; ok && f.Outcome == check.Mismatched {
				b.WriteString(wrap.Render("  " + lipgloss.NewStyle().Foreground(warningColor).Render("expected "+f.Expected)))
				b.WriteString("\n")
			}
		}
		row("Not before", it.Fields.NotBefore.Format(check.DateLayout))
		row("Not after", it.Fields.NotAfter.Format(check.DateLayout))
	}
	if v := it.Result.Validity; v != nil {
		row("Validity", v.Text)
	}
	return b.String()
}
