package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/models"
)

// renderResult draws the result screen: identity and the three indicator
// sections.
func renderResult(theme *Theme, f *format.Formatter, sim *models.Simulation, width int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(sim.Name))
	b.WriteString("\n")
	b.WriteString(theme.Label.Render(" Data: ") + theme.Value.Render(f.Date(sim.Date)))
	b.WriteString("\n")
	if sim.Description != "" {
		b.WriteString(theme.Label.Render(" " + Truncate(sim.Description, width-2)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, section := range models.ResultSections {
		b.WriteString(theme.Panel(section.Title, indicatorRows(theme, f, sim.Results, section.Keys), width))
		b.WriteString("\n")
	}

	if keys := sim.Results.Degenerate(); len(keys) > 0 {
		b.WriteString(theme.Muted.Render(" Indisponível para estes dados: " + strings.Join(keys, ", ")))
	}

	return b.String()
}

// indicatorRows lines up label, value and unit for keys.
func indicatorRows(theme *Theme, f *format.Formatter, out models.Output, keys []string) string {
	labelWidth, valueWidth := 0, 0
	type row struct{ label, value, unit string }
	rows := make([]row, 0, len(keys))

	for _, k := range keys {
		field, ok := models.LookupOutputField(k)
		if !ok {
			continue
		}
		r := row{label: field.Label, value: f.Field(field, out), unit: field.Unit}
		if r.value == format.Unavailable {
			r.unit = ""
		}
		labelWidth = max(labelWidth, lipgloss.Width(r.label))
		valueWidth = max(valueWidth, lipgloss.Width(r.value))
		rows = append(rows, r)
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = theme.Label.Render(PadRight(r.label, labelWidth)) + "  " +
			theme.Value.Render(PadLeft(r.value, valueWidth)) + " " +
			theme.Muted.Render(r.unit)
	}
	return strings.Join(lines, "\n")
}
