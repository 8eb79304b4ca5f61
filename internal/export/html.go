package export

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/models"
)

// ReportTitle heads every HTML report.
const ReportTitle = "IFPlan leite à pasto — Relatório Técnico"

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

type reportRow struct {
	Label string
	Value string
	Unit  string
}

type reportGroup struct {
	Title string
	Rows  []reportRow
}

type report struct {
	Name        string
	Description string
	Date        string
	Inputs      []reportGroup
	Results     []reportRow
}

type reportPage struct {
	Title   string
	Reports []report
}

// WriteHTML renders the technical report, one section per simulation.
// Names and descriptions are escaped by html/template.
func (e *Exporter) WriteHTML(w io.Writer, sims []*models.Simulation) error {
	page := reportPage{Title: ReportTitle}
	for _, sim := range sims {
		page.Reports = append(page.Reports, e.buildReport(sim))
	}

	if err := reportTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func (e *Exporter) buildReport(sim *models.Simulation) report {
	r := report{
		Name:        sim.Name,
		Description: sim.Description,
		Date:        e.fmt.Date(sim.Date),
	}

	// Multipliers describe the scenario, not the farm; they stay out of the report.
	for _, g := range models.InputGroups() {
		if g == models.GroupSensibilidade {
			continue
		}
		group := reportGroup{Title: string(g)}
		for _, f := range models.InputFieldsIn(g) {
			group.Rows = append(group.Rows, row(f.Label, e.fmt.Input(f, sim.Inputs), f.Unit))
		}
		r.Inputs = append(r.Inputs, group)
	}

	for _, key := range models.ReportKeys {
		f, ok := models.LookupOutputField(key)
		if !ok {
			continue
		}
		r.Results = append(r.Results, row(f.Label, e.fmt.Field(f, sim.Results), f.Unit))
	}
	return r
}

func row(label, value, unit string) reportRow {
	if value == format.Unavailable {
		unit = ""
	}
	return reportRow{Label: label, Value: value, Unit: unit}
}
