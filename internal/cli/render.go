package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/services/simulations"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	headerStyle  = cellStyle.Bold(true)
)

// renderTable draws rows under headers. Columns listed in rightAligned hold
// numbers.
func renderTable(headers []string, rows [][]string, rightAligned ...int) string {
	right := make(map[int]bool, len(rightAligned))
	for _, c := range rightAligned {
		right[c] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cellStyle
			if row == table.HeaderRow {
				s = headerStyle
			}
			if right[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.String()
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(title))
}

// writeSimulation prints a simulation as text: identity, inputs by form
// step, indicators by result section and then every other indicator.
func writeSimulation(w io.Writer, f *format.Formatter, sim *models.Simulation) {
	fmt.Fprintln(w, headingStyle.Render(sim.Name))
	fmt.Fprintf(w, "ID:        %s\n", sim.ID)
	fmt.Fprintf(w, "Data:      %s\n", f.Date(sim.Date))
	if sim.Description != "" {
		fmt.Fprintf(w, "Descrição: %s\n", sim.Description)
	}

	heading(w, "Dados de Entrada")
	var rows [][]string
	for _, g := range models.InputGroups() {
		for _, field := range models.InputFieldsIn(g) {
			rows = append(rows, []string{string(g), field.Label, f.Input(field, sim.Inputs), field.Unit})
		}
	}
	fmt.Fprintln(w, renderTable([]string{"Etapa", "Campo", "Valor", "Unidade"}, rows, 2))

	writeOutput(w, f, sim.Results)
}

// writeOutput prints indicators grouped like the result screen.
func writeOutput(w io.Writer, f *format.Formatter, out models.Output) {
	shown := make(map[string]bool)
	for _, section := range models.ResultSections {
		heading(w, section.Title)
		fmt.Fprintln(w, renderTable([]string{"Indicador", "Valor", "Unidade"}, outputRows(f, out, section.Keys), 1))
		for _, k := range section.Keys {
			shown[k] = true
		}
	}

	var rest []string
	for _, field := range models.OutputFields {
		if !shown[field.Key] {
			rest = append(rest, field.Key)
		}
	}
	heading(w, "Demais Indicadores")
	fmt.Fprintln(w, renderTable([]string{"Indicador", "Valor", "Unidade"}, outputRows(f, out, rest), 1))

	if keys := out.Degenerate(); len(keys) > 0 {
		fmt.Fprintf(w, "\nIndicadores indisponíveis para estes dados: %s\n", strings.Join(keys, ", "))
	}
}

func outputRows(f *format.Formatter, out models.Output, keys []string) [][]string {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		field, ok := models.LookupOutputField(k)
		if !ok {
			continue
		}
		value := f.Field(field, out)
		unit := field.Unit
		if value == format.Unavailable {
			unit = ""
		}
		rows = append(rows, []string{field.Label, value, unit})
	}
	return rows
}

// writeList prints one page of simulations.
func writeList(w io.Writer, f *format.Formatter, list *models.SimulationList) {
	if list.Total == 0 {
		fmt.Fprintln(w, "Nenhuma simulação salva. Crie uma com 'ifplan new'.")
		return
	}

	prod, _ := models.LookupOutputField("producaoDiaria")
	ml, _ := models.LookupOutputField("ml")

	rows := make([][]string, 0, len(list.Simulations))
	for _, sim := range list.Simulations {
		rows = append(rows, []string{
			f.Date(sim.Date),
			sim.Name,
			f.Field(prod, sim.Results),
			f.Field(ml, sim.Results),
			sim.ID,
		})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"Data", "Nome", "Produção (L/dia)", "ML (R$/L)", "ID"},
		rows, 2, 3,
	))
	fmt.Fprintf(w, "Página %d de %d (%d simulações)\n", list.Page, list.TotalPages, list.Total)
}

func directionMark(d simulations.Direction) string {
	switch d {
	case simulations.Up:
		return "▲"
	case simulations.Down:
		return "▼"
	case simulations.Undefined:
		return "?"
	default:
		return "="
	}
}

// writeComparison prints slider positions and baseline vs adjusted values.
func writeComparison(w io.Writer, f *format.Formatter, cmp *simulations.Comparison) {
	fmt.Fprintln(w, headingStyle.Render("Sensibilidade: "+cmp.Simulation.Name))

	factors := make([][]string, 0, len(models.Factors()))
	for _, factor := range models.Factors() {
		pos := cmp.Sensitivity[factor]
		factors = append(factors, []string{
			factor.Label(),
			format.Percent(models.SliderPercent(pos)),
			f.Number(models.SliderToMultiplier(pos), 2),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Fator", "Variação", "Multiplicador"}, factors, 1, 2))

	for _, section := range models.ResultSections {
		heading(w, section.Title)
		var rows [][]string
		for _, ch := range cmp.Changes(section.Keys...) {
			delta := f.Number(ch.Delta(), ch.Field.Digits)
			if ch.Direction == simulations.Up {
				delta = "+" + delta
			}
			rows = append(rows, []string{
				ch.Field.Label,
				f.Number(ch.Before, ch.Field.Digits),
				f.Number(ch.After, ch.Field.Digits),
				delta,
				directionMark(ch.Direction),
			})
		}
		fmt.Fprintln(w, renderTable([]string{"Indicador", "Salvo", "Ajustado", "Diferença", ""}, rows, 1, 2, 3))
	}
}

// writeSweep prints one row per sweep point and one column per indicator.
func writeSweep(w io.Writer, f *format.Formatter, factor models.Factor, points []simulations.SweepPoint, keys []string) {
	fields := make([]models.OutputField, 0, len(keys))
	headers := []string{"Variação", "Multiplicador"}
	for _, k := range keys {
		field, ok := models.LookupOutputField(k)
		if !ok {
			continue
		}
		fields = append(fields, field)
		headers = append(headers, field.Label)
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		row := []string{format.Percent(p.Percent), f.Number(p.Multiplier, 2)}
		for _, field := range fields {
			row = append(row, f.Field(field, p.Output))
		}
		rows = append(rows, row)
	}

	right := make([]int, 0, len(headers))
	for i := range headers {
		right = append(right, i)
	}

	fmt.Fprintln(w, headingStyle.Render("Varredura: "+factor.Label()))
	fmt.Fprintln(w, renderTable(headers, rows, right...))
}
