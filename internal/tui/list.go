package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/services/simulations"
	"github.com/ifplan/ifplan/internal/tui/components"
)

// listColumns: date, name, daily production, margin. The name absorbs
// spare width; margin is dropped first on narrow terminals.
var listColumns = []ColumnSpec{
	{Fixed: 10, Priority: 4},
	{MinWidth: 12, Weight: 1, Priority: 5},
	{Fixed: 16, Priority: 3},
	{Fixed: 12, Priority: 2},
}

// ListView shows saved simulations, newest first.
type ListView struct {
	svc   *simulations.Service
	fmt   *format.Formatter
	table *components.Table
	page  models.Pagination
	list  *models.SimulationList
}

// NewListView creates the simulation list.
func NewListView(svc *simulations.Service, f *format.Formatter, theme *Theme) *ListView {
	table := components.NewTable([]components.Column{
		{Title: "Data"},
		{Title: "Nome"},
		{Title: "Produção (L/dia)", Align: lipgloss.Right},
		{Title: "ML (R$/L)", Align: lipgloss.Right},
	})
	table.SetStyles(theme.TableHeader, theme.TableRow, theme.TableRowAlt, theme.Selected, theme.TableBorder)
	table.Focus(true)

	return &ListView{
		svc:   svc,
		fmt:   f,
		table: table,
		page:  models.DefaultPagination(),
	}
}

// Load fetches the current page.
func (v *ListView) Load(ctx context.Context) (*models.SimulationList, error) {
	return v.svc.List(ctx, v.page)
}

// SetList shows a loaded page.
func (v *ListView) SetList(list *models.SimulationList) {
	v.list = list
	v.page.Page = list.Page

	prod, _ := models.LookupOutputField("producaoDiaria")
	ml, _ := models.LookupOutputField("ml")

	rows := make([][]string, len(list.Simulations))
	for i, sim := range list.Simulations {
		rows[i] = []string{
			v.fmt.Date(sim.Date),
			sim.Name,
			v.fmt.Field(prod, sim.Results),
			v.fmt.Field(ml, sim.Results),
		}
	}
	v.table.SetRows(rows)
	v.table.SetPagination(list.Page, list.TotalPages, list.Total)
}

// Resize fits the table to the content area.
func (v *ListView) Resize(width, height int) {
	v.table.SetColumnWidths(CalculateColumnWidths(listColumns, width, 3))
	v.table.SetVisibleRows(height - 6)
}

// Selected returns the highlighted simulation, nil when the list is empty.
func (v *ListView) Selected() *models.Simulation {
	if v.list == nil || v.table.Empty() {
		return nil
	}
	i := v.table.Selected()
	if i >= len(v.list.Simulations) {
		return nil
	}
	return v.list.Simulations[i]
}

// SelectID highlights the simulation with id if it is on the current page.
func (v *ListView) SelectID(id string) {
	if v.list == nil {
		return
	}
	for i, sim := range v.list.Simulations {
		if sim.ID == id {
			v.table.Select(i)
			return
		}
	}
}

func (v *ListView) MoveUp()     { v.table.MoveUp() }
func (v *ListView) MoveDown()   { v.table.MoveDown() }
func (v *ListView) GoToTop()    { v.table.GoToTop() }
func (v *ListView) GoToBottom() { v.table.GoToBottom() }

// NextPage advances to the next page; false when already on the last.
func (v *ListView) NextPage() bool {
	if v.list == nil || v.page.Page >= v.list.TotalPages {
		v.table.PageDown()
		return false
	}
	v.page.Page++
	v.table.GoToTop()
	return true
}

// PrevPage goes back one page; false when already on the first.
func (v *ListView) PrevPage() bool {
	if v.page.Page <= 1 {
		v.table.PageUp()
		return false
	}
	v.page.Page--
	v.table.GoToTop()
	return true
}

// Render draws the list.
func (v *ListView) Render(theme *Theme) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("SIMULAÇÕES SALVAS"))
	b.WriteString("\n\n")

	if v.list == nil {
		b.WriteString(theme.Muted.Render("Carregando..."))
		return b.String()
	}
	if v.list.Total == 0 {
		b.WriteString(theme.Muted.Render("Nenhuma simulação salva."))
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render("Crie uma com 'ifplan new' ou gere exemplos com 'ifplan seed'."))
		return b.String()
	}

	b.WriteString(v.table.Render())
	return b.String()
}
