package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ifplan/ifplan/internal/models"
)

// RenameForm edits a simulation's name and description.
type RenameForm struct {
	id     string
	inputs []textinput.Model
	focus  int
	err    string
}

// NewRenameForm opens the form with the simulation's current values and the
// name field focused.
func NewRenameForm(sim *models.Simulation, theme *Theme) *RenameForm {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Nome da simulação"
	name.CharLimit = 120
	name.Width = 60
	name.SetValue(sim.Name)

	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "Descrição (opcional)"
	desc.CharLimit = 2000
	desc.Width = 60
	desc.SetValue(sim.Description)

	for _, in := range []*textinput.Model{&name, &desc} {
		in.TextStyle = theme.Value
		in.PlaceholderStyle = theme.Muted
		in.Cursor.Style = theme.Focused
	}

	f := &RenameForm{id: sim.ID, inputs: []textinput.Model{name, desc}}
	f.inputs[0].Focus()
	return f
}

// ID is the simulation being renamed.
func (f *RenameForm) ID() string { return f.id }

// NextField moves focus to the other field.
func (f *RenameForm) NextField() tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// Update forwards a message to the focused field.
func (f *RenameForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Values returns the entered name and description.
func (f *RenameForm) Values() (name, description string) {
	return f.inputs[0].Value(), f.inputs[1].Value()
}

// SetError shows a message under the form.
func (f *RenameForm) SetError(msg string) {
	f.err = msg
}

// Render draws the form.
func (f *RenameForm) Render(theme *Theme) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("RENOMEAR SIMULAÇÃO"))
	b.WriteString("\n\n")

	labels := []string{"Nome", "Descrição"}
	for i, in := range f.inputs {
		label := theme.Label.Render(PadRight(labels[i], 10))
		if i == f.focus {
			label = theme.Focused.Render(PadRight(labels[i], 10))
		}
		b.WriteString(" " + label + " " + theme.Box.Render(in.View()))
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(theme.Error.Render(" " + f.err))
	}
	return b.String()
}
