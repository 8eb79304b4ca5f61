package tui

import (
	"fmt"
	"maps"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/services/simulations"
)

const sliderWidth = 24

// SensitivityView holds the five slider positions for one simulation and
// the latest comparison against its saved results. Only factors whose slider
// was moved are applied; the others keep the stored multiplier exactly.
type SensitivityView struct {
	sim   *models.Simulation
	saved models.Sensitivity
	pos   models.Sensitivity
	moved map[models.Factor]bool
	focus int

	cmp *simulations.Comparison
	// seq numbers recomputations so a late result never replaces a newer one.
	seq int
}

// NewSensitivityView opens the sliders at the simulation's stored multipliers.
func NewSensitivityView(sim *models.Simulation) *SensitivityView {
	v := &SensitivityView{sim: sim}
	v.restore()
	return v
}

func (v *SensitivityView) restore() {
	v.saved = models.SensitivityOf(v.sim.Inputs)
	v.pos = maps.Clone(v.saved)
	v.moved = make(map[models.Factor]bool)
}

// Focused returns the factor whose slider has focus.
func (v *SensitivityView) Focused() models.Factor {
	return models.Factors()[v.focus]
}

// MoveFocus moves the focus by d sliders, wrapping around.
func (v *SensitivityView) MoveFocus(d int) {
	n := len(models.Factors())
	v.focus = ((v.focus+d)%n + n) % n
}

// Position is the slider position shown for a factor.
func (v *SensitivityView) Position(f models.Factor) int {
	return v.pos[f]
}

// Multiplier is the multiplier a factor would be saved with.
func (v *SensitivityView) Multiplier(f models.Factor) float64 {
	if v.moved[f] {
		return models.SliderToMultiplier(v.pos[f])
	}
	return f.Field().Value(v.sim.Inputs)
}

// Nudge moves the focused slider by step positions. It reports whether the
// position changed. Returning a slider to where it opened restores the
// stored multiplier.
func (v *SensitivityView) Nudge(step int) bool {
	f := v.Focused()
	before := v.pos[f]
	after := min(max(before+step, models.SliderMin), models.SliderMax)
	if after == before {
		return false
	}
	v.pos[f] = after
	if after == v.saved[f] {
		delete(v.moved, f)
	} else {
		v.moved[f] = true
	}
	return true
}

// SetNeutral puts the focused slider at 0%. It reports whether the
// multiplier changed.
func (v *SensitivityView) SetNeutral() bool {
	f := v.Focused()
	if v.Multiplier(f) == 1 {
		return false
	}
	v.pos[f] = models.SliderNeutral
	v.moved[f] = true
	return true
}

// Reset returns every slider to the stored multipliers.
func (v *SensitivityView) Reset() bool {
	if !v.Dirty() {
		return false
	}
	v.restore()
	return true
}

// Dirty reports whether any slider was moved off the stored multipliers.
func (v *SensitivityView) Dirty() bool {
	return len(v.moved) > 0
}

// Sensitivity returns the positions of the moved sliders.
func (v *SensitivityView) Sensitivity() models.Sensitivity {
	s := make(models.Sensitivity, len(v.moved))
	for f := range v.moved {
		s[f] = v.pos[f]
	}
	return s
}

// NextSeq starts a new recomputation and returns its number.
func (v *SensitivityView) NextSeq() int {
	v.seq++
	return v.seq
}

// SetComparison stores a recomputation result unless a newer one was started.
func (v *SensitivityView) SetComparison(cmp *simulations.Comparison, seq int) bool {
	if seq != v.seq {
		return false
	}
	v.cmp = cmp
	return true
}

// Saved marks the current positions as stored after a successful save.
func (v *SensitivityView) Saved(sim *models.Simulation) {
	v.sim = sim
	v.restore()
	v.cmp = nil
}

// Render draws sliders on the left and indicator changes on the right.
func (v *SensitivityView) Render(theme *Theme, f *format.Formatter, width int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("SENSIBILIDADE: " + v.sim.Name))
	b.WriteString("\n\n")

	sliders := v.renderSliders(theme, f)
	changes := v.renderChanges(theme, f)
	b.WriteString(SideBySide(sliders, changes, width, 4))

	if v.Dirty() {
		b.WriteString("\n\n")
		b.WriteString(theme.Accent.Render(" Alterações não salvas. Enter grava os multiplicadores."))
	}
	return b.String()
}

func (v *SensitivityView) renderSliders(theme *Theme, f *format.Formatter) string {
	labelWidth := 0
	for _, factor := range models.Factors() {
		labelWidth = max(labelWidth, lipgloss.Width(factor.Label()))
	}

	lines := make([]string, 0, 2*len(models.Factors()))
	for i, factor := range models.Factors() {
		pos := v.pos[factor]

		marker, label := "  ", theme.Label.Render(PadRight(factor.Label(), labelWidth))
		if i == v.focus {
			marker, label = theme.Focused.Render("▶ "), theme.Focused.Render(PadRight(factor.Label(), labelWidth))
		}

		pct := PadLeft(format.Percent(models.SliderPercent(pos)), 5)
		mult := "x" + f.Number(v.Multiplier(factor), 2)

		lines = append(lines,
			marker+label+" "+
				theme.SliderBar(pos, models.SliderMin, models.SliderMax, models.SliderNeutral, sliderWidth)+" "+
				theme.Value.Render(pct)+" "+theme.Muted.Render(mult),
			"")
	}
	return strings.Join(lines, "\n")
}

func (v *SensitivityView) renderChanges(theme *Theme, f *format.Formatter) string {
	if v.cmp == nil {
		return theme.Muted.Render("Calculando...")
	}

	var b strings.Builder
	for i, section := range models.ResultSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Subtitle.Render(section.Title))
		b.WriteString("\n")
		for _, ch := range v.cmp.Changes(section.Keys...) {
			b.WriteString(renderChange(theme, f, ch))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderChange shows saved -> adjusted, green when the indicator rose and
// red when it fell.
func renderChange(theme *Theme, f *format.Formatter, ch simulations.Change) string {
	before := f.Number(ch.Before, ch.Field.Digits)
	after := f.Number(ch.After, ch.Field.Digits)

	style, mark := theme.Value, " "
	switch ch.Direction {
	case simulations.Up:
		style, mark = theme.Rise, "▲"
	case simulations.Down:
		style, mark = theme.Fall, "▼"
	case simulations.Undefined:
		style, mark = theme.Muted, "?"
	}

	return fmt.Sprintf(" %s %s → %s %s",
		theme.Label.Render(PadRight(Truncate(ch.Field.Label, 28), 28)),
		theme.Muted.Render(PadLeft(before, 12)),
		style.Render(PadLeft(after, 12)),
		style.Render(mark),
	)
}
