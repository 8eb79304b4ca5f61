package simulations

import (
	"math"

	"github.com/ifplan/ifplan/internal/models"
)

// CreateInput contains data for creating a simulation.
type CreateInput struct {
	Name        string
	Description string
	Input       models.Input
}

// UpdateDetailsInput renames a simulation. Results are never touched.
type UpdateDetailsInput struct {
	Name        string
	Description string
}

// Comparison pairs a stored simulation with the indicators it would have
// under different sensitivity multipliers.
type Comparison struct {
	Simulation  *models.Simulation
	Sensitivity models.Sensitivity
	Inputs      models.Input
	Baseline    models.Output
	Adjusted    models.Output
}

// Direction tells which way an indicator moved.
type Direction int

const (
	Unchanged Direction = iota
	Up
	Down
	// Undefined marks a change involving a non-finite value.
	Undefined
)

// Change is the movement of one indicator between baseline and adjusted.
type Change struct {
	Field     models.OutputField
	Before    float64
	After     float64
	Direction Direction
}

// Delta is After - Before; NaN when either side is non-finite.
func (c Change) Delta() float64 {
	if c.Direction == Undefined {
		return math.NaN()
	}
	return c.After - c.Before
}

// Changes lists the movement of the given indicators, in the order given.
// Unknown keys are skipped.
func (c *Comparison) Changes(keys ...string) []Change {
	out := make([]Change, 0, len(keys))
	for _, k := range keys {
		f, ok := models.LookupOutputField(k)
		if !ok {
			continue
		}
		out = append(out, compare(f, f.Value(c.Baseline), f.Value(c.Adjusted)))
	}
	return out
}

func compare(f models.OutputField, before, after float64) Change {
	ch := Change{Field: f, Before: before, After: after}
	switch {
	case !models.IsFinite(before) || !models.IsFinite(after):
		ch.Direction = Undefined
	case after > before:
		ch.Direction = Up
	case after < before:
		ch.Direction = Down
	default:
		ch.Direction = Unchanged
	}
	return ch
}

// SweepPoint is one evaluation of a one-factor sweep.
type SweepPoint struct {
	Percent    int
	Multiplier float64
	Output     models.Output
}

// VerifyReport tells whether stored results still match a fresh calculation.
type VerifyReport struct {
	ID         string
	Stored     models.Output
	Fresh      models.Output
	Mismatched []string
}

// OK reports whether every indicator matches.
func (r *VerifyReport) OK() bool {
	return len(r.Mismatched) == 0
}
