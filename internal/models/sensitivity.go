package models

import (
	"fmt"
	"math"
)

// Slider bounds. A position p maps to the multiplier p/100, so the
// neutral position is 100 and the label reads p-100 percent.
const (
	SliderMin     = 1
	SliderMax     = 200
	SliderNeutral = 100
)

// Factor names one of the five sensitivity multipliers.
type Factor string

const (
	FactorCOE   Factor = "coe"
	FactorDPL   Factor = "dpl"
	FactorFOR   Factor = "for"
	FactorMS    Factor = "ms"
	FactorPreco Factor = "preco"
)

// Factors lists the multipliers in slider order.
func Factors() []Factor {
	return []Factor{FactorCOE, FactorDPL, FactorFOR, FactorMS, FactorPreco}
}

// Valid returns true if the factor is known.
func (f Factor) Valid() bool {
	switch f {
	case FactorCOE, FactorDPL, FactorFOR, FactorMS, FactorPreco:
		return true
	default:
		return false
	}
}

// ParseFactor accepts the short name ("preco") or the input key ("varPreco").
func ParseFactor(s string) (Factor, error) {
	for _, f := range Factors() {
		if string(f) == s || f.Field().Key == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sensitivity factor: %q", s)
}

// Field returns the Input field the factor scales.
func (f Factor) Field() InputField {
	key := map[Factor]string{
		FactorCOE:   "varCOE",
		FactorDPL:   "varDPL",
		FactorFOR:   "varFOR",
		FactorMS:    "varMS",
		FactorPreco: "varPreco",
	}[f]
	field, _ := LookupInputField(key)
	return field
}

// Label is the slider caption.
func (f Factor) Label() string {
	return f.Field().Label
}

// SliderToMultiplier converts a slider position to a multiplier, clamping
// the position to the slider range.
func SliderToMultiplier(pos int) float64 {
	return float64(clampSlider(pos)) / 100
}

// MultiplierToSlider converts a multiplier to the nearest slider position.
// A zero multiplier opens the slider at the neutral position.
func MultiplierToSlider(m float64) int {
	if m == 0 || !IsFinite(m) {
		return SliderNeutral
	}
	return clampSlider(int(math.Round(m * 100)))
}

// SliderPercent is the signed percentage shown next to a slider.
func SliderPercent(pos int) int {
	return clampSlider(pos) - SliderNeutral
}

// PercentToSlider converts a signed percentage (-99..100) to a position.
func PercentToSlider(pct int) int {
	return clampSlider(pct + SliderNeutral)
}

// PercentToMultiplier is the multiplier a signed percentage selects on the
// slider. Percentages below -99 stop at the slider floor, x0.01.
func PercentToMultiplier(pct int) float64 {
	return SliderToMultiplier(PercentToSlider(pct))
}

func clampSlider(pos int) int {
	if pos < SliderMin {
		return SliderMin
	}
	if pos > SliderMax {
		return SliderMax
	}
	return pos
}

// Sensitivity holds slider positions keyed by factor. Factors missing from
// the map keep the multiplier already present in the input.
type Sensitivity map[Factor]int

// SensitivityOf reads the slider positions implied by an input.
func SensitivityOf(in Input) Sensitivity {
	s := make(Sensitivity, len(Factors()))
	for _, f := range Factors() {
		s[f] = MultiplierToSlider(f.Field().Value(in))
	}
	return s
}

// Apply returns a copy of in with the multipliers replaced.
func (s Sensitivity) Apply(in Input) Input {
	for f, pos := range s {
		if !f.Valid() {
			continue
		}
		f.Field().Set(&in, SliderToMultiplier(pos))
	}
	return in
}
