// Package format renders numbers and dates for display. Numbers use the
// locale's grouping and decimal separators; values that cannot be shown
// (NaN, ±Inf) render as Unavailable.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ifplan/ifplan/internal/models"
)

// Unavailable is shown in place of non-finite values.
const Unavailable = "-"

// Defaults used by the package-level helpers.
const (
	DefaultLocale     = "pt-BR"
	DefaultDateLayout = "02/01/2006"
)

// Formatter renders values for one locale.
type Formatter struct {
	printer    *message.Printer
	dateLayout string
}

// New builds a formatter. An empty layout falls back to DefaultDateLayout.
func New(locale, dateLayout string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &Formatter{printer: message.NewPrinter(tag), dateLayout: dateLayout}, nil
}

//nolint:gochecknoglobals // shared default, immutable after init
var std = &Formatter{
	printer:    message.NewPrinter(language.BrazilianPortuguese),
	dateLayout: DefaultDateLayout,
}

// Default returns the pt-BR formatter.
func Default() *Formatter { return std }

// Number formats v with exactly digits fraction digits.
// Example: Number(1234.5, 2) returns "1.234,50".
func (f *Formatter) Number(v float64, digits int) string {
	if !models.IsFinite(v) {
		return Unavailable
	}
	if digits < 0 {
		digits = 0
	}
	// Avoid "-0" for values that round to zero.
	if math.Abs(v) < 0.5*math.Pow10(-digits) {
		v = 0
	}
	return f.printer.Sprint(number.Decimal(v, number.Scale(digits)))
}

// Field formats one indicator with its own precision.
func (f *Formatter) Field(field models.OutputField, o models.Output) string {
	return f.Number(field.Value(o), field.Digits)
}

// WithUnit appends the unit, if any, to a formatted value. Unavailable
// values are never suffixed.
func (f *Formatter) WithUnit(field models.OutputField, o models.Output) string {
	s := f.Field(field, o)
	if s == Unavailable || field.Unit == "" {
		return s
	}
	return s + " " + field.Unit
}

// Input formats an input field using the precision declared for it.
func (f *Formatter) Input(field models.InputField, in models.Input) string {
	return f.Number(field.Value(in), field.Digits)
}

// Date formats t with the configured layout. The zero time is Unavailable.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return Unavailable
	}
	return t.Format(f.dateLayout)
}

// Percent renders a signed slider percentage: "+10%", "0%", "-25%".
func Percent(p int) string {
	if p > 0 {
		return fmt.Sprintf("+%d%%", p)
	}
	return fmt.Sprintf("%d%%", p)
}

// Number formats with the default formatter.
func Number(v float64, digits int) string { return std.Number(v, digits) }

// Date formats with the default formatter.
func Date(t time.Time) string { return std.Date(t) }
