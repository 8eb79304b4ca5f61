// Package tui provides the terminal user interface for IFPlan.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ifplan/ifplan/internal/config"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	AccentColor    lipgloss.Color
	MutedColor     lipgloss.Color
	RiseColor      lipgloss.Color
	FallColor      lipgloss.Color

	Base    lipgloss.Style
	Primary lipgloss.Style
	Accent  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style

	// Rise and Fall color indicators that moved up or down against the
	// saved results.
	Rise lipgloss.Style
	Fall lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style
	Focused  lipgloss.Style

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style
	TableBorder lipgloss.Style

	StatusDivider lipgloss.Style
}

// NewTheme creates a theme for the configured color scheme.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return newAmberTheme()
	case config.ColorSchemeMono:
		return newMonoTheme()
	default:
		return newPastureTheme()
	}
}

// newPastureTheme is the default: greens on the terminal background.
func newPastureTheme() *Theme {
	return buildTheme(palette{
		primary:   "#A6E3A1",
		secondary: "#5F9E6E",
		accent:    "#E5C07B",
		muted:     "#6B7B6B",
		rise:      "#4CD964",
		fall:      "#FF5F57",
		selectFG:  "#0B1A0B",
	})
}

func newAmberTheme() *Theme {
	return buildTheme(palette{
		primary:   "#FFAA00",
		secondary: "#AA7700",
		accent:    "#FFCC66",
		muted:     "#664400",
		rise:      "#7CFC00",
		fall:      "#FF4444",
		selectFG:  "#000000",
	})
}

// newMonoTheme keeps rise/fall colored; everything else is grayscale.
func newMonoTheme() *Theme {
	return buildTheme(palette{
		primary:   "#FFFFFF",
		secondary: "#AAAAAA",
		accent:    "#FFFFFF",
		muted:     "#666666",
		rise:      "#00FF00",
		fall:      "#FF4444",
		selectFG:  "#000000",
	})
}

type palette struct {
	primary, secondary, accent, muted, rise, fall, selectFG lipgloss.Color
}

func buildTheme(p palette) *Theme {
	t := &Theme{
		PrimaryColor:   p.primary,
		SecondaryColor: p.secondary,
		AccentColor:    p.accent,
		MutedColor:     p.muted,
		RiseColor:      p.rise,
		FallColor:      p.fall,
	}

	t.Base = lipgloss.NewStyle().Foreground(p.primary)
	t.Primary = lipgloss.NewStyle().Foreground(p.primary)
	t.Accent = lipgloss.NewStyle().Foreground(p.accent)
	t.Muted = lipgloss.NewStyle().Foreground(p.muted)
	t.Error = lipgloss.NewStyle().Foreground(p.fall).Bold(true)

	t.Rise = lipgloss.NewStyle().Foreground(p.rise).Bold(true)
	t.Fall = lipgloss.NewStyle().Foreground(p.fall).Bold(true)

	t.Header = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(p.secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(p.primary).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(p.secondary)
	t.Value = lipgloss.NewStyle().Foreground(p.primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.secondary).
		Padding(0, 1)

	t.Selected = lipgloss.NewStyle().
		Foreground(p.selectFG).
		Background(p.primary).
		Bold(true)

	t.Focused = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	t.TableRow = lipgloss.NewStyle().Foreground(p.primary)
	t.TableRowAlt = lipgloss.NewStyle().Foreground(p.secondary)
	t.TableBorder = lipgloss.NewStyle().Foreground(p.muted)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(p.muted).
		SetString(" │ ")

	return t
}

const (
	BoxHorizontal       = "─"
	BoxDoubleHorizontal = "═"
)

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	if width < 0 {
		width = 0
	}
	return t.Label.Render(strings.Repeat(BoxHorizontal, width))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	if width < 0 {
		width = 0
	}
	return t.Primary.Render(strings.Repeat(BoxDoubleHorizontal, width))
}
