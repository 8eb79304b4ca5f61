package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ColumnSpec defines a column with proportional or fixed width.
type ColumnSpec struct {
	// MinWidth is the absolute minimum width.
	MinWidth int
	// Weight is the proportional share of remaining width.
	Weight float64
	// Fixed is a fixed width (overrides Weight if > 0).
	Fixed int
	// Priority determines drop order when the terminal is narrow (lower = dropped first).
	Priority int
}

// CalculateColumnWidths distributes availableWidth among columns. When the
// fixed widths do not fit, the lowest-priority columns are dropped (width 0)
// until they do. separator is the width of each column gap.
func CalculateColumnWidths(specs []ColumnSpec, availableWidth int, separator int) []int {
	widths := make([]int, len(specs))
	visible := make([]bool, len(specs))

	for i := range specs {
		visible[i] = true
	}

	remaining := func() (int, float64) {
		count, fixed, weight := 0, 0, 0.0
		for i, spec := range specs {
			if !visible[i] {
				continue
			}
			count++
			if spec.Fixed > 0 {
				fixed += spec.Fixed
			} else {
				fixed += spec.MinWidth
				weight += spec.Weight
			}
		}
		gaps := 0
		if count > 1 {
			gaps = (count - 1) * separator
		}
		return availableWidth - fixed - gaps - 2, weight
	}

	rest, totalWeight := remaining()
	for rest < 0 {
		lowest := -1
		visibleCount := 0
		for i, spec := range specs {
			if !visible[i] {
				continue
			}
			visibleCount++
			if lowest < 0 || spec.Priority < specs[lowest].Priority {
				lowest = i
			}
		}
		if visibleCount <= 1 {
			break
		}
		visible[lowest] = false
		rest, totalWeight = remaining()
	}
	if rest < 0 {
		rest = 0
	}

	for i, spec := range specs {
		switch {
		case !visible[i]:
			widths[i] = 0
		case spec.Fixed > 0:
			widths[i] = spec.Fixed
		case totalWeight > 0:
			widths[i] = spec.MinWidth + int(float64(rest)*spec.Weight/totalWeight)
		default:
			widths[i] = spec.MinWidth
		}
	}

	return widths
}

// Panel renders a bordered panel with its title set into the top border.
func (t *Theme) Panel(title, content string, width int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.SecondaryColor).
		Width(width-2). // border chars
		Padding(0, 1)

	rendered := style.Render(content)
	if title == "" {
		return rendered
	}

	lines := strings.Split(rendered, "\n")
	titleRendered := t.Accent.Bold(true).Render(" " + title + " ")
	titleWidth := lipgloss.Width(titleRendered)

	top := []rune(ansi.Strip(lines[0]))
	if titleWidth+4 >= len(top) {
		return rendered
	}
	border := lipgloss.NewStyle().Foreground(t.SecondaryColor)
	lines[0] = border.Render(string(top[:2])) + titleRendered + border.Render(string(top[2+titleWidth:]))

	return strings.Join(lines, "\n")
}

// SideBySide renders two blocks next to each other, collapsing to a
// vertical stack when they do not fit in totalWidth.
func SideBySide(left, right string, totalWidth, gap int) string {
	leftWidth := lipgloss.Width(left)
	if leftWidth+lipgloss.Width(right)+gap > totalWidth {
		return left + "\n\n" + right
	}

	leftBlock := lipgloss.NewStyle().Width(leftWidth + gap).Render(left)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftBlock, right)
}

// SliderBar renders a slider position within [min, max] as a bar with a
// marker at the neutral position.
func (t *Theme) SliderBar(pos, min, max, neutral, width int) string {
	if width < 4 {
		width = 4
	}
	if pos < min {
		pos = min
	}
	if pos > max {
		pos = max
	}

	span := float64(max - min)
	cell := func(v int) int {
		c := int(float64(v-min) / span * float64(width-1))
		if c < 0 {
			c = 0
		}
		if c > width-1 {
			c = width - 1
		}
		return c
	}

	knob, mid := cell(pos), cell(neutral)
	var b strings.Builder
	for i := range width {
		switch {
		case i == knob:
			b.WriteString(t.Focused.Render("●"))
		case i == mid:
			b.WriteString(t.Muted.Render("┼"))
		case (i > mid && i < knob) || (i < mid && i > knob):
			b.WriteString(t.Primary.Render("━"))
		default:
			b.WriteString(t.Muted.Render("─"))
		}
	}
	return b.String()
}

// Truncate shortens a string to fit within maxWidth, adding an ellipsis if needed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth == 1 {
		return "…"
	}
	if len(runes) > maxWidth-1 {
		runes = runes[:maxWidth-1]
	}
	return string(runes) + "…"
}

// PadRight pads a string to the given width with spaces.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads a string to the given width with spaces on the left.
func PadLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// ContentWidth returns the usable content width, capped between min and max.
func ContentWidth(termWidth, minWidth, maxWidth int) int {
	w := termWidth
	if w < minWidth {
		w = minWidth
	}
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	return w
}

// ContentHeight returns the usable content height after subtracting chrome.
func ContentHeight(termHeight, chromeLines int) int {
	h := termHeight - chromeLines
	if h < 5 {
		h = 5
	}
	return h
}
