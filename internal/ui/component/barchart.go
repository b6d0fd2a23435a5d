package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hyperfolio/internal/ui/style"
)

// BarChart renders signed daily values as vertical bars around a zero axis:
// profitable days grow up in green, losing days hang down in red.
type BarChart struct {
	data   []float64
	width  int
	height int
}

// NewBarChart creates a bar chart with the given dimensions.
func NewBarChart(width, height int) *BarChart {
	if height < 3 {
		height = 3
	}
	return &BarChart{width: width, height: height}
}

// SetData sets the per-day values, oldest first. When there are more days
// than columns only the most recent ones are shown.
func (b *BarChart) SetData(data []float64) *BarChart {
	b.data = make([]float64, len(data))
	copy(b.data, data)
	return b
}

// SetSize sets the chart dimensions.
func (b *BarChart) SetSize(width, height int) *BarChart {
	b.width = width
	if height >= 3 {
		b.height = height
	}
	return b
}

// View renders the bar chart.
func (b *BarChart) View() string {
	palette := style.DefaultPalette()
	if len(b.data) == 0 || b.width < 1 {
		return lipgloss.NewStyle().Foreground(palette.TextMuted).Render("No daily history.")
	}

	data := b.data
	if len(data) > b.width {
		data = data[len(data)-b.width:]
	}

	maxAbs := 0.0
	for _, v := range data {
		if v > maxAbs {
			maxAbs = v
		}
		if -v > maxAbs {
			maxAbs = -v
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	// Rows above and below the axis, at least one each.
	upper := (b.height - 1) / 2
	lower := b.height - 1 - upper

	barLen := func(v float64, rows int) int {
		n := int(v/maxAbs*float64(rows) + 0.5)
		if n < 0 {
			n = -n
		}
		if n == 0 && v != 0 {
			n = 1 // tiny but nonzero days stay visible
		}
		if n > rows {
			n = rows
		}
		return n
	}

	profitStyle := lipgloss.NewStyle().Foreground(palette.Profit)
	lossStyle := lipgloss.NewStyle().Foreground(palette.Loss)
	axisStyle := lipgloss.NewStyle().Foreground(palette.TextMuted)

	var canvas strings.Builder
	for row := 0; row < b.height; row++ {
		for _, v := range data {
			switch {
			case row < upper: // above the axis
				if v > 0 && barLen(v, upper) >= upper-row {
					canvas.WriteString(profitStyle.Render("█"))
				} else {
					canvas.WriteString(" ")
				}
			case row == upper: // the axis itself
				canvas.WriteString(axisStyle.Render("─"))
			default: // below the axis
				if v < 0 && barLen(v, lower) >= row-upper {
					canvas.WriteString(lossStyle.Render("█"))
				} else {
					canvas.WriteString(" ")
				}
			}
		}
		if row < b.height-1 {
			canvas.WriteString("\n")
		}
	}

	return canvas.String()
}
