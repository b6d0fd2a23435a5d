package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hyperfolio/internal/ui/style"
)

// LineChart renders a series as a terminal line chart with a dashed zero
// reference line. The line color is keyed to the sign of the final value:
// green when the account ends up, red when it ends down.
type LineChart struct {
	data   []float64
	width  int
	height int
}

// NewLineChart creates a line chart with the given dimensions.
func NewLineChart(width, height int) *LineChart {
	if height < 3 {
		height = 3
	}
	return &LineChart{width: width, height: height}
}

// SetData sets the data points, oldest first.
func (c *LineChart) SetData(data []float64) *LineChart {
	c.data = make([]float64, len(data))
	copy(c.data, data)
	return c
}

// SetSize sets the chart dimensions.
func (c *LineChart) SetSize(width, height int) *LineChart {
	c.width = width
	if height >= 3 {
		c.height = height
	}
	return c
}

// FinalValue returns the last data point, or 0 for an empty series.
func (c *LineChart) FinalValue() float64 {
	if len(c.data) == 0 {
		return 0
	}
	return c.data[len(c.data)-1]
}

// View renders the chart.
func (c *LineChart) View() string {
	palette := style.DefaultPalette()
	if len(c.data) == 0 || c.width < 2 {
		return lipgloss.NewStyle().Foreground(palette.TextMuted).Render("No PnL history found.")
	}

	points := resample(c.data, c.width)
	lo, hi := minMax(points)
	// Always include zero so the reference line is on canvas.
	if lo > 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if hi == lo {
		hi = lo + 1
	}

	rowOf := func(v float64) int {
		// Row 0 is the top of the canvas.
		scaled := (v - lo) / (hi - lo) * float64(c.height-1)
		return c.height - 1 - int(scaled+0.5)
	}
	zeroRow := rowOf(0)

	lineColor := palette.Profit
	if c.FinalValue() < 0 {
		lineColor = palette.Loss
	}
	lineStyle := lipgloss.NewStyle().Foreground(lineColor)
	zeroStyle := lipgloss.NewStyle().Foreground(palette.TextMuted)

	var canvas strings.Builder
	for row := 0; row < c.height; row++ {
		for col, v := range points {
			switch {
			case rowOf(v) == row:
				canvas.WriteString(lineStyle.Render("●"))
			case row == zeroRow:
				canvas.WriteString(zeroStyle.Render("╌"))
			case col < len(points)-1 && between(row, rowOf(v), rowOf(points[col+1])):
				// Vertical fill between consecutive points keeps steep
				// moves connected.
				canvas.WriteString(lineStyle.Render("│"))
			default:
				canvas.WriteString(" ")
			}
		}
		if row < c.height-1 {
			canvas.WriteString("\n")
		}
	}

	return canvas.String()
}

// resample reduces or keeps a series to at most width points, preserving the
// first and last values.
func resample(data []float64, width int) []float64 {
	if len(data) <= width {
		return data
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		idx := i * (len(data) - 1) / (width - 1)
		out[i] = data[idx]
	}
	return out
}

func minMax(data []float64) (float64, float64) {
	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// between reports whether row lies strictly between rows a and b.
func between(row, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return row > a && row < b
}
