package component

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineChartEmptyData(t *testing.T) {
	chart := NewLineChart(40, 10)

	view := chart.View()
	assert.Contains(t, view, "No PnL history found.")
}

func TestLineChartFinalValue(t *testing.T) {
	chart := NewLineChart(40, 10)
	assert.Equal(t, 0.0, chart.FinalValue())

	chart.SetData([]float64{10, -5, 42})
	assert.Equal(t, 42.0, chart.FinalValue())
}

func TestLineChartRendersMarkersAndZeroLine(t *testing.T) {
	chart := NewLineChart(20, 8).SetData([]float64{-10, -5, 5, 10})

	view := chart.View()
	assert.Contains(t, view, "●")
	assert.Contains(t, view, "╌")

	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 8)
}

func TestLineChartConstantSeries(t *testing.T) {
	// A flat series must not divide by a zero range.
	chart := NewLineChart(10, 5).SetData([]float64{3, 3, 3})

	view := chart.View()
	assert.Contains(t, view, "●")
}

func TestResamplePreservesEndpoints(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}

	out := resample(data, 10)
	require.Len(t, out, 10)
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 99.0, out[len(out)-1])
}

func TestResampleShortSeriesUnchanged(t *testing.T) {
	data := []float64{1, 2, 3}
	assert.Equal(t, data, resample(data, 10))
}

func TestMinMax(t *testing.T) {
	lo, hi := minMax([]float64{4, -2, 7, 0})
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 7.0, hi)
}

func TestBetween(t *testing.T) {
	assert.True(t, between(3, 1, 5))
	assert.True(t, between(3, 5, 1))
	assert.False(t, between(1, 1, 5))
	assert.False(t, between(5, 1, 5))
	assert.False(t, between(0, 1, 5))
}
