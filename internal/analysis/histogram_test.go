package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramSpanBeyondFloatRange(t *testing.T) {
	var bins []Bin
	require.NotPanics(t, func() {
		bins = HistogramValues([]float64{-1e308, 0, 1e308}, 30)
	})
	require.Len(t, bins, 30)

	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 1, bins[15].Count)
	assert.Equal(t, 1, bins[29].Count)
	assert.Equal(t, -1e308, bins[0].Lower)
	assert.Equal(t, 1e308, bins[29].Upper)
	for _, b := range bins {
		assert.False(t, math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, 0))
		assert.LessOrEqual(t, b.Lower, b.Upper)
	}
}

func TestHistogramIgnoresNonFiniteValues(t *testing.T) {
	bins := HistogramValues([]float64{math.NaN(), 1, math.Inf(1), 3, math.Inf(-1)}, 2)
	require.Len(t, bins, 2)
	assert.Equal(t, 1.0, bins[0].Lower)
	assert.Equal(t, 3.0, bins[1].Upper)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 1, bins[1].Count)

	assert.Nil(t, HistogramValues([]float64{math.NaN()}, 5))
	assert.Nil(t, HistogramValues([]float64{1, 2}, 0))
}
