package analysis

import (
	"math"
	"testing"

	"esglens/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSizeScenarios(t *testing.T) {
	out, shifted := NormalizeSizeValues([]float64{-5, 0, 10})
	assert.Equal(t, []float64{1, 6, 16}, out)
	assert.True(t, shifted)

	out, shifted = NormalizeSizeValues([]float64{0, 5})
	assert.Equal(t, []float64{1, 6}, out)
	assert.False(t, shifted)

	out, shifted = NormalizeSizeValues([]float64{2, 5})
	assert.Equal(t, []float64{2, 5}, out)
	assert.False(t, shifted)
}

func TestNormalizeSizeIsAffineAndPositive(t *testing.T) {
	inputs := [][]float64{
		{-3.5, -1, 0, 7.25},
		{0, 0, 0},
		{0.001, 2, 1e6},
		{-100, -100},
		{-2, math.NaN(), 4},
	}
	for _, in := range inputs {
		out, _ := NormalizeSizeValues(in)
		require.Len(t, out, len(in))

		var shift float64
		first := true
		for i := range in {
			if math.IsNaN(in[i]) {
				assert.True(t, math.IsNaN(out[i]))
				continue
			}
			assert.GreaterOrEqual(t, out[i], 1.0, "%v", in)
			if first {
				shift = out[i] - in[i]
				first = false
			}
			assert.InDelta(t, shift, out[i]-in[i], 1e-9, "constant shift for %v", in)
		}
	}
}

func TestNormalizeSizeDoesNotAliasInput(t *testing.T) {
	in := []float64{-1, 1}
	_, _ = NormalizeSizeValues(in)
	assert.Equal(t, []float64{-1, 1}, in)
}

func TestNormalizeSizeAllMissing(t *testing.T) {
	out, shifted := NormalizeSizeValues([]float64{math.NaN()})
	assert.False(t, shifted)
	assert.True(t, math.IsNaN(out[0]))

	out, shifted = NormalizeSizeValues(nil)
	assert.False(t, shifted)
	assert.Empty(t, out)
}

func TestNormalizeSizeColumn(t *testing.T) {
	src := dataset.NewNumericColumn("ProfitMargin", []float64{-5, math.NaN(), 10})
	col, shifted := NormalizeSize(src, dataset.SizeColumnName("ProfitMargin"))

	assert.True(t, shifted)
	assert.Equal(t, "ProfitMargin_Size", col.Name)
	assert.Equal(t, []float64{1, 16}, col.Numbers())
	assert.Equal(t, 1, col.Missing())
	assert.Equal(t, []float64{-5, 10}, src.Numbers())
}
