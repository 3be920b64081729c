package coercer

import (
	"testing"

	"esglens/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildColumnNumeric(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	col := c.BuildColumn("Revenue", []string{"1200.5", " 30 ", "NA", "", "-4e2"})

	require.Equal(t, dataset.KindNumeric, col.Kind)
	assert.Equal(t, []float64{1200.5, 30, -400}, col.Numbers())
	assert.Equal(t, 2, col.Missing())
}

func TestBuildColumnTextWhenAnyValueIsNotNumeric(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	col := c.BuildColumn("Industry", []string{"Tech", "42", "null"})

	require.Equal(t, dataset.KindText, col.Kind)
	assert.Equal(t, "42", col.Key(1))
	assert.Equal(t, 1, col.Missing())
}

func TestAllMissingColumnIsNumeric(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	col := c.BuildColumn("WaterUsage", []string{"", "NaN"})

	assert.Equal(t, dataset.KindNumeric, col.Kind)
	assert.Empty(t, col.Numbers())
}

func TestThresholdCoercesStragglersToMissing(t *testing.T) {
	cfg := DefaultCoercionConfig()
	cfg.NumericThreshold = 0.6
	c := NewTypeCoercer(cfg)

	col := c.BuildColumn("ProfitMargin", []string{"1", "2", "oops"})
	assert.Equal(t, dataset.KindNumeric, col.Kind)
	assert.Equal(t, []float64{1, 2}, col.Numbers())
}

func TestLenientNumbers(t *testing.T) {
	cfg := DefaultCoercionConfig()
	cfg.LenientNumbers = true
	c := NewTypeCoercer(cfg)

	cases := map[string]float64{
		"$1,200":  1200,
		"(350)":   -350,
		"12.5%":   12.5,
		"EUR 900": 900,
	}
	for raw, want := range cases {
		got, ok := c.ParseNumber(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	strict := NewTypeCoercer(DefaultCoercionConfig())
	_, ok := strict.ParseNumber("$1,200")
	assert.False(t, ok)
}

func TestParseNumberRejectsInfinity(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	_, ok := c.ParseNumber("inf")
	assert.False(t, ok)
}
