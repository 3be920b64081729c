package analysis

import (
	"math"
	"testing"

	"esglens/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioTable() *dataset.Table {
	return dataset.MustTable(
		dataset.NewNumericColumn("Year", []float64{2019, 2021}),
		dataset.NewTextColumn("Industry", []string{"Tech", "Energy"}),
		dataset.NewTextColumn("Region", []string{"EU", "US"}),
		dataset.NewNumericColumn("ESG_Overall", []float64{70, 40}),
	)
}

func TestMeanScenario(t *testing.T) {
	mean, ok := Mean(scenarioTable(), "ESG_Overall")
	require.True(t, ok)
	assert.Equal(t, 55.0, mean)
}

func TestMeanAndSumIgnoreMissing(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewNumericColumn("Revenue", []float64{1e9, math.NaN(), 3e9}),
	)
	mean, ok := Mean(table, "Revenue")
	require.True(t, ok)
	assert.Equal(t, 2e9, mean)

	sum, ok := Sum(table, "Revenue")
	require.True(t, ok)
	assert.Equal(t, 4e9, sum)
}

func TestScalarsUnavailable(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewNumericColumn("Empty", []float64{math.NaN(), math.NaN()}),
		dataset.NewTextColumn("Label", []string{"a", "b"}),
	)
	for _, name := range []string{"Empty", "Label", "Absent"} {
		_, ok := Mean(table, name)
		assert.False(t, ok, name)
		_, ok = Sum(table, name)
		assert.False(t, ok, name)
	}

	_, _, ok := Extent(table, "Empty")
	assert.False(t, ok)
}

func TestDistinctCount(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewTextColumn("Company", []string{"Acme", "Acme", "", "Borealis"}),
	)
	n, ok := DistinctCount(table, "Company")
	require.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = DistinctCount(table, "Region")
	assert.False(t, ok)
}

func TestCompleteness(t *testing.T) {
	full := scenarioTable()
	c, ok := CompletenessOf(full)
	require.True(t, ok)
	assert.Equal(t, 100.0, c.Percent)
	assert.Equal(t, 8, c.TotalCells)

	partial := dataset.MustTable(
		dataset.NewNumericColumn("A", []float64{1, math.NaN()}),
		dataset.NewTextColumn("B", []string{"", "x"}),
	)
	c, ok = CompletenessOf(partial)
	require.True(t, ok)
	assert.Equal(t, 50.0, c.Percent)
	assert.Equal(t, 2, c.MissingCells)

	empty := dataset.MustTable(
		dataset.NewNumericColumn("A", []float64{math.NaN()}),
		dataset.NewTextColumn("B", []string{""}),
	)
	c, ok = CompletenessOf(empty)
	require.True(t, ok)
	assert.Equal(t, 0.0, c.Percent)

	_, ok = CompletenessOf(dataset.MustTable(dataset.NewTextColumn("A", nil)))
	assert.False(t, ok)
}

func TestCompletenessBounds(t *testing.T) {
	tables := []*dataset.Table{
		scenarioTable(),
		dataset.MustTable(dataset.NewNumericColumn("A", []float64{math.NaN(), 1, 2})),
		dataset.MustTable(dataset.NewTextColumn("A", []string{"", "", "x", ""})),
	}
	for _, table := range tables {
		c, ok := CompletenessOf(table)
		require.True(t, ok)
		assert.GreaterOrEqual(t, c.Percent, 0.0)
		assert.LessOrEqual(t, c.Percent, 100.0)
		assert.Equal(t, c.MissingCells == 0, c.Percent == 100)
		assert.Equal(t, c.MissingCells == c.TotalCells, c.Percent == 0)
	}
}

func TestNegativeColumns(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewNumericColumn("ProfitMargin", []float64{-2, 5}),
		dataset.NewTextColumn("Region", []string{"-1", "x"}),
		dataset.NewNumericColumn("Revenue", []float64{0, 10}),
		dataset.NewNumericColumn("GrowthRate", []float64{math.NaN(), -0.5}),
	)
	assert.Equal(t, []string{"ProfitMargin", "GrowthRate"}, NegativeColumns(table))
}

func TestFillMedian(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewNumericColumn("GrowthRate", []float64{1, math.NaN(), 3, 10}),
		dataset.NewTextColumn("Company", []string{"a", "b", "c", "d"}),
	)

	filled, changed := FillMedian(table, "GrowthRate")
	require.True(t, changed)
	col, _ := filled.Column("GrowthRate")
	assert.Equal(t, []float64{1, 3, 3, 10}, col.Numbers())

	orig, _ := table.Column("GrowthRate")
	assert.Equal(t, 1, orig.Missing(), "source table keeps its gaps")

	same, changed := FillMedian(filled, "GrowthRate")
	assert.False(t, changed)
	assert.Same(t, filled, same)

	_, changed = FillMedian(table, "Absent")
	assert.False(t, changed)
}
