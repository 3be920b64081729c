package analysis

import (
	"math"
	"testing"

	"esglens/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupedMeanScenario(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewTextColumn("Region", []string{"US", "EU", "EU"}),
		dataset.NewNumericColumn("ESG_Overall", []float64{40, 70, 90}),
	)

	got := GroupedMean(table, "Region", "ESG_Overall", ByMeanDesc)
	assert.Equal(t, []GroupMean{
		{Group: "EU", Mean: 80, Count: 2},
		{Group: "US", Mean: 40, Count: 1},
	}, got)
}

func TestGroupedMeanSkipsMissingAndBreaksTies(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewTextColumn("Region", []string{"b", "a", "", "c", "c"}),
		dataset.NewNumericColumn("ESG_Social", []float64{5, 5, 100, math.NaN(), math.NaN()}),
	)

	got := GroupedMean(table, "Region", "ESG_Social", ByMeanDesc)
	require.Len(t, got, 2, "missing groups and groups without values are dropped")
	assert.Equal(t, "a", got[0].Group)
	assert.Equal(t, "b", got[1].Group)
}

func TestGroupedMeanByYear(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewNumericColumn("Year", []float64{2021, 2009, 2021, 2015}),
		dataset.NewNumericColumn("ESG_Overall", []float64{60, 30, 80, 50}),
	)

	got := GroupedMean(table, "Year", "ESG_Overall", ByGroupAsc)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"2009", "2015", "2021"}, []string{got[0].Group, got[1].Group, got[2].Group})
	assert.Equal(t, 70.0, got[2].Mean)
}

func TestGroupedMeanUnavailable(t *testing.T) {
	table := dataset.MustTable(dataset.NewTextColumn("Region", []string{"EU"}))
	assert.Nil(t, GroupedMean(table, "Region", "ESG_Overall", ByMeanDesc))
	assert.Nil(t, GroupedMean(table, "Industry", "Region", ByMeanDesc))
}

func TestGroupedQuartiles(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewTextColumn("Industry", []string{"Tech", "Tech", "Tech", "Tech", "Energy"}),
		dataset.NewNumericColumn("WaterUsage", []float64{1, 2, 3, 4, 9}),
	)

	got := GroupedQuartiles(table, "Industry", "WaterUsage")
	require.Len(t, got, 2)

	tech := got[0]
	assert.Equal(t, "Tech", tech.Group)
	assert.Equal(t, 4, tech.Count)
	assert.Equal(t, 1.0, tech.Min)
	assert.Equal(t, 1.5, tech.Q1)
	assert.Equal(t, 2.5, tech.Median)
	assert.Equal(t, 3.5, tech.Q3)
	assert.Equal(t, 4.0, tech.Max)
	assert.Equal(t, 1.0, tech.LowerFence)
	assert.Equal(t, 4.0, tech.UpperFence)
	assert.Empty(t, tech.Outliers)

	energy := got[1]
	assert.Equal(t, GroupSummary{
		Group: "Energy", Count: 1, Min: 9, Q1: 9, Median: 9, Q3: 9, Max: 9,
		LowerFence: 9, UpperFence: 9, Outliers: []float64{},
	}, energy)
}

func TestGroupedQuartilesFlagsOutliers(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewTextColumn("Industry", []string{"Tech", "Tech", "Tech", "Tech", "Tech", "Tech", "Tech", "Tech", "Tech"}),
		dataset.NewNumericColumn("WaterUsage", []float64{3, 1, 100, 2, 5, 4, 7, 6, 8}),
	)

	got := GroupedQuartiles(table, "Industry", "WaterUsage")
	require.Len(t, got, 1)

	tech := got[0]
	assert.Equal(t, 2.5, tech.Q1)
	assert.Equal(t, 5.0, tech.Median)
	assert.Equal(t, 7.5, tech.Q3)
	assert.Equal(t, 1.0, tech.LowerFence)
	assert.Equal(t, 8.0, tech.UpperFence)
	assert.Equal(t, []float64{100}, tech.Outliers)
	assert.Equal(t, 100.0, tech.Max)
}

func TestHistogram(t *testing.T) {
	bins := HistogramValues([]float64{0, 1, 2, 3, 4, 10}, 5)
	require.Len(t, bins, 5)
	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 10.0, bins[4].Upper)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 6, total)
	assert.Equal(t, 2, bins[0].Count)
	assert.Equal(t, 1, bins[4].Count)

	single := HistogramValues([]float64{7, 7}, 30)
	assert.Equal(t, []Bin{{Lower: 6.5, Upper: 7.5, Count: 2}}, single)

	assert.Nil(t, HistogramValues(nil, 30))
}
