package filter

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

func widerTable() *dataset.Table {
	return dataset.MustTable(
		dataset.NewNumericColumn("FiscalYear", []float64{2018, 2019, 2020, 2021, 2022, 2020}),
		dataset.NewTextColumn("Sector", []string{"Tech", "Energy", "Tech", "Retail", "", "Energy"}),
		dataset.NewTextColumn("Country", []string{"FR", "US", "US", "FR", "DE", "DE"}),
		dataset.NewNumericColumn("ESG_Overall", []float64{50, 60, 70, 80, 90, math.NaN()}),
	)
}

func TestApplyYearRangeScenario(t *testing.T) {
	table := scenarioTable()
	caps := dataset.DetectCapabilities(table)
	sel := FullSelection(ObservedOptions(table, caps))
	sel.Years = &YearRange{Min: 2020, Max: 2021}

	out := Apply(table, caps, sel)
	require.Equal(t, 1, out.Rows())
	assert.Equal(t, map[string]interface{}{
		"Year": 2021.0, "Industry": "Energy", "Region": "US", "ESG_Overall": 40.0,
	}, out.Record(0))
	assert.Equal(t, 2, table.Rows(), "input must not change")
}

func TestApplyYearBoundsAreInclusive(t *testing.T) {
	table := widerTable()
	caps := dataset.DetectCapabilities(table)
	sel := FullSelection(ObservedOptions(table, caps))
	sel.Years = &YearRange{Min: 2019, Max: 2020}

	out := Apply(table, caps, sel)
	years, _ := out.Column("FiscalYear")
	assert.Equal(t, []float64{2019, 2020, 2020}, years.Numbers())
}

func TestApplyComposesConjunctively(t *testing.T) {
	table := widerTable()
	caps := dataset.DetectCapabilities(table)
	sel := Selection{
		Years:      &YearRange{Min: 2018, Max: 2022},
		Industries: []string{"Tech", "Energy"},
		Regions:    []string{"US"},
	}

	out := Apply(table, caps, sel)
	years, _ := out.Column("FiscalYear")
	assert.Equal(t, []float64{2019, 2020}, years.Numbers())
}

func TestFullSelectionKeepsEveryRow(t *testing.T) {
	table := widerTable()
	caps := dataset.DetectCapabilities(table)
	opts := ObservedOptions(table, caps)

	assert.Contains(t, opts.Industries, dataset.MissingKey)
	out := Apply(table, caps, FullSelection(opts))
	assert.Equal(t, table.Records(), out.Records())
}

func TestApplyIsIdempotent(t *testing.T) {
	table := widerTable()
	caps := dataset.DetectCapabilities(table)
	selections := []Selection{
		FullSelection(ObservedOptions(table, caps)),
		{Years: &YearRange{Min: 2020, Max: 2020}, Industries: []string{"Energy", "Tech"}, Regions: []string{"DE", "US"}},
		{Industries: []string{}, Regions: []string{"FR"}},
	}

	for _, sel := range selections {
		once := Apply(table, caps, sel)
		twice := Apply(once, caps, sel)
		assert.Equal(t, once.Records(), twice.Records())
	}
}

func TestEmptySetMatchesNothing(t *testing.T) {
	table := widerTable()
	caps := dataset.DetectCapabilities(table)
	sel := FullSelection(ObservedOptions(table, caps))
	sel.Industries = []string{}

	out := Apply(table, caps, sel)
	assert.Equal(t, 0, out.Rows())
	assert.Equal(t, table.Columns(), out.Columns())
}

func TestAbsentRoleImposesNoConstraint(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewNumericColumn("ESG_Overall", []float64{1, 2, 3}),
	)
	caps := dataset.DetectCapabilities(table)
	sel := Selection{Years: &YearRange{Min: 3000, Max: 3001}}

	out := Apply(table, caps, sel)
	assert.Equal(t, 3, out.Rows())
}

func TestMissingYearFollowsIncludeFlag(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewNumericColumn("Year", []float64{2020, math.NaN()}),
	)
	caps := dataset.DetectCapabilities(table)

	sel := Selection{Years: &YearRange{Min: 0, Max: 9999}}
	assert.Equal(t, 1, Apply(table, caps, sel).Rows())

	sel.IncludeMissingYear = true
	assert.Equal(t, 2, Apply(table, caps, sel).Rows())

	sel.Years = &YearRange{Min: 2021, Max: 2022}
	assert.Equal(t, 1, Apply(table, caps, sel).Rows(), "only the yearless row remains")
}

func TestFullSelectionKeepsRowsWithoutNumericYear(t *testing.T) {
	table := dataset.MustTable(
		dataset.NewTextColumn("Year", []string{"2019", "FY2021", "", "2021"}),
		dataset.NewTextColumn("Industry", []string{"Tech", "Energy", "Tech", "Retail"}),
		dataset.NewNumericColumn("ESG_Overall", []float64{70, 40, 55, 60}),
	)
	caps := dataset.DetectCapabilities(table)
	opts := ObservedOptions(table, caps)

	require.NotNil(t, opts.Years)
	assert.Equal(t, YearRange{Min: 2019, Max: 2021}, *opts.Years)
	assert.True(t, opts.MissingYear)

	sel := FullSelection(opts)
	assert.True(t, sel.IncludeMissingYear)
	out := Apply(table, caps, sel)
	assert.Equal(t, table.Records(), out.Records())
}

func TestEnforcedRolesLiftsEmptySetsForIndependentVisuals(t *testing.T) {
	table := widerTable()
	caps := dataset.DetectCapabilities(table)
	sel := FullSelection(ObservedOptions(table, caps))
	sel.Industries = []string{}

	industryView := ApplyRoles(table, caps, sel, sel.EnforcedRoles(dataset.RoleIndustry))
	regionView := ApplyRoles(table, caps, sel, sel.EnforcedRoles(dataset.RoleRegion))

	assert.Equal(t, 0, industryView.Rows())
	assert.Equal(t, table.Rows(), regionView.Rows())

	sel.Industries = []string{"Tech"}
	assert.Contains(t, sel.EnforcedRoles(dataset.RoleRegion), dataset.RoleIndustry,
		"non-empty selections always apply")
}
