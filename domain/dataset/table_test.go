package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return MustTable(
		NewNumericColumn("Year", []float64{2019, 2021, math.NaN()}),
		NewTextColumn("Industry", []string{"Tech", "Energy", ""}),
		NewNumericColumn("ESG_Overall", []float64{70, 40, 55.5}),
	)
}

func TestNewTableRejectsDuplicatesAndRaggedColumns(t *testing.T) {
	_, err := NewTable([]*Column{
		NewTextColumn("A", []string{"x"}),
		NewTextColumn("A", []string{"y"}),
	})
	require.Error(t, err)

	_, err = NewTable([]*Column{
		NewTextColumn("A", []string{"x"}),
		NewTextColumn("B", []string{"y", "z"}),
	})
	require.Error(t, err)
}

func TestColumnAccessors(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, 3, tbl.Rows())
	assert.Equal(t, 3, tbl.Width())
	assert.Equal(t, []string{"Year", "Industry", "ESG_Overall"}, tbl.Columns())

	year, ok := tbl.Column("Year")
	require.True(t, ok)
	assert.Equal(t, []float64{2019, 2021}, year.Numbers())
	assert.Equal(t, 1, year.Missing())
	assert.Equal(t, "2019", year.Key(0))
	assert.Equal(t, MissingKey, year.Key(2))

	_, ok = tbl.NumericColumn("Industry")
	assert.False(t, ok)

	ind, _ := tbl.Column("Industry")
	assert.Nil(t, ind.Numbers())
	assert.Nil(t, ind.Value(2))
	assert.Equal(t, "Energy", ind.Value(1))
}

func TestNumberAtParsesTextColumns(t *testing.T) {
	col := NewTextColumn("FiscalYear", []string{"2020", "FY21", ""})
	v, ok := col.NumberAt(0)
	assert.True(t, ok)
	assert.Equal(t, 2020.0, v)
	_, ok = col.NumberAt(1)
	assert.False(t, ok)
	_, ok = col.NumberAt(2)
	assert.False(t, ok)
}

func TestSelectRowsLeavesSourceUntouched(t *testing.T) {
	tbl := sampleTable()
	sub := tbl.SelectRows([]int{1})

	assert.Equal(t, 1, sub.Rows())
	assert.Equal(t, 3, tbl.Rows())
	assert.Equal(t, map[string]interface{}{"Year": 2021.0, "Industry": "Energy", "ESG_Overall": 40.0}, sub.Record(0))
}

func TestWithColumnAppendsOrReplaces(t *testing.T) {
	tbl := sampleTable()

	added, err := tbl.WithColumn(NewNumericColumn("Revenue", []float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, 4, added.Width())
	assert.False(t, tbl.HasColumn("Revenue"))

	replaced, err := added.WithColumn(NewNumericColumn("Year", []float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, added.Columns(), replaced.Columns())
	year, _ := replaced.Column("Year")
	assert.Equal(t, []float64{1, 2, 3}, year.Numbers())

	_, err = tbl.WithColumn(NewNumericColumn("Short", []float64{1}))
	assert.Error(t, err)
}

func TestHead(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, 2, tbl.Head(2).Rows())
	assert.Equal(t, 3, tbl.Head(10).Rows())
	assert.Equal(t, 0, tbl.Head(-1).Rows())
}
