package app

import (
	"esglens/domain/dataset"
	"esglens/internal/analysis"
)

// KPI is a headline metric card
type KPI struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Column string  `json:"column"`
}

type kpiSpec struct {
	name   string
	label  string
	column string
	sum    bool
	scale  float64
}

var kpiCatalog = []kpiSpec{
	{name: "avg_esg", label: "Average ESG Score", column: dataset.ColESGOverall},
	{name: "total_revenue_billions", label: "Total Revenue (B)", column: dataset.ColRevenue, sum: true, scale: 1e9},
	{name: "avg_carbon_emissions", label: "Avg Carbon Emissions", column: dataset.ColCarbonEmissions},
	{name: "avg_profit_margin", label: "Avg Profit Margin", column: dataset.ColProfitMargin},
}

func (k kpiSpec) compute(view *dataset.Table) (KPI, bool) {
	var (
		v  float64
		ok bool
	)
	if k.sum {
		v, ok = analysis.Sum(view, k.column)
	} else {
		v, ok = analysis.Mean(view, k.column)
	}
	if !ok {
		return KPI{}, false
	}
	if k.scale != 0 {
		v /= k.scale
	}
	return KPI{Name: k.name, Label: k.label, Value: v, Column: k.column}, true
}

// Period is the observed span of the year column
type Period struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// ColumnType is the inferred kind of one column
type ColumnType struct {
	Name string       `json:"name"`
	Kind dataset.Kind `json:"kind"`
}

// Summary describes the filtered table. Counts of an unresolved role are nil.
type Summary struct {
	Records         int                      `json:"records"`
	Companies       *int                     `json:"companies"`
	Industries      *int                     `json:"industries"`
	Regions         *int                     `json:"regions"`
	Period          *Period                  `json:"period"`
	Completeness    *float64                 `json:"completeness"`
	MissingCells    int                      `json:"missing_cells"`
	TotalCells      int                      `json:"total_cells"`
	ColumnCount     int                      `json:"column_count"`
	NegativeColumns []string                 `json:"negative_columns"`
	Columns         []string                 `json:"columns"`
	Preview         []map[string]interface{} `json:"preview"`
	ColumnTypes     []ColumnType             `json:"column_types"`
}

func summarize(view *dataset.Table, caps dataset.Capabilities, previewRows int) Summary {
	s := Summary{
		Records:         view.Rows(),
		ColumnCount:     view.Width(),
		Columns:         view.Columns(),
		NegativeColumns: analysis.NegativeColumns(view),
		Preview:         view.Head(previewRows).Records(),
	}
	s.Companies = distinct(view, caps, dataset.RoleCompany)
	s.Industries = distinct(view, caps, dataset.RoleIndustry)
	s.Regions = distinct(view, caps, dataset.RoleRegion)

	if year, ok := caps.Column(dataset.RoleYear); ok {
		if lo, hi, ok := yearExtent(view, year); ok {
			s.Period = &Period{From: lo, To: hi}
		}
	}

	if c, ok := analysis.CompletenessOf(view); ok {
		pct := c.Percent
		s.Completeness = &pct
		s.MissingCells = c.MissingCells
		s.TotalCells = c.TotalCells
	}

	view.Each(func(col *dataset.Column) {
		s.ColumnTypes = append(s.ColumnTypes, ColumnType{Name: col.Name, Kind: col.Kind})
	})
	return s
}

func distinct(view *dataset.Table, caps dataset.Capabilities, role dataset.Role) *int {
	name, ok := caps.Column(role)
	if !ok {
		return nil
	}
	n, ok := analysis.DistinctCount(view, name)
	if !ok {
		return nil
	}
	return &n
}

// yearExtent also covers text year columns, which Extent ignores
func yearExtent(view *dataset.Table, name string) (float64, float64, bool) {
	if lo, hi, ok := analysis.Extent(view, name); ok {
		return lo, hi, true
	}
	col, ok := view.Column(name)
	if !ok {
		return 0, 0, false
	}
	var lo, hi float64
	found := false
	for i := 0; i < col.Len(); i++ {
		v, ok := col.NumberAt(i)
		if !ok {
			continue
		}
		if !found || v < lo {
			lo = v
		}
		if !found || v > hi {
			hi = v
		}
		found = true
	}
	return lo, hi, found
}
