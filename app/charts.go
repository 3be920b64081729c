package app

import (
	"esglens/domain/dataset"
	"esglens/internal/analysis"
)

// ChartKind names the visual a chart's data is shaped for
type ChartKind string

const (
	ChartHistogram ChartKind = "histogram"
	ChartBox       ChartKind = "box"
	ChartScatter   ChartKind = "scatter"
	ChartLine      ChartKind = "line"
	ChartBar       ChartKind = "bar"
	ChartHeatmap   ChartKind = "heatmap"
)

// Bindings maps visual channels to column names. Empty channels are unbound.
type Bindings struct {
	X      string   `json:"x,omitempty"`
	Y      string   `json:"y,omitempty"`
	Color  string   `json:"color,omitempty"`
	Size   string   `json:"size,omitempty"`
	Symbol string   `json:"symbol,omitempty"`
	Hover  []string `json:"hover,omitempty"`
}

// Chart is a render-ready chart: its column bindings plus the data computed
// for the current selection
type Chart struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Kind     ChartKind   `json:"kind"`
	Bindings Bindings    `json:"bindings"`
	Data     interface{} `json:"data"`
}

// ScatterPoint is one marker of a scatter chart
type ScatterPoint struct {
	X      float64                `json:"x"`
	Y      float64                `json:"y"`
	Color  string                 `json:"color,omitempty"`
	Size   *float64               `json:"size,omitempty"`
	Symbol string                 `json:"symbol,omitempty"`
	Hover  map[string]interface{} `json:"hover,omitempty"`
}

// chartSpec declares a chart: the metrics and roles it needs, the roles its
// rows depend on, how it binds columns and how it shapes its data
type chartSpec struct {
	id    string
	title string
	kind  ChartKind

	metrics   []string
	roles     []dataset.Role
	dependsOn []dataset.Role

	bind  func(caps dataset.Capabilities) Bindings
	build func(view *dataset.Table, b Bindings, opts chartOptions) (interface{}, bool)
}

type chartOptions struct {
	histogramBins int
}

func (s chartSpec) missing(caps dataset.Capabilities) []string {
	var out []string
	for _, m := range s.metrics {
		if !caps.HasMetric(m) {
			out = append(out, m)
		}
	}
	for _, r := range s.roles {
		if !caps.Has(r) {
			out = append(out, string(r))
		}
	}
	return out
}

// usesSize reports which size source a chart binds, if any
func (s chartSpec) usesSize(caps dataset.Capabilities) string {
	b := s.bind(caps)
	for _, src := range dataset.SizeColumns {
		if b.Size == dataset.SizeColumnName(src) {
			return src
		}
	}
	return ""
}

func roleColumn(caps dataset.Capabilities, role dataset.Role) string {
	name, _ := caps.Column(role)
	return name
}

func hoverColumns(caps dataset.Capabilities, roles ...dataset.Role) []string {
	var out []string
	for _, role := range roles {
		if name, ok := caps.Column(role); ok {
			out = append(out, name)
		}
	}
	return out
}

func sizeBinding(caps dataset.Capabilities, source string) string {
	if caps.HasMetric(source) {
		return dataset.SizeColumnName(source)
	}
	return ""
}

// chartCatalog lists every chart in display order
var chartCatalog = []chartSpec{
	{
		id:      "esg_distribution",
		title:   "Distribution of ESG Overall Scores",
		kind:    ChartHistogram,
		metrics: []string{dataset.ColESGOverall},
		bind: func(caps dataset.Capabilities) Bindings {
			return Bindings{X: dataset.ColESGOverall}
		},
		build: func(view *dataset.Table, b Bindings, opts chartOptions) (interface{}, bool) {
			bins := analysis.Histogram(view, b.X, opts.histogramBins)
			return bins, len(bins) > 0
		},
	},
	{
		id:        "esg_by_industry",
		title:     "ESG Overall Scores by Industry",
		kind:      ChartBox,
		metrics:   []string{dataset.ColESGOverall},
		roles:     []dataset.Role{dataset.RoleIndustry},
		dependsOn: []dataset.Role{dataset.RoleIndustry},
		bind: func(caps dataset.Capabilities) Bindings {
			industry := roleColumn(caps, dataset.RoleIndustry)
			return Bindings{X: industry, Y: dataset.ColESGOverall, Color: industry}
		},
		build: buildBox,
	},
	{
		id:        "revenue_vs_esg",
		title:     "Revenue vs ESG Overall Score",
		kind:      ChartScatter,
		metrics:   []string{dataset.ColRevenue, dataset.ColESGOverall},
		dependsOn: []dataset.Role{dataset.RoleIndustry},
		bind: func(caps dataset.Capabilities) Bindings {
			return Bindings{
				X:     dataset.ColRevenue,
				Y:     dataset.ColESGOverall,
				Color: roleColumn(caps, dataset.RoleIndustry),
				Size:  sizeBinding(caps, dataset.ColProfitMargin),
				Hover: hoverColumns(caps, dataset.RoleCompany, dataset.RoleRegion),
			}
		},
		build: buildScatter,
	},
	{
		id:        "esg_over_years",
		title:     "Average ESG Overall Scores Over Years",
		kind:      ChartLine,
		metrics:   []string{dataset.ColESGOverall},
		roles:     []dataset.Role{dataset.RoleYear},
		dependsOn: []dataset.Role{dataset.RoleYear},
		bind: func(caps dataset.Capabilities) Bindings {
			return Bindings{X: roleColumn(caps, dataset.RoleYear), Y: dataset.ColESGOverall}
		},
		build: func(view *dataset.Table, b Bindings, _ chartOptions) (interface{}, bool) {
			means := analysis.GroupedMean(view, b.X, b.Y, analysis.ByGroupAsc)
			return means, len(means) > 0
		},
	},
	{
		id:        "esg_by_region",
		title:     "Average ESG Overall Scores by Region",
		kind:      ChartBar,
		metrics:   []string{dataset.ColESGOverall},
		roles:     []dataset.Role{dataset.RoleRegion},
		dependsOn: []dataset.Role{dataset.RoleRegion},
		bind: func(caps dataset.Capabilities) Bindings {
			return Bindings{X: roleColumn(caps, dataset.RoleRegion), Y: dataset.ColESGOverall, Color: dataset.ColESGOverall}
		},
		build: buildBar,
	},
	{
		id:        "carbon_vs_environmental",
		title:     "Carbon Emissions vs ESG Environmental Score",
		kind:      ChartScatter,
		metrics:   []string{dataset.ColCarbonEmissions, dataset.ColESGEnvironmental},
		dependsOn: []dataset.Role{dataset.RoleIndustry},
		bind: func(caps dataset.Capabilities) Bindings {
			return Bindings{
				X:     dataset.ColCarbonEmissions,
				Y:     dataset.ColESGEnvironmental,
				Color: roleColumn(caps, dataset.RoleIndustry),
				Size:  sizeBinding(caps, dataset.ColRevenue),
				Hover: hoverColumns(caps, dataset.RoleCompany, dataset.RoleRegion),
			}
		},
		build: buildScatter,
	},
	{
		id:        "water_by_industry",
		title:     "Water Usage by Industry",
		kind:      ChartBox,
		metrics:   []string{dataset.ColWaterUsage},
		roles:     []dataset.Role{dataset.RoleIndustry},
		dependsOn: []dataset.Role{dataset.RoleIndustry},
		bind: func(caps dataset.Capabilities) Bindings {
			industry := roleColumn(caps, dataset.RoleIndustry)
			return Bindings{X: industry, Y: dataset.ColWaterUsage, Color: industry}
		},
		build: buildBox,
	},
	{
		id:        "energy_vs_environmental_by_region",
		title:     "Energy Consumption vs ESG Environmental Score by Region",
		kind:      ChartScatter,
		metrics:   []string{dataset.ColEnergyConsumption, dataset.ColESGEnvironmental},
		roles:     []dataset.Role{dataset.RoleRegion},
		dependsOn: []dataset.Role{dataset.RoleRegion},
		bind: func(caps dataset.Capabilities) Bindings {
			region := roleColumn(caps, dataset.RoleRegion)
			return Bindings{
				X:      dataset.ColEnergyConsumption,
				Y:      dataset.ColESGEnvironmental,
				Color:  region,
				Size:   sizeBinding(caps, dataset.ColCarbonEmissions),
				Symbol: region,
				Hover:  hoverColumns(caps, dataset.RoleCompany, dataset.RoleIndustry),
			}
		},
		build: buildScatter,
	},
	{
		id:        "profit_vs_governance",
		title:     "Profit Margin vs ESG Governance Score",
		kind:      ChartScatter,
		metrics:   []string{dataset.ColProfitMargin, dataset.ColESGGovernance},
		dependsOn: []dataset.Role{dataset.RoleIndustry},
		bind: func(caps dataset.Capabilities) Bindings {
			return Bindings{
				X:     dataset.ColProfitMargin,
				Y:     dataset.ColESGGovernance,
				Color: roleColumn(caps, dataset.RoleIndustry),
				Size:  sizeBinding(caps, dataset.ColRevenue),
				Hover: hoverColumns(caps, dataset.RoleCompany, dataset.RoleRegion),
			}
		},
		build: buildScatter,
	},
	{
		id:        "social_by_region",
		title:     "Average Social Scores by Region",
		kind:      ChartBar,
		metrics:   []string{dataset.ColESGSocial},
		roles:     []dataset.Role{dataset.RoleRegion},
		dependsOn: []dataset.Role{dataset.RoleRegion},
		bind: func(caps dataset.Capabilities) Bindings {
			return Bindings{X: roleColumn(caps, dataset.RoleRegion), Y: dataset.ColESGSocial, Color: dataset.ColESGSocial}
		},
		build: buildBar,
	},
	{
		id:    "correlation_heatmap",
		title: "Correlation Heatmap of Key Metrics",
		kind:  ChartHeatmap,
		bind: func(caps dataset.Capabilities) Bindings {
			return Bindings{}
		},
		build: func(view *dataset.Table, _ Bindings, _ chartOptions) (interface{}, bool) {
			corr, ok := analysis.CorrelationMatrix(view, dataset.CorrelationMetrics)
			if !ok || corr.Observations == 0 {
				return nil, false
			}
			return corr, true
		},
	},
}

func buildBox(view *dataset.Table, b Bindings, _ chartOptions) (interface{}, bool) {
	groups := analysis.GroupedQuartiles(view, b.X, b.Y)
	return groups, len(groups) > 0
}

func buildBar(view *dataset.Table, b Bindings, _ chartOptions) (interface{}, bool) {
	means := analysis.GroupedMean(view, b.X, b.Y, analysis.ByMeanDesc)
	return means, len(means) > 0
}

// buildScatter emits one point per row with both coordinates present
func buildScatter(view *dataset.Table, b Bindings, _ chartOptions) (interface{}, bool) {
	xs, ok := view.NumericColumn(b.X)
	if !ok {
		return nil, false
	}
	ys, ok := view.NumericColumn(b.Y)
	if !ok {
		return nil, false
	}
	color := optionalColumn(view, b.Color)
	symbol := optionalColumn(view, b.Symbol)
	size, _ := view.NumericColumn(b.Size)

	var hover []*dataset.Column
	for _, name := range b.Hover {
		if col, ok := view.Column(name); ok {
			hover = append(hover, col)
		}
	}

	points := []ScatterPoint{}
	for i := 0; i < view.Rows(); i++ {
		x, okX := xs.NumberAt(i)
		y, okY := ys.NumberAt(i)
		if !okX || !okY {
			continue
		}
		p := ScatterPoint{X: x, Y: y}
		if color != nil {
			p.Color = color.Key(i)
		}
		if symbol != nil {
			p.Symbol = symbol.Key(i)
		}
		if size != nil {
			if v, ok := size.NumberAt(i); ok {
				p.Size = &v
			}
		}
		if len(hover) > 0 {
			p.Hover = make(map[string]interface{}, len(hover))
			for _, col := range hover {
				p.Hover[col.Name] = col.Value(i)
			}
		}
		points = append(points, p)
	}
	return points, len(points) > 0
}

func optionalColumn(view *dataset.Table, name string) *dataset.Column {
	if name == "" {
		return nil
	}
	col, _ := view.Column(name)
	return col
}
