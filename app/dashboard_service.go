package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"esglens/adapters/excel"
	"esglens/domain/dataset"
	"esglens/internal"
	"esglens/internal/analysis"
	"esglens/internal/config"
	"esglens/internal/errors"
	"esglens/internal/filter"

	"golang.org/x/sync/semaphore"
)

// Skipped records a widget that was left out of a dashboard and why
type Skipped struct {
	Widget string `json:"widget"`
	Reason string `json:"reason"`
}

// Dashboard is everything a client renders for one selection
type Dashboard struct {
	Selection    filter.Selection     `json:"selection"`
	Capabilities dataset.Capabilities `json:"capabilities"`
	KPIs         []KPI                `json:"kpis"`
	Charts       []Chart              `json:"charts"`
	Advisories   []string             `json:"advisories"`
	Summary      Summary              `json:"summary"`
	Skipped      []Skipped            `json:"skipped"`

	// Filtered is the strictly filtered table with derived size columns
	Filtered *dataset.Table `json:"-"`
}

// Chart returns the chart with the given id
func (d *Dashboard) Chart(id string) (Chart, bool) {
	for _, c := range d.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}

// KPI returns the KPI with the given name
func (d *Dashboard) KPI(name string) (KPI, bool) {
	for _, k := range d.KPIs {
		if k.Name == name {
			return k, true
		}
	}
	return KPI{}, false
}

// TableReader parses an upload into a typed table
type TableReader interface {
	ReadTable(src io.Reader, format excel.Format) (*dataset.Table, error)
}

// DashboardService loads datasets and recomputes dashboards
type DashboardService struct {
	reader  TableReader
	config  config.DashboardConfig
	uploads *semaphore.Weighted
}

// NewDashboardService creates a dashboard service. maxConcurrentLoads bounds
// how many uploads are parsed at once.
func NewDashboardService(reader TableReader, cfg config.DashboardConfig, maxConcurrentLoads int64) *DashboardService {
	if maxConcurrentLoads <= 0 {
		maxConcurrentLoads = 1
	}
	return &DashboardService{
		reader:  reader,
		config:  cfg,
		uploads: semaphore.NewWeighted(maxConcurrentLoads),
	}
}

// Load parses an upload and prepares it. The format follows the file name.
// Unreadable input fails the whole load; no partial dataset is returned.
func (s *DashboardService) Load(ctx context.Context, filename string, src io.Reader) (*Dataset, error) {
	format, err := excel.DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	if err := s.uploads.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "waiting for upload slot")
	}
	defer s.uploads.Release(1)

	start := time.Now()
	table, err := s.reader.ReadTable(src, format)
	if err != nil {
		internal.DefaultLogger.Warn("[Dashboard] Failed to read %s: %v", filename, err)
		return nil, err
	}

	ds := Prepare(filename, table, s.config.CategoryDefaultCap)
	internal.DefaultLogger.Info("[Dashboard] Loaded %s: %d rows x %d columns in %v", filename, table.Rows(), table.Width(), time.Since(start))
	return ds, nil
}

// Recompute derives the full dashboard for a selection. It is pure: the
// dataset is not modified and the same inputs give the same dashboard.
func (s *DashboardService) Recompute(ds *Dataset, sel filter.Selection) (*Dashboard, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	sel = sel.Clone()
	caps := ds.Capabilities

	d := &Dashboard{
		Selection:    sel,
		Capabilities: caps,
		KPIs:         []KPI{},
		Charts:       []Chart{},
		Advisories:   []string{},
		Skipped:      []Skipped{},
	}

	shifted := make(map[string]bool)
	views := newViewCache(ds.Table, caps, sel)

	strict := views.get(nil, true)
	strict, strictShifted := withSizeColumns(strict, caps)
	merge(shifted, strictShifted)
	d.Filtered = strict

	for _, k := range kpiCatalog {
		kpi, ok := k.compute(strict)
		if !ok {
			d.Skipped = append(d.Skipped, Skipped{Widget: "kpi:" + k.name, Reason: unavailableReason(strict, caps, k.column)})
			continue
		}
		d.KPIs = append(d.KPIs, kpi)
	}

	opts := chartOptions{histogramBins: s.config.HistogramBins}
	for _, spec := range chartCatalog {
		if missing := spec.missing(caps); len(missing) > 0 {
			d.Skipped = append(d.Skipped, Skipped{Widget: spec.id, Reason: "missing columns: " + strings.Join(missing, ", ")})
			continue
		}

		view := views.get(spec.dependsOn, false)
		if src := spec.usesSize(caps); src != "" {
			var viewShifted map[string]bool
			view, viewShifted = withSizeColumns(view, caps)
			merge(shifted, viewShifted)
		}

		b := spec.bind(caps)
		data, ok := spec.build(view, b, opts)
		if !ok {
			d.Skipped = append(d.Skipped, Skipped{Widget: spec.id, Reason: "no data for current selection"})
			continue
		}
		d.Charts = append(d.Charts, Chart{ID: spec.id, Title: spec.title, Kind: spec.kind, Bindings: b, Data: data})
	}

	for _, src := range dataset.SizeColumns {
		if shifted[src] {
			d.Advisories = append(d.Advisories, fmt.Sprintf("%s contains negative values. Adjusted for visualization.", src))
		}
	}

	d.Summary = summarize(strict, caps, s.config.PreviewRows)
	return d, nil
}

func unavailableReason(view *dataset.Table, caps dataset.Capabilities, column string) string {
	if !caps.HasMetric(column) {
		return "missing columns: " + column
	}
	if view.Rows() == 0 {
		return "no data for current selection"
	}
	return "no values for current selection"
}

// withSizeColumns adds the derived size column of every present size source.
// The returned set names the sources that held negative values.
func withSizeColumns(view *dataset.Table, caps dataset.Capabilities) (*dataset.Table, map[string]bool) {
	shifted := make(map[string]bool)
	for _, src := range dataset.SizeColumns {
		if !caps.HasMetric(src) {
			continue
		}
		col, ok := view.NumericColumn(src)
		if !ok {
			continue
		}
		sizeCol, neg := analysis.NormalizeSize(col, dataset.SizeColumnName(src))
		next, err := view.WithColumn(sizeCol)
		if err != nil {
			internal.DefaultLogger.Warn("[Dashboard] Skipping size column %s: %v", sizeCol.Name, err)
			continue
		}
		view = next
		if neg {
			shifted[src] = true
		}
	}
	return view, shifted
}

func merge(dst, src map[string]bool) {
	for k, v := range src {
		if v {
			dst[k] = true
		}
	}
}

// viewCache shares filtered views between widgets that enforce the same roles
type viewCache struct {
	table *dataset.Table
	caps  dataset.Capabilities
	sel   filter.Selection
	views map[string]*dataset.Table
}

func newViewCache(table *dataset.Table, caps dataset.Capabilities, sel filter.Selection) *viewCache {
	return &viewCache{table: table, caps: caps, sel: sel, views: make(map[string]*dataset.Table)}
}

// get returns the view for a widget depending on dependsOn. strict enforces
// every constraint regardless of dependencies.
func (v *viewCache) get(dependsOn []dataset.Role, strict bool) *dataset.Table {
	if strict {
		dependsOn = []dataset.Role{dataset.RoleYear, dataset.RoleIndustry, dataset.RoleRegion}
	}
	roles := v.sel.EnforcedRoles(dependsOn...)

	keyParts := make([]string, len(roles))
	for i, r := range roles {
		keyParts[i] = string(r)
	}
	key := strings.Join(keyParts, "+")

	if view, ok := v.views[key]; ok {
		return view
	}
	view := filter.ApplyRoles(v.table, v.caps, v.sel, roles)
	v.views[key] = view
	return view
}
