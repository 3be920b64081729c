package filter

import (
	"math"

	"esglens/domain/dataset"
)

// Options describes the values a user can choose from. MissingYear reports
// rows whose year is missing or not a number; they lie outside Years.
type Options struct {
	Years       *YearRange `json:"years,omitempty"`
	MissingYear bool       `json:"missing_year"`
	Industries  []string   `json:"industries"`
	Regions     []string   `json:"regions"`
}

// ObservedOptions collects the observed year bounds and the distinct category
// keys of each role in order of first appearance. A missing category is
// offered as dataset.MissingKey.
func ObservedOptions(table *dataset.Table, caps dataset.Capabilities) Options {
	opts := Options{
		Industries: roleKeys(table, caps, dataset.RoleIndustry),
		Regions:    roleKeys(table, caps, dataset.RoleRegion),
	}
	if name, ok := caps.Column(dataset.RoleYear); ok {
		if col, ok := table.Column(name); ok {
			opts.Years, opts.MissingYear = yearBounds(col)
		}
	}
	return opts
}

// CascadedOptions narrows the category choices to what the rest of sel leaves
// reachable: industries come from the year-filtered rows and regions from the
// rows passing both the year and industry constraints. Year bounds always span
// the whole table.
func CascadedOptions(table *dataset.Table, caps dataset.Capabilities, sel Selection) Options {
	opts := ObservedOptions(table, caps)

	byYear := ApplyRoles(table, caps, sel, []dataset.Role{dataset.RoleYear})
	opts.Industries = roleKeys(byYear, caps, dataset.RoleIndustry)

	byIndustry := ApplyRoles(byYear, caps, sel, []dataset.Role{dataset.RoleIndustry})
	opts.Regions = roleKeys(byIndustry, caps, dataset.RoleRegion)
	return opts
}

func roleKeys(table *dataset.Table, caps dataset.Capabilities, role dataset.Role) []string {
	name, ok := caps.Column(role)
	if !ok {
		return []string{}
	}
	col, ok := table.Column(name)
	if !ok {
		return []string{}
	}
	return DistinctKeys(col)
}

// DefaultSelection selects the full year range including rows without a
// usable year, the first categoryCap
// industries (all of them when categoryCap is 0 or not exceeded) and every
// region. The cap only shapes the initial view; explicit selections are never
// limited.
func DefaultSelection(opts Options, categoryCap int) Selection {
	sel := Selection{
		IncludeMissingYear: true,
		Industries:         append([]string{}, opts.Industries...),
		Regions:            append([]string{}, opts.Regions...),
	}
	if opts.Years != nil {
		years := *opts.Years
		sel.Years = &years
	}
	if categoryCap > 0 && len(sel.Industries) > categoryCap {
		sel.Industries = sel.Industries[:categoryCap]
	}
	return sel
}

// FullSelection selects every observed value
func FullSelection(opts Options) Selection {
	return DefaultSelection(opts, 0)
}

// DistinctKeys returns the distinct category keys of a column in order of
// first appearance
func DistinctKeys(col *dataset.Column) []string {
	seen := make(map[string]bool)
	keys := []string{}
	for i := 0; i < col.Len(); i++ {
		key := col.Key(i)
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// yearBounds returns the observed year range and whether any row lacks a
// numeric year
func yearBounds(col *dataset.Column) (*YearRange, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	missing := false
	for i := 0; i < col.Len(); i++ {
		v, ok := col.NumberAt(i)
		if !ok {
			missing = true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return nil, missing
	}
	return &YearRange{Min: int(math.Floor(lo)), Max: int(math.Ceil(hi))}, missing
}
