package app

import (
	"esglens/domain/dataset"
	"esglens/internal/analysis"
	"esglens/internal/filter"
)

// Dataset is an uploaded table prepared for the dashboard. It is built once
// per upload and never modified afterwards; every selection change recomputes
// from it.
type Dataset struct {
	Name             string               `json:"name,omitempty"`
	Table            *dataset.Table       `json:"-"`
	Capabilities     dataset.Capabilities `json:"capabilities"`
	Options          filter.Options       `json:"options"`
	DefaultSelection filter.Selection     `json:"default_selection"`
}

// Prepare applies the load-time transforms and resolves column roles.
// A missing GrowthRate value is replaced by the column median.
func Prepare(name string, table *dataset.Table, categoryCap int) *Dataset {
	if filled, ok := analysis.FillMedian(table, dataset.ColGrowthRate); ok {
		table = filled
	}

	caps := dataset.DetectCapabilities(table)
	opts := filter.ObservedOptions(table, caps)

	return &Dataset{
		Name:             name,
		Table:            table,
		Capabilities:     caps,
		Options:          opts,
		DefaultSelection: filter.DefaultSelection(opts, categoryCap),
	}
}
