package filter

import (
	"esglens/domain/dataset"
)

// filterRoles are the roles a Selection constrains
var filterRoles = []dataset.Role{dataset.RoleYear, dataset.RoleIndustry, dataset.RoleRegion}

// Apply returns the rows of table satisfying every constraint of sel. A role
// that did not resolve imposes no constraint. The input table is not modified.
func Apply(table *dataset.Table, caps dataset.Capabilities, sel Selection) *dataset.Table {
	return ApplyRoles(table, caps, sel, filterRoles)
}

// ApplyRoles is Apply restricted to the constraints of the given roles
func ApplyRoles(table *dataset.Table, caps dataset.Capabilities, sel Selection, roles []dataset.Role) *dataset.Table {
	preds := predicates(table, caps, sel, roles)
	if len(preds) == 0 {
		return table
	}

	rows := make([]int, 0, table.Rows())
	for i := 0; i < table.Rows(); i++ {
		keep := true
		for _, pred := range preds {
			if !pred(i) {
				keep = false
				break
			}
		}
		if keep {
			rows = append(rows, i)
		}
	}
	return table.SelectRows(rows)
}

type rowPredicate func(i int) bool

func predicates(table *dataset.Table, caps dataset.Capabilities, sel Selection, roles []dataset.Role) []rowPredicate {
	var preds []rowPredicate
	for _, role := range roles {
		name, ok := caps.Column(role)
		if !ok {
			continue
		}
		col, ok := table.Column(name)
		if !ok {
			continue
		}

		switch role {
		case dataset.RoleYear:
			if sel.Years == nil {
				continue
			}
			years, includeMissing := *sel.Years, sel.IncludeMissingYear
			preds = append(preds, func(i int) bool {
				v, ok := col.NumberAt(i)
				if !ok {
					return includeMissing
				}
				return years.Contains(v)
			})
		case dataset.RoleIndustry:
			preds = append(preds, membership(col, sel.Industries))
		case dataset.RoleRegion:
			preds = append(preds, membership(col, sel.Regions))
		}
	}
	return preds
}

func membership(col *dataset.Column, selected []string) rowPredicate {
	set := make(map[string]bool, len(selected))
	for _, v := range selected {
		set[v] = true
	}
	return func(i int) bool {
		return set[col.Key(i)]
	}
}
