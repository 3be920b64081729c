package filter

import (
	"fmt"

	"esglens/domain/dataset"
	"esglens/internal/errors"
)

// YearRange is an inclusive year interval
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies in the closed interval
func (r YearRange) Contains(v float64) bool {
	return float64(r.Min) <= v && v <= float64(r.Max)
}

// Selection is the user's filter state. It is a plain value: every recompute
// receives it explicitly and nothing mutates it in place.
//
// A nil Years means no year constraint. Under a year range, rows whose year is
// missing or not a number match only when IncludeMissingYear is set.
// Industries and Regions are sets of category keys; an empty set matches no
// rows when the role is present.
type Selection struct {
	Years              *YearRange `json:"years,omitempty"`
	IncludeMissingYear bool       `json:"include_missing_year"`
	Industries         []string   `json:"industries"`
	Regions            []string   `json:"regions"`
}

// Validate rejects inverted year ranges
func (s Selection) Validate() error {
	if s.Years != nil && s.Years.Min > s.Years.Max {
		return errors.InvalidSelection(fmt.Sprintf("year range [%d, %d] is inverted", s.Years.Min, s.Years.Max))
	}
	return nil
}

// Clone returns a deep copy
func (s Selection) Clone() Selection {
	out := Selection{
		IncludeMissingYear: s.IncludeMissingYear,
		Industries:         cloneKeys(s.Industries),
		Regions:            cloneKeys(s.Regions),
	}
	if s.Years != nil {
		years := *s.Years
		out.Years = &years
	}
	return out
}

func cloneKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	return append(make([]string, 0, len(keys)), keys...)
}

// EnforcedRoles returns the roles whose constraints apply to a visual that
// depends on dependsOn. A role with an empty selected set is lifted for
// visuals that do not depend on it; every other constraint always applies.
func (s Selection) EnforcedRoles(dependsOn ...dataset.Role) []dataset.Role {
	depends := make(map[dataset.Role]bool, len(dependsOn))
	for _, role := range dependsOn {
		depends[role] = true
	}

	roles := []dataset.Role{dataset.RoleYear}
	if len(s.Industries) > 0 || depends[dataset.RoleIndustry] {
		roles = append(roles, dataset.RoleIndustry)
	}
	if len(s.Regions) > 0 || depends[dataset.RoleRegion] {
		roles = append(roles, dataset.RoleRegion)
	}
	return roles
}
