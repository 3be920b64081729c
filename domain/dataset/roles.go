package dataset

// Role is a logical column concept resolved against a concrete schema
type Role string

const (
	RoleCompany  Role = "company"
	RoleIndustry Role = "industry"
	RoleRegion   Role = "region"
	RoleYear     Role = "year"
)

// Roles lists every role in resolution order
var Roles = []Role{RoleCompany, RoleIndustry, RoleRegion, RoleYear}

// DefaultAliases holds the accepted column names per role, highest priority first
var DefaultAliases = map[Role][]string{
	RoleCompany:  {"Company", "CompanyName", "CompanyID"},
	RoleIndustry: {"Industry", "Sector", "BusinessSector"},
	RoleRegion:   {"Region", "Country", "Geography"},
	RoleYear:     {"Year", "FiscalYear", "ReportingYear"},
}

// Resolve returns the first alias that is a column of t
func Resolve(t *Table, aliases []string) (string, bool) {
	for _, name := range aliases {
		if t.HasColumn(name) {
			return name, true
		}
	}
	return "", false
}

// Capabilities is the once-per-load description of which semantic columns a
// table offers. Downstream computations consult it instead of probing the
// schema themselves.
type Capabilities struct {
	Company  string          `json:"company,omitempty"`
	Industry string          `json:"industry,omitempty"`
	Region   string          `json:"region,omitempty"`
	Year     string          `json:"year,omitempty"`
	Metrics  map[string]bool `json:"metrics"`
}

// DetectCapabilities resolves every role with DefaultAliases and records which
// known metric columns are present and numeric
func DetectCapabilities(t *Table) Capabilities {
	return DetectCapabilitiesWith(t, DefaultAliases)
}

// DetectCapabilitiesWith is DetectCapabilities with a custom alias table
func DetectCapabilitiesWith(t *Table, aliases map[Role][]string) Capabilities {
	caps := Capabilities{Metrics: make(map[string]bool)}
	for _, role := range Roles {
		name, ok := Resolve(t, aliases[role])
		if !ok {
			continue
		}
		caps.set(role, name)
	}
	for _, metric := range KnownMetrics {
		if _, ok := t.NumericColumn(metric); ok {
			caps.Metrics[metric] = true
		}
	}
	return caps
}

func (c *Capabilities) set(role Role, name string) {
	switch role {
	case RoleCompany:
		c.Company = name
	case RoleIndustry:
		c.Industry = name
	case RoleRegion:
		c.Region = name
	case RoleYear:
		c.Year = name
	}
}

// Column returns the resolved column of a role
func (c Capabilities) Column(role Role) (string, bool) {
	var name string
	switch role {
	case RoleCompany:
		name = c.Company
	case RoleIndustry:
		name = c.Industry
	case RoleRegion:
		name = c.Region
	case RoleYear:
		name = c.Year
	}
	return name, name != ""
}

// Has reports whether a role resolved
func (c Capabilities) Has(role Role) bool {
	_, ok := c.Column(role)
	return ok
}

// HasMetric reports whether every named metric is present and numeric
func (c Capabilities) HasMetric(names ...string) bool {
	for _, name := range names {
		if !c.Metrics[name] {
			return false
		}
	}
	return true
}
