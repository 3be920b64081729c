package dataset

// Metric columns the dashboard knows how to present
const (
	ColESGOverall        = "ESG_Overall"
	ColESGEnvironmental  = "ESG_Environmental"
	ColESGSocial         = "ESG_Social"
	ColESGGovernance     = "ESG_Governance"
	ColRevenue           = "Revenue"
	ColProfitMargin      = "ProfitMargin"
	ColCarbonEmissions   = "CarbonEmissions"
	ColWaterUsage        = "WaterUsage"
	ColEnergyConsumption = "EnergyConsumption"
	ColGrowthRate        = "GrowthRate"
)

// KnownMetrics lists every metric column the capability step looks for
var KnownMetrics = []string{
	ColESGOverall,
	ColESGEnvironmental,
	ColESGSocial,
	ColESGGovernance,
	ColRevenue,
	ColProfitMargin,
	ColCarbonEmissions,
	ColWaterUsage,
	ColEnergyConsumption,
	ColGrowthRate,
}

// CorrelationMetrics is the allow-list for the correlation heatmap
var CorrelationMetrics = []string{
	ColESGOverall,
	ColRevenue,
	ColCarbonEmissions,
	ColWaterUsage,
	ColProfitMargin,
	ColESGEnvironmental,
	ColESGSocial,
	ColESGGovernance,
}

// SizeColumns lists the columns that feed marker sizes
var SizeColumns = []string{ColProfitMargin, ColRevenue, ColCarbonEmissions}

// SizeColumnName names the derived size column of a source column
func SizeColumnName(source string) string {
	return source + "_Size"
}
