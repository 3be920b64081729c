package coercer

import (
	"math"
	"strconv"
	"strings"

	"esglens/domain/dataset"
)

// TypeCoercer turns raw text cells into typed dataset columns
type TypeCoercer struct {
	config   CoercionConfig
	naValues map[string]bool
}

// CoercionConfig defines the coercion thresholds and rules
type CoercionConfig struct {
	// NumericThreshold is the share of non-missing values that must parse as
	// numbers for the column to be numeric. Values that fail to parse in a
	// numeric column become missing.
	NumericThreshold float64 `json:"numeric_threshold"`
	// LenientNumbers accepts currency symbols, percent signs, thousands
	// separators and accounting negatives such as (1,200).
	LenientNumbers bool     `json:"lenient_numbers"`
	NAValues       []string `json:"na_values"`
}

// DefaultNAValues are the tokens read as missing, matching the pandas defaults
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// DefaultCoercionConfig returns the pandas-compatible defaults: a column is
// numeric only when every non-missing value is a plain number
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 1.0,
		LenientNumbers:   false,
		NAValues:         DefaultNAValues,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	na := make(map[string]bool, len(config.NAValues))
	for _, v := range config.NAValues {
		na[v] = true
	}
	if config.NumericThreshold <= 0 || config.NumericThreshold > 1 {
		config.NumericThreshold = 1.0
	}
	return &TypeCoercer{config: config, naValues: na}
}

// IsMissing reports whether a raw value is a missing marker
func (c *TypeCoercer) IsMissing(raw string) bool {
	return c.naValues[strings.TrimSpace(raw)]
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int          `json:"total_count"`
	ValidCount      int          `json:"valid_count"`
	NumericCount    int          `json:"numeric_count"`
	NumericRatio    float64      `json:"numeric_ratio"`
	RecommendedKind dataset.Kind `json:"recommended_kind"`
}

// AnalyzeTypeDistribution counts how many raw values are missing or numeric
// and recommends a column kind
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}
	for _, raw := range values {
		if c.IsMissing(raw) {
			continue
		}
		analysis.ValidCount++
		if _, ok := c.ParseNumber(raw); ok {
			analysis.NumericCount++
		}
	}

	// An all-missing column has no evidence against being numeric
	if analysis.ValidCount == 0 {
		analysis.NumericRatio = 1
	} else {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
	}

	analysis.RecommendedKind = dataset.KindText
	if analysis.NumericRatio >= c.config.NumericThreshold {
		analysis.RecommendedKind = dataset.KindNumeric
	}
	return analysis
}

// BuildColumn infers the kind of raw values and returns the typed column
func (c *TypeCoercer) BuildColumn(name string, values []string) *dataset.Column {
	analysis := c.AnalyzeTypeDistribution(values)
	cells := make([]dataset.Cell, len(values))

	for i, raw := range values {
		if c.IsMissing(raw) {
			cells[i] = dataset.MissingCell()
			continue
		}
		if analysis.RecommendedKind == dataset.KindNumeric {
			if v, ok := c.ParseNumber(raw); ok {
				cells[i] = dataset.NumberCell(v)
			} else {
				cells[i] = dataset.MissingCell()
			}
			continue
		}
		cells[i] = dataset.TextCell(strings.TrimSpace(raw))
	}

	return &dataset.Column{Name: name, Kind: analysis.RecommendedKind, Cells: cells}
}

// ParseNumber parses a raw value as a finite float
func (c *TypeCoercer) ParseNumber(raw string) (float64, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return 0, false
	}
	if c.config.LenientNumbers {
		clean = c.cleanLenient(clean)
	}
	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// cleanLenient strips presentation noise from a number
func (c *TypeCoercer) cleanLenient(s string) string {
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		negative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY", "%"} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	if negative {
		s = "-" + s
	}
	return s
}
