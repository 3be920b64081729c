package excel

import (
	"esglens/adapters/datareadiness/coercer"
)

// ReaderConfig holds configuration for dataset ingestion
type ReaderConfig struct {
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
	// Sheet selects the workbook sheet; empty reads the first sheet.
	Sheet string `json:"sheet"`
}

// DefaultReaderConfig returns sensible defaults for ingestion
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
