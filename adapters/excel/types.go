package excel

// RawData is a parsed sheet before type inference
type RawData struct {
	Headers []string   // Column headers, de-duplicated
	Rows    [][]string // Data rows, padded to len(Headers)
}

// Format identifies an upload's container format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)
