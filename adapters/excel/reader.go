package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"esglens/adapters/datareadiness/coercer"
	"esglens/domain/dataset"
	"esglens/internal"
	"esglens/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads CSV and Excel uploads into tables
type DataReader struct {
	config  ReaderConfig
	coercer *coercer.TypeCoercer
}

// NewDataReader creates a reader that handles both CSV and Excel files
func NewDataReader(config ReaderConfig) *DataReader {
	return &DataReader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
	}
}

// DetectFormat picks the container format from a file name
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", "":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", errors.UnsupportedFormat(filepath.Ext(filename))
	}
}

// ReadTable reads an upload into a typed table. Any parse failure is fatal:
// no partial table is returned.
func (r *DataReader) ReadTable(src io.Reader, format Format) (*dataset.Table, error) {
	start := time.Now()

	var raw *RawData
	var err error
	switch format {
	case FormatCSV:
		raw, err = r.readCSV(src)
	case FormatXLSX:
		raw, err = r.readXLSX(src)
	default:
		return nil, errors.UnsupportedFormat(string(format))
	}
	if err != nil {
		return nil, err
	}

	table, err := r.buildTable(raw)
	if err != nil {
		return nil, errors.MalformedInput("could not assemble table", err)
	}

	internal.DefaultLogger.Debug("[DataReader] %s read in %.2fms (%d columns, %d rows)",
		strings.ToUpper(string(format)), float64(time.Since(start).Nanoseconds())/1e6, table.Width(), table.Rows())
	return table, nil
}

// readCSV reads comma-separated text with a mandatory header row
func (r *DataReader) readCSV(src io.Reader) (*RawData, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.MalformedInput("file is not valid CSV", err)
	}
	return r.processRows(rows)
}

// readXLSX reads the configured sheet of a workbook
func (r *DataReader) readXLSX(src io.Reader) (*RawData, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.MalformedInput("file is not a valid workbook", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.MalformedInput("workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.MalformedInput(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	return r.processRows(rows)
}

// processRows splits the header from the data and squares the rows off
func (r *DataReader) processRows(rows [][]string) (*RawData, error) {
	if len(rows) == 0 || isBlankRow(rows[0]) {
		return nil, errors.MalformedInput("file has no header row", nil)
	}

	headers := normalizeHeaders(rows[0])
	data := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) > len(headers) {
			return nil, errors.MalformedInput(
				fmt.Sprintf("row %d has %d fields, header has %d", i+2, len(row), len(headers)), nil)
		}
		padded := make([]string, len(headers))
		copy(padded, row)
		data = append(data, padded)
	}

	return &RawData{Headers: headers, Rows: data}, nil
}

// buildTable infers each column's kind and assembles the table
func (r *DataReader) buildTable(raw *RawData) (*dataset.Table, error) {
	columns := make([]*dataset.Column, len(raw.Headers))
	values := make([]string, len(raw.Rows))
	for j, header := range raw.Headers {
		for i, row := range raw.Rows {
			values[i] = row[j]
		}
		columns[j] = r.coercer.BuildColumn(header, values)
	}
	return dataset.NewTable(columns)
}

// normalizeHeaders trims names, names blank headers and suffixes duplicates
// with .1, .2, ... in order of appearance
func normalizeHeaders(row []string) []string {
	headers := make([]string, len(row))
	seen := make(map[string]int, len(row))
	taken := make(map[string]bool, len(row))

	for i, h := range row {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for taken[name] {
			seen[base]++
			name = fmt.Sprintf("%s.%d", base, seen[base])
		}
		taken[name] = true
		headers[i] = name
	}
	return headers
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
