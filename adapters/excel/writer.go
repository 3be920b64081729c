package excel

import (
	"encoding/csv"
	"fmt"
	"io"

	"esglens/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// exportSheet is the sheet name of exported workbooks
const exportSheet = "Data"

// WriteCSV writes a table as CSV with a header row; missing cells are empty
func WriteCSV(w io.Writer, table *dataset.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, table.Width())
	for i := 0; i < table.Rows(); i++ {
		j := 0
		table.Each(func(col *dataset.Column) {
			record[j] = col.Cells[i].Text
			j++
		})
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes a table as a single-sheet workbook keeping numeric cells numeric
func WriteXLSX(w io.Writer, table *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, table.Width())
	for _, name := range table.Columns() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < table.Rows(); i++ {
		row := make([]interface{}, 0, table.Width())
		table.Each(func(col *dataset.Column) {
			row = append(row, col.Value(i))
		})
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
