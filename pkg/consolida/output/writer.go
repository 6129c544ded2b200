// Package output serializes consolidated tables and structure reports.
package output

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
)

// outputSheet is the sheet name used in written workbooks.
const outputSheet = "Sheet1"

// WriteTable writes the table to path as a single-sheet xlsx file: a flat
// header row followed by the data rows, no styling, default column order.
func WriteTable(t models.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(outputSheet, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header row")
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrapf(err, "row %d", i+2)
		}
		if err := f.SetSheetRow(outputSheet, anchor, &cells); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}

// ReportJSON serializes any report value (StructureReport, WorkbookAnalysis,
// BatchSummary) to JSON, optionally indented.
func ReportJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
