// Package models defines the result types produced by structure detection,
// table extraction, and consolidation runs.
package models

// StructureType classifies the layout of a worksheet.
type StructureType string

const (
	// StructureSimple indicates exactly one header row was detected.
	StructureSimple StructureType = "simple"
	// StructureComplex indicates multiple stacked tables with repeated
	// generic header rows.
	StructureComplex StructureType = "complex"
	// StructureDateBlock indicates tables delimited by date annotation
	// lines ("FECHA: ..." or "DIA/ FECHA" rows). This classification takes
	// priority over generic header detection.
	StructureDateBlock StructureType = "complex_fecha"
	// StructureUnknown indicates no header row could be located.
	StructureUnknown StructureType = "unknown"
)

// RowRange is an inclusive span of 1-based worksheet row indices.
type RowRange struct {
	// Start is the first data row of the span.
	Start int `json:"start"`
	// End is the last data row of the span.
	End int `json:"end"`
}

// Len returns the number of rows covered by the range.
func (r RowRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// StructureReport describes the detected layout of a single worksheet.
// All row indices are 1-based, matching how spreadsheet applications number
// rows.
type StructureReport struct {
	// Type is the overall structure classification.
	Type StructureType `json:"type"`
	// HeaderRows holds the row index of each detected header row, one per
	// table, in sheet order.
	HeaderRows []int `json:"header_rows"`
	// DataRanges holds the data span of each table, aligned positionally
	// with HeaderRows.
	DataRanges []RowRange `json:"data_ranges"`
	// DateRows holds the row indices of date annotation lines. Empty
	// unless Type is StructureDateBlock.
	DateRows []int `json:"date_rows,omitempty"`
	// TotalRows is the number of rows in the worksheet snapshot.
	TotalRows int `json:"total_rows"`
	// SheetName is the resolved name of the analyzed sheet.
	SheetName string `json:"sheet_name"`
}

// TableCount returns the number of detected tables.
func (r StructureReport) TableCount() int {
	return len(r.HeaderRows)
}

// WorkbookAnalysis aggregates structure reports for every sheet of one file.
type WorkbookAnalysis struct {
	// FilePath is the analyzed workbook path.
	FilePath string `json:"file_path"`
	// SheetNames preserves workbook sheet order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to its structure report.
	Sheets map[string]StructureReport `json:"sheets"`
}
