package parser

import (
	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
)

// DetectStructure scans a worksheet snapshot once and classifies its layout.
// rows is the full sheet in order; indices in the returned report are
// 1-based. The date annotation scan has priority: if any annotation row is
// found the sheet is classified StructureDateBlock and generic header
// detection is skipped entirely.
func DetectStructure(rows [][]string, sheetName string, params HeaderParams) models.StructureReport {
	report := models.StructureReport{
		Type:      models.StructureUnknown,
		TotalRows: len(rows),
		SheetName: sheetName,
	}

	dateRows := FindDateAnnotationRows(rows)
	if len(dateRows) > 0 {
		report.Type = models.StructureDateBlock
		report.DateRows = dateRows
		report.HeaderRows, report.DataRanges = dateBlockRanges(rows, dateRows)
		return report
	}

	headerRows := findHeaderRows(rows, params)
	switch {
	case len(headerRows) == 0:
		report.HeaderRows, report.DataRanges = implicitRange(rows)
	case len(headerRows) == 1:
		report.Type = models.StructureSimple
		report.HeaderRows, report.DataRanges = headerRanges(rows, headerRows)
	default:
		report.Type = models.StructureComplex
		report.HeaderRows, report.DataRanges = headerRanges(rows, headerRows)
	}
	return report
}

// findHeaderRows returns the 1-based indices of header-like rows.
func findHeaderRows(rows [][]string, params HeaderParams) []int {
	var found []int
	for idx, row := range rows {
		if IsEmptyRow(row) {
			continue
		}
		if IsHeaderLike(row, params) {
			found = append(found, idx+1)
		}
	}
	return found
}

// dateBlockRanges derives (header, data range) pairs from date annotation
// anchors. The header sits directly under each anchor and data starts one row
// below the header. A block ends just before the next anchor, or at the last
// sheet row for the final block, trimmed backward past trailing blank rows.
// Blocks that collapse to zero rows are dropped along with their header.
func dateBlockRanges(rows [][]string, dateRows []int) ([]int, []models.RowRange) {
	var headers []int
	var ranges []models.RowRange
	for i, anchor := range dateRows {
		start := anchor + 2
		end := len(rows)
		if i < len(dateRows)-1 {
			end = dateRows[i+1] - 1
		}
		end = trimTrailingEmpty(rows, start, end)
		if start > end {
			continue
		}
		headers = append(headers, anchor+1)
		ranges = append(ranges, models.RowRange{Start: start, End: end})
	}
	return headers, ranges
}

// headerRanges derives data ranges for generic header rows: each range runs
// from the row after its header to the row before the next header (or the
// sheet end), trimmed backward past trailing blank rows.
func headerRanges(rows [][]string, headerRows []int) ([]int, []models.RowRange) {
	var headers []int
	var ranges []models.RowRange
	for i, header := range headerRows {
		start := header + 1
		end := len(rows)
		if i < len(headerRows)-1 {
			end = headerRows[i+1] - 1
		}
		end = trimTrailingEmpty(rows, start, end)
		if start > end {
			continue
		}
		headers = append(headers, header)
		ranges = append(ranges, models.RowRange{Start: start, End: end})
	}
	return headers, ranges
}

// implicitRange covers the no-header case: the sheet is assumed to be one
// table whose labels sit on the first non-empty row. A sheet with no content
// at all yields empty lists.
func implicitRange(rows [][]string) ([]int, []models.RowRange) {
	first := 0
	for idx, row := range rows {
		if !IsEmptyRow(row) {
			first = idx + 1
			break
		}
	}
	if first == 0 {
		return nil, nil
	}
	start := first + 1
	end := trimTrailingEmpty(rows, start, len(rows))
	if start > end {
		return nil, nil
	}
	return []int{first}, []models.RowRange{{Start: start, End: end}}
}

// trimTrailingEmpty shrinks end backward while the row at end is empty,
// never below start. Indices are 1-based.
func trimTrailingEmpty(rows [][]string, start, end int) int {
	if end > len(rows) {
		end = len(rows)
	}
	for end > start {
		if !IsEmptyRow(rows[end-1]) {
			break
		}
		end--
	}
	return end
}
