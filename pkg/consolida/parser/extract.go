package parser

import (
	"fmt"
	"strings"

	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
)

// Metadata column names prepended to every row of a date-block fragment.
const (
	MetaColumnDate     = "date"
	MetaColumnWeekday  = "weekday"
	MetaColumnUnitCode = "unit_code"
)

// ExtractParams configures table extraction.
type ExtractParams struct {
	// KnownUnitCodes is passed through to ParseDateAnnotation for
	// date-block fragments.
	KnownUnitCodes []string
}

// DefaultExtractParams returns the default extraction configuration.
func DefaultExtractParams() ExtractParams {
	return ExtractParams{KnownUnitCodes: DefaultUnitCodes}
}

// fragment is one extracted table block before folding into the consolidated
// result.
type fragment struct {
	columns []string
	rows    [][]string
}

// Extract slices every detected table out of the worksheet snapshot and folds
// the fragments into one consolidated table, aligning columns by name rather
// than position. Fragments whose data range contains no non-empty rows are
// dropped silently. When no fragment survives, an empty table is returned
// rather than an error.
func Extract(rows [][]string, report models.StructureReport, params ExtractParams) models.Table {
	var fragments []fragment
	for i, headerRow := range report.HeaderRows {
		if i >= len(report.DataRanges) {
			break
		}
		frag, ok := extractFragment(rows, headerRow, report.DataRanges[i])
		if !ok {
			continue
		}
		if report.Type == models.StructureDateBlock {
			// The annotation row sits directly above the header.
			meta := ParseDateAnnotation(rowAt(rows, headerRow-1), params.KnownUnitCodes)
			frag = prependMetadata(frag, meta)
		}
		fragments = append(fragments, frag)
	}

	table := foldFragments(fragments)
	return dropEmptyRowsAndColumns(table)
}

// rowAt returns the 1-based row, or nil when out of bounds.
func rowAt(rows [][]string, idx int) []string {
	if idx < 1 || idx > len(rows) {
		return nil
	}
	return rows[idx-1]
}

// extractFragment builds one fragment from a header row and its data range.
// Header labels are matched to the width of the first kept data row: labels
// beyond it are discarded, missing labels are synthesized placeholders.
func extractFragment(rows [][]string, headerRow int, dataRange models.RowRange) (fragment, bool) {
	header := rowAt(rows, headerRow)
	if header == nil {
		return fragment{}, false
	}

	var kept [][]string
	for idx := dataRange.Start; idx <= dataRange.End && idx <= len(rows); idx++ {
		row := rows[idx-1]
		if IsEmptyRow(row) {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == 0 {
		return fragment{}, false
	}

	width := len(kept[0])
	columns := resolveLabels(header, width)

	aligned := make([][]string, len(kept))
	for i, row := range kept {
		aligned[i] = padRow(row, width)
	}
	return fragment{columns: columns, rows: aligned}, true
}

// resolveLabels turns raw header cells into exactly width unique labels.
// Empty cells become Column_<position> placeholders (1-based) and duplicates
// get a numeric suffix, first occurrence unsuffixed.
func resolveLabels(header []string, width int) []string {
	labels := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		label := ""
		if i < len(header) {
			label = strings.TrimSpace(header[i])
		}
		if label == "" {
			label = fmt.Sprintf("Column_%d", i+1)
		}
		labels[i] = uniqueName(seen, label)
	}
	return labels
}

// uniqueName returns label, numerically suffixed if needed, guaranteed unused
// in seen, and records the result so later candidates cannot collide with it.
// A header like ["X", "X", "X_2"] resolves to ["X", "X_2", "X_2_2"].
func uniqueName(seen map[string]int, label string) string {
	seen[label]++
	n := seen[label]
	if n == 1 {
		return label
	}
	for {
		candidate := fmt.Sprintf("%s_%d", label, n)
		if seen[candidate] == 0 {
			seen[candidate]++
			return candidate
		}
		n++
	}
}

// padRow returns row truncated or padded with absent values to width.
func padRow(row []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width; i++ {
		if i < len(row) {
			out[i] = row[i]
		} else {
			out[i] = models.AbsentValue
		}
	}
	return out
}

// prependMetadata puts the parsed date, weekday, and unit code columns in
// front of every row of the fragment. The three metadata names are reserved:
// a data column carrying one of them is suffixed so it cannot collide with
// the metadata during folding.
func prependMetadata(frag fragment, meta models.DateMetadata) fragment {
	seen := map[string]int{
		MetaColumnDate:     1,
		MetaColumnWeekday:  1,
		MetaColumnUnitCode: 1,
	}
	columns := make([]string, 0, len(frag.columns)+3)
	columns = append(columns, MetaColumnDate, MetaColumnWeekday, MetaColumnUnitCode)
	for _, col := range frag.columns {
		columns = append(columns, uniqueName(seen, col))
	}
	rows := make([][]string, len(frag.rows))
	for i, row := range frag.rows {
		rows[i] = append([]string{meta.Date, meta.Weekday, meta.UnitCode}, row...)
	}
	return fragment{columns: columns, rows: rows}
}

// foldFragments merges fragments with differing schemas into one table. New
// column names are appended in first-seen order and every row is reindexed to
// the full column set, with absent values for columns its fragment lacks.
// This name-based alignment defines the final schema.
func foldFragments(fragments []fragment) models.Table {
	var columns []string
	position := make(map[string]int)
	for _, frag := range fragments {
		for _, col := range frag.columns {
			if _, ok := position[col]; !ok {
				position[col] = len(columns)
				columns = append(columns, col)
			}
		}
	}

	var out [][]string
	for _, frag := range fragments {
		for _, row := range frag.rows {
			aligned := make([]string, len(columns))
			for i := range aligned {
				aligned[i] = models.AbsentValue
			}
			for i, col := range frag.columns {
				if i < len(row) {
					aligned[position[col]] = row[i]
				}
			}
			out = append(out, aligned)
		}
	}

	if len(columns) == 0 {
		return models.Table{}
	}
	return models.Table{Columns: columns, Rows: out}
}

// dropEmptyRowsAndColumns removes columns that are empty in every row and
// rows that are empty in every column, so the result carries no extraction
// artifacts.
func dropEmptyRowsAndColumns(t models.Table) models.Table {
	if t.IsEmpty() {
		return t
	}

	keepCol := make([]bool, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			if strings.TrimSpace(cell) != "" {
				keepCol[i] = true
			}
		}
	}

	var columns []string
	for i, keep := range keepCol {
		if keep {
			columns = append(columns, t.Columns[i])
		}
	}

	var rows [][]string
	for _, row := range t.Rows {
		if IsEmptyRow(row) {
			continue
		}
		slim := make([]string, 0, len(columns))
		for i, keep := range keepCol {
			if keep {
				slim = append(slim, row[i])
			}
		}
		rows = append(rows, slim)
	}

	if len(columns) == 0 || len(rows) == 0 {
		return models.Table{}
	}
	return models.Table{Columns: columns, Rows: rows}
}
