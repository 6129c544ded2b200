package models

import "strings"

// AbsentValue marks a cell a fragment did not provide for a column. It is the
// empty string so consolidated rows can be written back to a spreadsheet
// without a sentinel leaking into the output.
const AbsentValue = ""

// Table is a consolidated tabular result: an ordered column-name sequence and
// rows aligned to it. Every row has exactly len(Columns) cells; cells a
// fragment did not cover hold AbsentValue.
type Table struct {
	// Columns holds the resolved column labels in first-seen order.
	Columns []string `json:"columns"`
	// Rows holds the data rows, each aligned to Columns.
	Rows [][]string `json:"rows"`
}

// IsEmpty reports whether the table has no rows and no columns.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0 && len(t.Columns) == 0
}

// RowCount returns the number of data rows.
func (t Table) RowCount() int { return len(t.Rows) }

// ColumnCount returns the number of columns.
func (t Table) ColumnCount() int { return len(t.Columns) }

// NormalizeColumnNames uppercases, trims, and underscores the column labels
// in place, for callers that want uniform output schemas.
func (t *Table) NormalizeColumnNames() {
	for i, col := range t.Columns {
		name := strings.ToUpper(strings.TrimSpace(col))
		t.Columns[i] = strings.ReplaceAll(name, " ", "_")
	}
}

// DateMetadata holds the fields parsed from a date annotation row. Fields are
// empty strings, never omitted, when their pattern does not match, so the
// metadata columns always exist downstream.
type DateMetadata struct {
	// Date is the DD/MM/YYYY date substring, verbatim.
	Date string `json:"date"`
	// Weekday is the day-of-week label accompanying the date.
	Weekday string `json:"weekday"`
	// UnitCode is the vehicle/unit identifier, separators stripped.
	UnitCode string `json:"unit_code"`
}

// IsZero reports whether no field was parsed.
func (m DateMetadata) IsZero() bool {
	return m.Date == "" && m.Weekday == "" && m.UnitCode == ""
}
