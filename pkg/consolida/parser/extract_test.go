package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
)

func detectAndExtract(t *testing.T, rows [][]string) models.Table {
	t.Helper()
	report := DetectStructure(rows, "Hoja1", DefaultHeaderParams())
	return Extract(rows, report, DefaultExtractParams())
}

func TestExtractSimpleRoundTrip(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "DIRECCION"},
		{"Juan", "Calle 1"},
		{"Ana", "Calle 2"},
	}

	table := detectAndExtract(t, rows)

	assert.Equal(t, []string{"NOMBRE", "DIRECCION"}, table.Columns)
	assert.Equal(t, [][]string{
		{"Juan", "Calle 1"},
		{"Ana", "Calle 2"},
	}, table.Rows)
}

func TestExtractColumnFolding(t *testing.T) {
	frags := []fragment{
		{columns: []string{"A", "B"}, rows: [][]string{{"a1", "b1"}}},
		{columns: []string{"B", "C"}, rows: [][]string{{"b2", "c2"}}},
	}

	table := foldFragments(frags)

	assert.Equal(t, []string{"A", "B", "C"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"a1", "b1", models.AbsentValue}, table.Rows[0])
	assert.Equal(t, []string{models.AbsentValue, "b2", "c2"}, table.Rows[1])
}

func TestExtractStackedTablesWithDifferingSchemas(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "DIRECCION"},
		{"Juan", "Calle 1"},
		{""},
		{"DIRECCION", "CANTIDAD"},
		{"Calle 2", "5"},
	}

	table := detectAndExtract(t, rows)

	assert.Equal(t, []string{"NOMBRE", "DIRECCION", "CANTIDAD"}, table.Columns)
	assert.Equal(t, [][]string{
		{"Juan", "Calle 1", ""},
		{"", "Calle 2", "5"},
	}, table.Rows)
}

func TestExtractHeaderDeduplication(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"simple duplicate", []string{"X", "X", "Y"}, []string{"X", "X_2", "Y"}},
		{"suffix collides with raw label", []string{"X", "X", "X_2"}, []string{"X", "X_2", "X_2_2"}},
		{"raw label preempts suffix", []string{"X_2", "X", "X"}, []string{"X_2", "X", "X_3"}},
		{"triple duplicate", []string{"X", "X", "X"}, []string{"X", "X_2", "X_3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := resolveLabels(tt.header, len(tt.header))
			assert.Equal(t, tt.want, labels)

			// No resolved label may repeat: duplicates would collapse
			// into one column during folding and silently drop data.
			unique := make(map[string]bool, len(labels))
			for _, l := range labels {
				assert.False(t, unique[l], "duplicate resolved label %q", l)
				unique[l] = true
			}
		})
	}
}

func TestExtractDuplicateHeaderKeepsAllColumns(t *testing.T) {
	report := models.StructureReport{
		Type:       models.StructureSimple,
		HeaderRows: []int{1},
		DataRanges: []models.RowRange{{Start: 2, End: 2}},
		TotalRows:  2,
	}
	rows := [][]string{
		{"X", "X", "X_2"},
		{"uno", "dos", "tres"},
	}

	table := Extract(rows, report, DefaultExtractParams())

	assert.Equal(t, []string{"X", "X_2", "X_2_2"}, table.Columns)
	assert.Equal(t, [][]string{{"uno", "dos", "tres"}}, table.Rows)
}

func TestExtractPlaceholderLabels(t *testing.T) {
	labels := resolveLabels([]string{"NOMBRE", "", "  "}, 4)
	assert.Equal(t, []string{"NOMBRE", "Column_2", "Column_3", "Column_4"}, labels)
}

func TestExtractSkipsEmptyDataRows(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "DIRECCION"},
		{"Juan", "Calle 1"},
		{"", ""},
		{"Ana", "Calle 2"},
	}

	table := detectAndExtract(t, rows)

	assert.Equal(t, [][]string{
		{"Juan", "Calle 1"},
		{"Ana", "Calle 2"},
	}, table.Rows)
}

func TestExtractKeepsPartialRows(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "DIRECCION", "OBSERVACIONES"},
		{"Juan", "", "sin novedad"},
		{"Ana", "Calle 2", ""},
	}

	table := detectAndExtract(t, rows)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Juan", "", "sin novedad"}, table.Rows[0])
	assert.Equal(t, []string{"Ana", "Calle 2", ""}, table.Rows[1])
}

func TestExtractHeaderWiderThanData(t *testing.T) {
	report := models.StructureReport{
		Type:       models.StructureSimple,
		HeaderRows: []int{1},
		DataRanges: []models.RowRange{{Start: 2, End: 2}},
		TotalRows:  2,
	}
	rows := [][]string{
		{"NOMBRE", "DIRECCION", "TELEFONO", "EXTRA"},
		{"Juan", "Calle 1"},
	}

	table := Extract(rows, report, DefaultExtractParams())

	// Headers beyond the first data row's width are discarded.
	assert.Equal(t, []string{"NOMBRE", "DIRECCION"}, table.Columns)
}

func TestExtractDateBlockMetadata(t *testing.T) {
	rows := [][]string{
		{"FECHA: 09/10/2023 Lunes SWX113"},
		{"NOMBRE", "DIRECCION"},
		{"Juan", "Calle 1"},
		{""},
		{"FECHA: 10/10/2023 Martes SWX113"},
		{"NOMBRE", "DIRECCION"},
		{"Ana", "Calle 2"},
	}

	table := detectAndExtract(t, rows)

	assert.Equal(t, []string{
		MetaColumnDate, MetaColumnWeekday, MetaColumnUnitCode, "NOMBRE", "DIRECCION",
	}, table.Columns)
	assert.Equal(t, [][]string{
		{"09/10/2023", "Lunes", "SWX113", "Juan", "Calle 1"},
		{"10/10/2023", "Martes", "SWX113", "Ana", "Calle 2"},
	}, table.Rows)
}

func TestExtractDateBlockReservedColumnNames(t *testing.T) {
	// A data column literally named "date" must not overwrite the
	// prepended metadata column during folding.
	rows := [][]string{
		{"FECHA: 09/10/2023 Lunes SWX113"},
		{"date", "NOMBRE", "DIRECCION"},
		{"31/12/1999", "Juan", "Calle 1"},
	}

	table := detectAndExtract(t, rows)

	assert.Equal(t, []string{
		MetaColumnDate, MetaColumnWeekday, MetaColumnUnitCode, "date_2", "NOMBRE", "DIRECCION",
	}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"09/10/2023", "Lunes", "SWX113", "31/12/1999", "Juan", "Calle 1"}, table.Rows[0])
}

func TestExtractDropsEmptyColumns(t *testing.T) {
	report := models.StructureReport{
		Type:       models.StructureSimple,
		HeaderRows: []int{1},
		DataRanges: []models.RowRange{{Start: 2, End: 3}},
		TotalRows:  3,
	}
	rows := [][]string{
		{"NOMBRE", "VACIA", "DIRECCION"},
		{"Juan", "", "Calle 1"},
		{"Ana", "", "Calle 2"},
	}

	table := Extract(rows, report, DefaultExtractParams())

	assert.Equal(t, []string{"NOMBRE", "DIRECCION"}, table.Columns)
	assert.Equal(t, [][]string{
		{"Juan", "Calle 1"},
		{"Ana", "Calle 2"},
	}, table.Rows)
}

func TestExtractEmptyReport(t *testing.T) {
	table := Extract(nil, models.StructureReport{Type: models.StructureUnknown}, DefaultExtractParams())

	assert.True(t, table.IsEmpty())
	assert.Zero(t, table.RowCount())
	assert.Zero(t, table.ColumnCount())
}

func TestExtractAllRangesCollapse(t *testing.T) {
	// A range pointing at only-empty rows produces no fragment and the
	// whole extraction yields an empty table rather than an error.
	report := models.StructureReport{
		Type:       models.StructureSimple,
		HeaderRows: []int{1},
		DataRanges: []models.RowRange{{Start: 2, End: 3}},
		TotalRows:  3,
	}
	rows := [][]string{
		{"NOMBRE", "DIRECCION"},
		{"", ""},
		{"", ""},
	}

	table := Extract(rows, report, DefaultExtractParams())

	assert.True(t, table.IsEmpty())
}
