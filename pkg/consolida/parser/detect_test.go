package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
)

func TestDetectStructureSimple(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "DIRECCION", "TELEFONO"},
		{"Juan", "Calle 1", "3001234567"},
		{"Ana", "Calle 2", "3007654321"},
	}

	report := DetectStructure(rows, "Hoja1", DefaultHeaderParams())

	assert.Equal(t, models.StructureSimple, report.Type)
	assert.Equal(t, []int{1}, report.HeaderRows)
	assert.Equal(t, []models.RowRange{{Start: 2, End: 3}}, report.DataRanges)
	assert.Empty(t, report.DateRows)
	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, "Hoja1", report.SheetName)
}

func TestDetectStructureComplex(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "DIRECCION"},
		{"Juan", "Calle 1"},
		{"Ana", "Calle 2"},
		{"", ""},
		{"NOMBRE", "DIRECCION"},
		{"Luis", "Calle 3"},
	}

	report := DetectStructure(rows, "Hoja1", DefaultHeaderParams())

	assert.Equal(t, models.StructureComplex, report.Type)
	assert.Equal(t, []int{1, 5}, report.HeaderRows)
	// First range trims the blank row before the second header.
	assert.Equal(t, []models.RowRange{{Start: 2, End: 3}, {Start: 6, End: 6}}, report.DataRanges)

	// Ranges are aligned with headers, non-overlapping, strictly increasing.
	require.Len(t, report.DataRanges, len(report.HeaderRows))
	for i := 1; i < len(report.DataRanges); i++ {
		assert.Greater(t, report.DataRanges[i].Start, report.DataRanges[i-1].End)
	}
}

func TestDetectStructureDateBlock(t *testing.T) {
	rows := [][]string{
		{"FECHA: 09/10/2023 Lunes SWX113"},
		{"NOMBRE", "DIRECCION"},
		{"Juan", "Calle 1"},
		{"Ana", "Calle 2"},
		{""},
		{"FECHA: 10/10/2023 Martes SWX113"},
		{"NOMBRE", "DIRECCION"},
		{"Luis", "Calle 3"},
		{""},
		{""},
	}

	report := DetectStructure(rows, "Hoja1", DefaultHeaderParams())

	assert.Equal(t, models.StructureDateBlock, report.Type)
	assert.Equal(t, []int{1, 6}, report.DateRows)
	assert.Equal(t, []int{2, 7}, report.HeaderRows)
	assert.Equal(t, []models.RowRange{{Start: 3, End: 4}, {Start: 8, End: 8}}, report.DataRanges)
}

func TestDetectStructureDateBlockPriority(t *testing.T) {
	// Generic headers are present but the annotation pattern wins.
	rows := [][]string{
		{"NOMBRE", "DIRECCION", "TELEFONO"},
		{"Juan", "Calle 1", "300"},
		{"FECHA: 01/01/2024 Lunes SWX113"},
		{"NOMBRE", "DIRECCION", "TELEFONO"},
		{"Ana", "Calle 2", "301"},
	}

	report := DetectStructure(rows, "Hoja1", DefaultHeaderParams())

	assert.Equal(t, models.StructureDateBlock, report.Type)
	assert.Equal(t, []int{3}, report.DateRows)
	assert.Equal(t, []int{4}, report.HeaderRows)
	assert.Equal(t, []models.RowRange{{Start: 5, End: 5}}, report.DataRanges)
}

func TestDetectStructureUnknown(t *testing.T) {
	rows := [][]string{
		{"", ""},
		{"dato suelto", "otro"},
		{"mas datos", "y mas"},
	}

	report := DetectStructure(rows, "Hoja1", DefaultHeaderParams())

	assert.Equal(t, models.StructureUnknown, report.Type)
	// Best effort: the first non-empty row is presumed to hold the labels.
	assert.Equal(t, []int{2}, report.HeaderRows)
	assert.Equal(t, []models.RowRange{{Start: 3, End: 3}}, report.DataRanges)
}

func TestDetectStructureEmptySheet(t *testing.T) {
	for _, rows := range [][][]string{nil, {{""}, {"", ""}}} {
		report := DetectStructure(rows, "Hoja1", DefaultHeaderParams())

		assert.Equal(t, models.StructureUnknown, report.Type)
		assert.Empty(t, report.HeaderRows)
		assert.Empty(t, report.DataRanges)
		assert.Empty(t, report.DateRows)
	}
}

func TestDetectStructureZeroRowBlockDropped(t *testing.T) {
	// The trailing annotation block has no data rows at all.
	rows := [][]string{
		{"FECHA: 09/10/2023 Lunes SWX113"},
		{"NOMBRE", "DIRECCION"},
		{"Juan", "Calle 1"},
		{"FECHA: 10/10/2023 Martes SWX113"},
	}

	report := DetectStructure(rows, "Hoja1", DefaultHeaderParams())

	assert.Equal(t, models.StructureDateBlock, report.Type)
	assert.Equal(t, []int{1, 4}, report.DateRows)
	assert.Equal(t, []int{2}, report.HeaderRows)
	assert.Equal(t, []models.RowRange{{Start: 3, End: 3}}, report.DataRanges)
}

func TestDetectStructureIdempotent(t *testing.T) {
	rows := [][]string{
		{"NOMBRE", "DIRECCION"},
		{"Juan", "Calle 1"},
		{""},
		{"NOMBRE", "DIRECCION"},
		{"Ana", "Calle 2"},
	}

	first := DetectStructure(rows, "Hoja1", DefaultHeaderParams())
	second := DetectStructure(rows, "Hoja1", DefaultHeaderParams())

	assert.Equal(t, first, second)
}
