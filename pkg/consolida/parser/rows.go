// Package parser provides the worksheet structure heuristics: row
// classification, structure detection, date annotation parsing, and
// multi-table extraction.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultHeaderKeywords is the vocabulary used to recognize header rows.
// Matching is case- and diacritic-insensitive, so accented variants collapse
// into one entry. The list is domain-specific (logistics route sheets) and is
// meant to be replaced, not extended in code, when the domain changes.
var DefaultHeaderKeywords = []string{
	"nombre",
	"direccion",
	"telefono",
	"cliente",
	"usuario",
	"contacto",
	"aceite",
	"respel",
	"cantidad",
	"municipio",
	"ruta",
	"fecha",
	"codigo",
	"nit",
	"empresa",
	"sector",
	"encargado",
	"telefonos",
	"correos",
	"frecuencia",
	"observaciones",
	"producto y cantidad",
	"fecha ultima llamada",
	"fecha de recoleccion",
}

// HeaderParams holds the thresholds for header-row detection.
type HeaderParams struct {
	// Keywords is the header vocabulary. Defaults to DefaultHeaderKeywords
	// when empty.
	Keywords []string
	// MinKeywordHits is the minimum number of non-empty cells that must
	// contain a vocabulary word.
	MinKeywordHits int
	// MinTextRatio is the minimum fraction of non-empty cells that must be
	// non-purely-numeric text.
	MinTextRatio float64
}

// DefaultHeaderParams returns the detection thresholds matching typical
// manually-maintained operational sheets.
func DefaultHeaderParams() HeaderParams {
	return HeaderParams{
		Keywords:       DefaultHeaderKeywords,
		MinKeywordHits: 2,
		MinTextRatio:   0.7,
	}
}

// datePattern matches a DD/MM/YYYY-shaped substring (day and month may be one
// or two digits).
var datePattern = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)

// Fold lowercases s and strips diacritics for accent-insensitive comparison,
// so "DIRECCIÓN" folds to "direccion". The transformer chain is built per
// call: transformers carry state and are not safe for concurrent use.
func Fold(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// IsEmptyRow reports whether every cell is empty after trimming whitespace.
// An empty slice counts as an empty row.
func IsEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// CountNonEmptyCells returns the number of cells with non-whitespace content.
func CountNonEmptyCells(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

// isNumericText reports whether s is purely numeric once thousands and
// decimal separators are removed.
func isNumericText(s string) bool {
	stripped := strings.NewReplacer(".", "", ",", "").Replace(s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsHeaderLike reports whether a row is plausibly a header row. Two
// independent signals are required: the row must be mostly text (shape), and
// at least MinKeywordHits cells must contain a vocabulary word (content). A
// row with fewer than two non-empty cells is never a header.
func IsHeaderLike(row []string, params HeaderParams) bool {
	keywords := params.Keywords
	if len(keywords) == 0 {
		keywords = DefaultHeaderKeywords
	}

	var nonEmpty []string
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			nonEmpty = append(nonEmpty, cell)
		}
	}
	if len(nonEmpty) < 2 {
		return false
	}

	textCount := 0
	keywordCount := 0
	for _, cell := range nonEmpty {
		folded := Fold(strings.TrimSpace(cell))
		if !isNumericText(folded) {
			textCount++
		}
		for _, kw := range keywords {
			if strings.Contains(folded, Fold(kw)) {
				keywordCount++
				break
			}
		}
	}

	hasEnoughText := float64(textCount) >= float64(len(nonEmpty))*params.MinTextRatio
	return hasEnoughText && keywordCount >= params.MinKeywordHits
}

// FindDateAnnotationRows scans all rows and returns the 1-based indices of
// date annotation lines, in sheet order. Two layouts are recognized:
//
//   - Pattern A: the first cell starts with a literal "FECHA:" marker.
//   - Pattern B: the first cell contains both "DIA" and "FECHA", with a
//     DD/MM/YYYY date in one of the next four cells.
//
// Both patterns may appear in the same sheet.
func FindDateAnnotationRows(rows [][]string) []int {
	var found []int
	for idx, row := range rows {
		if len(row) == 0 {
			continue
		}
		first := strings.ToUpper(strings.TrimSpace(row[0]))
		if first == "" {
			continue
		}

		if strings.HasPrefix(first, "FECHA:") {
			found = append(found, idx+1)
			continue
		}

		if strings.Contains(first, "DIA") && strings.Contains(first, "FECHA") {
			limit := len(row)
			if limit > 5 {
				limit = 5
			}
			for _, cell := range row[1:limit] {
				if datePattern.MatchString(cell) {
					found = append(found, idx+1)
					break
				}
			}
		}
	}
	return found
}
