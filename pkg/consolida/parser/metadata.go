package parser

import (
	"regexp"
	"strings"

	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
)

// DefaultUnitCodes lists literal vehicle codes recognized before the generic
// shape is tried.
var DefaultUnitCodes = []string{"SWX113"}

// unitCodePattern matches the generic vehicle/unit code shape: three letters
// and three digits with an optional separator between them.
var unitCodePattern = regexp.MustCompile(`(?i)\b([A-Za-z]{3})[-_ ]?(\d{3})\b`)

// ParseDateAnnotation extracts date, weekday, and unit code from a date
// annotation row. Detection of which layout applies happens locally, so the
// function is usable on any row regardless of prior classification:
//
//   - Pattern A: "FECHA: DD/MM/YYYY <weekday> <unitcode>" in the first cell.
//   - Pattern B: a "DIA/ FECHA" label in the first cell, with the actual
//     "<WEEKDAY> DD/MM/YYYY" value in one of the next four cells.
//
// knownCodes replaces DefaultUnitCodes when non-empty; literal codes win over
// the generic shape. When neither pattern matches, all fields are empty
// strings.
func ParseDateAnnotation(row []string, knownCodes []string) models.DateMetadata {
	if len(row) == 0 {
		return models.DateMetadata{}
	}
	first := strings.TrimSpace(row[0])
	firstUpper := strings.ToUpper(first)

	if strings.HasPrefix(firstUpper, "FECHA:") {
		return parseInlineAnnotation(first, knownCodes)
	}
	if strings.Contains(firstUpper, "DIA") && strings.Contains(firstUpper, "FECHA") {
		return parseAdjacentAnnotation(row, knownCodes)
	}
	return models.DateMetadata{}
}

// parseInlineAnnotation handles Pattern A, where the whole annotation lives
// in one cell after the "FECHA:" marker.
func parseInlineAnnotation(cell string, knownCodes []string) models.DateMetadata {
	var meta models.DateMetadata

	rest := cell[len("FECHA:"):]
	if loc := datePattern.FindStringIndex(rest); loc != nil {
		meta.Date = rest[loc[0]:loc[1]]
		rest = rest[:loc[0]] + rest[loc[1]:]
	}

	code, start := findUnitCode(rest, knownCodes)
	if code != "" {
		meta.UnitCode = code
		meta.Weekday = strings.TrimSpace(rest[:start])
	} else {
		meta.Weekday = strings.TrimSpace(rest)
	}
	return meta
}

// parseAdjacentAnnotation handles Pattern B, where the first cell is only a
// label and the value sits in one of the next four cells.
func parseAdjacentAnnotation(row []string, knownCodes []string) models.DateMetadata {
	var meta models.DateMetadata

	limit := len(row)
	if limit > 5 {
		limit = 5
	}
	for _, cell := range row[1:limit] {
		if meta.Date == "" {
			if loc := datePattern.FindStringIndex(cell); loc != nil {
				meta.Date = cell[loc[0]:loc[1]]
				meta.Weekday = strings.ToUpper(strings.TrimSpace(cell[:loc[0]]))
			}
		}
		if meta.UnitCode == "" {
			if code, _ := findUnitCode(cell, knownCodes); code != "" {
				meta.UnitCode = code
			}
		}
	}
	return meta
}

// findUnitCode locates a unit code in s and returns the normalized code
// (separators stripped, uppercased) and the byte offset where the match
// starts, or ("", -1). Known literal codes are tried before the generic
// letter{3}digit{3} shape; first match wins.
func findUnitCode(s string, knownCodes []string) (string, int) {
	upper := strings.ToUpper(s)
	codes := knownCodes
	if len(codes) == 0 {
		codes = DefaultUnitCodes
	}
	for _, code := range codes {
		if idx := strings.Index(upper, strings.ToUpper(code)); idx >= 0 {
			return strings.ToUpper(code), idx
		}
	}
	if loc := unitCodePattern.FindStringSubmatchIndex(s); loc != nil {
		letters := s[loc[2]:loc[3]]
		digits := s[loc[4]:loc[5]]
		return strings.ToUpper(letters) + digits, loc[0]
	}
	return "", -1
}
