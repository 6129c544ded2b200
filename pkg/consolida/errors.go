package consolida

import "errors"

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the requested sheet does not exist in the
// workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNoData indicates detection and extraction completed but produced an
// empty table. Callers decide whether this constitutes a failure.
var ErrNoData = errors.New("no data extracted")
