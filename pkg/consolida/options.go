// Package consolida consolidates worksheets containing stacked, repeated-
// header tables into a single clean tabular dataset.
package consolida

import (
	"io"
	"log/slog"

	"github.com/dfrestrepo/consolida-go/pkg/consolida/parser"
)

// Options configures a Consolidator. The zero value is not usable directly;
// start from DefaultOptions.
type Options struct {
	// SheetName selects the sheet to consolidate. Empty means the first
	// sheet of the workbook.
	SheetName string
	// OutputDir is the base directory for output files. Empty means the
	// directory of each input file.
	OutputDir string
	// OutputSubdir is created under the base directory to hold results.
	OutputSubdir string
	// Suffix is appended to the input file stem to form the output name.
	Suffix string
	// HeaderKeywords overrides the header detection vocabulary. Empty
	// means parser.DefaultHeaderKeywords.
	HeaderKeywords []string
	// KnownUnitCodes overrides the literal unit codes recognized in date
	// annotation rows. Empty means parser.DefaultUnitCodes.
	KnownUnitCodes []string
	// NormalizeColumns uppercases and underscores output column names.
	NormalizeColumns bool
	// Recursive makes directory runs descend into subdirectories.
	Recursive bool
	// Parallel enables concurrent file processing in directory runs.
	Parallel bool
	// Workers bounds concurrent files when Parallel is set.
	Workers int
	// ExcludePatterns are substrings that exclude a path from directory
	// discovery, in addition to DefaultExcludePatterns.
	ExcludePatterns []string
	// Logger receives progress and diagnostic records. Nil means discard.
	Logger *slog.Logger
}

// DefaultOptions returns the defaults matching the conventional output layout
// (a "consolidado" subdirectory with "_consolidado"-suffixed files).
func DefaultOptions() Options {
	return Options{
		OutputSubdir: "consolidado",
		Suffix:       "_consolidado",
		Recursive:    true,
		Workers:      4,
	}
}

// headerParams builds the detection thresholds from the options.
func (o Options) headerParams() parser.HeaderParams {
	params := parser.DefaultHeaderParams()
	if len(o.HeaderKeywords) > 0 {
		params.Keywords = o.HeaderKeywords
	}
	return params
}

// extractParams builds the extraction configuration from the options.
func (o Options) extractParams() parser.ExtractParams {
	params := parser.DefaultExtractParams()
	if len(o.KnownUnitCodes) > 0 {
		params.KnownUnitCodes = o.KnownUnitCodes
	}
	return params
}

// logger returns the configured logger, or a discard logger when none is set,
// so library code never writes to a global sink.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
