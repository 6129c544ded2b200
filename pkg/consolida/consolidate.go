package consolida

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
	"github.com/dfrestrepo/consolida-go/pkg/consolida/output"
	"github.com/dfrestrepo/consolida-go/pkg/consolida/parser"
)

// Consolidator is the entry point for consolidating worksheets. It is safe
// for concurrent use: every file run allocates its own worksheet snapshot and
// result table.
type Consolidator struct {
	opts Options
	log  *slog.Logger
}

// New creates a Consolidator from opts.
func New(opts Options) *Consolidator {
	return &Consolidator{opts: opts, log: opts.logger()}
}

// ConsolidateFile runs detection, extraction, and output writing for one
// workbook. The output path is derived from the input path and the configured
// naming options unless outputPath is non-empty. An extraction that yields an
// empty table returns ErrNoData and writes nothing.
func (c *Consolidator) ConsolidateFile(ctx context.Context, path, outputPath string) (*models.FileResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, sheetName, err := c.snapshot(path)
	if err != nil {
		return nil, err
	}

	report := parser.DetectStructure(rows, sheetName, c.opts.headerParams())
	c.log.Debug("structure detected",
		slog.String("path", path),
		slog.String("type", string(report.Type)),
		slog.Int("tables", report.TableCount()),
		slog.Int("total_rows", report.TotalRows))

	table := parser.Extract(rows, report, c.opts.extractParams())
	if c.opts.NormalizeColumns {
		table.NormalizeColumnNames()
	}
	if table.IsEmpty() {
		return nil, errors.Wrap(ErrNoData, path)
	}

	if outputPath == "" {
		outputPath, err = c.outputPath(path)
		if err != nil {
			return nil, err
		}
	}
	if err := output.WriteTable(table, outputPath); err != nil {
		return nil, errors.Wrapf(err, "writing %s", outputPath)
	}

	result := &models.FileResult{
		InputPath:   path,
		OutputPath:  outputPath,
		SheetName:   sheetName,
		Structure:   report.Type,
		RowCount:    table.RowCount(),
		ColumnCount: table.ColumnCount(),
		Duration:    time.Since(start),
	}
	c.log.Info("file consolidated",
		slog.String("path", path),
		slog.String("output", outputPath),
		slog.Int("rows", result.RowCount),
		slog.Int("columns", result.ColumnCount),
		slog.Duration("duration", result.Duration))
	return result, nil
}

// AnalyzeFile runs structure detection only and returns the report, without
// extracting or writing anything.
func (c *Consolidator) AnalyzeFile(path string) (*models.StructureReport, error) {
	rows, sheetName, err := c.snapshot(path)
	if err != nil {
		return nil, err
	}
	report := parser.DetectStructure(rows, sheetName, c.opts.headerParams())
	return &report, nil
}

// AnalyzeWorkbook runs structure detection on every sheet of the workbook.
func (c *Consolidator) AnalyzeWorkbook(path string) (*models.WorkbookAnalysis, error) {
	f, err := c.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	analysis := &models.WorkbookAnalysis{
		FilePath:   path,
		SheetNames: f.GetSheetList(),
		Sheets:     make(map[string]models.StructureReport),
	}
	for _, sheet := range analysis.SheetNames {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.Wrapf(err, "reading sheet %q", sheet)
		}
		analysis.Sheets[sheet] = parser.DetectStructure(rows, sheet, c.opts.headerParams())
	}
	return analysis, nil
}

// snapshot opens the workbook and materializes the target sheet's rows once.
func (c *Consolidator) snapshot(path string) ([][]string, string, error) {
	f, err := c.open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	sheetName := c.opts.SheetName
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", errors.Wrap(ErrSheetNotFound, path)
		}
		sheetName = sheets[0]
	} else {
		idx, err := f.GetSheetIndex(sheetName)
		if err != nil || idx < 0 {
			return nil, "", errors.Wrapf(ErrSheetNotFound, "%s in %s", sheetName, path)
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, "", errors.Wrapf(err, "reading sheet %q", sheetName)
	}
	return rows, sheetName, nil
}

// open validates the path and opens the workbook.
func (c *Consolidator) open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrap(ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return f, nil
}

// outputPath derives the output file location from the input path and the
// configured naming options.
func (c *Consolidator) outputPath(inputPath string) (string, error) {
	return output.ResolvePath(inputPath, c.opts.OutputDir, c.opts.OutputSubdir, c.opts.Suffix)
}
