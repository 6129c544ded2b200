// Package main provides the CLI entry point for consolida-go.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dfrestrepo/consolida-go/pkg/consolida"
	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
	"github.com/dfrestrepo/consolida-go/pkg/consolida/output"
)

var (
	sheetName        string
	outputPath       string
	outputDir        string
	analyze          bool
	pretty           bool
	recursive        bool
	parallel         bool
	workers          int
	excludePatterns  []string
	normalizeColumns bool
	verbose          bool
	quiet            bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "consolida [input.xlsx | directory]",
		Short: "Consolidate stacked spreadsheet tables into one clean dataset",
		Long: `consolida detects the structure of worksheets containing one or more
stacked, repeated-header tables (including date-delimited blocks), extracts
every table, and consolidates them into a single clean xlsx file.

Given a directory, all contained .xlsx files are consolidated in one batch.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Sheet name to consolidate (default: first sheet)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (single-file mode only)")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Base output directory (default: next to each input)")
	rootCmd.Flags().BoolVar(&analyze, "analyze", false, "Print the structure report as JSON without extracting")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Descend into subdirectories in directory mode")
	rootCmd.Flags().BoolVar(&parallel, "parallel", false, "Process files concurrently in directory mode")
	rootCmd.Flags().IntVar(&workers, "workers", 4, "Worker count when --parallel is set")
	rootCmd.Flags().StringSliceVar(&excludePatterns, "exclude", nil, "Additional path substrings to exclude in directory mode")
	rootCmd.Flags().BoolVar(&normalizeColumns, "normalize-columns", false, "Uppercase and underscore output column names")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts := consolida.DefaultOptions()
	opts.SheetName = sheetName
	opts.OutputDir = outputDir
	opts.Recursive = recursive
	opts.Parallel = parallel
	opts.Workers = workers
	opts.ExcludePatterns = excludePatterns
	opts.NormalizeColumns = normalizeColumns
	opts.Logger = newLogger()

	cons := consolida.New(opts)
	ctx := context.Background()

	switch {
	case info.IsDir() && analyze:
		return runBatchAnalyze(cons, inputPath, os.Stdout)
	case info.IsDir():
		return runBatch(ctx, cons, inputPath)
	case analyze:
		return runAnalyze(cons, inputPath)
	default:
		return runSingle(ctx, cons, inputPath)
	}
}

func runSingle(ctx context.Context, cons *consolida.Consolidator, inputPath string) error {
	result, err := cons.ConsolidateFile(ctx, inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("consolidation failed: %w", err)
	}
	fmt.Printf("Consolidated %s: %d rows, %d columns (%s) -> %s\n",
		result.InputPath, result.RowCount, result.ColumnCount, result.Structure, result.OutputPath)
	return nil
}

func runAnalyze(cons *consolida.Consolidator, inputPath string) error {
	analysis, err := cons.AnalyzeWorkbook(inputPath)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	jsonData, err := output.ReportJSON(analysis, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// runBatchAnalyze prints the structure report of every discovered workbook
// as a JSON array, without extracting or writing anything. Per-file failures
// are reported on stderr and do not abort the run.
func runBatchAnalyze(cons *consolida.Consolidator, dir string, w io.Writer) error {
	files, err := cons.DiscoverFiles(dir)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	analyses := make([]*models.WorkbookAnalysis, 0, len(files))
	failed := 0
	for _, path := range files {
		analysis, err := cons.AnalyzeWorkbook(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", path, err)
			failed++
			continue
		}
		analyses = append(analyses, analysis)
	}

	jsonData, err := output.ReportJSON(analyses, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func runBatch(ctx context.Context, cons *consolida.Consolidator, dir string) error {
	summary, err := cons.ConsolidateDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}
	for _, r := range summary.Results {
		if !r.OK() {
			fmt.Fprintf(os.Stderr, "failed: %s: %s\n", r.Path, r.Err)
		}
	}
	fmt.Printf("Batch finished: %d/%d files consolidated in %s\n",
		summary.Successful, summary.TotalFiles, summary.Duration.Round(time.Millisecond))
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", summary.Failed)
	}
	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
