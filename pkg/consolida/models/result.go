package models

import "time"

// FileResult summarizes one single-file consolidation run.
type FileResult struct {
	// InputPath is the consolidated workbook.
	InputPath string `json:"input_path"`
	// OutputPath is the written output file. Empty in analyze-only runs.
	OutputPath string `json:"output_path,omitempty"`
	// SheetName is the sheet that was consolidated.
	SheetName string `json:"sheet_name"`
	// Structure is the detected structure classification.
	Structure StructureType `json:"structure"`
	// RowCount and ColumnCount describe the consolidated table.
	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`
	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`
}

// BatchResult records the outcome of one file inside a batch run.
type BatchResult struct {
	// Path is the input file.
	Path string `json:"path"`
	// Result is the per-file result, nil when the file failed.
	Result *FileResult `json:"result,omitempty"`
	// Err is the failure message, empty on success.
	Err string `json:"error,omitempty"`
}

// OK reports whether the file consolidated successfully.
func (b BatchResult) OK() bool { return b.Err == "" }

// BatchSummary aggregates the outcome of a directory run.
type BatchSummary struct {
	// TotalFiles is the number of files dispatched.
	TotalFiles int `json:"total_files"`
	// Successful and Failed partition TotalFiles.
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	// Results holds one entry per dispatched file.
	Results []BatchResult `json:"results"`
	// Duration is the wall-clock time of the whole batch.
	Duration time.Duration `json:"duration"`
}
