package consolida

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dfrestrepo/consolida-go/pkg/consolida/models"
)

// DefaultExcludePatterns are path substrings skipped during discovery:
// spreadsheet lock files, temporary files and folders, already-consolidated
// output, backups, and version control metadata.
var DefaultExcludePatterns = []string{
	"~$",
	".tmp",
	"temp",
	"consolidado",
	"backup",
	".git",
}

// DiscoverFiles finds the .xlsx files under dir, honoring the Recursive
// option and the exclusion patterns. Results are in walk order.
func (c *Consolidator) DiscoverFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrFileNotFound, dir)
		}
		return nil, errors.Wrapf(err, "reading %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("not a directory: %s", dir)
	}

	excluded := append(append([]string{}, DefaultExcludePatterns...), c.opts.ExcludePatterns...)

	var files []string
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isExcluded(path, excluded) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !c.opts.Recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			files = append(files, path)
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, errors.Wrapf(err, "walking %s", dir)
	}
	return files, nil
}

// isExcluded reports whether any exclusion pattern occurs in the path.
func isExcluded(path string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// ConsolidateDirectory consolidates every discovered file under dir. Per-file
// failures are recorded in the summary and do not abort the batch. When the
// Parallel option is set, files are processed concurrently by at most Workers
// goroutines; each file run is fully self-contained, so no state is shared
// between workers. Cancelling ctx stops dispatching new files; files already
// in flight run to completion.
func (c *Consolidator) ConsolidateDirectory(ctx context.Context, dir string) (*models.BatchSummary, error) {
	start := time.Now()

	files, err := c.DiscoverFiles(dir)
	if err != nil {
		return nil, err
	}
	c.log.Info("batch started",
		slog.String("dir", dir),
		slog.Int("files", len(files)),
		slog.Bool("parallel", c.opts.Parallel))

	results := make([]models.BatchResult, len(files))

	limit := 1
	if c.opts.Parallel && c.opts.Workers > 1 {
		limit = c.opts.Workers
	}
	g := &errgroup.Group{}
	g.SetLimit(limit)

	for i, path := range files {
		if ctx.Err() != nil {
			// Stop dispatching; mark remaining files as not processed.
			for j := i; j < len(files); j++ {
				results[j] = models.BatchResult{Path: files[j], Err: context.Cause(ctx).Error()}
			}
			break
		}
		i, path := i, path
		g.Go(func() error {
			result, err := c.ConsolidateFile(ctx, path, "")
			if err != nil {
				c.log.Warn("file failed", slog.String("path", path), slog.Any("error", err))
				results[i] = models.BatchResult{Path: path, Err: err.Error()}
				return nil
			}
			results[i] = models.BatchResult{Path: path, Result: result}
			return nil
		})
	}
	_ = g.Wait()

	summary := &models.BatchSummary{
		TotalFiles: len(files),
		Results:    results,
		Duration:   time.Since(start),
	}
	for _, r := range results {
		if r.OK() {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	c.log.Info("batch finished",
		slog.Int("total", summary.TotalFiles),
		slog.Int("successful", summary.Successful),
		slog.Int("failed", summary.Failed),
		slog.Duration("duration", summary.Duration))
	return summary, nil
}
