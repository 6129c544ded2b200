package output

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileName builds the output file name for an input path by inserting suffix
// before the extension: "RUTA 113.xlsx" becomes "RUTA 113_consolidado.xlsx"
// with the default suffix.
func FileName(inputPath, suffix string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + suffix + ext
}

// ResolvePath derives the full output path for an input file and creates the
// output directory if needed. With an empty outputDir the directory of the
// input file is used as the base; subdir is created underneath it.
func ResolvePath(inputPath, outputDir, subdir, suffix string) (string, error) {
	base := outputDir
	if base == "" {
		base = filepath.Dir(inputPath)
	}
	dir := base
	if subdir != "" {
		dir = filepath.Join(base, subdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating output directory %s", dir)
	}
	return filepath.Join(dir, FileName(inputPath, suffix)), nil
}
