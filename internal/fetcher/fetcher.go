// Package fetcher reads tabular input files (XLSX and CSV) into string rows.
package fetcher

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Options selects how an input file is parsed. Fields that do not apply to
// the detected format are ignored.
type Options struct {
	Sheet     string // XLSX sheet name; first sheet when empty
	Delimiter rune   // CSV delimiter; ',' when zero
	Encoding  string // CSV charset label (e.g. "windows-1252"); UTF-8 when empty
}

// ReadFile reads every row of path, header included, choosing the parser from
// the file extension.
func ReadFile(ctx context.Context, path string, opts Options) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, XLSXOptions{SheetName: opts.Sheet})
	case ".csv", ".txt":
		return ReadCSVFile(ctx, path, CSVOptions{
			Delimiter:  opts.Delimiter,
			Encoding:   opts.Encoding,
			LazyQuotes: true,
			TrimSpace:  true,
		})
	default:
		return nil, eris.Errorf("fetcher: unsupported file type %q", ext)
	}
}
