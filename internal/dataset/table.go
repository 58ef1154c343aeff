// Package dataset turns raw spreadsheet rows into profile records.
package dataset

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/firm-profiler/internal/profile"
)

var (
	// ErrNoHeader is returned when the input has no header row.
	ErrNoHeader = eris.New("dataset: input has no header row")
	// ErrColumnNotFound is returned when a mapped column is absent from the header.
	ErrColumnNotFound = eris.New("dataset: column not found")
)

// Table is a header plus data rows, every row padded to the header width.
type Table struct {
	Header []string
	Rows   [][]string
}

// FromRows uses the first row as the header. Blank rows are dropped.
func FromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if isBlank(header) {
		return nil, ErrNoHeader
	}

	t := &Table{Header: header, Rows: make([][]string, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnMap names the header columns holding each metric.
type ColumnMap struct {
	Revenue string `json:"revenue" yaml:"revenue"`
	Colab   string `json:"colab" yaml:"colab"`
	Lawsuit string `json:"lawsuit" yaml:"lawsuit"`
}

type columnIndex struct {
	revenue, colab, lawsuit int
}

// Index returns the position of the column matching name, ignoring case,
// accents and repeated whitespace.
func (t *Table) Index(name string) (int, error) {
	want := normalizeCol(name)
	for i, h := range t.Header {
		if normalizeCol(h) == want {
			return i, nil
		}
	}
	return -1, eris.Wrapf(ErrColumnNotFound, "dataset: column %q not in header [%s]", name, strings.Join(t.Header, ", "))
}

func (t *Table) resolve(cols ColumnMap) (columnIndex, error) {
	var idx columnIndex
	var err error
	if idx.revenue, err = t.Index(cols.Revenue); err != nil {
		return idx, err
	}
	if idx.colab, err = t.Index(cols.Colab); err != nil {
		return idx, err
	}
	if idx.lawsuit, err = t.Index(cols.Lawsuit); err != nil {
		return idx, err
	}
	return idx, nil
}

// Records extracts one profile.Record per data row. Cells that are empty,
// unparsable or negative become missing metrics. Colab and lawsuit counts are
// truncated to whole numbers.
func (t *Table) Records(cols ColumnMap) ([]profile.Record, error) {
	idx, err := t.resolve(cols)
	if err != nil {
		return nil, err
	}

	recs := make([]profile.Record, len(t.Rows))
	for i, row := range t.Rows {
		recs[i] = profile.Record{
			Revenue: parseMetric(cell(row, idx.revenue), false),
			Colab:   parseMetric(cell(row, idx.colab), true),
			Lawsuit: parseMetric(cell(row, idx.lawsuit), true),
		}
	}
	return recs, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
