package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX parser.
type XLSXOptions struct {
	SheetName string // first sheet when empty
}

// ReadXLSX reads an XLSX file and returns all rows as string slices.
// Numeric cells are returned unformatted so thousands separators and
// currency formats never reach the number parser.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		rows = append(rows, rowToStrings(row))
	}

	return rows, nil
}

// SheetNames lists the sheets of an XLSX file in workbook order.
func SheetNames(path string) ([]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	names := make([]string, 0, len(f.Sheets))
	for _, s := range f.Sheets {
		names = append(names, s.Name)
	}
	return names, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	if row == nil {
		return []string{}
	}
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		if cell == nil {
			continue
		}
		if cell.Type() == xlsx.CellTypeNumeric && !isDateFormat(cell.NumFmt) {
			cells[j] = cell.Value
			continue
		}
		cells[j] = cell.String()
	}
	return cells
}

// isDateFormat reports whether an Excel number format renders a date or time.
// Quoted literals, escaped characters and bracketed sections are ignored,
// except elapsed-time sections such as [h] or [mm].
func isDateFormat(numFmt string) bool {
	f := strings.ToLower(numFmt)
	for i := 0; i < len(f); i++ {
		switch f[i] {
		case '"':
			end := strings.IndexByte(f[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case '\\', '_', '*':
			i++
		case '[':
			end := strings.IndexByte(f[i+1:], ']')
			if end < 0 {
				return false
			}
			if isElapsedSection(f[i+1 : i+1+end]) {
				return true
			}
			i += end + 1
		case 'd', 'm', 'y', 'h', 's':
			return true
		}
	}
	return false
}

func isElapsedSection(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "hms") == ""
}
