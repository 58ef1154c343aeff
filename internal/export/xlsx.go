package export

import (
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// firstColumnFormat is applied to numeric cells in column A.
const firstColumnFormat = "0.00"

// WriteXLSX writes header and rows to a single-sheet workbook. Cells that hold
// plain numbers are stored as numbers.
func WriteXLSX(w io.Writer, sheetName string, header []string, rows [][]string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %q", sheetName)
	}

	hr := sheet.AddRow()
	for _, h := range header {
		hr.AddCell().SetString(h)
	}

	for _, r := range rows {
		xr := sheet.AddRow()
		for j, v := range r {
			cell := xr.AddCell()
			n, ok := numericCell(v)
			switch {
			case !ok:
				cell.SetString(v)
			case j == 0:
				cell.SetFloatWithFormat(n, firstColumnFormat)
			default:
				cell.SetFloat(n)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

// numericCell reports whether v round-trips as a number. Codes with leading
// zeros stay text.
func numericCell(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	if len(v) > 1 && v[0] == '0' && v[1] != '.' {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	if strconv.FormatFloat(n, 'f', -1, 64) != v && strconv.FormatFloat(n, 'g', -1, 64) != v {
		return 0, false
	}
	return n, true
}
