package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// WriteCSV writes header and rows as CSV.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write CSV header")
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return eris.Wrap(err, "export: write CSV row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush CSV")
	}
	return nil
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return eris.Wrap(err, "export: encode JSON")
	}
	return nil
}

// WriteYAML writes entries as a YAML sequence.
func WriteYAML(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return eris.Wrap(err, "export: encode YAML")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "export: close YAML encoder")
	}
	return nil
}

// maxCellWidth truncates long cells in table output.
const maxCellWidth = 40

// WriteTable writes header and rows as aligned text columns.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return eris.Wrap(err, "export: write table header")
	}
	sep := make([]string, len(header))
	for i, h := range header {
		sep[i] = strings.Repeat("-", min(len([]rune(h)), maxCellWidth))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(sep, "\t")); err != nil {
		return eris.Wrap(err, "export: write table separator")
	}

	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = truncate(c, maxCellWidth)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return eris.Wrap(err, "export: write table row")
		}
	}
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "export: flush table")
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
