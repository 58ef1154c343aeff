package export

import (
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/firm-profiler/internal/profile"
)

// Summary is the label distribution of a classified batch, per profile column.
type Summary struct {
	Total  int
	Errors int
	// Counts[column][label], columns as in profile.Columns.
	Counts map[string]map[string]int
}

// Summarize counts labels per profile column.
func Summarize(outcomes []profile.Outcome) Summary {
	s := Summary{
		Total:  len(outcomes),
		Counts: make(map[string]map[string]int, len(profile.Columns)),
	}
	for _, col := range profile.Columns {
		s.Counts[col] = make(map[string]int)
	}
	for _, o := range outcomes {
		if o.Err != nil {
			s.Errors++
		}
		for i, label := range o.LabelRow() {
			s.Counts[profile.Columns[i]][label]++
		}
	}
	return s
}

// Print writes the summary with pt-BR number formatting.
func (s Summary) Print(w io.Writer) error {
	p := message.NewPrinter(language.BrazilianPortuguese)

	if _, err := p.Fprintf(w, "Registros: %d (erros: %d)\n", s.Total, s.Errors); err != nil {
		return eris.Wrap(err, "export: write summary")
	}

	labels := append(profile.Labels(), profile.ErrorLabel)
	for _, col := range profile.Columns {
		if _, err := p.Fprintf(w, "\n%s\n", col); err != nil {
			return eris.Wrap(err, "export: write summary")
		}
		for _, label := range labels {
			n := s.Counts[col][label]
			if n == 0 {
				continue
			}
			pct := 0.0
			if s.Total > 0 {
				pct = float64(n) / float64(s.Total) * 100
			}
			if _, err := p.Fprintf(w, "  %-12s %8d  %5.1f%%\n", label, n, pct); err != nil {
				return eris.Wrap(err, "export: write summary")
			}
		}
	}
	return nil
}
