// Package export renders classified tables to xlsx, csv, json, yaml and text.
package export

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/firm-profiler/internal/dataset"
	"github.com/sells-group/firm-profiler/internal/profile"
)

// Rows appends the profile columns to every row of t. outcomes must be in
// row order.
func Rows(t *dataset.Table, outcomes []profile.Outcome) ([]string, [][]string, error) {
	if len(outcomes) != len(t.Rows) {
		return nil, nil, eris.Errorf("export: %d outcomes for %d rows", len(outcomes), len(t.Rows))
	}

	header := make([]string, 0, len(t.Header)+len(profile.Columns))
	header = append(header, t.Header...)
	header = append(header, profile.Columns...)

	rows := make([][]string, len(t.Rows))
	for i, src := range t.Rows {
		row := make([]string, len(t.Header), len(t.Header)+len(profile.Columns))
		copy(row, src)
		rows[i] = append(row, outcomes[i].LabelRow()...)
	}
	return header, rows, nil
}

// Entry is the structured form of one classified record.
type Entry struct {
	Row             int               `json:"row" yaml:"row"`
	Fields          map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	RevenueProfile  string            `json:"revenue_profile" yaml:"revenue_profile"`
	ColabProfile    string            `json:"colab_profile" yaml:"colab_profile"`
	LawsuitProfile  string            `json:"lawsuit_profile" yaml:"lawsuit_profile"`
	PartialProfile  string            `json:"partial_profile" yaml:"partial_profile"`
	FinalProfile    string            `json:"final_profile" yaml:"final_profile"`
	WeightedProfile string            `json:"weighted_profile" yaml:"weighted_profile"`
	Error           string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// Entries converts outcomes to entries. Row numbers are 1-based. When t is
// non-nil each entry also carries the source row keyed by header.
func Entries(t *dataset.Table, outcomes []profile.Outcome) []Entry {
	out := make([]Entry, len(outcomes))
	for i, o := range outcomes {
		labels := o.LabelRow()
		e := Entry{
			Row:             i + 1,
			RevenueProfile:  labels[0],
			ColabProfile:    labels[1],
			LawsuitProfile:  labels[2],
			PartialProfile:  labels[3],
			FinalProfile:    labels[4],
			WeightedProfile: labels[5],
		}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		if t != nil && i < len(t.Rows) {
			e.Fields = make(map[string]string, len(t.Header))
			for j, h := range t.Header {
				if h == "" || j >= len(t.Rows[i]) {
					continue
				}
				e.Fields[h] = t.Rows[i][j]
			}
		}
		out[i] = e
	}
	return out
}
