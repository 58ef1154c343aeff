// Package profile classifies law firms into weight classes from revenue,
// staff count and active-lawsuit count.
//
// The engine is pure: every function is a deterministic transform of its
// arguments, so records can be classified concurrently and in any order.
package profile

import (
	"math"
	"strconv"
)

// Band is an ordinal weight class. The zero value is Unclassified.
type Band int8

const (
	Unclassified Band = iota
	Mosca
	Pena
	Medio
	Pesado
)

// MaxBand is the heaviest defined band.
const MaxBand = Pesado

var bandLabels = map[Band]string{
	Unclassified: "Sem perfil",
	Mosca:        "Mosca",
	Pena:         "Pena",
	Medio:        "Médio",
	Pesado:       "Pesado",
}

// Defined reports whether b is one of the four ordinal bands.
// Unclassified must never take part in an ordering comparison.
func (b Band) Defined() bool {
	return b >= Mosca && b <= Pesado
}

// Label returns the display label of the band.
func (b Band) Label() string {
	if l, ok := bandLabels[b]; ok {
		return l
	}
	return "Band(" + strconv.Itoa(int(b)) + ")"
}

// String implements fmt.Stringer.
func (b Band) String() string { return b.Label() }

// BandFromLabel parses a display label back into a Band.
func BandFromLabel(label string) (Band, bool) {
	for b, l := range bandLabels {
		if l == label {
			return b, true
		}
	}
	return Unclassified, false
}

// Labels returns the labels of all bands in ordinal order, Unclassified first.
func Labels() []string {
	return []string{
		Unclassified.Label(), Mosca.Label(), Pena.Label(), Medio.Label(), Pesado.Label(),
	}
}

// Record is one firm as seen by the engine. A nil field is missing.
type Record struct {
	Revenue *float64 `json:"revenue"`
	Colab   *float64 `json:"colab"`
	Lawsuit *float64 `json:"lawsuit"`
}

// NewRecord builds a Record from raw values, mapping negative or NaN values
// to missing.
func NewRecord(revenue, colab, lawsuit float64) Record {
	return Record{
		Revenue: Value(revenue),
		Colab:   Value(colab),
		Lawsuit: Value(lawsuit),
	}
}

// Value returns a pointer to v, or nil when v is negative or NaN.
func Value(v float64) *float64 {
	if v < 0 || math.IsNaN(v) {
		return nil
	}
	return &v
}

// present unwraps a metric, treating negative and NaN as missing.
func present(v *float64) (float64, bool) {
	if v == nil || *v < 0 || math.IsNaN(*v) {
		return 0, false
	}
	return *v, true
}

// bandFor returns 1..3 for the first threshold v does not exceed, else 4.
// Thresholds are checked in the listed order, not sorted.
func bandFor(v float64, thresholds [3]float64) Band {
	for i, t := range thresholds {
		if v <= t {
			return Band(i + 1)
		}
	}
	return Pesado
}

// ClassifyRevenue bands twelve-month revenue.
func (r *Rules) ClassifyRevenue(revenue *float64) Band {
	v, ok := present(revenue)
	if !ok {
		return Unclassified
	}
	return bandFor(v, r.Revenue)
}

// ClassifyColab bands the collaborator count.
func (r *Rules) ClassifyColab(colab *float64) Band {
	v, ok := present(colab)
	if !ok {
		return Unclassified
	}
	return bandFor(v, r.Colab)
}

// ClassifyLawsuit bands the active-lawsuit count.
func (r *Rules) ClassifyLawsuit(lawsuit *float64) Band {
	v, ok := present(lawsuit)
	if !ok {
		return Unclassified
	}
	return bandFor(v, r.Lawsuit)
}
