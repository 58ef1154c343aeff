package dataset

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/firm-profiler/internal/profile"
)

// normalizeCol folds case and accents and collapses whitespace for header matching.
// "Nº Colaboradores " → "no colaboradores", "PROCESSOS" → "processos"
func normalizeCol(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(folded, "º", "o")
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// parseNumber parses plain ("1234.56", "1.5E+6") and Brazilian ("1.234,56",
// "R$ 2.000") number formats. A lone dot is read as a decimal point unless
// the value carries the R$ prefix and exactly three digits follow the dot.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	currency := strings.HasPrefix(s, "R$")
	s = strings.TrimPrefix(s, "R$")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" || s == "-" {
		return 0, false
	}

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	case dots == 1 && currency && len(s)-strings.Index(s, ".") == 4:
		s = strings.Replace(s, ".", "", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// parseMetric returns nil for anything that is not a usable non-negative number.
func parseMetric(s string, whole bool) *float64 {
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		return nil
	}
	if whole {
		v = math.Trunc(v)
	}
	return profile.Value(v)
}
