package profile

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// BucketOp selects how a partial bucket matches the collaborator count.
type BucketOp string

const (
	OpLessEqual BucketOp = "le"
	OpEqual     BucketOp = "eq"
	OpElse      BucketOp = "else"
)

// PartialBucket maps a collaborator-count range to its own lawsuit thresholds.
type PartialBucket struct {
	Name    string     `yaml:"name" json:"name"`
	Op      BucketOp   `yaml:"op" json:"op"`
	Colab   float64    `yaml:"colab,omitempty" json:"colab,omitempty"`
	Lawsuit [3]float64 `yaml:"lawsuit" json:"lawsuit"`
}

func (b PartialBucket) matches(colab float64) bool {
	switch b.Op {
	case OpLessEqual:
		return colab <= b.Colab
	case OpEqual:
		return colab == b.Colab
	case OpElse:
		return true
	}
	return false
}

// ConflictRule resolves a standard band that is heavier than the partial band.
type ConflictRule struct {
	Partial  Band `yaml:"partial" json:"partial"`
	Standard Band `yaml:"standard" json:"standard"`
	Final    Band `yaml:"final" json:"final"`
}

// Rules holds every threshold table the engine uses.
type Rules struct {
	Revenue  [3]float64      `yaml:"revenue" json:"revenue"`
	Colab    [3]float64      `yaml:"colab" json:"colab"`
	Lawsuit  [3]float64      `yaml:"lawsuit" json:"lawsuit"`
	Partial  []PartialBucket `yaml:"partial" json:"partial"`
	Conflict []ConflictRule  `yaml:"conflict" json:"conflict"`
}

// DefaultRules returns the production rule set.
func DefaultRules() Rules {
	return Rules{
		Revenue: [3]float64{60_000, 300_000, 1_000_000},
		Colab:   [3]float64{3, 5, 10},
		Lawsuit: [3]float64{100, 300, 1000},
		Partial: []PartialBucket{
			{Name: "colab<=2", Op: OpLessEqual, Colab: 2, Lawsuit: [3]float64{450, 800, 1300}},
			{Name: "colab==3", Op: OpEqual, Colab: 3, Lawsuit: [3]float64{400, 700, 1250}},
			{Name: "colab==4", Op: OpEqual, Colab: 4, Lawsuit: [3]float64{450, 800, 1300}},
			{Name: "colab==5", Op: OpEqual, Colab: 5, Lawsuit: [3]float64{100, 450, 1150}},
			// KNOWN DEFECT: the third threshold (100) sits below the second
			// (300), so band 3 can never be produced for 6-7 collaborators.
			// Kept as-is to match the published classification; see
			// TestClassifyPartial_Colab7DeadBranch before changing it.
			{Name: "colab<=7", Op: OpLessEqual, Colab: 7, Lawsuit: [3]float64{100, 300, 100}},
			{Name: "colab>7", Op: OpElse, Lawsuit: [3]float64{100, 300, 1000}},
		},
		Conflict: []ConflictRule{
			{Partial: Mosca, Standard: Pena, Final: Pena},
			{Partial: Mosca, Standard: Medio, Final: Pena},
			{Partial: Mosca, Standard: Pesado, Final: Medio},
			{Partial: Pena, Standard: Medio, Final: Medio},
			{Partial: Pena, Standard: Pesado, Final: Medio},
			{Partial: Medio, Standard: Pesado, Final: Pesado},
		},
	}
}

// escalate looks up the conflict table. Unlisted pairs are Unclassified.
func (r *Rules) escalate(partial, standard Band) Band {
	for _, c := range r.Conflict {
		if c.Partial == partial && c.Standard == standard {
			return c.Final
		}
	}
	return Unclassified
}

// Validate checks that the rule tables are structurally usable.
func (r *Rules) Validate() error {
	var errs []string

	for _, t := range []struct {
		name string
		t    [3]float64
	}{{"revenue", r.Revenue}, {"colab", r.Colab}, {"lawsuit", r.Lawsuit}} {
		if hasNaN(t.t) {
			errs = append(errs, fmt.Sprintf("%s thresholds must be numbers", t.name))
		}
	}

	if len(r.Partial) == 0 {
		errs = append(errs, "partial buckets must not be empty")
	}
	for i, b := range r.Partial {
		last := i == len(r.Partial)-1
		switch b.Op {
		case OpLessEqual, OpEqual:
			if last {
				errs = append(errs, fmt.Sprintf("partial bucket %q: last bucket must use op %q", b.Name, OpElse))
			}
		case OpElse:
			if !last {
				errs = append(errs, fmt.Sprintf("partial bucket %q: op %q is only allowed on the last bucket", b.Name, OpElse))
			}
		default:
			errs = append(errs, fmt.Sprintf("partial bucket %q: unknown op %q", b.Name, b.Op))
		}
		if hasNaN(b.Lawsuit) {
			errs = append(errs, fmt.Sprintf("partial bucket %q: lawsuit thresholds must be numbers", b.Name))
		}
	}

	seen := make(map[[2]Band]bool, len(r.Conflict))
	for _, c := range r.Conflict {
		if !c.Partial.Defined() || !c.Standard.Defined() || !c.Final.Defined() {
			errs = append(errs, fmt.Sprintf("conflict rule %d/%d->%d: bands must be 1..4", c.Partial, c.Standard, c.Final))
			continue
		}
		if c.Standard <= c.Partial {
			errs = append(errs, fmt.Sprintf("conflict rule %d/%d: standard must be heavier than partial", c.Partial, c.Standard))
		}
		key := [2]Band{c.Partial, c.Standard}
		if seen[key] {
			errs = append(errs, fmt.Sprintf("conflict rule %d/%d: duplicate", c.Partial, c.Standard))
		}
		seen[key] = true
	}

	if len(errs) > 0 {
		return eris.Wrapf(ErrInvalidRules, "profile: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Warnings lists threshold tables whose values are not ascending. Such
// tables are legal, but at least one band in them is unreachable.
func (r *Rules) Warnings() []string {
	var warns []string
	check := func(name string, t [3]float64) {
		for i := 1; i < len(t); i++ {
			if t[i] < t[i-1] {
				warns = append(warns, fmt.Sprintf(
					"%s: threshold %d (%g) is below threshold %d (%g); band %d is unreachable",
					name, i+1, t[i], i, t[i-1], i+1))
			}
		}
	}
	check("revenue", r.Revenue)
	check("colab", r.Colab)
	check("lawsuit", r.Lawsuit)
	for _, b := range r.Partial {
		check("partial bucket "+b.Name, b.Lawsuit)
	}
	return warns
}

func hasNaN(t [3]float64) bool {
	for _, v := range t {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// rulesFile mirrors Rules with optional sections so a file can override
// only part of the defaults.
type rulesFile struct {
	Revenue  *[3]float64     `yaml:"revenue"`
	Colab    *[3]float64     `yaml:"colab"`
	Lawsuit  *[3]float64     `yaml:"lawsuit"`
	Partial  []PartialBucket `yaml:"partial"`
	Conflict []ConflictRule  `yaml:"conflict"`
}

// ParseRules decodes YAML rules under a top-level "profile_rules" key.
// Sections absent from the document keep their default values.
func ParseRules(data []byte) (Rules, error) {
	var wrapper struct {
		Rules rulesFile `yaml:"profile_rules"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Rules{}, eris.Wrap(err, "profile: parse rules")
	}

	rules := DefaultRules()
	f := wrapper.Rules
	if f.Revenue != nil {
		rules.Revenue = *f.Revenue
	}
	if f.Colab != nil {
		rules.Colab = *f.Colab
	}
	if f.Lawsuit != nil {
		rules.Lawsuit = *f.Lawsuit
	}
	if f.Partial != nil {
		rules.Partial = f.Partial
	}
	if f.Conflict != nil {
		rules.Conflict = f.Conflict
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// LoadRules reads a YAML rules file. An empty path returns DefaultRules.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, eris.Wrapf(err, "profile: read rules %s", path)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return Rules{}, eris.Wrapf(err, "profile: load rules %s", path)
	}
	return rules, nil
}

// MarshalDocument renders rules in the same shape ParseRules accepts.
func (r Rules) MarshalDocument() ([]byte, error) {
	type plain Rules
	out, err := yaml.Marshal(map[string]plain{"profile_rules": plain(r)})
	if err != nil {
		return nil, eris.Wrap(err, "profile: marshal rules")
	}
	return out, nil
}
