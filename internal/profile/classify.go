package profile

import (
	"context"
	"runtime"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrorLabel is rendered in place of the weighted profile when it failed.
const ErrorLabel = "Erro"

// Columns names the profile columns in the order LabelRow renders them.
var Columns = []string{
	"Revenue profile",
	"Colab profile",
	"Lawsuit profile",
	"Parcial",
	"Final",
	"Nova",
}

// Result holds every band derived for one record.
type Result struct {
	Revenue  Band
	Colab    Band
	Lawsuit  Band
	Partial  Band
	Final    Band
	Weighted Band

	// WeightedErr is set when the weighted profile could not be computed.
	// Every other band is still valid.
	WeightedErr error
}

// Standard is the revenue-only profile.
func (r Result) Standard() Band { return r.Revenue }

// WeightedLabel renders the weighted profile, or ErrorLabel if it failed.
func (r Result) WeightedLabel() string {
	if r.WeightedErr != nil {
		return ErrorLabel
	}
	return r.Weighted.Label()
}

// LabelRow renders the result in Columns order.
func (r Result) LabelRow() []string {
	return []string{
		r.Revenue.Label(),
		r.Colab.Label(),
		r.Lawsuit.Label(),
		r.Partial.Label(),
		r.Final.Label(),
		r.WeightedLabel(),
	}
}

// Outcome pairs a batch result with the error for that record, if any.
type Outcome struct {
	Result Result
	Err    error
}

// LabelRow renders the outcome in Columns order. A record that was never
// classified renders ErrorLabel in every column.
func (o Outcome) LabelRow() []string {
	if o.Err != nil && o.Result.WeightedErr == nil {
		row := make([]string, len(Columns))
		for i := range row {
			row[i] = ErrorLabel
		}
		return row
	}
	return o.Result.LabelRow()
}

// Classifier applies a fixed rule set. It is safe for concurrent use.
type Classifier struct {
	rules       Rules
	concurrency int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithConcurrency bounds the number of records ClassifyBatch works on at once.
func WithConcurrency(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New creates a Classifier after validating rules.
func New(rules Rules, opts ...Option) (*Classifier, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	c := &Classifier{
		rules:       rules,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Rules returns a copy of the classifier's rule set.
func (c *Classifier) Rules() Rules {
	r := c.rules
	r.Partial = append([]PartialBucket(nil), c.rules.Partial...)
	r.Conflict = append([]ConflictRule(nil), c.rules.Conflict...)
	return r
}

// Classify derives all profiles for one record. The returned error is the
// weighted-profile failure, also stored in Result.WeightedErr; the other
// bands are populated either way.
func (c *Classifier) Classify(rec Record, w WeightSet) (Result, error) {
	res := Result{
		Revenue: c.rules.ClassifyRevenue(rec.Revenue),
		Colab:   c.rules.ClassifyColab(rec.Colab),
		Lawsuit: c.rules.ClassifyLawsuit(rec.Lawsuit),
	}
	res.Partial, res.Final = c.rules.finalBands(rec, res.Revenue, res.Colab, res.Lawsuit)

	weighted, err := ClassifyWeighted(res.Revenue, res.Colab, res.Lawsuit, w)
	if err != nil {
		res.WeightedErr = err
		return res, err
	}
	res.Weighted = weighted
	return res, nil
}

// ClassifyBatch classifies records concurrently. Outcomes are returned in
// input order and a failing record never stops the others. Records not yet
// started when ctx is cancelled carry the context error.
func (c *Classifier) ClassifyBatch(ctx context.Context, records []Record, w WeightSet) []Outcome {
	start := time.Now()
	out := make([]Outcome, len(records))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i := range records {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				out[i] = Outcome{Err: eris.Wrap(err, "profile: batch cancelled")}
				return nil
			}
			res, err := c.Classify(records[i], w)
			out[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for i := range out {
		if out[i].Err != nil {
			failed++
		}
	}
	zap.L().Debug("profile: batch classified",
		zap.Int("records", len(records)),
		zap.Int("failed", failed),
		zap.Int("concurrency", c.concurrency),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out
}

var defaultClassifier = &Classifier{rules: DefaultRules(), concurrency: runtime.GOMAXPROCS(0)}

// Classify classifies one record with DefaultRules.
func Classify(rec Record, w WeightSet) (Result, error) {
	return defaultClassifier.Classify(rec, w)
}

// ClassifyBatch classifies records with DefaultRules.
func ClassifyBatch(ctx context.Context, records []Record, w WeightSet) []Outcome {
	return defaultClassifier.ClassifyBatch(ctx, records, w)
}
