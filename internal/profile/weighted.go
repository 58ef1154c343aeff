package profile

import "github.com/rotisserie/eris"

// MaxWeight is the largest coefficient a metric may carry.
const MaxWeight = 3

// WeightSet holds one coefficient per metric for the weighted profile.
type WeightSet struct {
	Revenue int `json:"revenue" yaml:"revenue" mapstructure:"revenue"`
	Colab   int `json:"colab" yaml:"colab" mapstructure:"colab"`
	Lawsuit int `json:"lawsuit" yaml:"lawsuit" mapstructure:"lawsuit"`
}

// DefaultWeights weighs every metric equally.
func DefaultWeights() WeightSet {
	return WeightSet{Revenue: 1, Colab: 1, Lawsuit: 1}
}

// Validate checks that every weight is within [0, MaxWeight].
func (w WeightSet) Validate() error {
	names := [3]string{"revenue", "colab", "lawsuit"}
	for i, v := range [3]int{w.Revenue, w.Colab, w.Lawsuit} {
		if v < 0 || v > MaxWeight {
			return eris.Wrapf(ErrInvalidWeights, "profile: %s weight %d outside [0,%d]", names[i], v, MaxWeight)
		}
	}
	return nil
}

// effective zeroes the weight of every metric whose band is missing.
func (w WeightSet) effective(revenue, colab, lawsuit Band) WeightSet {
	if !revenue.Defined() {
		w.Revenue = 0
	}
	if !colab.Defined() {
		w.Colab = 0
	}
	if !lawsuit.Defined() {
		w.Lawsuit = 0
	}
	return w
}

// scoreValue maps a band to its numeric contribution; Unclassified is 0.
func scoreValue(b Band) int {
	if !b.Defined() {
		return 0
	}
	return int(b)
}

// ClassifyWeighted computes the "Nova" profile: the ceiling of the weighted
// mean of the three metric bands. Missing metrics drop out of both the sum
// and the weights. It fails with ErrInvalidWeights when nothing is left to
// average and with ErrScoreOutOfRange when the score has no label.
func ClassifyWeighted(revenue, colab, lawsuit Band, w WeightSet) (Band, error) {
	if err := w.Validate(); err != nil {
		return Unclassified, err
	}

	eff := w.effective(revenue, colab, lawsuit)
	den := eff.Revenue + eff.Colab + eff.Lawsuit
	if den == 0 {
		return Unclassified, eris.Wrap(ErrInvalidWeights, "profile: no metric with a nonzero weight")
	}
	num := scoreValue(revenue)*eff.Revenue + scoreValue(colab)*eff.Colab + scoreValue(lawsuit)*eff.Lawsuit

	// Integer ceiling; both operands are non-negative.
	return labelScore((num + den - 1) / den)
}

// labelScore maps a weighted score to its band. Validated weights keep the
// score within Mosca..Pesado; anything else has no label. Scores above 6 are
// clamped to 5 first, which is still unlabelled.
func labelScore(score int) (Band, error) {
	if score > 6 {
		score = 5
	}
	if score < int(Mosca) || score > int(MaxBand) {
		return Unclassified, eris.Wrapf(ErrScoreOutOfRange, "profile: weighted score %d", score)
	}
	return Band(score), nil
}
