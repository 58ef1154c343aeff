package profile

import "github.com/rotisserie/eris"

var (
	// ErrInvalidWeights is returned when no metric carries a nonzero
	// effective weight, or a weight is outside [0,3].
	ErrInvalidWeights = eris.New("profile: invalid weights")

	// ErrScoreOutOfRange is returned when a weighted score has no label.
	ErrScoreOutOfRange = eris.New("profile: weighted score out of range")

	// ErrInvalidRules is returned when a rule table fails validation.
	ErrInvalidRules = eris.New("profile: invalid rules")
)
