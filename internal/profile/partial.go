package profile

// ClassifyPartial bands a firm jointly on collaborators and lawsuits. The
// first bucket whose colab condition matches supplies the lawsuit
// thresholds; if either metric is missing the result is Unclassified.
func (r *Rules) ClassifyPartial(colab, lawsuit *float64) Band {
	c, ok := present(colab)
	if !ok {
		return Unclassified
	}
	l, ok := present(lawsuit)
	if !ok {
		return Unclassified
	}

	for _, b := range r.Partial {
		if b.matches(c) {
			return bandFor(l, b.Lawsuit)
		}
	}
	// Validated rules always end with a catch-all bucket.
	return Unclassified
}
