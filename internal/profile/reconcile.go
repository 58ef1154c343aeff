package profile

// Reconcile combines the standard band (revenue) with the partial band.
//
// Both defined: a standard band no heavier than the partial band yields the
// partial band; a heavier standard band goes through the conflict table.
// A missing standard band defers to the partial band. Everything else is
// Unclassified.
func (r *Rules) Reconcile(standard, partial Band) Band {
	switch {
	case standard.Defined() && partial.Defined():
		if standard <= partial {
			return partial
		}
		return r.escalate(partial, standard)
	case !standard.Defined() && partial.Defined():
		return partial
	default:
		return Unclassified
	}
}

// finalBands runs the per-metric shortcut, partial classification and
// reconciliation for one record. When all three metric bands agree the
// partial stage is skipped and reported as Unclassified.
func (r *Rules) finalBands(rec Record, revenue, colab, lawsuit Band) (partial, final Band) {
	if revenue == colab && colab == lawsuit {
		return Unclassified, revenue
	}
	partial = r.ClassifyPartial(rec.Colab, rec.Lawsuit)
	return partial, r.Reconcile(revenue, partial)
}
