package scoring

// SessionSummary is the aggregated outcome of a session's rounds.
type SessionSummary struct {
	Total       float64 // Sum of bonus-inclusive round scores
	MaxPossible int     // roundsPlayed * 100
	Percentage  float64
	Grade       string
	Rounds      int
}

// Summarize folds round scores into a session total. The sum is
// order-independent; callers keep the round slice ordered for display.
func Summarize(rounds []GameScore, bands []GradeBand) SessionSummary {
	var total float64
	for _, r := range rounds {
		total += r.Final()
	}

	summary := SessionSummary{
		Total:       round2(total),
		MaxPossible: len(rounds) * 100,
		Rounds:      len(rounds),
	}
	if summary.MaxPossible > 0 {
		summary.Percentage = round2(100 * total / float64(summary.MaxPossible))
	}
	summary.Grade = GradeFor(summary.Percentage, bands)
	return summary
}
