package scoring

import "math"

// ApplyTimeBonus folds an additive time bonus into a round score:
// round(normalized * (timeRemaining/totalDuration) / 2). The grade is
// recomputed on the bonus-inclusive total. The bonus is zero when no time
// remains, the duration is degenerate, or the base score is zero; it is
// never negative and never applied twice (re-applying returns the score
// unchanged).
func ApplyTimeBonus(s GameScore, timeRemaining, totalDuration float64, bands []GradeBand) GameScore {
	if s.BonusApplied {
		return s
	}

	bonus := 0
	if timeRemaining > 0 && totalDuration > 0 && s.NormalizedScore > 0 {
		frac := math.Min(timeRemaining/totalDuration, 1)
		bonus = int(math.Round(s.NormalizedScore * frac / 2))
	}

	s.TimeBonus = bonus
	s.TotalWithBonus = s.NormalizedScore + float64(bonus)
	s.Grade = GradeFor(s.TotalWithBonus, bands)
	s.BonusApplied = true
	return s
}
