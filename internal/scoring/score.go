// Package scoring maps heterogeneous mini-game raw scores onto a common
// 0-100 scale. Each game family has a small normalization strategy; a
// registry keyed by game slug picks the strategy, a step function assigns
// letter grades, and an additive time bonus rewards finishing with time
// left. Everything here is pure and stateless: constants (denominators,
// grade bands) are configuration, not derived values.
package scoring

import "math"

// GameScore is one mini-game's outcome for one round.
type GameScore struct {
	GameSlug        string
	GameName        string
	RawScore        int
	NormalizedScore float64 // Always in [0,100] before any bonus
	Grade           string
	Breakdown       string // Human-readable explanation of the normalization
	TimeBonus       int
	TotalWithBonus  float64
	BonusApplied    bool
}

// Final returns the bonus-inclusive value when a bonus has been applied,
// otherwise the plain normalized score.
func (s GameScore) Final() float64 {
	if s.BonusApplied {
		return s.TotalWithBonus
	}
	return s.NormalizedScore
}

// GradeBand is one step of the grade function. Bands are ordered from the
// top down; a score belongs to the first band whose Min it meets.
type GradeBand struct {
	Min   float64
	Label string
}

// DefaultGradeBands returns the product-defined grade boundaries.
// Boundaries are inclusive on the lower bound: a score sitting exactly on
// one always earns the higher band.
func DefaultGradeBands() []GradeBand {
	return []GradeBand{
		{Min: 95, Label: "S"},
		{Min: 75, Label: "A"},
		{Min: 60, Label: "B"},
		{Min: 40, Label: "C"},
		{Min: 20, Label: "D"},
		{Min: 0, Label: "F"},
	}
}

// GradeFor assigns a grade by evaluating bands top-down with >= so grades
// are monotonic in the score.
func GradeFor(score float64, bands []GradeBand) string {
	for _, b := range bands {
		if score >= b.Min {
			return b.Label
		}
	}
	if len(bands) == 0 {
		return ""
	}
	return bands[len(bands)-1].Label
}

// round2 rounds to two decimal places; normalized scores are displayed and
// stored at that precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
