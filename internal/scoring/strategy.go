package scoring

import (
	"fmt"
	"math"
)

// Input carries everything a normalization strategy may consult.
// TimeRemaining and TotalTime describe the shared round clock in seconds.
type Input struct {
	RawScore      int
	MaxScore      int
	TimeRemaining float64
	TotalTime     float64
}

// Strategy normalizes a game-native raw score onto [0,100].
// Implementations must be monotonic in player performance and bounded to
// [0,100] before bonuses.
type Strategy interface {
	Normalize(in Input) (value float64, breakdown string)
}

// Accuracy scores pick-N-correct-of-M games: 100 * correct / total.
type Accuracy struct{}

func (Accuracy) Normalize(in Input) (float64, string) {
	if in.MaxScore <= 0 {
		return 0, "no questions answered"
	}
	v := round2(100 * float64(in.RawScore) / float64(in.MaxScore))
	return core01(v), fmt.Sprintf("%d/%d correct", in.RawScore, in.MaxScore)
}

// Progression scores reach-level-L games with a soft cap: overshoot past
// MaxLevel does not inflate the scale.
type Progression struct {
	MaxLevel int
}

func (p Progression) Normalize(in Input) (float64, string) {
	maxLevel := p.MaxLevel
	if maxLevel <= 0 {
		maxLevel = in.MaxScore
	}
	if maxLevel <= 0 {
		return 0, "no levels reached"
	}
	v := math.Min(100, round2(100*float64(in.RawScore)/float64(maxLevel)))
	return core01(v), fmt.Sprintf("reached level %d of %d", in.RawScore, maxLevel)
}

// Points scores arcade point-accumulation games against a tuned
// denominator. The denominator is per-game configuration, never derived.
type Points struct {
	Denominator float64
}

func (p Points) Normalize(in Input) (float64, string) {
	if p.Denominator <= 0 {
		return 0, "unscored"
	}
	v := math.Min(100, round2(100*float64(in.RawScore)/p.Denominator))
	return core01(v), fmt.Sprintf("%d points", in.RawScore)
}

// Asymptotic scores unbounded games with diminishing returns:
// round(100 * (2/pi) * atan(raw/scale)). Very large scores approach but
// never dominate 100, keeping multi-round averages comparable.
type Asymptotic struct {
	Scale float64
}

func (a Asymptotic) Normalize(in Input) (float64, string) {
	scale := a.Scale
	if scale <= 0 {
		scale = 100
	}
	v := math.Round(100 * (2 / math.Pi) * math.Atan(float64(in.RawScore)/scale))
	return core01(v), fmt.Sprintf("%d points", in.RawScore)
}

// Deadline scores completion-with-deadline games. Success (all items done)
// earns Base plus a share of BonusRange proportional to time remaining;
// failure earns partial credit up to PartialCap proportional to time spent.
// Both branches are continuous at their endpoints: a last-second completion
// scores Base, a same-instant timeout scores PartialCap, and the deliberate
// jump between them is exactly Base - PartialCap.
type Deadline struct {
	Base       float64
	BonusRange float64
	PartialCap float64
}

func (d Deadline) Normalize(in Input) (float64, string) {
	total := in.TotalTime
	if total <= 0 {
		total = 1
	}
	frac := core01(in.TimeRemaining/total*100) / 100

	if in.MaxScore > 0 && in.RawScore >= in.MaxScore {
		v := round2(d.Base + frac*d.BonusRange)
		return core01(v), fmt.Sprintf("completed with %.0fs left", in.TimeRemaining)
	}
	v := round2((1 - frac) * d.PartialCap)
	return core01(v), "ran out of time"
}

// core01 clamps a normalized value to [0,100]. Strategies are bounded by
// construction; this guards against float drift at the edges.
func core01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
