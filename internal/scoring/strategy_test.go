package scoring

import (
	"math"
	"testing"
)

func TestAccuracyBounds(t *testing.T) {
	for correct := 0; correct <= 10; correct++ {
		for total := correct; total <= 10; total++ {
			if total == 0 {
				continue
			}
			v, _ := Accuracy{}.Normalize(Input{RawScore: correct, MaxScore: total})
			if v < 0 || v > 100 {
				t.Errorf("Accuracy(%d/%d) = %v, out of [0,100]", correct, total, v)
			}
			if correct == total && v != 100 {
				t.Errorf("Accuracy(%d/%d) = %v, expected 100 for perfect", correct, total, v)
			}
			if correct < total && v == 100 {
				t.Errorf("Accuracy(%d/%d) = 100, only perfect should score 100", correct, total)
			}
		}
	}
}

func TestAccuracyOddManOutExample(t *testing.T) {
	v, breakdown := Accuracy{}.Normalize(Input{RawScore: 2, MaxScore: 3})
	if v != 66.67 {
		t.Errorf("2/3 correct = %v, expected 66.67", v)
	}
	if breakdown != "2/3 correct" {
		t.Errorf("unexpected breakdown %q", breakdown)
	}

	bands := DefaultGradeBands()
	if g := GradeFor(v, bands); g != "B" {
		t.Errorf("grade for 66.67 = %q, expected B", g)
	}
}

func TestAccuracyZeroTotal(t *testing.T) {
	v, _ := Accuracy{}.Normalize(Input{RawScore: 0, MaxScore: 0})
	if v != 0 {
		t.Errorf("degenerate total should score 0, got %v", v)
	}
}

func TestProgressionSoftCap(t *testing.T) {
	p := Progression{MaxLevel: 8}

	v, _ := p.Normalize(Input{RawScore: 4})
	if v != 50 {
		t.Errorf("level 4 of 8 = %v, expected 50", v)
	}

	// Overshoot must not inflate the scale
	v, _ = p.Normalize(Input{RawScore: 12})
	if v != 100 {
		t.Errorf("overshoot = %v, expected capped 100", v)
	}
}

func TestPointsDenominator(t *testing.T) {
	p := Points{Denominator: 400}

	v, _ := p.Normalize(Input{RawScore: 200})
	if v != 50 {
		t.Errorf("200/400 points = %v, expected 50", v)
	}

	v, _ = p.Normalize(Input{RawScore: 9000})
	if v != 100 {
		t.Errorf("huge score = %v, expected capped 100", v)
	}
}

func TestAsymptoticSoftLimit(t *testing.T) {
	a := Asymptotic{Scale: 100}

	v0, _ := a.Normalize(Input{RawScore: 0})
	if v0 != 0 {
		t.Errorf("zero score = %v, expected 0", v0)
	}

	// atan(1) = pi/4, so raw == scale lands at exactly 50
	v1, _ := a.Normalize(Input{RawScore: 100})
	if v1 != 50 {
		t.Errorf("raw == scale = %v, expected 50", v1)
	}

	// Monotonic and bounded below 100 even for absurd scores
	prev := -1.0
	for _, raw := range []int{0, 10, 100, 1000, 100000} {
		v, _ := a.Normalize(Input{RawScore: raw})
		if v < prev {
			t.Errorf("asymptotic not monotonic at raw=%d: %v < %v", raw, v, prev)
		}
		if v > 100 {
			t.Errorf("asymptotic exceeded 100 at raw=%d: %v", raw, v)
		}
		prev = v
	}
}

func TestDeadlineBranches(t *testing.T) {
	d := Deadline{Base: 60, BonusRange: 40, PartialCap: 40}

	// Finished with half the time left
	v, _ := d.Normalize(Input{RawScore: 1, MaxScore: 1, TimeRemaining: 30, TotalTime: 60})
	if v != 80 {
		t.Errorf("success at half time = %v, expected 80", v)
	}

	// Last-second completion sits exactly at Base
	v, _ = d.Normalize(Input{RawScore: 1, MaxScore: 1, TimeRemaining: 0, TotalTime: 60})
	if v != 60 {
		t.Errorf("last-second success = %v, expected base 60", v)
	}

	// Same-instant timeout sits exactly at PartialCap
	v, _ = d.Normalize(Input{RawScore: 0, MaxScore: 1, TimeRemaining: 0, TotalTime: 60})
	if v != 40 {
		t.Errorf("timeout = %v, expected partial cap 40", v)
	}

	// Early give-up earns less partial credit than a full timeout
	v, _ = d.Normalize(Input{RawScore: 0, MaxScore: 1, TimeRemaining: 45, TotalTime: 60})
	if v != 10 {
		t.Errorf("early failure = %v, expected 10", v)
	}
}

func TestGradeMonotonic(t *testing.T) {
	bands := DefaultGradeBands()

	rank := func(label string) int {
		for i, b := range bands {
			if b.Label == label {
				return len(bands) - i
			}
		}
		return 0
	}

	prev := ""
	for score := 0.0; score <= 110; score += 0.5 {
		g := GradeFor(score, bands)
		if prev != "" && rank(g) < rank(prev) {
			t.Fatalf("grade dropped from %q to %q as score rose to %v", prev, g, score)
		}
		prev = g
	}
}

func TestGradeBoundaryInclusive(t *testing.T) {
	bands := DefaultGradeBands()

	// A score sitting exactly on a boundary earns the higher band.
	cases := map[float64]string{
		95: "S",
		75: "A",
		60: "B",
		40: "C",
		20: "D",
		0:  "F",
	}
	for score, want := range cases {
		if g := GradeFor(score, bands); g != want {
			t.Errorf("GradeFor(%v) = %q, want %q", score, g, want)
		}
	}
	if g := GradeFor(94.99, bands); g != "A" {
		t.Errorf("GradeFor(94.99) = %q, want A", g)
	}
}

func TestRegistryFallback(t *testing.T) {
	r := NewRegistry()
	r.Register("fruitfall", Points{Denominator: 400})

	if _, ok := r.For("fruitfall").(Points); !ok {
		t.Error("registered strategy not returned")
	}
	if _, ok := r.For("never-registered").(Accuracy); !ok {
		t.Error("fallback should be Accuracy")
	}
}

func TestRegistryNormalize(t *testing.T) {
	r := NewRegistry()
	r.Register("oddone", Accuracy{})

	score := r.Normalize("oddone", "Odd One Out", Input{RawScore: 3, MaxScore: 5}, DefaultGradeBands())
	if score.GameSlug != "oddone" || score.GameName != "Odd One Out" {
		t.Errorf("identity not carried: %+v", score)
	}
	if score.NormalizedScore != 60 {
		t.Errorf("3/5 = %v, expected 60", score.NormalizedScore)
	}
	if score.Grade != "B" {
		t.Errorf("grade = %q, expected B", score.Grade)
	}
	if math.Abs(score.Final()-60) > 1e-9 {
		t.Errorf("Final() before bonus = %v, expected 60", score.Final())
	}
}
