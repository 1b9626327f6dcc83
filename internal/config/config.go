// Package config provides YAML-based configuration for the arcade
// session: round counts and durations, phase delays, grade bands, and the
// per-game scoring constants. Scoring constants are product-tuned
// configuration, never derived at runtime.
package config

import "gauntlet-arcade/internal/scoring"

// SessionConfig is the full session configuration tree.
type SessionConfig struct {
	Rounds RoundsConfig                 `yaml:"rounds"`
	Delays DelaysConfig                 `yaml:"delays"`
	Grades []GradeBandConfig            `yaml:"grades"`
	Games  map[string]GameScoringConfig `yaml:"games"`
}

// RoundsConfig controls session shape.
type RoundsConfig struct {
	PerSession   int `yaml:"per_session"`
	RoundSeconds int `yaml:"round_seconds"`
}

// DelaysConfig controls the fixed delays between phases, in seconds.
type DelaysConfig struct {
	IntroSeconds        int `yaml:"intro_seconds"`
	RevealSeconds       int `yaml:"reveal_seconds"`
	SignInPromptSeconds int `yaml:"signin_prompt_seconds"`
	LoadErrorSeconds    int `yaml:"load_error_seconds"`
}

// GradeBandConfig is one step of the grade function, ordered top-down.
type GradeBandConfig struct {
	Min   float64 `yaml:"min"`
	Label string  `yaml:"label"`
}

// GameScoringConfig selects the normalization family for one game and
// carries its tuned constants. Unused constants for a family are ignored.
type GameScoringConfig struct {
	Family      string  `yaml:"family"` // accuracy, progression, points, asymptotic, deadline
	Denominator float64 `yaml:"denominator,omitempty"`
	Scale       float64 `yaml:"scale,omitempty"`
	MaxLevel    int     `yaml:"max_level,omitempty"`
	Base        float64 `yaml:"base,omitempty"`
	BonusRange  float64 `yaml:"bonus_range,omitempty"`
	PartialCap  float64 `yaml:"partial_cap,omitempty"`
	TimeBonus   bool    `yaml:"time_bonus,omitempty"`
}

// GradeBands converts the configured bands for the scoring package,
// falling back to the built-in defaults when none are configured.
func (c SessionConfig) GradeBands() []scoring.GradeBand {
	if len(c.Grades) == 0 {
		return scoring.DefaultGradeBands()
	}
	bands := make([]scoring.GradeBand, len(c.Grades))
	for i, g := range c.Grades {
		bands[i] = scoring.GradeBand{Min: g.Min, Label: g.Label}
	}
	return bands
}

// ScoringRegistry builds the game-slug-to-strategy registry from the
// configured families and constants.
func (c SessionConfig) ScoringRegistry() *scoring.Registry {
	reg := scoring.NewRegistry()
	for slug, g := range c.Games {
		switch g.Family {
		case "accuracy":
			reg.Register(slug, scoring.Accuracy{})
		case "progression":
			reg.Register(slug, scoring.Progression{MaxLevel: g.MaxLevel})
		case "points":
			reg.Register(slug, scoring.Points{Denominator: g.Denominator})
		case "asymptotic":
			reg.Register(slug, scoring.Asymptotic{Scale: g.Scale})
		case "deadline":
			reg.Register(slug, scoring.Deadline{Base: g.Base, BonusRange: g.BonusRange, PartialCap: g.PartialCap})
		}
		// Unknown families fall through to the registry's accuracy fallback.
	}
	return reg
}

// TimeBonusEnabled reports whether the given game earns the additive time
// bonus on top of its normalized score.
func (c SessionConfig) TimeBonusEnabled(slug string) bool {
	return c.Games[slug].TimeBonus
}
