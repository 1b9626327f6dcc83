package config

import (
	_ "embed"
)

//go:embed defaults/session.yaml
var defaultSessionYAML []byte

// DefaultSessionConfig returns the hardcoded session configuration, used
// when even the embedded YAML cannot be parsed.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Rounds: RoundsConfig{
			PerSession:   5,
			RoundSeconds: 60,
		},
		Delays: DelaysConfig{
			IntroSeconds:        3,
			RevealSeconds:       2,
			SignInPromptSeconds: 4,
			LoadErrorSeconds:    5,
		},
		Grades: []GradeBandConfig{
			{Min: 95, Label: "S"},
			{Min: 75, Label: "A"},
			{Min: 60, Label: "B"},
			{Min: 40, Label: "C"},
			{Min: 20, Label: "D"},
			{Min: 0, Label: "F"},
		},
		Games: map[string]GameScoringConfig{
			"oddone":    {Family: "accuracy", TimeBonus: true},
			"anagram":   {Family: "deadline", Base: 60, BonusRange: 40, PartialCap: 40},
			"stacker":   {Family: "progression", MaxLevel: 10, TimeBonus: true},
			"fruitfall": {Family: "points", Denominator: 400, TimeBonus: true},
			"drift":     {Family: "asymptotic", Scale: 120},
		},
	}
}
