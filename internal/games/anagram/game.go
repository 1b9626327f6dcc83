// Package anagram implements the unscramble-the-word game. One scrambled
// word per round; solving it before the shared countdown runs out is the
// win condition, so the deadline scoring family rewards speed and grants
// partial credit on a timeout.
package anagram

import (
	"fmt"
	"math/rand"
	"strings"

	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/registry"
)

var words = []string{
	"lantern", "harbor", "granite", "verdict", "monsoon",
	"caravan", "thistle", "orchard", "ballast", "quiver",
	"trellis", "ember", "satchel", "cobalt", "meadow",
	"parapet", "sundial", "walnut", "ledger", "falcon",
}

// Game implements the anagram logic.
type Game struct {
	word      string
	scrambled string
	typed     []rune
	solved    bool
	attempts  int
	flash     int // Ticks left of the wrong-guess flash
}

// New creates a new anagram instance.
func New() *Game {
	return &Game{}
}

// Slug returns the unique identifier for this game.
func (g *Game) Slug() string {
	return "anagram"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Anagram"
}

// Reset picks and scrambles the round's word.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	g.word = words[rng.Intn(len(words))]
	g.scrambled = scramble(g.word, rng)
	g.typed = g.typed[:0]
	g.solved = false
	g.attempts = 0
	g.flash = 0
}

// scramble shuffles the word's letters until the result differs from the
// original.
func scramble(word string, rng *rand.Rand) string {
	letters := []rune(word)
	for {
		rng.Shuffle(len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})
		if string(letters) != word {
			return string(letters)
		}
	}
}

// Step consumes typed letters and submissions.
func (g *Game) Step(in core.InputFrame) {
	if g.solved {
		return
	}
	if g.flash > 0 {
		g.flash--
	}

	for _, r := range in.Runes {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			if len(g.typed) < len(g.word) {
				g.typed = append(g.typed, r)
			}
		}
	}
	if in.Has(core.ActionLeft) && len(g.typed) > 0 {
		g.typed = g.typed[:len(g.typed)-1]
	}

	if in.Has(core.ActionPrimary) && len(g.typed) > 0 {
		g.attempts++
		if strings.EqualFold(string(g.typed), g.word) {
			g.solved = true
			return
		}
		g.typed = g.typed[:0]
		g.flash = 10
	}
}

// Render draws the scrambled word and the answer line.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawTextCentered(3, "Unscramble the word")
	dst.DrawTextCentered(6, spread(g.scrambled))

	answer := string(g.typed) + strings.Repeat("_", len(g.word)-len(g.typed))
	color := core.ColorDefault
	if g.flash > 0 {
		color = core.ColorRed
	}
	if g.solved {
		color = core.ColorGreen
	}
	dst.DrawTextColored((dst.Width()-len(spread(answer)))/2, 10, spread(answer), color)

	hint := "type letters, enter to submit, left to erase"
	if g.attempts > 0 && !g.solved {
		hint = fmt.Sprintf("attempts: %d", g.attempts)
	}
	dst.DrawTextColored(2, dst.Height()-2, hint, core.ColorGray)
}

// spread spaces out letters for readability.
func spread(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// Status reports a single-item completion: 1/1 when solved, 0/1 while
// not.
func (g *Game) Status() core.RoundStatus {
	raw := 0
	if g.solved {
		raw = 1
	}
	return core.RoundStatus{
		RawScore: raw,
		MaxScore: 1,
		Done:     g.solved,
	}
}

func init() {
	registry.Register(4, "anagram", func() core.Minigame {
		return New()
	})
}
