// Package oddone implements the odd-one-out word quiz. The player picks
// which of four words does not belong; each answer gets a short reveal
// that pauses the shared round clock.
package oddone

import (
	"fmt"
	"math/rand"
	"strings"

	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/registry"
)

// QuestionsPerRound is how many puzzles a round asks when no playlist
// pins a specific set.
const QuestionsPerRound = 5

// Game implements the odd-one-out quiz logic.
type Game struct {
	puzzles []Puzzle
	current int
	correct int
	done    bool

	revealing   bool
	revealTicks int
	lastPick    int
	lastCorrect bool

	config core.RuntimeConfig
}

// New creates a new quiz instance.
func New() *Game {
	return &Game{}
}

// Slug returns the unique identifier for this game.
func (g *Game) Slug() string {
	return "oddone"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Odd One Out"
}

// Reset initializes the round's question set: playlist puzzle IDs when
// given, otherwise a seeded draw from the bank.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.current = 0
	g.correct = 0
	g.done = false
	g.revealing = false
	g.revealTicks = 0

	g.puzzles = g.puzzles[:0]
	for _, id := range cfg.PuzzleIDs {
		if p, ok := puzzleByID(id); ok {
			g.puzzles = append(g.puzzles, p)
		}
	}
	if len(g.puzzles) == 0 {
		rng := rand.New(rand.NewSource(cfg.Seed))
		perm := rng.Perm(len(bank))
		n := core.Min(QuestionsPerRound, len(bank))
		for _, i := range perm[:n] {
			g.puzzles = append(g.puzzles, bank[i])
		}
	}
}

// ValidatePuzzles reports playlist puzzle IDs the bank does not have, so
// the host can refuse the round instead of playing a substituted set.
func (g *Game) ValidatePuzzles(ids []string) error {
	var unknown []string
	for _, id := range ids {
		if _, ok := puzzleByID(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("oddone: unknown puzzle ids: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Step advances the quiz by one tick.
func (g *Game) Step(in core.InputFrame) {
	if g.done {
		return
	}

	if g.revealing {
		g.revealTicks--
		if g.revealTicks <= 0 {
			g.revealing = false
			g.current++
			if g.current >= len(g.puzzles) {
				g.done = true
			}
		}
		return
	}

	pick := -1
	switch {
	case in.Has(core.ActionPick1):
		pick = 0
	case in.Has(core.ActionPick2):
		pick = 1
	case in.Has(core.ActionPick3):
		pick = 2
	case in.Has(core.ActionPick4):
		pick = 3
	}
	if pick < 0 {
		return
	}

	g.lastPick = pick
	g.lastCorrect = pick == g.puzzles[g.current].OddIndex
	if g.lastCorrect {
		g.correct++
	}
	g.revealing = true
	g.revealTicks = g.config.TickRate // Hold the reveal for about a second
}

// Render draws the current question, or the reveal after an answer.
func (g *Game) Render(dst *core.Screen) {
	if len(g.puzzles) == 0 {
		return
	}

	idx := core.Min(g.current, len(g.puzzles)-1)
	p := g.puzzles[idx]

	dst.DrawTextCentered(2, "Which word does not belong?")
	dst.DrawText(2, 0, fmt.Sprintf(" Question %d/%d   Correct: %d ", idx+1, len(g.puzzles), g.correct))

	for i, w := range p.Words {
		y := 5 + i*2
		line := fmt.Sprintf("[%d] %s", i+1, w)
		color := core.ColorDefault
		if g.revealing || g.done {
			switch {
			case i == p.OddIndex:
				color = core.ColorGreen
			case i == g.lastPick:
				color = core.ColorRed
			}
		}
		dst.DrawTextColored(6, y, line, color)
	}

	if g.revealing || g.done {
		verdict := "Correct!"
		color := core.ColorGreen
		if !g.lastCorrect {
			verdict = "Not quite."
			color = core.ColorRed
		}
		dst.DrawTextColored(6, 14, verdict, color)
		dst.DrawTextColored(6, 15, fmt.Sprintf("The others are %s.", p.Category), core.ColorGray)
	}
}

// Status reports the quiz standing. MaxScore is the question count; the
// reveal sub-phase freezes the shared round clock.
func (g *Game) Status() core.RoundStatus {
	return core.RoundStatus{
		RawScore:   g.correct,
		MaxScore:   len(g.puzzles),
		Done:       g.done,
		PauseClock: g.revealing,
	}
}

func init() {
	registry.Register(3, "oddone", func() core.Minigame {
		return New()
	})
}
