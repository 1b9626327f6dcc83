// Package fruitfall implements the falling-fruit catcher. Fruit drops at
// seeded positions; the basket catches it for points until three pieces
// hit the ground. Points are normalized against the tuned denominator in
// the scoring configuration.
package fruitfall

import (
	"fmt"
	"math/rand"

	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/registry"
)

const (
	// ScoreCeiling mirrors the tuned scoring denominator; reported as the
	// round's nominal maximum.
	ScoreCeiling = 400

	MaxDrops    = 3 // Fruit hitting the ground before the round ends
	basketWidth = 5
)

type fruit struct {
	x     int
	y     float64
	kind  rune
	value int
}

var kinds = []struct {
	r     rune
	value int
}{
	{'o', 10}, // apple
	{'%', 15}, // cherry
	{'@', 25}, // peach
}

// Game implements the fruit catcher logic.
type Game struct {
	rng      *rand.Rand
	fruits   []fruit
	basketX  int
	score    int
	dropped  int
	done     bool
	tick     int
	spawnGap int // Ticks between spawns
	fallStep float64
	config   core.RuntimeConfig
}

// New creates a new fruit catcher instance.
func New() *Game {
	return &Game{}
}

// Slug returns the unique identifier for this game.
func (g *Game) Slug() string {
	return "fruitfall"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Fruit Fall"
}

// Reset initializes the orchard.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.fruits = g.fruits[:0]
	g.basketX = cfg.ScreenW/2 - basketWidth/2
	g.score = 0
	g.dropped = 0
	g.done = false
	g.tick = 0
	g.spawnGap = core.Max(1, cfg.TickRate)
	g.fallStep = 10.0 / float64(core.Max(1, cfg.TickRate)) // Rows per tick
}

// Step advances the falling fruit and the basket.
func (g *Game) Step(in core.InputFrame) {
	if g.done {
		return
	}

	if in.Has(core.ActionLeft) {
		g.basketX = core.Max(0, g.basketX-2)
	}
	if in.Has(core.ActionRight) {
		g.basketX = core.Min(g.config.ScreenW-basketWidth, g.basketX+2)
	}

	g.tick++
	if g.tick%g.spawnGap == 0 {
		k := kinds[g.rng.Intn(len(kinds))]
		g.fruits = append(g.fruits, fruit{
			x:     g.rng.Intn(g.config.ScreenW),
			y:     0,
			kind:  k.r,
			value: k.value,
		})
	}

	groundY := float64(g.config.ScreenH - 2)
	kept := g.fruits[:0]
	for _, f := range g.fruits {
		f.y += g.fallStep
		if f.y >= groundY {
			if f.x >= g.basketX && f.x < g.basketX+basketWidth {
				g.score += f.value
			} else {
				g.dropped++
			}
			continue
		}
		kept = append(kept, f)
	}
	g.fruits = kept

	if g.dropped >= MaxDrops {
		g.done = true
	}
}

// Render draws the orchard, the basket, and the falling fruit.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d   Dropped: %d/%d ", g.score, g.dropped, MaxDrops))

	for _, f := range g.fruits {
		dst.SetColored(f.x, int(f.y), f.kind, core.ColorRed)
	}

	basketY := dst.Height() - 2
	for x := 0; x < basketWidth; x++ {
		dst.SetColored(g.basketX+x, basketY, '▁', core.ColorYellow)
	}
	dst.SetColored(g.basketX, basketY, '\\', core.ColorYellow)
	dst.SetColored(g.basketX+basketWidth-1, basketY, '/', core.ColorYellow)

	if g.done {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Too many dropped! Score: %d", g.score))
	}
}

// Status reports accumulated points against the nominal ceiling.
func (g *Game) Status() core.RoundStatus {
	return core.RoundStatus{
		RawScore: g.score,
		MaxScore: ScoreCeiling,
		Done:     g.done,
	}
}

func init() {
	registry.Register(2, "fruitfall", func() core.Minigame {
		return New()
	})
}
