// Package drift implements the lane-drift survival game. Obstacles scroll
// toward the player; distance survived is unbounded, so scores are
// normalized along the arctangent asymptote.
package drift

import (
	"fmt"
	"math/rand"

	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/registry"
)

const (
	// DistanceCeiling is the nominal maximum reported to the host. The
	// game itself is unbounded; normalization never divides by this.
	DistanceCeiling = 1000

	laneCount = 5
)

// Game implements the drift logic.
type Game struct {
	rng       *rand.Rand
	lane      int
	obstacles []obstacle
	distance  int
	crashed   bool
	tick      int
	spawnGap  int
	moveGap   int // Ticks per obstacle advance
	config    core.RuntimeConfig
}

type obstacle struct {
	lane int
	y    int
}

// New creates a new drift instance.
func New() *Game {
	return &Game{}
}

// Slug returns the unique identifier for this game.
func (g *Game) Slug() string {
	return "drift"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Drift"
}

// Reset initializes the road.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.lane = laneCount / 2
	g.obstacles = g.obstacles[:0]
	g.distance = 0
	g.crashed = false
	g.tick = 0
	g.spawnGap = core.Max(2, cfg.TickRate/2)
	g.moveGap = core.Max(1, cfg.TickRate/10)
}

// Step advances the road by one tick.
func (g *Game) Step(in core.InputFrame) {
	if g.crashed {
		return
	}

	if in.Has(core.ActionLeft) {
		g.lane = core.Max(0, g.lane-1)
	}
	if in.Has(core.ActionRight) {
		g.lane = core.Min(laneCount-1, g.lane+1)
	}

	g.tick++
	if g.tick%g.spawnGap == 0 {
		g.obstacles = append(g.obstacles, obstacle{lane: g.rng.Intn(laneCount), y: 0})
	}

	if g.tick%g.moveGap == 0 {
		g.distance++
		playerY := g.config.ScreenH - 3
		kept := g.obstacles[:0]
		for _, o := range g.obstacles {
			o.y++
			if o.y == playerY && o.lane == g.lane {
				g.crashed = true
			}
			if o.y <= playerY {
				kept = append(kept, o)
			}
		}
		g.obstacles = kept
	}
}

// Render draws the lanes, obstacles, and the player marker.
func (g *Game) Render(dst *core.Screen) {
	laneW := dst.Width() / laneCount
	for i := 1; i < laneCount; i++ {
		for y := 1; y < dst.Height()-1; y++ {
			dst.SetColored(i*laneW, y, '·', core.ColorGray)
		}
	}

	for _, o := range g.obstacles {
		dst.SetColored(o.lane*laneW+laneW/2, o.y, '▓', core.ColorRed)
	}

	playerY := dst.Height() - 3
	dst.SetColored(g.lane*laneW+laneW/2, playerY, '◆', core.ColorCyan)

	dst.DrawText(2, 0, fmt.Sprintf(" Distance: %d ", g.distance))
	if g.crashed {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Crashed at %d!", g.distance))
	}
}

// Status reports distance survived. The round ends on a crash; otherwise
// the shared countdown ends it.
func (g *Game) Status() core.RoundStatus {
	return core.RoundStatus{
		RawScore: g.distance,
		MaxScore: DistanceCeiling,
		Done:     g.crashed,
	}
}

func init() {
	registry.Register(5, "drift", func() core.Minigame {
		return New()
	})
}
