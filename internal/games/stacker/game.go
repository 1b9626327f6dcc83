// Package stacker implements the timing-based block stacker. A block
// slides back and forth; locking it trims it to the overlap with the
// layer below, and the tower ends when the overlap hits zero or the
// target level is reached.
package stacker

import (
	"fmt"

	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/registry"
)

const (
	// TargetLevel is a completed tower. Matches the progression scoring
	// ceiling, so topping out is a 100.
	TargetLevel = 10

	startWidth = 12
	fieldWidth = 30
)

type layer struct {
	x, w int
}

// Game implements the stacker logic.
type Game struct {
	layers  []layer
	blockX  int
	blockW  int
	dir     int
	speed   int // Ticks per step of block movement
	tick    int
	level   int
	done    bool
	crashed bool
}

// New creates a new stacker instance.
func New() *Game {
	return &Game{}
}

// Slug returns the unique identifier for this game.
func (g *Game) Slug() string {
	return "stacker"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Stacker"
}

// Reset initializes the tower.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.layers = g.layers[:0]
	g.layers = append(g.layers, layer{x: (fieldWidth - startWidth) / 2, w: startWidth})
	g.blockW = startWidth
	g.blockX = 0
	g.dir = 1
	g.speed = core.Max(1, cfg.TickRate/15)
	g.tick = 0
	g.level = 0
	g.done = false
	g.crashed = false
}

// Step advances the sliding block and handles locking.
func (g *Game) Step(in core.InputFrame) {
	if g.done {
		return
	}

	if in.Has(core.ActionPrimary) {
		g.lock()
		return
	}

	g.tick++
	if g.tick%g.speed != 0 {
		return
	}
	g.blockX += g.dir
	if g.blockX <= 0 {
		g.blockX = 0
		g.dir = 1
	}
	if g.blockX+g.blockW >= fieldWidth {
		g.blockX = fieldWidth - g.blockW
		g.dir = -1
	}
}

// lock trims the block to its overlap with the top layer. No overlap ends
// the game; a full tower ends it too.
func (g *Game) lock() {
	top := g.layers[len(g.layers)-1]
	lo := core.Max(g.blockX, top.x)
	hi := core.Min(g.blockX+g.blockW, top.x+top.w)
	if hi <= lo {
		g.crashed = true
		g.done = true
		return
	}

	g.layers = append(g.layers, layer{x: lo, w: hi - lo})
	g.level++
	if g.level >= TargetLevel {
		g.done = true
		return
	}

	g.blockW = hi - lo
	g.blockX = 0
	g.dir = 1
	// Each level slides a little faster, down to every tick.
	if g.level%3 == 0 && g.speed > 1 {
		g.speed--
	}
}

// Render draws the tower and the sliding block.
func (g *Game) Render(dst *core.Screen) {
	baseY := dst.Height() - 3
	offX := (dst.Width() - fieldWidth) / 2

	dst.DrawText(2, 0, fmt.Sprintf(" Level: %d/%d ", g.level, TargetLevel))
	dst.DrawHLine(offX, baseY+1, fieldWidth, '═')

	for i, l := range g.layers {
		y := baseY - i
		for x := 0; x < l.w; x++ {
			dst.SetColored(offX+l.x+x, y, '█', core.ColorCyan)
		}
	}

	if !g.done {
		y := baseY - len(g.layers)
		for x := 0; x < g.blockW; x++ {
			dst.SetColored(offX+g.blockX+x, y, '█', core.ColorYellow)
		}
	}

	if g.done {
		msg := "Tower complete!"
		if g.crashed {
			msg = fmt.Sprintf("Missed! Reached level %d", g.level)
		}
		dst.DrawTextCentered(2, msg)
	}
}

// Status reports the level reached against the target.
func (g *Game) Status() core.RoundStatus {
	return core.RoundStatus{
		RawScore: g.level,
		MaxScore: TargetLevel,
		Done:     g.done,
	}
}

func init() {
	registry.Register(1, "stacker", func() core.Minigame {
		return New()
	})
}
