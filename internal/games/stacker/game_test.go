package stacker

import (
	"testing"

	"gauntlet-arcade/internal/core"
)

func lockNow(g *Game) {
	in := core.NewInputFrame()
	in.Set(core.ActionPrimary)
	g.Step(in)
}

func TestPerfectTower(t *testing.T) {
	g := New()
	g.Reset(core.DefaultRuntimeConfig())

	// Locking without moving keeps full overlap with the base every time.
	for i := 0; i < TargetLevel; i++ {
		// Align the block over the top layer first.
		g.blockX = g.layers[len(g.layers)-1].x
		lockNow(g)
	}

	st := g.Status()
	if !st.Done || st.RawScore != TargetLevel {
		t.Fatalf("status = %+v, expected done at level %d", st, TargetLevel)
	}
	if g.crashed {
		t.Error("perfect tower marked as crashed")
	}
}

func TestMissEndsGame(t *testing.T) {
	g := New()
	g.Reset(core.DefaultRuntimeConfig())

	// Park the block fully clear of the base layer.
	g.blockW = 4
	g.blockX = 0
	g.layers[0] = layer{x: 20, w: 8}
	lockNow(g)

	st := g.Status()
	if !st.Done {
		t.Fatal("miss did not end the game")
	}
	if st.RawScore != 0 {
		t.Errorf("level = %d after immediate miss, expected 0", st.RawScore)
	}
}

func TestPartialOverlapShrinksBlock(t *testing.T) {
	g := New()
	g.Reset(core.DefaultRuntimeConfig())

	top := g.layers[0]
	g.blockX = top.x + top.w/2 // Half overlap
	lockNow(g)

	if g.done {
		t.Fatal("half overlap should survive")
	}
	if got := g.layers[len(g.layers)-1].w; got != top.w-top.w/2 {
		t.Errorf("new layer width = %d, expected %d", got, top.w-top.w/2)
	}
	if g.blockW >= top.w {
		t.Errorf("block width %d not trimmed below %d", g.blockW, top.w)
	}
}

func TestBlockOscillates(t *testing.T) {
	g := New()
	cfg := core.DefaultRuntimeConfig()
	g.Reset(cfg)

	empty := core.NewInputFrame()
	seen := map[int]bool{}
	for i := 0; i < fieldWidth*g.speed*4; i++ {
		g.Step(empty)
		seen[g.blockX] = true
	}
	if !seen[0] || !seen[fieldWidth-g.blockW] {
		t.Errorf("block did not cover both edges: %v", seen)
	}
}
