package session

import (
	"errors"
	"testing"

	"gauntlet-arcade/internal/config"
	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/playlist"
	"gauntlet-arcade/internal/registry"
	"gauntlet-arcade/internal/scoring"
)

// stubGame is a minimal score-contract implementation the tests can steer.
type stubGame struct {
	slug   string
	status core.RoundStatus
	resets int
	cfg    core.RuntimeConfig
}

func (g *stubGame) Slug() string  { return g.slug }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(c core.RuntimeConfig) {
	g.resets++
	g.cfg = c
	g.status = core.RoundStatus{MaxScore: 5}
}
func (g *stubGame) Step(core.InputFrame)     {}
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) Status() core.RoundStatus { return g.status }

var lastStub *stubGame

// fussyGame only accepts the puzzle ID "ok", for testing that the host
// refuses playlist rounds naming puzzles a game does not have.
type fussyGame struct {
	stubGame
}

func (g *fussyGame) ValidatePuzzles(ids []string) error {
	for _, id := range ids {
		if id != "ok" {
			return errors.New("fussy: unknown puzzle id " + id)
		}
	}
	return nil
}

func init() {
	registry.Register(901, "stub", func() core.Minigame {
		lastStub = &stubGame{slug: "stub"}
		return lastStub
	})
	registry.Register(902, "fussy", func() core.Minigame {
		return &fussyGame{stubGame{slug: "fussy"}}
	})
}

type recordingPersister struct {
	begun     int
	finalized []Result
	partials  []Result
}

func (p *recordingPersister) BeginSession()          { p.begun++ }
func (p *recordingPersister) Finalize(res Result)    { p.finalized = append(p.finalized, res) }
func (p *recordingPersister) SavePartial(res Result) { p.partials = append(p.partials, res) }

func testConfig() config.SessionConfig {
	cfg := config.DefaultSessionConfig()
	cfg.Rounds.PerSession = 2
	cfg.Rounds.RoundSeconds = 10
	cfg.Delays.IntroSeconds = 0
	cfg.Delays.RevealSeconds = 0
	cfg.Delays.SignInPromptSeconds = 1
	cfg.Delays.LoadErrorSeconds = 1
	return cfg
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1}
}

func tickUntil(t *testing.T, c *Controller, want Event, maxTicks int) {
	t.Helper()
	in := core.NewInputFrame()
	for i := 0; i < maxTicks; i++ {
		if evt := c.Tick(in); evt == want {
			return
		}
	}
	t.Fatalf("event %v not reached within %d ticks (phase %v)", want, maxTicks, c.State().Phase)
}

func TestControllerHappyPath(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()

	if c.State().Phase != PhaseIntro || c.State().CurrentRound != 1 {
		t.Fatalf("Start() should land in intro round 1, got %v round %d", c.State().Phase, c.State().CurrentRound)
	}

	tickUntil(t, c, EventEnteredPlaying, 20)
	if p.begun != 1 {
		t.Errorf("BeginSession calls = %d, expected 1", p.begun)
	}
	if lastStub.resets != 1 {
		t.Errorf("game not reset on entering playing")
	}

	// Round 1: finish with 4/5 correct
	lastStub.status = core.RoundStatus{RawScore: 4, MaxScore: 5, Done: true}
	tickUntil(t, c, EventRoundComplete, 5)

	rec := c.LastRound()
	if rec == nil {
		t.Fatal("no round recorded")
	}
	if rec.Score.NormalizedScore != 80 {
		t.Errorf("normalized = %v, expected 80", rec.Score.NormalizedScore)
	}

	// Confirm past results into round 2
	c.Tick(core.NewInputFrame()) // burn the reveal hold
	if evt := c.ConfirmResults(); evt != EventNone {
		t.Fatalf("ConfirmResults mid-session = %v", evt)
	}
	if c.State().CurrentRound != 2 || c.State().Phase != PhaseIntro {
		t.Fatalf("expected intro round 2, got %v round %d", c.State().Phase, c.State().CurrentRound)
	}

	tickUntil(t, c, EventEnteredPlaying, 20)
	lastStub.status = core.RoundStatus{RawScore: 5, MaxScore: 5, Done: true}
	tickUntil(t, c, EventRoundComplete, 5)

	c.Tick(core.NewInputFrame())
	if evt := c.ConfirmResults(); evt != EventSessionComplete {
		t.Fatalf("final ConfirmResults = %v, expected EventSessionComplete", evt)
	}

	if len(p.finalized) != 1 {
		t.Fatalf("Finalize calls = %d, expected exactly 1", len(p.finalized))
	}
	res := p.finalized[0]
	if len(res.Rounds) != 2 {
		t.Errorf("finalized rounds = %d, expected 2", len(res.Rounds))
	}
	if res.Summary.MaxPossible != 200 {
		t.Errorf("max possible = %d, expected 200", res.Summary.MaxPossible)
	}
}

func TestControllerFinalizeOnce(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()

	tickUntil(t, c, EventEnteredPlaying, 20)
	lastStub.status = core.RoundStatus{RawScore: 5, MaxScore: 5, Done: true}
	tickUntil(t, c, EventRoundComplete, 5)
	c.Tick(core.NewInputFrame())
	c.ConfirmResults()

	tickUntil(t, c, EventEnteredPlaying, 20)
	lastStub.status = core.RoundStatus{RawScore: 5, MaxScore: 5, Done: true}
	tickUntil(t, c, EventRoundComplete, 5)
	c.Tick(core.NewInputFrame())
	c.ConfirmResults()

	// A stray re-confirm (remount, repeated keypress) must not re-commit.
	c.ConfirmResults()
	c.ConfirmResults()
	if len(p.finalized) != 1 {
		t.Errorf("Finalize calls = %d, expected exactly 1", len(p.finalized))
	}
}

func TestControllerRoundTimeout(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()
	tickUntil(t, c, EventEnteredPlaying, 20)

	// Never complete; the shared countdown must end the round.
	tickUntil(t, c, EventRoundComplete, 200)

	rec := c.LastRound()
	if rec == nil || !rec.TimedOut {
		t.Fatalf("expected a timed-out record, got %+v", rec)
	}
}

func TestControllerSkip(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()
	tickUntil(t, c, EventEnteredPlaying, 20)

	lastStub.status = core.RoundStatus{RawScore: 3, MaxScore: 5}
	if evt := c.Skip(); evt != EventRoundComplete {
		t.Fatalf("Skip() = %v, expected EventRoundComplete", evt)
	}

	rec := c.LastRound()
	if !rec.Skipped {
		t.Error("record not marked skipped")
	}
	if rec.RawScore != 0 {
		t.Errorf("skip raw score = %d, expected 0", rec.RawScore)
	}
}

func TestControllerQuitSavesPartial(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()

	tickUntil(t, c, EventEnteredPlaying, 20)
	lastStub.status = core.RoundStatus{RawScore: 4, MaxScore: 5, Done: true}
	tickUntil(t, c, EventRoundComplete, 5)
	c.Tick(core.NewInputFrame())
	c.ConfirmResults()
	tickUntil(t, c, EventEnteredPlaying, 20)

	if evt := c.Quit(); evt != EventQuit {
		t.Fatalf("Quit() = %v", evt)
	}
	if len(p.partials) != 1 {
		t.Fatalf("SavePartial calls = %d, expected 1", len(p.partials))
	}
	// Partial percentage averages only the rounds actually completed.
	if p.partials[0].Summary.MaxPossible != 100 {
		t.Errorf("partial max possible = %d, expected 100", p.partials[0].Summary.MaxPossible)
	}
	if len(p.finalized) != 0 {
		t.Error("quit must not trigger a full finalize")
	}
}

func TestControllerQuitWithNoRounds(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()
	tickUntil(t, c, EventEnteredPlaying, 20)

	c.Quit()
	if len(p.partials) != 0 {
		t.Error("nothing completed; nothing should be saved")
	}
}

func TestControllerContractViolationGuard(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()
	tickUntil(t, c, EventEnteredPlaying, 20)

	// A game reporting a degenerate maximum must not produce a division
	// by zero; the controller substitutes (0, 100).
	lastStub.status = core.RoundStatus{RawScore: 7, MaxScore: 0, Done: true}
	tickUntil(t, c, EventRoundComplete, 5)

	rec := c.LastRound()
	if rec.RawScore != 0 || rec.MaxScore != 100 {
		t.Errorf("guard not applied: raw=%d max=%d", rec.RawScore, rec.MaxScore)
	}
	if rec.Score.NormalizedScore != 0 {
		t.Errorf("normalized = %v, expected 0", rec.Score.NormalizedScore)
	}
}

func TestControllerPauseClockFreezesCountdown(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()
	tickUntil(t, c, EventEnteredPlaying, 20)

	in := core.NewInputFrame()
	c.Tick(in)
	lastStub.status.PauseClock = true
	c.Tick(in) // pause observed here
	frozen := c.TimeRemaining()
	for i := 0; i < 30; i++ {
		c.Tick(in)
	}
	if got := c.TimeRemaining(); got != frozen {
		t.Errorf("countdown moved while paused: %v -> %v", frozen, got)
	}

	lastStub.status.PauseClock = false
	c.Tick(in)
	c.Tick(in)
	if got := c.TimeRemaining(); got >= frozen {
		t.Errorf("countdown did not resume: %v", got)
	}
}

func TestControllerPlaylistGating(t *testing.T) {
	p := &recordingPersister{}
	c := NewForPlaylist(testConfig(), testRuntime(), p, nil)
	c.Start()

	// Intro delay elapses but the playlist is still loading: stay in intro.
	in := core.NewInputFrame()
	for i := 0; i < 50; i++ {
		if evt := c.Tick(in); evt != EventNone {
			t.Fatalf("entered %v before playlist was ready", evt)
		}
	}
	if c.State().Phase != PhaseIntro {
		t.Fatalf("phase = %v, expected to hold in intro", c.State().Phase)
	}

	pl := &playlist.Playlist{
		ID:     "daily-3",
		Rounds: []playlist.Round{{RoundNumber: 1, GameSlug: "stub"}},
	}
	c.PlaylistLoaded(pl, playlist.TableFunc(func(int64) (string, bool) { return "", false }))

	tickUntil(t, c, EventEnteredPlaying, 20)
	if c.State().TotalRounds != 1 {
		t.Errorf("total rounds = %d, expected playlist length 1", c.State().TotalRounds)
	}
}

func TestControllerPlaylistLoadFailure(t *testing.T) {
	p := &recordingPersister{}
	c := NewForPlaylist(testConfig(), testRuntime(), p, nil)
	c.Start()

	c.PlaylistFailed(errors.New("fetch failed"))
	if c.LoadError() == nil {
		t.Fatal("load error not surfaced")
	}

	// Auto-return to the menu after the fixed delay, never a spinner.
	tickUntil(t, c, EventAbort, 50)
}

func TestControllerUnresolvablePlaylistRound(t *testing.T) {
	p := &recordingPersister{}
	c := NewForPlaylist(testConfig(), testRuntime(), p, nil)
	c.Start()

	pl := &playlist.Playlist{
		ID:     "broken",
		Rounds: []playlist.Round{{RoundNumber: 1, GameID: 404}},
	}
	c.PlaylistLoaded(pl, playlist.TableFunc(func(int64) (string, bool) { return "", false }))

	tickUntil(t, c, EventAbort, 50)
	if len(p.finalized)+len(p.partials) != 0 {
		t.Error("nothing should be persisted for a failed load")
	}
}

func TestControllerRejectsUnknownPuzzleIDs(t *testing.T) {
	p := &recordingPersister{}
	c := NewForPlaylist(testConfig(), testRuntime(), p, nil)
	c.Start()

	pl := &playlist.Playlist{
		ID: "pinned",
		Rounds: []playlist.Round{
			{RoundNumber: 1, GameSlug: "fussy", PuzzleIDs: []string{"ok", "bogus"}},
		},
	}
	c.PlaylistLoaded(pl, playlist.TableFunc(func(int64) (string, bool) { return "", false }))

	// Malformed puzzle data is a load error, never a silently substituted
	// question set.
	tickUntil(t, c, EventAbort, 50)
	if c.LoadError() == nil {
		t.Fatal("load error not surfaced")
	}
	if len(p.finalized)+len(p.partials) != 0 {
		t.Error("nothing should be persisted for a refused round")
	}
}

func TestControllerAcceptsKnownPuzzleIDs(t *testing.T) {
	p := &recordingPersister{}
	c := NewForPlaylist(testConfig(), testRuntime(), p, nil)
	c.Start()

	pl := &playlist.Playlist{
		ID: "pinned",
		Rounds: []playlist.Round{
			{RoundNumber: 1, GameSlug: "fussy", PuzzleIDs: []string{"ok"}},
		},
	}
	c.PlaylistLoaded(pl, playlist.TableFunc(func(int64) (string, bool) { return "", false }))

	tickUntil(t, c, EventEnteredPlaying, 20)
}

func TestControllerResumeSkipsCompletedRounds(t *testing.T) {
	p := &recordingPersister{}
	c := NewForPlaylist(testConfig(), testRuntime(), p, nil)

	// Two rounds survive from the guest's previous run of this playlist.
	c.Resume([]RoundRecord{
		{GameID: 901, GameSlug: "stub", RoundNum: 1, Score: scoring.GameScore{NormalizedScore: 80, Grade: "A"}},
		{GameID: 901, GameSlug: "stub", RoundNum: 2, Score: scoring.GameScore{NormalizedScore: 60, Grade: "B"}},
	})
	c.Start()

	if c.State().CurrentRound != 3 {
		t.Fatalf("resumed session starts at round %d, expected 3", c.State().CurrentRound)
	}

	pl := &playlist.Playlist{
		ID: "daily-7",
		Rounds: []playlist.Round{
			{RoundNumber: 1, GameSlug: "stub"},
			{RoundNumber: 2, GameSlug: "stub"},
			{RoundNumber: 3, GameSlug: "stub"},
		},
	}
	c.PlaylistLoaded(pl, playlist.TableFunc(func(int64) (string, bool) { return "", false }))

	// Only the one remaining round is played.
	tickUntil(t, c, EventEnteredPlaying, 20)
	lastStub.status = core.RoundStatus{RawScore: 5, MaxScore: 5, Done: true}
	tickUntil(t, c, EventRoundComplete, 5)
	c.Tick(core.NewInputFrame())
	if evt := c.ConfirmResults(); evt != EventSessionComplete {
		t.Fatalf("ConfirmResults = %v, expected EventSessionComplete", evt)
	}

	if len(p.finalized) != 1 {
		t.Fatalf("Finalize calls = %d, expected 1", len(p.finalized))
	}
	res := p.finalized[0]
	if len(res.Rounds) != 3 {
		t.Fatalf("finalized rounds = %d, expected the resumed 2 plus 1 played", len(res.Rounds))
	}
	if res.Summary.Total != 240 {
		t.Errorf("total = %v, expected 80+60+100", res.Summary.Total)
	}
}

func TestControllerSignInPromptTimer(t *testing.T) {
	p := &recordingPersister{}
	cfg := testConfig()
	cfg.Rounds.PerSession = 1
	c := NewRandom(cfg, testRuntime(), []string{"stub"}, p, nil)
	c.Start()

	tickUntil(t, c, EventEnteredPlaying, 20)
	lastStub.status = core.RoundStatus{RawScore: 5, MaxScore: 5, Done: true}
	tickUntil(t, c, EventRoundComplete, 5)
	c.Tick(core.NewInputFrame())
	if evt := c.ConfirmResults(); evt != EventSessionComplete {
		t.Fatalf("expected completion, got %v", evt)
	}

	tickUntil(t, c, EventSignInPrompt, 50)
}

func TestControllerUnmountCancelsTimers(t *testing.T) {
	p := &recordingPersister{}
	c := NewRandom(testConfig(), testRuntime(), []string{"stub"}, p, nil)
	c.Start()
	tickUntil(t, c, EventEnteredPlaying, 20)

	c.Unmount()
	in := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		if evt := c.Tick(in); evt != EventNone {
			t.Fatalf("event %v fired after unmount", evt)
		}
	}
}
