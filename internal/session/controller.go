package session

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"gauntlet-arcade/internal/config"
	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/playlist"
	"gauntlet-arcade/internal/registry"
	"gauntlet-arcade/internal/scoring"
)

// Persister is the narrow view of the persistence gateway the controller
// drives. All methods are fire-and-forget from the controller's side;
// failures are the gateway's to log and swallow.
type Persister interface {
	// BeginSession is called once, when round 1 enters playing.
	BeginSession()

	// Finalize commits a completed session. The controller guarantees at
	// most one call per session.
	Finalize(res Result)

	// SavePartial commits the rounds completed so far when the player
	// quits mid-session.
	SavePartial(res Result)
}

// Event tells the host what a controller call caused.
type Event int

const (
	EventNone Event = iota
	EventEnteredPlaying
	EventRoundComplete   // Entered results with a fresh round record
	EventSessionComplete // Entered the terminal complete phase
	EventSignInPrompt    // Anonymous completion prompt delay elapsed
	EventAbort           // Defensive exit or load failure; return to menu
	EventQuit            // Player left the session
)

// Controller is the top-level session orchestrator: it sequences
// intro -> playing -> results -> (next intro | complete), drives the
// selector, hosts the current mini-game behind the score contract,
// invokes the normalizer, and triggers the persistence gateway.
//
// The controller is single-threaded by design: every mutation happens on
// the host's tick loop, and all timing flows through the timer registry
// so each transition can cancel what the previous phase armed.
type Controller struct {
	cfg       config.SessionConfig
	runtime   core.RuntimeConfig
	state     State
	timers    *TimerRegistry
	selector  *Selector
	scores    *scoring.Registry
	bands     []scoring.GradeBand
	persister Persister
	logger    *log.Logger

	game             core.Minigame
	selection        *Selection
	awaitingPlaylist bool
	loadErr          error
	sessionBegun     bool
	finalized        bool
	playtimeTicks    int
	done             bool
}

// NewRandom creates a controller for a random-draw session over the given
// catalog of game slugs.
func NewRandom(cfg config.SessionConfig, rt core.RuntimeConfig, catalog []string, persister Persister, logger *log.Logger) *Controller {
	c := newController(cfg, rt, persister, logger)
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c.selector = NewRandomSelector(catalog, rand.New(rand.NewSource(seed)))
	c.state.TotalRounds = cfg.Rounds.PerSession
	return c
}

// NewForPlaylist creates a controller for a curated session whose playlist
// is still loading. The controller idles in intro until PlaylistLoaded or
// PlaylistFailed is called; entering playing before the playlist is ready
// is exactly the race this gate exists to prevent.
func NewForPlaylist(cfg config.SessionConfig, rt core.RuntimeConfig, persister Persister, logger *log.Logger) *Controller {
	c := newController(cfg, rt, persister, logger)
	c.awaitingPlaylist = true
	return c
}

func newController(cfg config.SessionConfig, rt core.RuntimeConfig, persister Persister, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultRuntimeConfig().TickRate
	}
	return &Controller{
		cfg:       cfg,
		runtime:   rt,
		timers:    NewTimerRegistry(rt.TickRate),
		scores:    cfg.ScoringRegistry(),
		bands:     cfg.GradeBands(),
		persister: persister,
		logger:    logger,
	}
}

// Resume seeds rounds completed in an earlier run of the same playlist,
// so a reloaded anonymous session continues where the durable draft left
// off instead of replaying them. Must be called before Start.
func (c *Controller) Resume(completed []RoundRecord) {
	if c.state.CurrentRound != 0 {
		return
	}
	for _, r := range completed {
		c.state.RoundScores = append(c.state.RoundScores, r)
		c.state.PlayedSlugs = append(c.state.PlayedSlugs, r.GameSlug)
	}
}

// Start begins the session in the intro phase, at round 1 or just past
// any resumed rounds.
func (c *Controller) Start() {
	c.state.CurrentRound = len(c.state.RoundScores) + 1
	c.state.Phase = PhaseIntro
	c.enterIntro()
}

// PlaylistLoaded supplies the playlist an awaiting controller was created
// for. The playlist dictates the session's round count.
func (c *Controller) PlaylistLoaded(pl *playlist.Playlist, table playlist.SlugTable) {
	if !c.awaitingPlaylist {
		return
	}
	if err := pl.Validate(); err != nil {
		c.failLoad(err)
		return
	}
	c.selector = NewPlaylistSelector(pl, table)
	c.state.TotalRounds = len(pl.Rounds)
	c.awaitingPlaylist = false
}

// PlaylistFailed reports that the playlist fetch failed. The controller
// surfaces the error and auto-returns to the menu after a fixed delay
// rather than sitting in an indefinite loading state.
func (c *Controller) PlaylistFailed(err error) {
	c.failLoad(err)
}

// Tick advances the session by one host tick, forwarding input to the
// active mini-game while playing.
func (c *Controller) Tick(in core.InputFrame) Event {
	if c.done {
		return EventNone
	}

	switch c.state.Phase {
	case PhaseIntro:
		return c.tickIntro()
	case PhasePlaying:
		return c.tickPlaying(in)
	case PhaseResults:
		c.timers.Tick()
		return EventNone
	case PhaseComplete:
		for _, p := range c.timers.Tick() {
			if p == TimerSignInPrompt {
				return EventSignInPrompt
			}
		}
		return EventNone
	}
	return EventNone
}

func (c *Controller) tickIntro() Event {
	if c.loadErr != nil {
		for _, p := range c.timers.Tick() {
			if p == TimerLoadError {
				c.done = true
				return EventAbort
			}
		}
		return EventNone
	}

	c.resolveSelection()
	if c.loadErr != nil {
		return EventNone
	}

	c.timers.Tick()
	if !c.timers.Active(TimerIntroDelay) && c.selection != nil {
		// The intro delay has elapsed and, in playlist mode, the playlist
		// has finished loading. Only now may playing begin.
		return c.enterPlaying()
	}
	return EventNone
}

func (c *Controller) tickPlaying(in core.InputFrame) Event {
	c.playtimeTicks++

	// A game's reveal/feedback sub-phase freezes the shared countdown
	// without losing elapsed time.
	if c.game.Status().PauseClock {
		c.timers.Pause(TimerRoundCountdown)
	} else {
		c.timers.Resume(TimerRoundCountdown)
	}

	c.game.Step(in)

	timedOut := false
	for _, p := range c.timers.Tick() {
		if p == TimerRoundCountdown {
			timedOut = true
		}
	}

	if st := c.game.Status(); st.Done {
		return c.completeRound(st, false, false)
	}
	if timedOut {
		return c.completeRound(c.game.Status(), true, false)
	}
	return EventNone
}

// resolveSelection picks the round's game if it has not been picked yet.
// Selection is idempotent for the lifetime of a round: once resolved, the
// controller never re-selects mid-round.
func (c *Controller) resolveSelection() {
	if c.selection != nil || c.awaitingPlaylist {
		return
	}

	sel, err := c.selector.Next(c.state.CurrentRound)
	if err != nil {
		c.failLoad(err)
		return
	}
	game, err := registry.Create(sel.Slug)
	if err != nil {
		c.failLoad(err)
		return
	}
	if v, ok := game.(core.PuzzleValidator); ok && len(sel.PuzzleIDs) > 0 {
		// Malformed playlist puzzle data is a load error, not a silent
		// substitute set.
		if err := v.ValidatePuzzles(sel.PuzzleIDs); err != nil {
			c.failLoad(err)
			return
		}
	}
	c.selection = &sel
	c.game = game
}

func (c *Controller) enterIntro() {
	c.timers.CancelAll()
	c.state.Phase = PhaseIntro
	c.selection = nil
	c.game = nil
	c.timers.Start(TimerIntroDelay, float64(c.cfg.Delays.IntroSeconds))
	c.resolveSelection()
	c.logger.Debug("session: entering intro", "round", c.state.CurrentRound)
}

func (c *Controller) enterPlaying() Event {
	c.timers.CancelAll()
	c.state.Phase = PhasePlaying

	if !c.sessionBegun {
		c.sessionBegun = true
		c.persister.BeginSession()
	}

	rt := c.runtime
	rt.RoundSeconds = c.cfg.Rounds.RoundSeconds
	rt.PuzzleIDs = c.selection.PuzzleIDs
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	} else {
		// Derive a distinct deterministic seed per round.
		rt.Seed += int64(c.state.CurrentRound)
	}
	c.game.Reset(rt)

	c.timers.Start(TimerRoundCountdown, float64(c.cfg.Rounds.RoundSeconds))
	c.logger.Debug("session: entering playing", "round", c.state.CurrentRound, "game", c.selection.Slug)
	return EventEnteredPlaying
}

func (c *Controller) completeRound(st core.RoundStatus, timedOut, skipped bool) Event {
	timeRemaining := c.timers.Remaining(TimerRoundCountdown)
	totalTime := float64(c.cfg.Rounds.RoundSeconds)

	raw, max := st.RawScore, st.MaxScore
	if max <= 0 {
		// Contract violation: a degenerate maximum would poison the
		// ratio. Substitute a safe default instead of propagating it.
		c.logger.Warn("session: game reported non-positive max score", "game", c.selection.Slug, "max", max)
		raw, max = 0, 100
	}

	slug := c.selection.Slug
	info, _ := registry.Lookup(slug)
	score := c.scores.Normalize(slug, info.Title, scoring.Input{
		RawScore:      raw,
		MaxScore:      max,
		TimeRemaining: timeRemaining,
		TotalTime:     totalTime,
	}, c.bands)
	if c.cfg.TimeBonusEnabled(slug) {
		score = scoring.ApplyTimeBonus(score, timeRemaining, totalTime, c.bands)
	}

	record := RoundRecord{
		GameID:   info.NumericID,
		GameSlug: slug,
		GameName: info.Title,
		PuzzleID: strings.Join(c.selection.PuzzleIDs, ","),
		RawScore: raw,
		MaxScore: max,
		Score:    score,
		RoundNum: c.state.CurrentRound,
		TimedOut: timedOut,
		Skipped:  skipped,
	}
	c.state.RoundScores = append(c.state.RoundScores, record)
	c.state.PlayedSlugs = append(c.state.PlayedSlugs, slug)

	c.timers.CancelAll()
	c.state.Phase = PhaseResults
	c.timers.Start(TimerReveal, float64(c.cfg.Delays.RevealSeconds))
	c.logger.Debug("session: round complete",
		"round", c.state.CurrentRound, "game", slug,
		"raw", raw, "normalized", score.Final(), "grade", score.Grade)
	return EventRoundComplete
}

// Skip treats the current round as an immediate completion with a raw
// score of zero.
func (c *Controller) Skip() Event {
	if c.state.Phase != PhasePlaying || c.done {
		return EventNone
	}
	st := c.game.Status()
	st.RawScore = 0
	return c.completeRound(st, false, true)
}

// ConfirmResults advances past the results screen: either into the next
// round's intro or into the terminal complete phase. Ignored while the
// minimum reveal hold is still running, so a buffered keypress cannot
// blow past the score display.
func (c *Controller) ConfirmResults() Event {
	if c.state.Phase != PhaseResults || c.done {
		return EventNone
	}
	if c.timers.Active(TimerReveal) {
		return EventNone
	}
	if len(c.state.RoundScores) == 0 {
		// Defensive: results with nothing to show exits cleanly instead
		// of rendering undefined data.
		c.logger.Error("session: results phase with empty round list")
		c.done = true
		return EventAbort
	}

	if c.state.CurrentRound >= c.state.TotalRounds {
		return c.enterComplete()
	}
	c.state.CurrentRound++
	c.enterIntro()
	return EventNone
}

func (c *Controller) enterComplete() Event {
	c.timers.CancelAll()
	c.state.Phase = PhaseComplete

	if len(c.state.RoundScores) == 0 {
		c.logger.Error("session: complete phase with zero recorded rounds")
		c.done = true
		return EventAbort
	}

	if !c.finalized {
		// Guarded so a re-render or remount cannot re-fire the commit.
		c.finalized = true
		c.persister.Finalize(c.result())
	}

	c.timers.Start(TimerSignInPrompt, float64(c.cfg.Delays.SignInPromptSeconds))
	return EventSessionComplete
}

// Quit leaves the session from the playing phase, first attempting a
// partial-progress commit over the rounds completed so far.
func (c *Controller) Quit() Event {
	if c.done {
		return EventNone
	}
	if c.state.Phase == PhasePlaying && len(c.state.RoundScores) > 0 {
		c.persister.SavePartial(c.result())
	}
	c.timers.CancelAll()
	c.done = true
	return EventQuit
}

// Unmount cancels every pending timer. Called when the host tears the
// session down so nothing fires into a screen that no longer exists.
func (c *Controller) Unmount() {
	c.timers.CancelAll()
	c.done = true
}

func (c *Controller) failLoad(err error) {
	c.logger.Error("session: load failed", "error", err)
	c.loadErr = err
	c.timers.CancelAll()
	c.timers.Start(TimerLoadError, float64(c.cfg.Delays.LoadErrorSeconds))
}

func (c *Controller) result() Result {
	rounds := make([]RoundRecord, len(c.state.RoundScores))
	copy(rounds, c.state.RoundScores)

	gameScores := make([]scoring.GameScore, len(rounds))
	for i, r := range rounds {
		gameScores[i] = r.Score
	}

	playlistID := ""
	if c.selector != nil {
		playlistID = c.selector.PlaylistID()
	}
	return Result{
		Rounds:          rounds,
		Summary:         scoring.Summarize(gameScores, c.bands),
		PlaytimeSeconds: c.playtimeTicks / c.timers.tickRate,
		PlaylistID:      playlistID,
	}
}

// State returns the observable session state.
func (c *Controller) State() *State { return &c.state }

// CurrentGame returns the active mini-game, or nil outside a round.
func (c *Controller) CurrentGame() core.Minigame { return c.game }

// CurrentSelection returns the resolved selection for this round, or nil
// while a playlist is still loading.
func (c *Controller) CurrentSelection() *Selection { return c.selection }

// TimeRemaining returns the shared round countdown in seconds.
func (c *Controller) TimeRemaining() float64 {
	return c.timers.Remaining(TimerRoundCountdown)
}

// LoadError returns the load failure being surfaced, if any.
func (c *Controller) LoadError() error { return c.loadErr }

// LastRound returns the most recently recorded round, for the results
// screen.
func (c *Controller) LastRound() *RoundRecord {
	if len(c.state.RoundScores) == 0 {
		return nil
	}
	return &c.state.RoundScores[len(c.state.RoundScores)-1]
}

// Summary aggregates the rounds recorded so far.
func (c *Controller) Summary() scoring.SessionSummary {
	gameScores := make([]scoring.GameScore, len(c.state.RoundScores))
	for i, r := range c.state.RoundScores {
		gameScores[i] = r.Score
	}
	return scoring.Summarize(gameScores, c.bands)
}
