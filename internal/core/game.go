// Package core provides the fundamental types shared by the arcade platform
// and its mini-games: the score contract every game must satisfy, the screen
// buffer games render into, and the abstracted input frame. It contains no
// external dependencies (especially no Bubble Tea) so game logic stays pure
// and testable.
package core

// SentinelMax is reported as MaxScore by games that cannot determine a
// meaningful maximum. The session host substitutes a safe default instead
// of dividing by it.
const SentinelMax = 0

// RoundStatus is a mini-game's self-reported standing, queryable on every
// tick. The host uses it for the live session-total display, detects
// completion on the first tick where Done is true, and freezes the shared
// round countdown while PauseClock is set (a game's own reveal/feedback
// sub-phase).
type RoundStatus struct {
	RawScore   int
	MaxScore   int  // Must be > 0 once Done; SentinelMax if no meaningful maximum
	Done       bool // Latched: once true, stays true until Reset
	PauseClock bool
}

// Minigame is the contract every arcade mini-game implements.
// Games own their mutable simulation state; Render is a read-only
// projection of that state onto the screen buffer.
type Minigame interface {
	// Slug returns the stable identifier for this game (e.g. "oddone").
	// Used for round records, score normalization lookup, and the CLI.
	Slug() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or re-initializes the game state for a round.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame)

	// Render draws the current state into the provided screen buffer.
	// The buffer is pre-cleared before this call.
	Render(dst *Screen)

	// Status reports the game's current score and completion standing.
	// Callable at any time, including before the first Step.
	Status() RoundStatus
}

// PuzzleValidator is implemented by games that accept playlist-pinned
// puzzle IDs. The host validates before the round starts, so a playlist
// naming puzzles the game does not have surfaces as a load error instead
// of a silently substituted question set.
type PuzzleValidator interface {
	ValidatePuzzles(ids []string) error
}

// RuntimeConfig is passed to games at Reset.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one

	// RoundSeconds is the shared round countdown the host runs. Games can
	// use it to scale their own content; the host owns the actual clock.
	RoundSeconds int

	// PuzzleIDs are playlist-supplied puzzle identifiers, threaded through
	// to the game unchanged. Empty outside playlist mode.
	PuzzleIDs []string
}

// DefaultRuntimeConfig returns a RuntimeConfig with the platform defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     30,
		RoundSeconds: 60,
	}
}
