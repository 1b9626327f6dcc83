// Package session contains the arcade's orchestration core: the phase
// state machine sequencing rounds, the game selector (curated playlist or
// random draw), and the cooperative timer registry that keeps round
// clocks and phase delays from leaking across transitions.
package session

import "gauntlet-arcade/internal/scoring"

// Phase is the controller's state machine position.
type Phase int

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhaseResults
	PhaseComplete
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseResults:
		return "results"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// RoundRecord is one completed (or skipped, or timed-out) round. Appended
// in order; the list is append-only for the life of a session.
type RoundRecord struct {
	GameID   int64 // Stable numeric ID for persistence rows
	GameSlug string
	GameName string
	PuzzleID string
	RawScore int
	MaxScore int
	Score    scoring.GameScore
	RoundNum int
	TimedOut bool
	Skipped  bool
}

// State is the observable session state. Mutated only by the Controller;
// discarded when the player exits to the menu or a new session starts.
type State struct {
	CurrentRound int
	TotalRounds  int
	Phase        Phase
	RoundScores  []RoundRecord
	PlayedSlugs  []string

	// SessionID is the remote session identity, assigned lazily by the
	// persistence gateway on the first authenticated round. Zero for
	// anonymous play.
	SessionID int64
}

// RunningTotal sums the bonus-inclusive normalized scores recorded so
// far, for the live session-total display.
func (s *State) RunningTotal() float64 {
	var total float64
	for _, r := range s.RoundScores {
		total += r.Score.Final()
	}
	return total
}

// Result is the snapshot handed to the persistence gateway at finalize or
// quit-and-save time.
type Result struct {
	Rounds          []RoundRecord
	Summary         scoring.SessionSummary
	PlaytimeSeconds int
	PlaylistID      string
}
