// Package playlist defines externally authored, ordered round descriptors
// driving curated sessions, plus the validation and game-resolution rules
// the controller relies on. A playlist is immutable once loaded; any hole
// or unresolvable round is a load error, never a silent substitution,
// because substituting a random game would desynchronize playlist
// analytics from what was actually configured.
package playlist

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by stores when a playlist ID does not exist.
var ErrNotFound = errors.New("playlist: not found")

// Round is one round descriptor. A round names its game either by stable
// numeric ID or by an embedded procedural slug, and may pin the puzzles
// the game instance plays.
type Round struct {
	RoundNumber int      `yaml:"round_number"`
	GameID      int64    `yaml:"game_id,omitempty"`
	GameSlug    string   `yaml:"game_slug,omitempty"`
	PuzzleIDs   []string `yaml:"puzzle_ids,omitempty"`
}

// Playlist is an ordered, contiguous list of rounds, 1-based by
// round_number.
type Playlist struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Rounds []Round `yaml:"rounds"`
}

// SlugTable resolves numeric game IDs to slugs. The registry satisfies
// this; tests use plain maps via TableFunc.
type SlugTable interface {
	SlugForID(numericID int64) (string, bool)
}

// TableFunc adapts a function to the SlugTable interface.
type TableFunc func(int64) (string, bool)

func (f TableFunc) SlugForID(id int64) (string, bool) { return f(id) }

// Validate checks structural integrity: at least one round, and round
// numbers forming exactly 1..N with no gaps or duplicates.
func (p *Playlist) Validate() error {
	if len(p.Rounds) == 0 {
		return fmt.Errorf("playlist %q: no rounds", p.ID)
	}

	seen := make(map[int]bool, len(p.Rounds))
	for _, r := range p.Rounds {
		if r.RoundNumber < 1 {
			return fmt.Errorf("playlist %q: invalid round number %d", p.ID, r.RoundNumber)
		}
		if seen[r.RoundNumber] {
			return fmt.Errorf("playlist %q: duplicate round number %d", p.ID, r.RoundNumber)
		}
		seen[r.RoundNumber] = true
	}
	for n := 1; n <= len(p.Rounds); n++ {
		if !seen[n] {
			return fmt.Errorf("playlist %q: missing round number %d", p.ID, n)
		}
	}

	sort.Slice(p.Rounds, func(i, j int) bool {
		return p.Rounds[i].RoundNumber < p.Rounds[j].RoundNumber
	})
	return nil
}

// Round returns the descriptor for a 1-based round number. Callers must
// have validated the playlist; an out-of-range number returns false.
func (p *Playlist) Round(number int) (Round, bool) {
	if number < 1 || number > len(p.Rounds) {
		return Round{}, false
	}
	return p.Rounds[number-1], true
}

// ResolveSlug determines which game a round plays: the id-to-slug table
// first, the round's embedded procedural slug as fallback. A round with
// neither is a hard error.
func (r Round) ResolveSlug(table SlugTable) (string, error) {
	if r.GameID != 0 {
		if slug, ok := table.SlugForID(r.GameID); ok {
			return slug, nil
		}
		// The numeric ID is unknown; an embedded slug can still save the round.
		if r.GameSlug != "" {
			return r.GameSlug, nil
		}
		return "", fmt.Errorf("playlist: round %d references unknown game id %d", r.RoundNumber, r.GameID)
	}
	if r.GameSlug != "" {
		return r.GameSlug, nil
	}
	return "", fmt.Errorf("playlist: round %d has no resolvable game", r.RoundNumber)
}
