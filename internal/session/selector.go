package session

import (
	"fmt"
	"math/rand"

	"gauntlet-arcade/internal/playlist"
)

// Selection is a resolved round: which game plays and which puzzles it is
// pinned to. Selection happens once per round and is then immutable for
// the round's lifetime.
type Selection struct {
	Slug      string
	PuzzleIDs []string
}

// Selector chooses the next game for a round. The mode is fixed for the
// whole session: curated playlist order, or uniform random draw without
// immediate repetition.
type Selector struct {
	pl      *playlist.Playlist
	table   playlist.SlugTable
	rng     *rand.Rand
	catalog []string
	played  map[string]bool
}

// NewPlaylistSelector creates a selector following a validated playlist.
func NewPlaylistSelector(pl *playlist.Playlist, table playlist.SlugTable) *Selector {
	return &Selector{pl: pl, table: table}
}

// NewRandomSelector creates a selector drawing uniformly from the catalog
// of game slugs, excluding games already played this session. Once every
// game has been played the exclusion resets, so the eligible set is never
// empty.
func NewRandomSelector(catalog []string, rng *rand.Rand) *Selector {
	return &Selector{
		rng:     rng,
		catalog: catalog,
		played:  make(map[string]bool),
	}
}

// Next resolves the game for the given 1-based round number.
func (s *Selector) Next(roundNumber int) (Selection, error) {
	if s.pl != nil {
		return s.nextFromPlaylist(roundNumber)
	}
	return s.nextRandom()
}

func (s *Selector) nextFromPlaylist(roundNumber int) (Selection, error) {
	round, ok := s.pl.Round(roundNumber)
	if !ok {
		return Selection{}, fmt.Errorf("session: playlist %q has no round %d", s.pl.ID, roundNumber)
	}
	slug, err := round.ResolveSlug(s.table)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Slug: slug, PuzzleIDs: round.PuzzleIDs}, nil
}

func (s *Selector) nextRandom() (Selection, error) {
	if len(s.catalog) == 0 {
		return Selection{}, fmt.Errorf("session: empty game catalog")
	}

	eligible := make([]string, 0, len(s.catalog))
	for _, slug := range s.catalog {
		if !s.played[slug] {
			eligible = append(eligible, slug)
		}
	}
	if len(eligible) == 0 {
		// Every game has been played at least once; the full catalog
		// becomes eligible again.
		clear(s.played)
		eligible = append(eligible, s.catalog...)
	}

	slug := eligible[s.rng.Intn(len(eligible))]
	s.played[slug] = true
	return Selection{Slug: slug}, nil
}

// PlaylistID returns the playlist identity driving this selector, or
// empty in random mode.
func (s *Selector) PlaylistID() string {
	if s.pl == nil {
		return ""
	}
	return s.pl.ID
}

// TotalRounds returns the round count a playlist dictates, or 0 in random
// mode (the session config decides).
func (s *Selector) TotalRounds() int {
	if s.pl == nil {
		return 0
	}
	return len(s.pl.Rounds)
}
