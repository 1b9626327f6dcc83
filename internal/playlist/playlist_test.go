package playlist

import (
	"strings"
	"testing"
)

func testTable() SlugTable {
	return TableFunc(func(id int64) (string, bool) {
		slugs := map[int64]string{1: "oddone", 2: "anagram", 3: "fruitfall"}
		s, ok := slugs[id]
		return s, ok
	})
}

func TestValidateOrders(t *testing.T) {
	p := &Playlist{
		ID: "daily-1",
		Rounds: []Round{
			{RoundNumber: 3, GameID: 3},
			{RoundNumber: 1, GameID: 1},
			{RoundNumber: 2, GameID: 2},
		},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	for i, r := range p.Rounds {
		if r.RoundNumber != i+1 {
			t.Errorf("round at index %d has number %d", i, r.RoundNumber)
		}
	}
}

func TestValidateMissingRound(t *testing.T) {
	p := &Playlist{
		ID: "holey",
		Rounds: []Round{
			{RoundNumber: 1, GameID: 1},
			{RoundNumber: 3, GameID: 2},
		},
	}
	err := p.Validate()
	if err == nil {
		t.Fatal("expected error for missing round number")
	}
	if !strings.Contains(err.Error(), "missing round number 2") {
		t.Errorf("error should name the missing round: %v", err)
	}
}

func TestValidateDuplicateRound(t *testing.T) {
	p := &Playlist{
		ID: "dup",
		Rounds: []Round{
			{RoundNumber: 1, GameID: 1},
			{RoundNumber: 1, GameID: 2},
		},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for duplicate round number")
	}
}

func TestValidateEmpty(t *testing.T) {
	p := &Playlist{ID: "empty"}
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for empty playlist")
	}
}

func TestResolveSlugByID(t *testing.T) {
	slug, err := Round{RoundNumber: 1, GameID: 2}.ResolveSlug(testTable())
	if err != nil {
		t.Fatalf("ResolveSlug() failed: %v", err)
	}
	if slug != "anagram" {
		t.Errorf("resolved %q, expected anagram", slug)
	}
}

func TestResolveSlugProceduralFallback(t *testing.T) {
	// Unknown numeric ID but an embedded procedural slug
	slug, err := Round{RoundNumber: 2, GameID: 999, GameSlug: "drift"}.ResolveSlug(testTable())
	if err != nil {
		t.Fatalf("ResolveSlug() failed: %v", err)
	}
	if slug != "drift" {
		t.Errorf("resolved %q, expected drift", slug)
	}
}

func TestResolveSlugHardError(t *testing.T) {
	// Spec example: a round referencing a game_id with no table entry and
	// no fallback must fail diagnosably, never fall back to a random game.
	_, err := Round{RoundNumber: 3, GameID: 999}.ResolveSlug(testTable())
	if err == nil {
		t.Fatal("expected error for unresolvable round")
	}
	if !strings.Contains(err.Error(), "round 3") {
		t.Errorf("error should name the round: %v", err)
	}
}

func TestResolveSlugNothingToResolve(t *testing.T) {
	if _, err := (Round{RoundNumber: 4}).ResolveSlug(testTable()); err == nil {
		t.Fatal("expected error for round with no game identity")
	}
}

func TestRoundLookup(t *testing.T) {
	p := &Playlist{
		ID: "daily-1",
		Rounds: []Round{
			{RoundNumber: 1, GameID: 1},
			{RoundNumber: 2, GameID: 2, PuzzleIDs: []string{"p-17", "p-18"}},
		},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	r, ok := p.Round(2)
	if !ok {
		t.Fatal("Round(2) not found")
	}
	if len(r.PuzzleIDs) != 2 || r.PuzzleIDs[0] != "p-17" {
		t.Errorf("puzzle ids not threaded through: %v", r.PuzzleIDs)
	}

	if _, ok := p.Round(0); ok {
		t.Error("Round(0) should not resolve")
	}
	if _, ok := p.Round(3); ok {
		t.Error("Round(3) should not resolve")
	}
}
