package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"gauntlet-arcade/internal/persist"
	"gauntlet-arcade/internal/playlist"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "gauntlet.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := testStore(t)

	id, err := s.CreateSession("ada")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("zero session id")
	}

	// Uncommitted sessions stay out of history.
	entries, err := s.RecentSessions(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("history shows %d uncommitted sessions", len(entries))
	}

	err = s.CompleteSession(id, persist.Completion{
		Total:           370,
		MaxPossible:     500,
		Percentage:      74,
		Grade:           "B",
		RoundsPlayed:    5,
		PlaytimeSeconds: 240,
		PlaylistID:      "daily-7",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	rows := []persist.RoundRow{
		{GameID: 3, PuzzleID: "p-12", RoundNumber: 1, RawScore: 2, MaxScore: 3, NormalizedScore: 66.67, Grade: "B"},
		{GameID: 1, RoundNumber: 2, RawScore: 10, MaxScore: 10, NormalizedScore: 100, Grade: "S"},
	}
	if err := s.SaveRoundResults(id, "ada", rows); err != nil {
		t.Fatalf("save rounds: %v", err)
	}

	entries, err = s.RecentSessions(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history entries = %d, expected 1", len(entries))
	}
	e := entries[0]
	if e.UserID != "ada" || e.Total != 370 || e.Grade != "B" || e.Partial {
		t.Errorf("entry = %+v", e)
	}
	if e.PlaylistID != "daily-7" || e.PlaytimeSeconds != 240 {
		t.Errorf("entry = %+v", e)
	}

	got, err := s.SessionRounds(id)
	if err != nil {
		t.Fatalf("session rounds: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rounds = %d, expected 2", len(got))
	}
	if got[0].PuzzleID != "p-12" || got[0].NormalizedScore != 66.67 {
		t.Errorf("round 1 = %+v", got[0])
	}
	if got[1].Grade != "S" {
		t.Errorf("round 2 = %+v", got[1])
	}
}

func TestCompleteSessionUnknownID(t *testing.T) {
	s := testStore(t)
	if err := s.CompleteSession(999, persist.Completion{}); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestPartialSessionFlag(t *testing.T) {
	s := testStore(t)

	id, err := s.CreateSession("ada")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CompleteSession(id, persist.Completion{RoundsPlayed: 2, Partial: true}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	entries, err := s.RecentSessions(1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 || !entries[0].Partial {
		t.Errorf("partial flag lost: %+v", entries)
	}
}

func TestPlaylistRoundTrip(t *testing.T) {
	s := testStore(t)

	pl := &playlist.Playlist{
		ID:   "daily-7",
		Name: "Daily Gauntlet 7",
		Rounds: []playlist.Round{
			{RoundNumber: 1, GameID: 3, PuzzleIDs: []string{"p-1", "p-2"}},
			{RoundNumber: 2, GameSlug: "stacker"},
		},
	}
	if err := s.ImportPlaylist(pl); err != nil {
		t.Fatalf("import: %v", err)
	}

	got, err := s.LoadPlaylist("daily-7")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "Daily Gauntlet 7" || len(got.Rounds) != 2 {
		t.Fatalf("playlist = %+v", got)
	}
	if got.Rounds[0].GameID != 3 || len(got.Rounds[0].PuzzleIDs) != 2 || got.Rounds[0].PuzzleIDs[1] != "p-2" {
		t.Errorf("round 1 = %+v", got.Rounds[0])
	}
	if got.Rounds[1].GameSlug != "stacker" || got.Rounds[1].PuzzleIDs != nil {
		t.Errorf("round 2 = %+v", got.Rounds[1])
	}

	// Re-import under the same ID replaces the rounds wholesale.
	pl.Rounds = pl.Rounds[:1]
	if err := s.ImportPlaylist(pl); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	got, err = s.LoadPlaylist("daily-7")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Rounds) != 1 {
		t.Errorf("rounds after reimport = %d, expected 1", len(got.Rounds))
	}

	infos, err := s.ListPlaylists()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 || infos[0].Rounds != 1 {
		t.Errorf("infos = %+v", infos)
	}
}

func TestLoadPlaylistNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.LoadPlaylist("nope")
	if !errors.Is(err, playlist.ErrNotFound) {
		t.Fatalf("err = %v, expected ErrNotFound", err)
	}
}

func TestImportRejectsInvalidPlaylist(t *testing.T) {
	s := testStore(t)
	pl := &playlist.Playlist{
		ID:     "broken",
		Rounds: []playlist.Round{{RoundNumber: 2, GameSlug: "stacker"}},
	}
	if err := s.ImportPlaylist(pl); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := s.LoadPlaylist("broken"); !errors.Is(err, playlist.ErrNotFound) {
		t.Error("invalid playlist was stored anyway")
	}
}

func TestGameCatalog(t *testing.T) {
	s := testStore(t)

	catalog := map[int64]string{1: "Stacker", 3: "Odd One Out"}
	if err := s.SyncGameCatalog(catalog); err != nil {
		t.Fatalf("sync: %v", err)
	}

	names, err := s.LoadGameNames([]int64{1, 3, 99})
	if err != nil {
		t.Fatalf("load names: %v", err)
	}
	if len(names) != 2 || names[3] != "Odd One Out" {
		t.Errorf("names = %+v", names)
	}

	// Renames win on re-sync.
	if err := s.SyncGameCatalog(map[int64]string{1: "Block Stacker"}); err != nil {
		t.Fatalf("resync: %v", err)
	}
	names, err = s.LoadGameNames([]int64{1})
	if err != nil {
		t.Fatalf("load names: %v", err)
	}
	if names[1] != "Block Stacker" {
		t.Errorf("names = %+v", names)
	}

	// No ids, no query.
	names, err = s.LoadGameNames(nil)
	if err != nil || len(names) != 0 {
		t.Errorf("empty lookup: names=%+v err=%v", names, err)
	}
}

func TestNextPlaylistID(t *testing.T) {
	s := testStore(t)

	for _, id := range []string{"daily-7", "daily-8", "daily-9"} {
		pl := &playlist.Playlist{
			ID:     id,
			Rounds: []playlist.Round{{RoundNumber: 1, GameSlug: "stacker"}},
		}
		if err := s.ImportPlaylist(pl); err != nil {
			t.Fatalf("import %s: %v", id, err)
		}
	}

	next, err := s.NextPlaylistID("daily-7")
	if err != nil || next != "daily-8" {
		t.Errorf("next after daily-7 = %q err=%v, expected daily-8", next, err)
	}
	next, err = s.NextPlaylistID("daily-9")
	if err != nil || next != "" {
		t.Errorf("next after the last playlist = %q err=%v, expected none", next, err)
	}
}
