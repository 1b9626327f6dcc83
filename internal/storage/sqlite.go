// Package storage is the SQLite implementation of the remote store
// boundary plus the history and playlist queries the CLI surfaces. Uses
// the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"gauntlet-arcade/internal/persist"
	"gauntlet-arcade/internal/playlist"
)

// DefaultPath is the database location when no --db flag is given.
const DefaultPath = "~/.gauntlet/gauntlet.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionEntry is one committed session, as the history screen shows it.
type SessionEntry struct {
	ID              int64
	UserID          string
	Total           float64
	MaxPossible     int
	Percentage      float64
	Grade           string
	RoundsPlayed    int
	PlaytimeSeconds int
	PlaylistID      string
	Partial         bool
	CreatedAt       time.Time
}

// PlaylistInfo is catalog metadata for a stored playlist.
type PlaylistInfo struct {
	ID     string
	Name   string
	Rounds int
}

// Open creates or opens a SQLite database at the given path. It creates
// the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			total REAL NOT NULL DEFAULT 0,
			max_possible INTEGER NOT NULL DEFAULT 0,
			percentage REAL NOT NULL DEFAULT 0,
			grade TEXT NOT NULL DEFAULT '',
			rounds_played INTEGER NOT NULL DEFAULT 0,
			playtime_secs INTEGER NOT NULL DEFAULT 0,
			playlist_id TEXT NOT NULL DEFAULT '',
			partial INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS round_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL,
			user_id TEXT NOT NULL,
			game_id INTEGER NOT NULL,
			puzzle_id TEXT NOT NULL DEFAULT '',
			round_number INTEGER NOT NULL,
			raw_score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			normalized_score REAL NOT NULL,
			grade TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_round_results_session ON round_results(session_id, round_number);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS playlist_rounds (
			playlist_id TEXT NOT NULL,
			round_number INTEGER NOT NULL,
			game_id INTEGER NOT NULL DEFAULT 0,
			game_slug TEXT NOT NULL DEFAULT '',
			puzzle_ids TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (playlist_id, round_number)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateSession inserts a new session record for the given user and
// returns its ID.
func (s *Store) CreateSession(userID string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (user_id) VALUES (?)",
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// CompleteSession writes the aggregated totals onto a session record.
func (s *Store) CompleteSession(sessionID int64, c persist.Completion) error {
	partial := 0
	if c.Partial {
		partial = 1
	}
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET total = ?, max_possible = ?, percentage = ?, grade = ?,
		     rounds_played = ?, playtime_secs = ?, playlist_id = ?,
		     partial = ?, completed = 1
		 WHERE id = ?`,
		c.Total, c.MaxPossible, c.Percentage, c.Grade,
		c.RoundsPlayed, c.PlaytimeSeconds, c.PlaylistID,
		partial, sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot complete session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: session %d does not exist", sessionID)
	}
	return nil
}

// SaveRoundResults inserts the per-round rows for a session in one
// transaction.
func (s *Store) SaveRoundResults(sessionID int64, userID string, rows []persist.RoundRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO round_results
		 (session_id, user_id, game_id, puzzle_id, round_number, raw_score, max_score, normalized_score, grade)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(
			sessionID, userID, r.GameID, r.PuzzleID, r.RoundNumber,
			r.RawScore, r.MaxScore, r.NormalizedScore, r.Grade,
		); err != nil {
			return fmt.Errorf("storage: cannot save round %d: %w", r.RoundNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit round results: %w", err)
	}
	return nil
}

// LoadPlaylist reads a stored playlist with its rounds.
func (s *Store) LoadPlaylist(playlistID string) (*playlist.Playlist, error) {
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM playlists WHERE id = ?", playlistID,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("storage: playlist %q: %w", playlistID, playlist.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query playlist: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT round_number, game_id, game_slug, puzzle_ids
		 FROM playlist_rounds
		 WHERE playlist_id = ?
		 ORDER BY round_number`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query playlist rounds: %w", err)
	}
	defer rows.Close()

	pl := &playlist.Playlist{ID: playlistID, Name: name}
	for rows.Next() {
		var r playlist.Round
		var puzzleIDs string
		if err := rows.Scan(&r.RoundNumber, &r.GameID, &r.GameSlug, &puzzleIDs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan round: %w", err)
		}
		if puzzleIDs != "" {
			r.PuzzleIDs = strings.Split(puzzleIDs, ",")
		}
		pl.Rounds = append(pl.Rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	if err := pl.Validate(); err != nil {
		return nil, fmt.Errorf("storage: stored playlist invalid: %w", err)
	}
	return pl, nil
}

// LoadGameNames resolves numeric game IDs to display names in one query.
// IDs with no stored name are omitted from the result.
func (s *Store) LoadGameNames(ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.Query(
		"SELECT id, name FROM games WHERE id IN ("+placeholders+")", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan game name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// NextPlaylistID returns the stored playlist immediately after the given
// one in ID order, or empty when none follows.
func (s *Store) NextPlaylistID(after string) (string, error) {
	var id string
	err := s.db.QueryRow(
		"SELECT id FROM playlists WHERE id > ? ORDER BY id LIMIT 1", after,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query next playlist: %w", err)
	}
	return id, nil
}

// SyncGameCatalog upserts the id-to-name rows the registry knows about.
// Called once at startup so stored sessions stay joinable to names.
func (s *Store) SyncGameCatalog(names map[int64]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for id, name := range names {
		if _, err := tx.Exec(
			`INSERT INTO games (id, name) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
			id, name,
		); err != nil {
			return fmt.Errorf("storage: cannot upsert game %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit game catalog: %w", err)
	}
	return nil
}

// ImportPlaylist stores a validated playlist, replacing any previous
// version under the same ID.
func (s *Store) ImportPlaylist(pl *playlist.Playlist) error {
	if err := pl.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO playlists (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		pl.ID, pl.Name,
	); err != nil {
		return fmt.Errorf("storage: cannot upsert playlist: %w", err)
	}
	if _, err := tx.Exec(
		"DELETE FROM playlist_rounds WHERE playlist_id = ?", pl.ID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear old rounds: %w", err)
	}

	for _, r := range pl.Rounds {
		if _, err := tx.Exec(
			`INSERT INTO playlist_rounds
			 (playlist_id, round_number, game_id, game_slug, puzzle_ids)
			 VALUES (?, ?, ?, ?, ?)`,
			pl.ID, r.RoundNumber, r.GameID, r.GameSlug, strings.Join(r.PuzzleIDs, ","),
		); err != nil {
			return fmt.Errorf("storage: cannot insert round %d: %w", r.RoundNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit playlist: %w", err)
	}
	return nil
}

// ListPlaylists returns all stored playlists with their round counts.
func (s *Store) ListPlaylists() ([]PlaylistInfo, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.name, COUNT(r.round_number)
		 FROM playlists p
		 LEFT JOIN playlist_rounds r ON r.playlist_id = p.id
		 GROUP BY p.id
		 ORDER BY p.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query playlists: %w", err)
	}
	defer rows.Close()

	var infos []PlaylistInfo
	for rows.Next() {
		var info PlaylistInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Rounds); err != nil {
			return nil, fmt.Errorf("storage: cannot scan playlist: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return infos, nil
}

// RecentSessions retrieves the most recently committed sessions.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, total, max_possible, percentage, grade,
		        rounds_played, playtime_secs, playlist_id, partial, created_at
		 FROM sessions
		 WHERE completed = 1
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var partial int
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Total, &e.MaxPossible, &e.Percentage, &e.Grade,
			&e.RoundsPlayed, &e.PlaytimeSeconds, &e.PlaylistID, &partial, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Partial = partial != 0
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// SessionRounds retrieves the per-round rows of one session, in round
// order.
func (s *Store) SessionRounds(sessionID int64) ([]persist.RoundRow, error) {
	rows, err := s.db.Query(
		`SELECT game_id, puzzle_id, round_number, raw_score, max_score, normalized_score, grade
		 FROM round_results
		 WHERE session_id = ?
		 ORDER BY round_number`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round results: %w", err)
	}
	defer rows.Close()

	var results []persist.RoundRow
	for rows.Next() {
		var r persist.RoundRow
		if err := rows.Scan(
			&r.GameID, &r.PuzzleID, &r.RoundNumber,
			&r.RawScore, &r.MaxScore, &r.NormalizedScore, &r.Grade,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var _ persist.RemoteStore = (*Store)(nil)
