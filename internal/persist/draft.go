package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDraftPath is the well-known location of the per-device anonymous
// draft record.
const DefaultDraftPath = "~/.gauntlet/anon_session.json"

// DraftRound is one completed round inside the anonymous draft.
type DraftRound struct {
	GameID      int64   `json:"gameId"`
	RoundNumber int     `json:"roundNumber"`
	Score       float64 `json:"score"`
	Grade       string  `json:"grade"`
}

// AnonymousSessionRecord is the durable local draft that lets a guest
// resume a curated playlist across restarts. One versionless record per
// device; owned and mutated exclusively by the gateway.
type AnonymousSessionRecord struct {
	CurrentPlaylistID string       `json:"currentPlaylistId"`
	CompletedRounds   int          `json:"completedRounds"`
	RoundScores       []DraftRound `json:"roundScores"`
	LastUpdated       time.Time    `json:"lastUpdated"`
}

// DraftStore reads and writes the anonymous draft record.
type DraftStore struct {
	path string
}

// NewDraftStore creates a store at the given path. An empty path uses
// DefaultDraftPath. The ~ prefix expands to the home directory.
func NewDraftStore(path string) (*DraftStore, error) {
	if path == "" {
		path = DefaultDraftPath
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("persist: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &DraftStore{path: path}, nil
}

// Load reads the draft record. A missing file returns (nil, nil); a
// corrupt file is treated as no draft rather than a startup failure.
func (d *DraftStore) Load() (*AnonymousSessionRecord, error) {
	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: cannot read draft: %w", err)
	}

	var rec AnonymousSessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}
	return &rec, nil
}

// Save writes the draft record, stamping LastUpdated.
func (d *DraftStore) Save(rec *AnonymousSessionRecord) error {
	rec.LastUpdated = time.Now()

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("persist: cannot create directory: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("persist: cannot encode draft: %w", err)
	}
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return fmt.Errorf("persist: cannot write draft: %w", err)
	}
	return nil
}

// Clear removes the draft record.
func (d *DraftStore) Clear() error {
	if err := os.Remove(d.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("persist: cannot clear draft: %w", err)
	}
	return nil
}
