// Package persist is the persistence gateway: the dual-path commit logic
// between a finished (or abandoned) session and the remote store. An
// authenticated session commits directly; an anonymous one is held as a
// pending snapshot plus a durable local draft, promoted to a remote
// commit exactly once when the player signs in. The "saved" flag behind
// the gateway's mutex is the single source of truth gating every commit
// attempt, whatever order the completion and sign-in triggers arrive in.
package persist

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"gauntlet-arcade/internal/auth"
	"gauntlet-arcade/internal/playlist"
	"gauntlet-arcade/internal/session"
)

// RoundRow is one per-round persistence row.
type RoundRow struct {
	GameID          int64
	PuzzleID        string
	RoundNumber     int
	RawScore        int
	MaxScore        int
	NormalizedScore float64
	Grade           string
}

// Completion is the aggregated session record committed to the store.
type Completion struct {
	Total           float64
	MaxPossible     int
	Percentage      float64
	Grade           string
	RoundsPlayed    int
	PlaytimeSeconds int
	PlaylistID      string
	Partial         bool // Quit-and-save commit over an unfinished session
}

// RemoteStore is the opaque RPC surface of the backing store. The gateway
// never assumes anything about its transport or schema.
type RemoteStore interface {
	CreateSession(userID string) (int64, error)
	CompleteSession(sessionID int64, c Completion) error
	SaveRoundResults(sessionID int64, userID string, rows []RoundRow) error
	LoadPlaylist(playlistID string) (*playlist.Playlist, error)
	LoadGameNames(ids []int64) (map[int64]string, error)
	NextPlaylistID(after string) (string, error)
}

// SaveState tells the UI where a session's commit stands.
type SaveState int

const (
	SaveIdle    SaveState = iota
	SavePending           // Anonymous snapshot held, awaiting sign-in
	SaveSaving
	SaveSaved
	SaveFailed
)

// String returns a human-readable name for the save state.
func (s SaveState) String() string {
	switch s {
	case SaveIdle:
		return "idle"
	case SavePending:
		return "pending"
	case SaveSaving:
		return "saving"
	case SaveSaved:
		return "saved"
	case SaveFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PendingSessionData is the snapshot taken when a session completes while
// anonymous. It lives only between that completion and either a
// successful reconciliation or an explicit decline.
type PendingSessionData struct {
	Completion Completion
	Rows       []RoundRow
	TakenAt    time.Time
}

// Identity is the slice of the auth boundary the gateway needs. The auth
// service satisfies it for local play; the SSH server supplies a fixed
// identity derived from the session's username.
type Identity interface {
	Current() *auth.User
	Subscribe(fn auth.Listener)
}

// Gateway implements session.Persister over a RemoteStore, an auth
// service, and the local draft store. All commit paths funnel through one
// mutex-guarded saved flag, so at most one commit ever succeeds per
// session regardless of how the completion and auth-change triggers
// interleave.
type Gateway struct {
	store  RemoteStore
	drafts *DraftStore
	auth   Identity
	logger *log.Logger

	mu        sync.Mutex
	sessionID int64
	pending   *PendingSessionData
	saved     bool
	state     SaveState
}

// NewGateway wires a gateway and subscribes it to auth transitions so a
// sign-in reconciles any pending anonymous snapshot.
func NewGateway(store RemoteStore, drafts *DraftStore, authSvc Identity, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.Default()
	}
	g := &Gateway{
		store:  store,
		drafts: drafts,
		auth:   authSvc,
		logger: logger,
	}
	if authSvc != nil {
		authSvc.Subscribe(g.onAuthChange)
	}
	return g
}

// BeginSession lazily creates the remote session record when the player
// is already signed in. Anonymous sessions get no remote identity until
// reconciliation. Failures are logged and swallowed; the session plays on
// and the completion-time commit will retry the create.
func (g *Gateway) BeginSession() {
	user := g.currentUser()
	if user == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.store.CreateSession(user.ID)
	if err != nil {
		g.logger.Error("persist: cannot create session", "error", err)
		return
	}
	g.sessionID = id
}

// Finalize commits a completed session: directly when signed in, or as a
// pending snapshot plus durable draft when anonymous.
func (g *Gateway) Finalize(res session.Result) {
	g.commitOrHold(res, false)
}

// SavePartial commits the rounds completed so far when the player quits
// mid-session, under the same authenticated/anonymous branching as a full
// completion.
func (g *Gateway) SavePartial(res session.Result) {
	g.commitOrHold(res, true)
}

func (g *Gateway) commitOrHold(res session.Result, partial bool) {
	completion := completionFrom(res, partial)
	rows := rowsFrom(res)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.saved {
		return
	}

	user := g.currentUser()
	if user == nil {
		g.pending = &PendingSessionData{
			Completion: completion,
			Rows:       rows,
			TakenAt:    time.Now(),
		}
		g.state = SavePending
		g.updateDraftLocked(res)
		g.logger.Debug("persist: holding anonymous snapshot", "rounds", len(rows))
		return
	}

	g.commitLocked(user, completion, rows)
}

// onAuthChange is the reconciliation trigger: a transition into the
// signed-in state promotes a pending anonymous snapshot into a remote
// commit. Safe against racing with the completion-triggered commit; the
// saved flag settles who wins.
func (g *Gateway) onAuthChange(u *auth.User) {
	if u == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.saved || g.pending == nil {
		return
	}
	g.commitLocked(u, g.pending.Completion, g.pending.Rows)
}

// commitLocked runs the remote commit sequence. Callers hold g.mu. On
// success the pending snapshot and the local draft are cleared; on
// failure both stay intact so a later trigger can still succeed.
func (g *Gateway) commitLocked(user *auth.User, completion Completion, rows []RoundRow) {
	g.state = SaveSaving

	if g.sessionID == 0 {
		id, err := g.store.CreateSession(user.ID)
		if err != nil {
			g.logger.Error("persist: cannot create session", "error", err)
			g.state = SaveFailed
			return
		}
		g.sessionID = id
	}

	if err := g.store.CompleteSession(g.sessionID, completion); err != nil {
		g.logger.Error("persist: cannot complete session", "error", err)
		g.state = SaveFailed
		return
	}
	if err := g.store.SaveRoundResults(g.sessionID, user.ID, rows); err != nil {
		g.logger.Error("persist: cannot save round results", "error", err)
		g.state = SaveFailed
		return
	}

	g.saved = true
	g.state = SaveSaved
	g.pending = nil
	if g.drafts != nil {
		if err := g.drafts.Clear(); err != nil {
			g.logger.Warn("persist: cannot clear draft", "error", err)
		}
	}
	g.logger.Info("persist: session committed", "session", g.sessionID, "user", user.ID, "rounds", len(rows))
}

// updateDraftLocked refreshes the durable anonymous record after a
// playlist-driven session so a restart resumes correctly. Random sessions
// leave no draft. Callers hold g.mu.
func (g *Gateway) updateDraftLocked(res session.Result) {
	if g.drafts == nil || res.PlaylistID == "" {
		return
	}

	rec := &AnonymousSessionRecord{
		CurrentPlaylistID: res.PlaylistID,
		CompletedRounds:   len(res.Rounds),
	}
	for _, r := range res.Rounds {
		rec.RoundScores = append(rec.RoundScores, DraftRound{
			GameID:      r.GameID,
			RoundNumber: r.RoundNum,
			Score:       r.Score.Final(),
			Grade:       r.Score.Grade,
		})
	}
	if err := g.drafts.Save(rec); err != nil {
		g.logger.Warn("persist: cannot write draft", "error", err)
	}
}

// ResumePlan consults the durable draft to decide what an anonymous
// player plays next: the in-progress playlist with the rounds already
// completed, or, once the draft's playlist is finished, the next stored
// playlist (advancing the draft to it). Signed-in players and empty
// drafts get no plan.
func (g *Gateway) ResumePlan() (string, []DraftRound) {
	if g.drafts == nil || g.currentUser() != nil {
		return "", nil
	}
	rec, err := g.drafts.Load()
	if err != nil || rec == nil || rec.CurrentPlaylistID == "" {
		return "", nil
	}

	pl, err := g.store.LoadPlaylist(rec.CurrentPlaylistID)
	if err != nil {
		g.logger.Warn("persist: draft playlist unavailable", "playlist", rec.CurrentPlaylistID, "error", err)
		return "", nil
	}

	if rec.CompletedRounds < len(pl.Rounds) {
		return rec.CurrentPlaylistID, rec.RoundScores
	}

	// Finished anonymously: advance to the next stored playlist.
	next, err := g.store.NextPlaylistID(rec.CurrentPlaylistID)
	if err != nil {
		g.logger.Warn("persist: cannot look up next playlist", "error", err)
		return "", nil
	}
	if next == "" {
		return "", nil
	}
	if err := g.drafts.Save(&AnonymousSessionRecord{CurrentPlaylistID: next}); err != nil {
		g.logger.Warn("persist: cannot advance draft", "error", err)
	}
	return next, nil
}

// DeclinePending drops the anonymous snapshot; the player chose not to
// save. The durable draft stays, it tracks playlist progress rather than
// this one commit.
func (g *Gateway) DeclinePending() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
	if g.state == SavePending {
		g.state = SaveIdle
	}
}

// Pending reports whether an anonymous snapshot is awaiting sign-in.
func (g *Gateway) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}

// State returns where the session's commit stands, for the UI.
func (g *Gateway) State() SaveState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// SessionID returns the remote session identity, or 0 when none was
// assigned yet.
func (g *Gateway) SessionID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID
}

func (g *Gateway) currentUser() *auth.User {
	if g.auth == nil {
		return nil
	}
	return g.auth.Current()
}

func completionFrom(res session.Result, partial bool) Completion {
	return Completion{
		Total:           res.Summary.Total,
		MaxPossible:     res.Summary.MaxPossible,
		Percentage:      res.Summary.Percentage,
		Grade:           res.Summary.Grade,
		RoundsPlayed:    res.Summary.Rounds,
		PlaytimeSeconds: res.PlaytimeSeconds,
		PlaylistID:      res.PlaylistID,
		Partial:         partial,
	}
}

func rowsFrom(res session.Result) []RoundRow {
	rows := make([]RoundRow, len(res.Rounds))
	for i, r := range res.Rounds {
		rows[i] = RoundRow{
			GameID:          r.GameID,
			PuzzleID:        r.PuzzleID,
			RoundNumber:     r.RoundNum,
			RawScore:        r.RawScore,
			MaxScore:        r.MaxScore,
			NormalizedScore: r.Score.Final(),
			Grade:           r.Score.Grade,
		}
	}
	return rows
}

var _ session.Persister = (*Gateway)(nil)
