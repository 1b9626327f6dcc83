package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gauntlet-arcade/internal/auth"
	"gauntlet-arcade/internal/config"
	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/persist"
	"gauntlet-arcade/internal/platform/tui"
	"gauntlet-arcade/internal/registry"
	"gauntlet-arcade/internal/scoring"
	"gauntlet-arcade/internal/session"
)

var (
	flagConfig   string
	flagRounds   int
	flagPlaylist string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run an arcade session",
	Long: `Start a session of mini-game rounds.

Without --playlist, games are drawn randomly from the catalog with no
repeats until every game has been played. With --playlist, the stored
playlist dictates the round order and any pinned puzzles.

Controls:
  Arrows/WASD  - Move
  Space/Enter  - Primary action
  1-4          - Answer selection
  Tab          - Skip the current round
  Esc          - Quit (saves completed rounds)

Examples:
  gauntlet play
  gauntlet play --rounds 3
  gauntlet play --playlist daily-7
  gauntlet play --seed 42 --config ./session.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom session config YAML")
	playCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Rounds per session (0 = config default)")
	playCmd.Flags().StringVar(&flagPlaylist, "playlist", "", "Playlist ID for a curated session")
}

func runPlay(cmd *cobra.Command, args []string) {
	sessionCfg, err := config.LoadSession(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagRounds > 0 {
		sessionCfg.Rounds.PerSession = flagRounds
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	authSvc, err := auth.NewService("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	drafts, err := persist.NewDraftStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gateway := persist.NewGateway(store, drafts, authSvc, nil)

	// A guest who quit mid-playlist resumes past the completed rounds; a
	// guest who finished one moves on to the next stored playlist.
	playlistID := flagPlaylist
	var resume []session.RoundRecord
	if playlistID == "" {
		var completed []persist.DraftRound
		playlistID, completed = gateway.ResumePlan()
		resume = resumeRecords(completed)
	}

	err = tui.RunSession(tui.SessionOptions{
		Config:     sessionCfg,
		Runtime:    rt,
		Store:      store,
		Gateway:    gateway,
		Auth:       authSvc,
		PlaylistID: playlistID,
		Resume:     resume,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", err)
		os.Exit(1)
	}
}

// resumeRecords rebuilds session round records from the draft's rounds.
// The draft keeps only the normalized outcome; names come back from the
// registry.
func resumeRecords(rounds []persist.DraftRound) []session.RoundRecord {
	records := make([]session.RoundRecord, 0, len(rounds))
	for _, r := range rounds {
		rec := session.RoundRecord{
			GameID:   r.GameID,
			RoundNum: r.RoundNumber,
			Score: scoring.GameScore{
				NormalizedScore: r.Score,
				Grade:           r.Grade,
			},
		}
		if slug, ok := registry.SlugForID(r.GameID); ok {
			rec.GameSlug = slug
			rec.Score.GameSlug = slug
			if info, found := registry.Lookup(slug); found {
				rec.GameName = info.Title
				rec.Score.GameName = info.Title
			}
		}
		records = append(records, rec)
	}
	return records
}
