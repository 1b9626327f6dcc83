// gauntlet is a multi-round mini-game arcade for the terminal.
//
// Usage:
//
//	gauntlet play                 - Run a random-draw session
//	gauntlet play --playlist ID   - Run a curated playlist session
//	gauntlet games                - List the mini-game catalog
//	gauntlet history              - Show past committed sessions
//	gauntlet playlists            - Import and list playlists
//	gauntlet login <name>         - Sign in (enables remote commits)
//	gauntlet logout               - Sign out
//	gauntlet serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible sessions
//	--db <path>     - Set database path (default: ~/.gauntlet/gauntlet.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gauntlet-arcade/internal/registry"
	"gauntlet-arcade/internal/storage"

	// Import games to register them
	_ "gauntlet-arcade/internal/games/anagram"
	_ "gauntlet-arcade/internal/games/drift"
	_ "gauntlet-arcade/internal/games/fruitfall"
	_ "gauntlet-arcade/internal/games/oddone"
	_ "gauntlet-arcade/internal/games/stacker"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gauntlet",
	Short: "Gauntlet - a multi-round mini-game arcade in your terminal",
	Long: `Gauntlet runs sessions of quick mini-games: each round hosts one game,
raw scores are normalized onto a shared 0-100 scale with grades and time
bonuses, and the session total accumulates across rounds.

Play anonymously and your results are held locally until you sign in, or
sign in first and every session commits as it completes.

Available commands:
  play       - Run a session (random draw or curated playlist)
  games      - Show the mini-game catalog
  history    - View past committed sessions
  playlists  - Import and list curated playlists
  login      - Sign in for remote commits
  logout     - Sign out
  serve      - Start SSH server for remote play

Examples:
  gauntlet play
  gauntlet play --rounds 3
  gauntlet play --playlist daily-7
  gauntlet playlists import ./daily-7.yaml
  gauntlet serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to sessions database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(playlistsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(serveCmd)
}

// openStore opens the sessions database and syncs the game catalog so
// stored rows stay joinable to display names.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string)
	for _, info := range registry.List() {
		names[info.NumericID] = info.Title
	}
	if err := store.SyncGameCatalog(names); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
