package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gauntlet-arcade/internal/playlist"
)

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "Import and list curated playlists",
	Long: `Manage the curated playlists stored in the database.

A playlist YAML names an ordered set of rounds, each by numeric game ID
or slug, optionally pinning puzzle IDs:

  id: daily-7
  name: Daily Gauntlet 7
  rounds:
    - round_number: 1
      game_slug: oddone
      puzzle_ids: [metals-1, gems-1]
    - round_number: 2
      game_id: 1

Examples:
  gauntlet playlists import ./daily-7.yaml
  gauntlet playlists list`,
}

var playlistsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import a playlist YAML into the store",
	Args:  cobra.ExactArgs(1),
	Run:   runPlaylistsImport,
}

var playlistsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored playlists",
	Run:   runPlaylistsList,
}

func init() {
	playlistsCmd.AddCommand(playlistsImportCmd)
	playlistsCmd.AddCommand(playlistsListCmd)
}

func runPlaylistsImport(cmd *cobra.Command, args []string) {
	pl, err := playlist.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.ImportPlaylist(pl); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported playlist %q (%d rounds).\n", pl.ID, len(pl.Rounds))
	fmt.Printf("Run 'gauntlet play --playlist %s' to play it.\n", pl.ID)
}

func runPlaylistsList(cmd *cobra.Command, args []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	infos, err := store.ListPlaylists()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(infos) == 0 {
		fmt.Println("No playlists stored. Import one with 'gauntlet playlists import'.")
		return
	}

	fmt.Println("Stored playlists:")
	fmt.Println()
	for _, info := range infos {
		name := info.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  %-16s  %-24s  %d rounds\n", info.ID, name, info.Rounds)
	}
}
