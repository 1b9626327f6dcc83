package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gauntlet-arcade/internal/registry"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the mini-game catalog",
	Long:  `Shows every mini-game registered in the arcade with its stable ID.`,
	Run:   runGames,
}

func runGames(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxSlugLen := 4 // "Slug" header
	for _, g := range games {
		if len(g.Slug) > maxSlugLen {
			maxSlugLen = len(g.Slug)
		}
	}

	fmt.Printf("  %3s  %-*s  %s\n", "ID", maxSlugLen, "Slug", "Title")
	fmt.Printf("  %3s  %-*s  %s\n", "--", maxSlugLen, "----", "-----")
	for _, g := range games {
		fmt.Printf("  %3d  %-*s  %s\n", g.NumericID, maxSlugLen, g.Slug, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'gauntlet play' to draw a session from the catalog.")
}
