package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gauntlet-arcade/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Sign in so future sessions save under your name",
	Long: `Sign in with a player name. Signed-in sessions commit their results
to the database as they finish; anonymous playlist sessions are held as
a draft until you sign in.

Example:
  gauntlet login grace`,
	Args: cobra.ExactArgs(1),
	Run:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out the current player",
	Run:   runLogout,
}

func runLogin(cmd *cobra.Command, args []string) {
	name := strings.TrimSpace(args[0])
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: player name must not be empty")
		os.Exit(1)
	}

	svc, err := auth.NewService("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	user, err := svc.SignIn(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Signed in as %s.\n", user.Name)
}

func runLogout(cmd *cobra.Command, args []string) {
	svc, err := auth.NewService("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if svc.Current() == nil {
		fmt.Println("Not signed in.")
		return
	}
	if err := svc.SignOut(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Signed out.")
}
