package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gauntlet-arcade/internal/config"
	"gauntlet-arcade/internal/platform/tui"
)

var (
	flagSSHAddr    string
	flagSSHHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host arcade sessions over SSH",
	Long: `Start an SSH server that runs a session for each connecting player.
The SSH username is the player identity, so remote sessions commit
their results directly.

Example:
  gauntlet serve --ssh :23234
  ssh -p 23234 grace@localhost`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "Address to listen on")
	serveCmd.Flags().StringVar(&flagSSHHostKey, "host-key", "", "Path to host key (auto-generated if empty)")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom session config YAML")
}

func runServe(cmd *cobra.Command, args []string) {
	sessionCfg, err := config.LoadSession(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = flagSSHHostKey
	srvCfg.DBPath = flagDBPath

	server, err := tui.NewSSHServer(srvCfg, sessionCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
