package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/player-core/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "player-core",
	Short: "Podcast player core server",
	Long: `Podcast Player Core - the playback and catalog engine behind the player

The server exposes podcast search and lookup, episode feed parsing, and a
single playback engine with durable resume positions over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// loadConfig initializes the configuration; commands that need settings call
// it from their RunE so version and help stay config-free.
func loadConfig() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
