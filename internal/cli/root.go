// Package cli wires the lingua command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/marufibnehossain/Language-Learning-Website/internal/daemon"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "Credit wallet and progress engine for the language learning app",
	Long: `lingua runs the backend for the language learning web app: the
credit wallet (daily refills, lesson spends, bonuses), server-side lesson
scoring, XP and streak tracking, and the course content store.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", daemon.DefaultPath(),
		"Path to the TOML config file")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (daemon.Config, error) {
	return daemon.Load(configPath)
}
