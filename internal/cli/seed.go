package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/marufibnehossain/Language-Learning-Website/internal/content"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter Spanish course into storage",
	Long: `Load the bundled beginner Spanish course. Safe to re-run: content
rows are refreshed in place and user data is never touched.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := content.Seed(db); err != nil {
		return err
	}
	log.Print("starter course seeded")
	return nil
}
