package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hirelens/incentive-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "incentive-cli",
	Short: "Job listing incentive extraction pipeline",
	Long:  "Reads scraped job listings, extracts benefit phrases via Claude, classifies them against the incentive taxonomy with sentence embeddings, normalizes locations and employment terms, and upserts the rows into the jobs database.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
