package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lmic-api",
	Short: "Labor-market spatial statistics API",
	Long:  "Serves occupation, school-of-study, wage, and isochrone data for Dallas-area census tracts as GeoJSON, backed by PostGIS.",
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
