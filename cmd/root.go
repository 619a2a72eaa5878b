package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "choropleth",
	Short: "US county education choropleth generator",
	Long:  "Fetches the US counties topology and county education statistics, joins them by FIPS code, buckets each county into a 9-class color scale, and writes a static HTML/SVG map or a classified export.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		zap.ReplaceGlobals(zap.L().With(zap.String("run_id", uuid.NewString())))

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		if cfg != nil {
			zap.L().Error("command failed", zap.Error(err))
			_ = zap.L().Sync()
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
