package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ChartBalance/internal/config"
	"ChartBalance/internal/logging"
)

var cfgPath string

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "chartbalance",
	Short: "Score the elemental and modal balance of a natal chart report",
	Long: `chartbalance reads the text extracted from a natal chart report, locates the
sign of each of the eight traditional points and reports how the weighted
points distribute over the four elements and three qualities.`,
	SilenceUsage: true,
}

func init() {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "Path to YAML config (or set CONFIG_PATH env)")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadRuntime loads and validates the config, then builds the logger from it.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
