// Package main provides the CLI entry point for kpistruct-go.
package main

import (
	"fmt"
	"os"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kpistruct",
	Short: "Extract KPI records from financial workbooks",
	Long: `kpistruct-go reads balance sheet and profit-and-loss workbooks uploaded
to object storage, derives financial ratios and writes a JSON KPI record
under the processed/ prefix.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (env vars override it)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(lambdaCmd, processCmd, extractCmd, presignCmd, exportTrainingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (kpistruct.Config, error) {
	cfg, err := kpistruct.LoadConfig(configPath)
	if err != nil {
		return kpistruct.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
