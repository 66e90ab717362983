package main

import (
	"errors"
	"fmt"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportTrainingCmd = &cobra.Command{
	Use:   "export-training",
	Short: "Write the forecast training CSV built from the KPI index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for export-training")
		}
		svc, err := kpistruct.NewServices(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		n, err := kpistruct.ExportTraining(cmd.Context(), svc.Index, svc.Store, cfg.BucketName, cfg.TrainingKey)
		if err != nil {
			return err
		}
		logger.Info("Training data exported", zap.String("key", cfg.TrainingKey), zap.Int("rows", n))
		fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s (%d rows)\n", cfg.BucketName, cfg.TrainingKey, n)
		return nil
	},
}
