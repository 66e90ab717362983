package main

import (
	"fmt"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sourceBucket string

var processCmd = &cobra.Command{
	Use:   "process <key>",
	Short: "Process one uploaded object as if an event had arrived for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := kpistruct.NewServices(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		bucket := sourceBucket
		if bucket == "" {
			bucket = cfg.BucketName
		}

		res, err := svc.Extractor(cfg, logger).Run(cmd.Context(), bucket, args[0])
		if err != nil {
			return err
		}
		logger.Debug("Run finished", zap.String("run_id", res.RunID), zap.String("embedding", res.Embedding.String()))

		if res.Status == kpistruct.StatusSkipped {
			fmt.Fprintln(cmd.OutOrStdout(), "skipped:", args[0])
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.ProcessedKey)
		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&sourceBucket, "bucket", "", "Bucket holding the upload (default: the configured bucket)")
}
