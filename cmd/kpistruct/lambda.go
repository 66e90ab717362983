package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct"
	"github.com/spf13/cobra"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve S3 object-created events as an AWS Lambda function",
	Args:  cobra.NoArgs,
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

		h := kpistruct.NewHandler(svc.Extractor(cfg, logger), cfg.Concurrency, logger)
		lambda.Start(h.Handle)
		return nil
	},
}
