package main

import (
	"encoding/json"
	"fmt"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct"
	"github.com/spf13/cobra"
)

var (
	presignOwner string
	presignFile  string
	presignType  string
)

var presignCmd = &cobra.Command{
	Use:   "presign",
	Short: "Issue a pre-signed upload URL for a workbook",
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

		up, err := svc.Presigner.UploadURL(cmd.Context(), presignOwner, presignFile, presignType)
		if err != nil {
			return err
		}
		data, err := json.Marshal(up)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	presignCmd.Flags().StringVar(&presignOwner, "owner", "", "Owner id")
	presignCmd.Flags().StringVar(&presignFile, "file", "", "File name")
	presignCmd.Flags().StringVar(&presignType, "type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "Content type")
}
