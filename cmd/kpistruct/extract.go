package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const localBucket = "local"

var (
	ownerID    string
	storeDir   string
	outputPath string
	pretty     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <input.xlsx>",
	Short: "Extract a KPI record from a local workbook",
	Long: `extract runs the pipeline against a directory-backed object store. The
workbook is copied to <store>/local/<owner>/<file> and the record is written
to <store>/local/processed/<owner>/<name>.json. Embedding is not attempted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ownerID == "" {
			return errors.New("--owner is required")
		}

		dir := storeDir
		if dir == "" {
			tmp, err := os.MkdirTemp("", "kpistruct-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmp)
			dir = tmp
		}

		data, err := extractLocal(cmd.Context(), storage.NewFSStore(dir), args[0], ownerID, logger)
		if err != nil {
			return err
		}

		if outputPath != "" {
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&ownerID, "owner", "", "Owner id used as the first key segment")
	extractCmd.Flags().StringVar(&storeDir, "store", "", "Directory backing the object store (default: a temp dir)")
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
}

// extractLocal stages inputPath in store and returns the encoded KPI record.
func extractLocal(ctx context.Context, store storage.ObjectStore, inputPath, owner string, logger *zap.Logger) ([]byte, error) {
	body, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	key := owner + "/" + filepath.Base(inputPath)
	if err := store.Put(ctx, localBucket, key, body, ""); err != nil {
		return nil, err
	}

	cfg := kpistruct.DefaultConfig()
	cfg.BucketName = localBucket

	res, err := kpistruct.NewExtractor(store, cfg, kpistruct.WithLogger(logger)).Run(ctx, localBucket, key)
	if err != nil {
		return nil, err
	}
	if res.Status == kpistruct.StatusSkipped {
		return nil, fmt.Errorf("not an .xlsx file: %s", inputPath)
	}

	if pretty {
		return json.MarshalIndent(res.Record, "", "  ")
	}
	return json.Marshal(res.Record)
}
