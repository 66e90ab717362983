package kpistruct

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/index"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/storage"
)

// ContentTypeCSV is the content type of the training export.
const ContentTypeCSV = "text/csv"

// Lister returns indexed records ordered by owner then period.
type Lister interface {
	List(ctx context.Context) ([]index.Entry, error)
}

// ExportTraining writes the forecast training CSV built from the index to
// bucket/key and returns the number of data rows written.
func ExportTraining(ctx context.Context, idx Lister, store storage.ObjectStore, bucket, key string) (int, error) {
	entries, err := idx.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list indexed records: %w", err)
	}

	rows := index.BuildTrainingRows(entries)
	var buf bytes.Buffer
	if err := index.WriteTrainingCSV(&buf, rows); err != nil {
		return 0, fmt.Errorf("encode training data: %w", err)
	}

	if err := store.Put(ctx, bucket, key, buf.Bytes(), ContentTypeCSV); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrPersistence, key, err)
	}
	return len(rows), nil
}
