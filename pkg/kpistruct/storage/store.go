// Package storage provides the object stores the extractor reads workbooks
// from and writes KPI records to.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates the object is absent or empty.
var ErrNotFound = errors.New("object not found")

// ContentTypeJSON is the content type of persisted KPI records.
const ContentTypeJSON = "application/json"

// ObjectStore reads and writes whole objects.
type ObjectStore interface {
	// Get returns the object's bytes, or ErrNotFound if it is absent or empty.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// Put writes the object, replacing any existing one.
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}
