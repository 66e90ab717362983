package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSStore is an ObjectStore over a local directory. Objects live at
// <root>/<bucket>/<key>. It backs local runs of the extractor.
type FSStore struct {
	root string
}

var _ ObjectStore = (*FSStore)(nil)

// NewFSStore creates a store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{root: dir}
}

func (s *FSStore) path(bucket, key string) (string, error) {
	rel := filepath.Join(bucket, filepath.FromSlash(key))
	if !filepath.IsLocal(rel) || strings.TrimSpace(bucket) == "" {
		return "", fmt.Errorf("invalid object path %q/%q", bucket, key)
	}
	return filepath.Join(s.root, rel), nil
}

// Get reads the object file.
func (s *FSStore) Get(_ context.Context, bucket, key string) ([]byte, error) {
	p, err := s.path(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty object %s", ErrNotFound, p)
	}
	return data, nil
}

// Put writes the object file, creating parent directories. The content type
// is not recorded.
func (s *FSStore) Put(_ context.Context, bucket, key string, body []byte, _ string) error {
	p, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	return os.WriteFile(p, body, 0644)
}
