package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"medical-history-server/internal/apperrors"
)

// LocalStore keeps file bytes on the local filesystem.
type LocalStore struct{}

// NewLocalStore creates a filesystem-backed FileStore.
func NewLocalStore() *LocalStore {
	return &LocalStore{}
}

// Write streams data to path, creating parent directories as needed.
func (s *LocalStore) Write(_ context.Context, path string, data io.Reader, _ int64, _ string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create directory for %s: %v", apperrors.ErrStorage, path, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", apperrors.ErrStorage, path, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", apperrors.ErrStorage, path, err)
	}
	return nil
}

// Read opens the file at path.
func (s *LocalStore) Read(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFoundf("file bytes missing at %s", path)
		}
		return nil, fmt.Errorf("%w: open %s: %v", apperrors.ErrStorage, path, err)
	}
	return f, nil
}

// Delete removes the file at path. A missing file is not an error.
func (s *LocalStore) Delete(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: delete %s: %v", apperrors.ErrStorage, path, err)
	}
	return nil
}
