package storage

import (
	"context"
	"io"
)

// FileStore holds the bytes of uploaded files. Metadata rows reference
// objects by path; the store never sees database ids.
type FileStore interface {
	Write(ctx context.Context, path string, data io.Reader, size int64, contentType string) error
	Read(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
