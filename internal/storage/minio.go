package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"medical-history-server/internal/apperrors"
)

// MinioStore keeps file bytes in a MinIO (or S3-compatible) bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore creates a MinIO-backed FileStore, creating the bucket if it
// does not exist yet.
func NewMinioStore(ctx context.Context, client *minio.Client, bucket string) (*MinioStore, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

// Write uploads the object under path.
func (s *MinioStore) Write(ctx context.Context, path string, data io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: put object %s: %v", apperrors.ErrStorage, path, err)
	}
	return nil
}

// Read fetches the object at path.
func (s *MinioStore) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get object %s: %v", apperrors.ErrStorage, path, err)
	}
	// GetObject is lazy; stat so a missing object fails here, not mid-stream.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, apperrors.NotFoundf("file bytes missing at %s", path)
		}
		return nil, fmt.Errorf("%w: stat object %s: %v", apperrors.ErrStorage, path, err)
	}
	return obj, nil
}

// Delete removes the object at path.
func (s *MinioStore) Delete(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove object %s: %v", apperrors.ErrStorage, path, err)
	}
	return nil
}
