package storage

import "context"

// ObjectStorage captures the minimal S3-compatible operations the backend
// needs for model artifacts and data exports.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte) error
	DownloadObject(ctx context.Context, key string) ([]byte, error)
}
