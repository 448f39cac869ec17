// Package storage provides a thin interface over S3-compatible object
// storage. Menu images live in a public-read bucket; the only hot-path
// operation is resolving a stored object path into its public URL, which is
// pure string construction with no network round-trip.
package storage

import (
	"context"
	"io"
)

// Service defines the object storage operations the application uses.
type Service interface {
	// PublicURL resolves an object path inside a bucket to its publicly
	// reachable URL. Deterministic, no network call.
	PublicURL(bucket, objectPath string) string

	// UploadFile uploads an object from an io.Reader and returns the object
	// path used for storage.
	UploadFile(ctx context.Context, bucket, objectPath, contentType string, reader io.Reader, size int64) (string, error)

	// EnsureBucketExists creates the bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context, bucket string) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	IsMinIOEnabled() bool
}
