package adapter

import (
	"context"
	"time"
)

type ObjectInfo struct {
	Path      string
	Size      int64
	CreatedAt time.Time
}

// ObjectStore is the port for the S3-compatible asset bucket.
type ObjectStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	Get(ctx context.Context, path string) (data []byte, contentType string, err error)
	Delete(ctx context.Context, path string) error

	// ListFolders returns the top-level folder names of the bucket.
	ListFolders(ctx context.Context) ([]string, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// PublicURL maps a storage path to its public CDN URL.
	PublicURL(path string) string
}
