package ports

import (
	"context"
	"time"
)

// ObjectStore is the blob storage used for images and library files.
type ObjectStore interface {
	// Put stores the upload under key and returns its public URL.
	Put(ctx context.Context, key string, upload Upload) (string, error)
	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
