package storage

import (
	"context"
	"io"
)

// ImageStore abstracts the object store that holds car images. Upload returns
// the publicly reachable URL of the stored object.
type ImageStore interface {
	EnsureBucket(ctx context.Context) error
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a URL previously returned by Upload back to its object
	// key, or "" when the URL does not belong to this store.
	KeyFromURL(url string) string
}
