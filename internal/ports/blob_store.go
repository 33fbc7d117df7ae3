package ports

import "context"

// BlobStore keeps attachment binaries remotely and hands back a URL
type BlobStore interface {
	Delete(ctx context.Context, key string) error
	// List returns the keys stored under prefix
	List(ctx context.Context, prefix string) ([]string, error)
	Upload(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
}
