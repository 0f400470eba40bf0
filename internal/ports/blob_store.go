package ports

import "context"

// BlobStore persists opaque string blobs under logical keys. Missing keys
// surface as domain.ErrBlobNotFound; Delete of a missing key is not an error.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
