package ports

import (
	"context"
	"io"
)

// Upload is a single file received at the asset upload boundary.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// BlobStore abstracts the content store backing uploaded assets. Implementations
// exist for the local filesystem and for MinIO.
type BlobStore interface {
	Put(ctx context.Context, name string, upload Upload) error
	// Remove deletes the named blob. Removing an absent blob is a success.
	Remove(ctx context.Context, name string) error
}
