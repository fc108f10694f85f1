package ports

import (
	"context"
	"io"
)

// ObjectStorage stores profile images and returns a public URL for the
// stored object.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (publicURL string, err error)
}
