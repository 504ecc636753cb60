package ports

import (
	"context"
	"io"
)

// ImageStore uploads gallery images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
}
