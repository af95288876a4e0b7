package ports

import (
	"context"
	"io"
)

// Upload is a file handed to the blob store.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// BlobStore stores uploaded files and returns their public URL.
// Rejections name the file in an errs.UpstreamFailureError. Delete removes a
// file by the URL Upload returned; a missing file is not an error.
type BlobStore interface {
	Upload(ctx context.Context, file Upload) (publicURL string, err error)
	Delete(ctx context.Context, publicURL string) error
}
