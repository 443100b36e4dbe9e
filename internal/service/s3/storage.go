package s3

import (
	"context"
	"io"

	"mydoc/internal/domain"
)

// Object is a downloaded object body with its metadata.
type Object interface {
	io.ReadCloser
	ContentLength() int64
	ContentType() string
}

type object struct {
	io.ReadCloser
	contentLength int64
	contentType   string
}

func (o *object) ContentLength() int64 {
	return o.contentLength
}

func (o *object) ContentType() string {
	return o.contentType
}

// ProgressFunc receives the total number of bytes sent so far.
type ProgressFunc func(n int64)

// Uploader puts file bytes at a presigned upload target.
type Uploader interface {
	Upload(ctx context.Context, target domain.UploadTarget, content io.Reader, size int64, contentType string, progress ProgressFunc) error
}

// Downloader fetches the bytes behind a document storage URL.
type Downloader interface {
	Download(ctx context.Context, storageURL string) (Object, error)
}
