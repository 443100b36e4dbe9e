package domain

import (
	"io"
	"time"
)

// FileUpload is a local file selected for upload.
type FileUpload struct {
	Name     string
	MIMEType string
	Size     int64
	Content  io.Reader
}

// UploadTarget is the presigned URL the service hands out for a new file's bytes.
type UploadTarget struct {
	URL       string
	ExpiresAt *time.Time
}
