package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"mydoc/internal/domain"
	"mydoc/internal/logger"
)

const defaultUploadTimeout = 10 * time.Minute

// PresignedUploader sends file bytes to presigned PUT URLs handed out by the
// document service.
type PresignedUploader struct {
	http   *http.Client
	logger *zap.Logger
}

// NewPresignedUploader creates an uploader. httpClient may be nil.
func NewPresignedUploader(httpClient *http.Client, timeout time.Duration, log *zap.Logger) *PresignedUploader {
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PresignedUploader{http: httpClient, logger: log}
}

// Upload PUTs size bytes from content to the target URL with the given
// Content-Type. Any failure is reported as a domain.UploadError.
func (u *PresignedUploader) Upload(ctx context.Context, target domain.UploadTarget, content io.Reader, size int64, contentType string, progress ProgressFunc) error {
	if target.URL == "" {
		return &domain.UploadError{Err: errors.New("empty upload URL")}
	}
	if target.ExpiresAt != nil && time.Now().After(*target.ExpiresAt) {
		return &domain.UploadError{Err: errors.Errorf("upload URL expired at %s", target.ExpiresAt.Format(time.RFC3339))}
	}

	var body io.Reader = http.NoBody
	if size > 0 {
		body = content
		if progress != nil {
			body = newProgressReader(content, progress)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.URL, body)
	if err != nil {
		return &domain.UploadError{Err: errors.Wrap(err, "build upload request")}
	}
	req.ContentLength = size
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := u.http.Do(req)
	if err != nil {
		return &domain.UploadError{Err: errors.Wrap(err, "put object")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &domain.UploadError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	u.logger.Debug("object uploaded",
		zap.Int64(logger.FieldSize, size),
		zap.String(logger.FieldContentType, contentType),
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return nil
}

// progressReader reports the running total after every chunk read from the
// wrapped reader.
type progressReader struct {
	reader   io.Reader
	reporter ProgressFunc
	read     int64
}

func newProgressReader(reader io.Reader, reporter ProgressFunc) *progressReader {
	return &progressReader{reader: reader, reporter: reporter}
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	if n > 0 {
		pr.read += int64(n)
		pr.reporter(pr.read)
	}
	return
}
