package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"mydoc/internal/domain"
	"mydoc/internal/logger"
)

const downloadTimeout = 10 * time.Minute

// Client downloads document bytes. Storage URLs that address an S3 bucket go
// through the S3 API when credentials are configured; everything else is
// fetched over plain HTTP.
type Client struct {
	s3       *s3.Client
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient creates a download client. httpClient may be nil.
func NewClient(conf Config, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: downloadTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{endpoint: conf.Endpoint, http: httpClient, logger: log}
	if !conf.HasCredentials() {
		return c
	}

	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		conf.AccessKeyID,
		conf.SecretAccessKey,
		"",
	))
	opts := s3.Options{
		Region:           conf.Region,
		Credentials:      creds,
		UsePathStyle:     conf.UsePathStyle,
		RetryMode:        aws.RetryModeAdaptive,
		RetryMaxAttempts: 3,
		HTTPClient:       httpClient,
	}
	if conf.Endpoint != "" {
		opts.BaseEndpoint = aws.String(conf.Endpoint)
	}
	c.s3 = s3.New(opts)
	return c
}

// Download opens the object behind storageURL. The caller closes it.
func (c *Client) Download(ctx context.Context, storageURL string) (Object, error) {
	if storageURL == "" {
		return nil, &domain.ValidationError{Field: "storageUrl", Err: errors.New("document has no storage URL")}
	}
	loc, isS3 := ParseLocation(storageURL, c.endpoint)
	switch {
	case isS3 && c.s3 != nil && !isPresigned(storageURL):
		return c.getObject(ctx, loc)
	case strings.HasPrefix(storageURL, "s3://"):
		return nil, &domain.ValidationError{Field: "storageUrl", Err: errors.New("s3 credentials are not configured")}
	}
	return c.httpGet(ctx, storageURL)
}

func (c *Client) getObject(ctx context.Context, loc Location) (Object, error) {
	c.logger.Debug("s3 get object",
		zap.String(logger.FieldBucket, loc.Bucket),
		zap.String(logger.FieldKey, loc.Key))

	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, &domain.NotFoundError{Resource: "object", ID: loc.Bucket + "/" + loc.Key}
		}
		return nil, &domain.NetworkError{Op: "download", Err: errors.Wrap(err, "s3 get object")}
	}

	return &object{
		ReadCloser:    result.Body,
		contentLength: aws.ToInt64(result.ContentLength),
		contentType:   aws.ToString(result.ContentType),
	}, nil
}

func (c *Client) httpGet(ctx context.Context, storageURL string) (Object, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, storageURL, nil)
	if err != nil {
		return nil, &domain.ValidationError{Field: "storageUrl", Err: errors.Wrap(err, "build download request")}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Op: "download", Err: errors.Wrap(err, "http get")}
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, &domain.NotFoundError{Resource: "object", ID: storageURL}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		resp.Body.Close()
		return nil, &domain.NetworkError{
			Op:         "download",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %d: %s", resp.StatusCode, string(body)),
		}
	}
	return &object{
		ReadCloser:    resp.Body,
		contentLength: resp.ContentLength,
		contentType:   resp.Header.Get("Content-Type"),
	}, nil
}
