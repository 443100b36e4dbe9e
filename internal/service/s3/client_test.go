package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mydoc/internal/domain"
)

func TestDownloadOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/objects/1" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := NewClient(Config{}, nil, nil)

	obj, err := client.Download(context.Background(), srv.URL+"/objects/1")
	require.NoError(t, err)
	defer obj.Close()
	body, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "text/plain", obj.ContentType())
	assert.Equal(t, int64(5), obj.ContentLength())

	_, err = client.Download(context.Background(), srv.URL+"/objects/2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadRequiresCredentialsForS3Scheme(t *testing.T) {
	_, err := NewClient(Config{}, nil, nil).Download(context.Background(), "s3://docs/a.txt")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewClient(Config{}, nil, nil).Download(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDownloadThroughS3API(t *testing.T) {
	var authorized bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorized = strings.HasPrefix(r.Header.Get("Authorization"), "AWS4-HMAC-SHA256")
		switch r.URL.Path {
		case "/docs/users/a.txt":
			w.Header().Set("Content-Type", "text/plain")
			w.Header().Set("Content-Length", "2")
			w.Write([]byte("hi"))
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
		}
	}))
	defer srv.Close()

	client := NewClient(Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		UsePathStyle:    true,
	}, nil, nil)

	obj, err := client.Download(context.Background(), srv.URL+"/docs/users/a.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(obj)
	obj.Close()
	require.NoError(t, err)
	assert.Equal(t, "hi", string(body))
	assert.Equal(t, "text/plain", obj.ContentType())
	assert.True(t, authorized)

	_, err = client.Download(context.Background(), "s3://docs/missing.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Region: "us-east-1"}.Validate())
	assert.Error(t, Config{Region: "us-east-1", AccessKeyID: "key"}.Validate())
	assert.Error(t, Config{}.Validate())
}
