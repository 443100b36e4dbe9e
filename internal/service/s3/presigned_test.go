package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mydoc/internal/domain"
)

func TestPresignedUpload(t *testing.T) {
	var gotBody []byte
	var gotType string
	var gotLength int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotType = r.Header.Get("Content-Type")
		gotLength = r.ContentLength
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	data := bytes.Repeat([]byte("x"), 4096)
	var totals []int64
	err := NewPresignedUploader(nil, time.Second*5, nil).Upload(context.Background(),
		domain.UploadTarget{URL: srv.URL + "/upload?X-Amz-Signature=abc"},
		bytes.NewReader(data), int64(len(data)), "image/png",
		func(total int64) { totals = append(totals, total) })

	require.NoError(t, err)
	assert.Equal(t, data, gotBody)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, int64(len(data)), gotLength)
	require.NotEmpty(t, totals)
	assert.Equal(t, int64(len(data)), totals[len(totals)-1])
	assert.IsNonDecreasing(t, totals)
}

func TestProgressReaderReportsRunningTotal(t *testing.T) {
	var totals []int64
	pr := newProgressReader(iotest.OneByteReader(strings.NewReader("abc")),
		func(total int64) { totals = append(totals, total) })

	_, err := io.Copy(io.Discard, pr)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, totals)
}

func TestPresignedUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "SignatureDoesNotMatch", http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewPresignedUploader(nil, 0, nil).Upload(context.Background(),
		domain.UploadTarget{URL: srv.URL}, bytes.NewReader([]byte("a")), 1, "text/plain", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpload)
	var uploadErr *domain.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, http.StatusForbidden, uploadErr.StatusCode)
}

func TestPresignedUploadExpired(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	err := NewPresignedUploader(nil, 0, nil).Upload(context.Background(),
		domain.UploadTarget{URL: "http://127.0.0.1:1/upload", ExpiresAt: &expired},
		bytes.NewReader(nil), 0, "", nil)

	assert.ErrorIs(t, err, domain.ErrUpload)
}

func TestPresignedUploadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewPresignedUploader(nil, time.Second, nil).Upload(context.Background(),
		domain.UploadTarget{URL: url}, bytes.NewReader([]byte("a")), 1, "", nil)

	assert.ErrorIs(t, err, domain.ErrUpload)
}
