package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		endpoint string
		want     Location
		ok       bool
	}{
		{"s3 scheme", "s3://docs/users/a.txt", "", Location{"docs", "users/a.txt"}, true},
		{"virtual hosted", "https://docs.s3.amazonaws.com/a.txt", "", Location{"docs", "a.txt"}, true},
		{"virtual hosted regional", "https://docs.s3.eu-west-1.amazonaws.com/dir/a.txt", "", Location{"docs", "dir/a.txt"}, true},
		{"path style aws", "https://s3.eu-west-1.amazonaws.com/docs/a.txt", "", Location{"docs", "a.txt"}, true},
		{"custom endpoint", "http://minio:9000/docs/a b.txt", "http://minio:9000", Location{"docs", "a b.txt"}, true},
		{"other host", "https://cdn.example.com/docs/a.txt", "", Location{}, false},
		{"bucket only", "s3://docs/", "", Location{}, false},
		{"garbage", "::", "", Location{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLocation(tt.url, tt.endpoint)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsPresigned(t *testing.T) {
	assert.True(t, isPresigned("https://docs.s3.amazonaws.com/a.txt?X-Amz-Signature=abc&X-Amz-Expires=60"))
	assert.False(t, isPresigned("https://docs.s3.amazonaws.com/a.txt"))
}
