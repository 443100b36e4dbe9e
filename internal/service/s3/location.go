package s3

import (
	"net/url"
	"strings"
)

// Location is a bucket/key pair addressed by a storage URL.
type Location struct {
	Bucket string
	Key    string
}

// ParseLocation extracts the bucket and key from s3://bucket/key URLs,
// virtual-hosted AWS URLs and path-style URLs on the configured endpoint.
// ok is false when the URL does not address an S3 object.
func ParseLocation(rawURL, endpoint string) (loc Location, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Location{}, false
	}
	if u.Scheme == "s3" {
		return newLocation(u.Host, strings.TrimPrefix(u.Path, "/"))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Location{}, false
	}

	host := u.Hostname()
	if endpoint != "" {
		if e, err := url.Parse(endpoint); err == nil && strings.EqualFold(e.Hostname(), host) {
			return pathStyle(u.Path)
		}
	}
	if !strings.HasSuffix(host, ".amazonaws.com") {
		return Location{}, false
	}
	// bucket.s3.amazonaws.com, bucket.s3.<region>.amazonaws.com, bucket.s3-<region>.amazonaws.com
	if i := strings.Index(host, ".s3"); i > 0 {
		return newLocation(host[:i], strings.TrimPrefix(u.Path, "/"))
	}
	if strings.HasPrefix(host, "s3.") || strings.HasPrefix(host, "s3-") {
		return pathStyle(u.Path)
	}
	return Location{}, false
}

func pathStyle(p string) (Location, bool) {
	bucket, key, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	return newLocation(bucket, key)
}

func newLocation(bucket, key string) (Location, bool) {
	if bucket == "" || key == "" {
		return Location{}, false
	}
	return Location{Bucket: bucket, Key: key}, true
}

// isPresigned reports whether the URL already carries a request signature.
func isPresigned(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	q := u.Query()
	return q.Get("X-Amz-Signature") != "" || q.Get("Signature") != ""
}
