package storage

import (
	"strings"
)

const s3Scheme = "s3://"

// ParseS3Target splits s3://bucket/path/to/key into bucket and key
func ParseS3Target(target string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(target, s3Scheme) {
		return "", "", false
	}
	bucket, key, found := strings.Cut(strings.TrimPrefix(target, s3Scheme), "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
