package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type StorageAPI interface {
	// GetFullPath returns where path actually lives (local path or s3:// URL)
	GetFullPath(path string) string
	// Save overwrites path with the content of reader
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
}

// For returns the storage and the storage relative path for an encodings target.
// Targets like s3://bucket/some/key go to S3, everything else is a local file.
func For(target string) (StorageAPI, string, error) {
	if bucket, key, ok := ParseS3Target(target); ok {
		s, err := NewS3Storage(bucket)
		if err != nil {
			return nil, "", err
		}
		return s, key, nil
	}
	if strings.HasPrefix(target, s3Scheme) {
		return nil, "", fmt.Errorf("invalid S3 target %q, expected s3://bucket/key", target)
	}
	dir, file := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	return NewDiskStorage(dir), file, nil
}
