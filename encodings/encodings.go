// Package encodings reads and writes the serialized face encodings artifact.
package encodings

import (
	"bytes"
	"encodefaces/config"
	"encodefaces/models"
	"encodefaces/storage"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const compressedSuffix = ".zst"

func Marshal(ds *models.Dataset) ([]byte, error) {
	return ds.MarshalMsg(nil)
}

func Unmarshal(data []byte) (*models.Dataset, error) {
	ds := &models.Dataset{}
	if _, err := ds.UnmarshalMsg(data); err != nil {
		return nil, err
	}
	return ds, nil
}

func compressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), compressedSuffix)
}

// Save serializes ds to path, overwriting whatever was there.
// Paths ending with .zst are zstd compressed.
func Save(store storage.StorageAPI, path string, ds *models.Dataset) error {
	data, err := Marshal(ds)
	if err != nil {
		return fmt.Errorf("serializing encodings: %w", err)
	}
	if compressed(path) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(config.ZSTD_LEVEL)))
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	if _, err = store.Save(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", store.GetFullPath(path), err)
	}
	return nil
}

func Load(store storage.StorageAPI, path string) (*models.Dataset, error) {
	buf := bytes.Buffer{}
	if _, err := store.Load(path, &buf); err != nil {
		return nil, fmt.Errorf("reading %s: %w", store.GetFullPath(path), err)
	}
	data := buf.Bytes()
	if compressed(path) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", store.GetFullPath(path), err)
		}
	}
	ds, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("deserializing %s: %w", store.GetFullPath(path), err)
	}
	return ds, nil
}
