// Package blobstore keeps photo bytes in object storage, keyed by photo id.
package blobstore

import (
	"context"
	"io"
	"strconv"
)

type Store interface {
	Save(ctx context.Context, key string, r io.Reader, size int64) error
	// Fetch returns common.ErrorNotFound when nothing is stored under key.
	Fetch(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// PhotoKey is the object key of a photo's bytes.
func PhotoKey(photoID int64) string {
	return strconv.FormatInt(photoID, 10)
}
