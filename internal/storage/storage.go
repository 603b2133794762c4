// Package storage holds event poster blobs. Posters are written once
// at event creation or update and read through short-lived presigned
// URLs, so the database only ever stores the object key.
package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotFound indicates the requested object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrUnavailable indicates the backing store could not be reached
	// within the operation deadline.
	ErrUnavailable = errors.New("storage unavailable")
)

// BlobStore abstracts poster blob storage.
type BlobStore interface {
	// Put writes an object under key. contentType is stored with the
	// object and served back on reads.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// PresignGet returns a short-lived URL from which the object can
	// be fetched without credentials.
	PresignGet(ctx context.Context, key string) (string, error)

	// Delete removes an object. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
