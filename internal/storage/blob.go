// Package storage holds the file-blob store for document bytes. The blob
// store is addressed by object key and offers no transactional guarantee
// with the relational store; the ingest service owns the compensating
// cleanup when the two disagree.
package storage

import (
	"context"
	"io"
)

// BlobStore reads and writes document bytes by object key.
type BlobStore interface {
	// Put writes an object. size may be -1 when unknown.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Get opens an object for reading. The caller closes the returned
	// reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
