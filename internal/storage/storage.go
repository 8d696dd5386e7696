// Package storage persists uploaded file content. Backends: an S3-compatible
// bucket through MinIO and a simulated IPFS node.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size is the exact number of bytes, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object. Key is what later Get/Delete calls take.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a content store addressed by key.
type Storage interface {
	// Put stores the content read from r. The returned Key may differ from
	// key for content-addressed backends.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a URL the content can be fetched from without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
