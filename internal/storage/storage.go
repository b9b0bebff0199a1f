// Package storage contains blob storage abstractions for uploaded document
// content. Implementations stream content and never buffer whole objects.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotExist is returned by Get and Exists-aware operations when no blob is
// stored under the requested key. Delete treats a missing blob as success.
var ErrNotExist = errors.New("object does not exist")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob store contract shared by the S3-compatible and
// local-disk backends. Implementations must be safe for concurrent use.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its
	// info. A missing key yields ErrNotExist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is stored under the key.
	Exists(ctx context.Context, key string) (bool, error)
}
