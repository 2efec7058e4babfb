// Package storage holds the uploaded PDF originals. Objects are keyed
// by document ID; the database row points at the key.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
	"github.com/canusa-hub/knowledge-nexus/pkg/storage/minio"
	"github.com/canusa-hub/knowledge-nexus/pkg/storage/s3"
)

type Backend string

const (
	BackendS3    Backend = "s3"
	BackendMinio Backend = "minio"
)

// Storage is the blob store for uploaded documents.
type Storage interface {
	// Store writes the object and returns its key.
	Store(ctx context.Context, reader io.Reader, key string) (string, error)
	// Get streams the object. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object.
	Delete(ctx context.Context, key string) error
}

// New builds the configured storage backend.
func New(backend Backend, log logger.Logger) (Storage, error) {
	switch backend {
	case BackendS3:
		return s3.NewStorage(log)
	case BackendMinio:
		return minio.NewStorage(log)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
