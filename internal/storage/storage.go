package storage

import (
	"context"
	"io"
)

// ObjectStore is the interface the media upload path consumes. Uploaded
// objects are addressed by a room-scoped key and resolve to a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	PublicURL(key string) string
}
