package storage

import (
	"context"
	"io"
)

// Store persists uploaded images and returns a public URL for each one.
// The backing object store is an external collaborator; the rest of the
// system only ever sees URLs.
type Store interface {
	// Upload writes the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
