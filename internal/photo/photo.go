// Package photo stores product photos. Storage is best-effort with respect
// to the database: a failed delete never fails the catalogue write that
// triggered it.
package photo

import (
	"context"
	"io"
)

// Store persists uploaded product photos and serves back a public URL.
type Store interface {
	// Save writes the photo and returns its public URL. The original
	// filename is only used to derive the stored name and extension.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)

	// Delete removes a previously stored photo by its public URL.
	Delete(ctx context.Context, url string) error
}
