// Package storage holds the short-lived files produced while a run is in
// flight, such as synthesized narration.
//
// A Store is a flat namespace of named blobs. Local keeps them on disk,
// S3Store in any S3-compatible bucket and Memory in a map for tests. A
// Lease ties a uniquely named blob to the code that created it so the blob
// can be released on every exit path.
package storage

import (
	"context"
	"io"
)

// Store is a minimal blob store.
//
// Names are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type Store interface {
	// Create opens the named blob for writing, truncating any previous
	// content. The blob is complete once the returned writer is closed.
	Create(ctx context.Context, name string) (io.WriteCloser, error)

	// Open opens the named blob for reading. A missing blob yields an error
	// wrapping os.ErrNotExist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Remove deletes the named blob. Removing a missing blob is not an error.
	Remove(ctx context.Context, name string) error

	// Exists reports whether the named blob exists.
	Exists(ctx context.Context, name string) (bool, error)
}

// Locator is implemented by stores whose blobs have a local filesystem path.
type Locator interface {
	Locate(name string) string
}
