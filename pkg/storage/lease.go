package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// releaseTimeout bounds Release when the caller's context is already done.
const releaseTimeout = 10 * time.Second

// Lease owns one uniquely named blob until Release is called.
type Lease struct {
	store Store
	name  string

	once sync.Once
	err  error
}

// UniqueName returns prefix + a random UUID + ext, e.g. "speech/9f..c1.mp3".
func UniqueName(prefix, ext string) string {
	return prefix + uuid.NewString() + ext
}

// Acquire creates a uniquely named blob and fills it with fill.
//
// If fill or the final flush fails, the partial blob is removed and no
// lease is returned. Otherwise the caller owns the lease and must call
// Release, typically with defer.
func Acquire(ctx context.Context, store Store, prefix, ext string, fill func(io.Writer) error) (*Lease, error) {
	name := UniqueName(prefix, ext)

	w, err := store.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", name, err)
	}

	ferr := fill(w)
	cerr := w.Close()
	if err := errors.Join(ferr, cerr); err != nil {
		if rerr := store.Remove(context.WithoutCancel(ctx), name); rerr != nil {
			slog.Warn("storage: remove partial blob", "name", name, "err", rerr)
		}
		if ferr != nil {
			return nil, ferr
		}
		return nil, fmt.Errorf("storage: flush %s: %w", name, cerr)
	}

	slog.Debug("storage: lease acquired", "name", name)
	return &Lease{store: store, name: name}, nil
}

// Name returns the blob name.
func (l *Lease) Name() string {
	return l.name
}

// Path returns the local filesystem path of the blob, or "" when the store
// is not backed by the local filesystem.
func (l *Lease) Path() string {
	if loc, ok := l.store.(Locator); ok {
		return loc.Locate(l.name)
	}
	return ""
}

// ReadAll returns the blob content.
func (l *Lease) ReadAll(ctx context.Context) ([]byte, error) {
	r, err := l.store.Open(ctx, l.name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Release removes the blob. It runs at most once, is safe to call from
// several goroutines and still removes the blob when ctx is done.
func (l *Lease) Release(ctx context.Context) error {
	l.once.Do(func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		l.err = l.store.Remove(rctx, l.name)
		slog.Debug("storage: lease released", "name", l.name, "err", l.err)
	})
	return l.err
}
