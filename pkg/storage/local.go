package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local stores blobs as files under a root directory.
type Local struct {
	root string
}

// NewLocal creates a Local store rooted at dir, creating it if needed.
// An empty dir selects a "studio" directory under the system temp dir.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "studio")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &Local{root: abs}, nil
}

// Root returns the absolute root directory.
func (l *Local) Root() string {
	return l.root
}

// Locate returns the filesystem path of the named blob.
func (l *Local) Locate(name string) string {
	return filepath.Join(l.root, filepath.FromSlash(name))
}

func (l *Local) Create(_ context.Context, name string) (io.WriteCloser, error) {
	full := l.Locate(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(full)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (l *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(l.Locate(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (l *Local) Remove(_ context.Context, name string) error {
	err := os.Remove(l.Locate(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (l *Local) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(l.Locate(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

var (
	_ Store   = (*Local)(nil)
	_ Locator = (*Local)(nil)
)
