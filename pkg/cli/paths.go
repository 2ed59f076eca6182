package cli

import (
	"os"
	"path/filepath"
)

// Paths locates the per-app directories under ~/.giztoy/<app>.
type Paths struct {
	AppName string
	HomeDir string
}

// NewPaths creates a Paths for appName in the current user's home.
func NewPaths(appName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{AppName: appName, HomeDir: home}, nil
}

// AppDir returns ~/.giztoy/<app>.
func (p *Paths) AppDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir, p.AppName)
}

// ConfigFile returns ~/.giztoy/<app>/config.yaml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}

// CachePath returns a path under ~/.giztoy/<app>/cache.
func (p *Paths) CachePath(name string) string {
	return filepath.Join(p.AppDir(), "cache", name)
}

// DataPath returns a path under ~/.giztoy/<app>/data.
func (p *Paths) DataPath(name string) string {
	return filepath.Join(p.AppDir(), "data", name)
}

// ExpandHome replaces a leading "~/" in path with the home directory.
func (p *Paths) ExpandHome(path string) string {
	if path == "~" {
		return p.HomeDir
	}
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(p.HomeDir, path[2:])
	}
	return path
}
