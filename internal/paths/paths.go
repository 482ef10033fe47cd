package paths

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/appdex/internal/config"
)

// Resolver centralizes the directories appdex reads and writes. Scan roots
// are platform-specific (see roots_unix.go / roots_windows.go); everything
// else derives from HOME and the configuration.
type Resolver struct {
	homeDir string
	cfg     *config.Config
}

// NewResolver creates a Resolver for the current user.
func NewResolver(cfg *config.Config) *Resolver {
	homeDir, _ := os.UserHomeDir()
	return &Resolver{
		homeDir: homeDir,
		cfg:     cfg,
	}
}

// NewResolverWithHome creates a Resolver with an explicit home directory
// (useful for tests).
func NewResolverWithHome(cfg *config.Config, homeDir string) *Resolver {
	return &Resolver{
		homeDir: homeDir,
		cfg:     cfg,
	}
}

// HomeDir returns the resolved home directory.
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// DataDir returns the appdex data directory.
func (r *Resolver) DataDir() string {
	if r.cfg != nil && r.cfg.Paths.DataDir != "" {
		return r.cfg.Paths.DataDir
	}
	return filepath.Join(r.homeDir, ".local", "share", "appdex")
}

// CacheDBPath returns the index cache database file.
func (r *Resolver) CacheDBPath() string {
	if r.cfg != nil && r.cfg.Paths.CacheDB != "" {
		return r.cfg.Paths.CacheDB
	}
	return filepath.Join(r.DataDir(), "index.db")
}

// IconCacheDir returns the directory holding extracted icon bitmaps.
func (r *Resolver) IconCacheDir() string {
	return filepath.Join(r.DataDir(), "icons")
}

// SnapshotPath returns the default path for exported index snapshots.
func (r *Resolver) SnapshotPath() string {
	return filepath.Join(r.DataDir(), "index.json.xz")
}

// ExtraDirs returns the caller-supplied additional scan roots.
func (r *Resolver) ExtraDirs() []string {
	if r.cfg == nil {
		return nil
	}
	return r.cfg.Index.ExtraIndexPaths
}

// existingDirs filters a candidate list down to directories that exist.
// A configured path that is missing means "nothing to scan there".
func existingDirs(candidates []string) []string {
	var dirs []string
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
