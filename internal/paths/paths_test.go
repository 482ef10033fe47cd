package paths

import (
	"path/filepath"
	"testing"

	"github.com/quantmind-br/appdex/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestResolverDefaults(t *testing.T) {
	t.Parallel()

	r := NewResolverWithHome(nil, "/home/tester")

	assert.Equal(t, "/home/tester", r.HomeDir())
	assert.Equal(t, filepath.Join("/home/tester", ".local", "share", "appdex"), r.DataDir())
	assert.Equal(t, filepath.Join(r.DataDir(), "index.db"), r.CacheDBPath())
	assert.Equal(t, filepath.Join(r.DataDir(), "icons"), r.IconCacheDir())
}

func TestResolverHonorsConfigOverrides(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Paths.DataDir = "/srv/appdex"
	cfg.Paths.CacheDB = "/srv/appdex/custom.db"
	cfg.Index.ExtraIndexPaths = []string{"/games", "/tools"}

	r := NewResolverWithHome(cfg, "/home/tester")

	assert.Equal(t, "/srv/appdex", r.DataDir())
	assert.Equal(t, "/srv/appdex/custom.db", r.CacheDBPath())
	assert.Equal(t, []string{"/games", "/tools"}, r.ExtraDirs())
}

func TestExistingDirsFiltersMissing(t *testing.T) {
	tmp := t.TempDir()

	got := existingDirs([]string{tmp, filepath.Join(tmp, "missing"), ""})
	assert.Equal(t, []string{tmp}, got)
}
