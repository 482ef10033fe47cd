package discovery

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	results map[string]*core.ResolvedShortcut
	errs    map[string]error
}

func (f *fakeResolver) Resolve(path string) (*core.ResolvedShortcut, error) {
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if res, ok := f.results[path]; ok {
		return res, nil
	}
	return nil, core.ErrNotLaunchable
}

func newTestScanner(fs afero.Fs, resolvers map[string]core.ShortcutResolver, excludes []string) *Scanner {
	return NewScanner(fs, logging.NewTestLogger(io.Discard), resolvers, excludes)
}

func writeExec(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte("#!/bin/sh\n"), 0o755))
}

func targets(found []Found) []string {
	out := make([]string, 0, len(found))
	for _, f := range found {
		out = append(out, f.LaunchTarget)
	}
	return out
}

func TestScanFindsExecutablesOnly(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeExec(t, fs, "/opt/tools/htop")
	require.NoError(t, afero.WriteFile(fs, "/opt/tools/README.md", []byte("docs"), 0o644))

	s := newTestScanner(fs, nil, nil)
	found, warnings := s.Scan(context.Background(), []Root{{Path: "/opt/tools", Origin: core.OriginProgramFiles}})

	assert.Empty(t, warnings)
	require.Len(t, found, 1)
	assert.Equal(t, "/opt/tools/htop", found[0].LaunchTarget)
	assert.Equal(t, "Htop", found[0].Name)
	assert.Equal(t, core.OriginProgramFiles, found[0].Origin)
}

func TestScanResolvesShortcuts(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/menu/code.desktop", []byte("stub"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/menu/hidden.desktop", []byte("stub"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/menu/broken.desktop", []byte("stub"), 0o644))

	resolver := &fakeResolver{
		results: map[string]*core.ResolvedShortcut{
			"/menu/code.desktop": {Target: "/usr/bin/code", DisplayName: "Visual Studio Code", IconHint: "vscode"},
		},
		errs: map[string]error{
			"/menu/hidden.desktop": core.ErrNotLaunchable,
			"/menu/broken.desktop": errors.New("malformed"),
		},
	}

	s := newTestScanner(fs, map[string]core.ShortcutResolver{".desktop": resolver}, nil)
	found, warnings := s.Scan(context.Background(), []Root{{Path: "/menu", Origin: core.OriginStartMenu}})

	require.Len(t, found, 1)
	assert.Equal(t, "Visual Studio Code", found[0].Name)
	assert.Equal(t, "/usr/bin/code", found[0].LaunchTarget)
	assert.Equal(t, "vscode", found[0].IconHint)

	require.Len(t, warnings, 1)
	assert.Equal(t, "/menu/broken.desktop", warnings[0].Path)
}

func TestScanSkipsMissingRoots(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	s := newTestScanner(fs, nil, nil)
	found, warnings := s.Scan(context.Background(), []Root{{Path: "/nowhere", Origin: core.OriginProgramFiles}})

	assert.Empty(t, found)
	assert.Empty(t, warnings)
}

func TestScanHonorsExcludes(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeExec(t, fs, "/opt/keep/app")
	writeExec(t, fs, "/opt/skip/app")
	writeExec(t, fs, "/opt/keep/helper-daemon")

	s := newTestScanner(fs, nil, []string{"/opt/skip", "/opt/**/*-daemon"})
	found, _ := s.Scan(context.Background(), []Root{{Path: "/opt", Origin: core.OriginProgramFiles}})

	assert.Equal(t, []string{"/opt/keep/app"}, targets(found))
}

func TestScanHonorsMaxDepth(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeExec(t, fs, "/opt/shallow")
	writeExec(t, fs, "/opt/sub/deep")

	s := newTestScanner(fs, nil, nil)
	found, _ := s.Scan(context.Background(), []Root{{Path: "/opt", Origin: core.OriginProgramFiles, MaxDepth: 1}})

	assert.Equal(t, []string{"/opt/shallow"}, targets(found))
}

func TestScanDeduplicatesByTargetKeepingStrongestOrigin(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeExec(t, fs, "/usr/bin/code")
	require.NoError(t, afero.WriteFile(fs, "/menu/code.desktop", []byte("stub"), 0o644))

	resolver := &fakeResolver{results: map[string]*core.ResolvedShortcut{
		"/menu/code.desktop": {Target: "/usr/bin/code", DisplayName: "Visual Studio Code"},
	}}

	s := newTestScanner(fs, map[string]core.ShortcutResolver{".desktop": resolver}, nil)
	found, _ := s.Scan(context.Background(), []Root{
		{Path: "/usr/bin", Origin: core.OriginProgramFiles},
		{Path: "/menu", Origin: core.OriginStartMenu},
	})

	require.Len(t, found, 1)
	assert.Equal(t, core.OriginStartMenu, found[0].Origin)
	assert.Equal(t, "Visual Studio Code", found[0].Name)
}

func TestScanFiltersInstallerNoise(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeExec(t, fs, "/opt/app/app")
	writeExec(t, fs, "/opt/app/uninstall")
	writeExec(t, fs, "/opt/app/app-updater")
	writeExec(t, fs, "/opt/app/setup")

	s := newTestScanner(fs, nil, nil)
	found, _ := s.Scan(context.Background(), []Root{{Path: "/opt/app", Origin: core.OriginProgramFiles}})

	assert.Equal(t, []string{"/opt/app/app"}, targets(found))
}

func TestScanResolvesSymlinksWithoutLooping(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	real := filepath.Join(root, "real")
	require.NoError(t, os.MkdirAll(real, 0o755))
	app := filepath.Join(real, "app")
	require.NoError(t, os.WriteFile(app, []byte("#!/bin/sh\n"), 0o755))

	// A linked directory, a link cycle back to the root, a link straight
	// to the executable, and a dangling link.
	require.NoError(t, os.Symlink(real, filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(root, filepath.Join(real, "loop")))
	require.NoError(t, os.Symlink(app, filepath.Join(root, "alias")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")))

	s := newTestScanner(afero.NewOsFs(), nil, nil)
	found, warnings := s.Scan(context.Background(), []Root{{Path: root, Origin: core.OriginProgramFiles}})

	assert.Empty(t, warnings)

	// Every route to the executable collapses into one entry, linked
	// directories are walked instead of being indexed as programs, and the
	// cycle terminates.
	require.Len(t, found, 1)

	wantTarget, err := filepath.EvalSymlinks(app)
	require.NoError(t, err)
	gotTarget, err := filepath.EvalSymlinks(found[0].LaunchTarget)
	require.NoError(t, err)
	assert.Equal(t, wantTarget, gotTarget)

	info, err := os.Stat(found[0].LaunchTarget)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestScanStopsOnCanceledContext(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	writeExec(t, fs, "/opt/app")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(fs, nil, nil)
	found, _ := s.Scan(ctx, []Root{{Path: "/opt", Origin: core.OriginProgramFiles}})
	assert.Empty(t, found)
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"visual-studio-code": "Visual Studio Code",
		"my_cool_app":        "My Cool App",
		"htop":               "Htop",
		"OBS Studio":         "OBS Studio",
		"docker-cli":         "Docker CLI",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DisplayName(in), "stem %q", in)
	}
}
