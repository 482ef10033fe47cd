package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/quantmind-br/appdex/internal/core"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Root is a directory the scanner walks for launchable programs.
// MaxDepth <= 0 means unlimited.
type Root struct {
	Path     string
	Origin   core.Origin
	MaxDepth int
}

// Warning records a path the scanner could not process. Warnings never
// abort a scan; unreadable corners of the filesystem are expected.
type Warning struct {
	Path string
	Err  error
}

// Found is a launchable program located during a scan, before icon
// resolution.
type Found struct {
	Name         string
	LaunchTarget string
	Origin       core.Origin
	IconHint     string
}

// Scanner walks scan roots and classifies their contents into launchable
// entries. Shortcut files are handed to the resolver registered for their
// extension; everything else is kept only if it classifies as a program.
type Scanner struct {
	fs        afero.Fs
	log       *zerolog.Logger
	resolvers map[string]core.ShortcutResolver
	excludes  []string
}

// NewScanner builds a scanner. The resolvers map is keyed by lowercase
// file extension including the dot, e.g. ".desktop".
func NewScanner(fs afero.Fs, log *zerolog.Logger, resolvers map[string]core.ShortcutResolver, excludes []string) *Scanner {
	normalized := make([]string, 0, len(excludes))
	for _, e := range excludes {
		if e != "" {
			normalized = append(normalized, filepath.Clean(e))
		}
	}
	return &Scanner{
		fs:        fs,
		log:       log,
		resolvers: resolvers,
		excludes:  normalized,
	}
}

// Scan walks every root and returns the deduplicated set of launchable
// programs. Roots that do not exist are skipped without a warning; that
// is the normal state on most machines.
func (s *Scanner) Scan(ctx context.Context, roots []Root) ([]Found, []Warning) {
	var found []Found
	var warnings []Warning

	for _, root := range roots {
		if ctx.Err() != nil {
			break
		}

		info, err := s.fs.Stat(root.Path)
		if err != nil || !info.IsDir() {
			s.log.Debug().Str("root", root.Path).Msg("scan root absent, skipping")
			continue
		}

		visited := map[string]bool{s.canonical(root.Path): true}
		s.walk(ctx, root.Path, root, 0, visited, &found, &warnings)
	}

	return s.dedupe(found), warnings
}

func (s *Scanner) walk(ctx context.Context, dir string, root Root, depth int, visited map[string]bool, found *[]Found, warnings *[]Warning) {
	if ctx.Err() != nil {
		return
	}

	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		*warnings = append(*warnings, Warning{Path: dir, Err: err})
		return
	}

	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		if s.excluded(path) {
			s.log.Debug().Str("path", path).Msg("excluded by configuration")
			continue
		}

		// Directory listings do not follow symlinks, so a linked directory
		// reports itself as a plain file here. Resolve the link before
		// deciding whether to recurse or classify.
		isDir := info.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			resolved, err := s.fs.Stat(path)
			if err != nil {
				s.log.Debug().Str("path", path).Msg("dangling symlink, skipping")
				continue
			}
			isDir = resolved.IsDir()
		}

		if isDir {
			if root.MaxDepth > 0 && depth+1 >= root.MaxDepth {
				continue
			}
			canon := s.canonical(path)
			if visited[canon] {
				continue
			}
			visited[canon] = true
			s.walk(ctx, path, root, depth+1, visited, found, warnings)
			continue
		}

		s.classify(path, info.Name(), root.Origin, found, warnings)
	}
}

func (s *Scanner) classify(path, base string, origin core.Origin, found *[]Found, warnings *[]Warning) {
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if resolver, ok := s.resolvers[ext]; ok {
		resolved, err := resolver.Resolve(path)
		if err != nil {
			if errors.Is(err, core.ErrNotLaunchable) {
				s.log.Debug().Str("path", path).Msg("shortcut not launchable")
				return
			}
			*warnings = append(*warnings, Warning{Path: path, Err: err})
			return
		}
		name := resolved.DisplayName
		if name == "" {
			name = DisplayName(stem)
		}
		if isNoise(resolved.Target) || isNoise(path) {
			return
		}
		*found = append(*found, Found{
			Name:         name,
			LaunchTarget: resolved.Target,
			Origin:       origin,
			IconHint:     resolved.IconHint,
		})
		return
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		*warnings = append(*warnings, Warning{Path: path, Err: err})
		return
	}
	if !isProgram(base, info) {
		return
	}
	if isNoise(path) {
		s.log.Debug().Str("path", path).Msg("skipping installer noise")
		return
	}

	*found = append(*found, Found{
		Name:         DisplayName(stem),
		LaunchTarget: path,
		Origin:       origin,
	})
}

// excluded reports whether path falls under any configured exclude.
// Patterns with glob metacharacters match the whole path with doublestar
// semantics; plain paths exclude themselves and everything beneath them.
func (s *Scanner) excluded(path string) bool {
	for _, pattern := range s.excludes {
		if strings.ContainsAny(pattern, "*?[{") {
			if ok, err := doublestar.Match(pattern, filepath.ToSlash(path)); err == nil && ok {
				return true
			}
			continue
		}
		if path == pattern || strings.HasPrefix(path, pattern+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// canonical resolves symlinks on the real filesystem so link cycles and
// aliased directories collapse to one identity. Virtual filesystems have
// no symlinks to chase.
func (s *Scanner) canonical(path string) string {
	if _, ok := s.fs.(*afero.OsFs); ok {
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			return resolved
		}
	}
	return filepath.Clean(path)
}

// dedupe collapses entries pointing at the same program, keeping the one
// from the strongest origin. Ties resolve deterministically by name.
func (s *Scanner) dedupe(found []Found) []Found {
	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		ca, cb := s.canonical(a.LaunchTarget), s.canonical(b.LaunchTarget)
		if ca != cb {
			return ca < cb
		}
		if a.Origin.Priority() != b.Origin.Priority() {
			return a.Origin.Priority() < b.Origin.Priority()
		}
		return a.Name < b.Name
	})

	out := found[:0]
	lastCanon := ""
	for i, f := range found {
		canon := s.canonical(f.LaunchTarget)
		if i > 0 && canon == lastCanon {
			continue
		}
		lastCanon = canon
		out = append(out, f)
	}
	return out
}

var noiseMarkers = []string{"uninstall", "uninst", "setup", "updater", "crashreport"}

// isNoise filters installer and maintenance executables that live next to
// real programs but are never what the user wants to launch.
func isNoise(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, marker := range noiseMarkers {
		if strings.Contains(stem, marker) {
			return true
		}
	}
	return stem == "update"
}
