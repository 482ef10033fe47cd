package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/quantmind-br/appdex/internal/cache"
	"github.com/quantmind-br/appdex/internal/config"
	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/discovery"
	"github.com/quantmind-br/appdex/internal/fsops"
	"github.com/quantmind-br/appdex/internal/icons"
	"github.com/quantmind-br/appdex/internal/index"
	"github.com/quantmind-br/appdex/internal/paths"
	"github.com/quantmind-br/appdex/internal/search"
	"github.com/quantmind-br/appdex/internal/shortcut"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Walk depth limits per root family. Start menu trees are curated and
// shallow; program directories (notably /opt) can nest arbitrarily deep
// vendor trees, so those walks are capped.
const (
	programDirDepth = 3
	extraDirDepth   = 4
)

// Stats summarizes one index rebuild.
type Stats struct {
	Entries   int
	Warnings  []discovery.Warning
	Duration  time.Duration
	FromCache bool
}

// Engine owns the whole indexing pipeline: discovery, icon resolution,
// the persistent cache, and the published in-memory index that queries
// run against.
type Engine struct {
	cfg     *config.Config
	log     *zerolog.Logger
	fs      afero.Fs
	paths   *paths.Resolver
	scanner *discovery.Scanner
	icons   core.IconResolver
	store   *cache.Store
	matcher *search.Matcher
	idx     *index.Index
	order   index.SortOrder
}

// New wires an engine against the real filesystem. The cache store is
// optional equipment: when it cannot be opened the engine still works,
// it just rescans on every start.
func New(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (*Engine, error) {
	fs := afero.NewOsFs()
	resolver := paths.NewResolver(cfg)

	var store *cache.Store
	if cfg.Index.EnableCache {
		var err error
		store, err = cache.Open(ctx, resolver.CacheDBPath(), log)
		if err != nil {
			log.Warn().Err(err).Msg("index cache unavailable, scanning from scratch")
			store = nil
		}
	}

	return newEngine(cfg, log, fs, resolver, store), nil
}

// newEngine finishes construction from explicit parts. Tests reach it
// with a memory filesystem and a nil store.
func newEngine(cfg *config.Config, log *zerolog.Logger, fs afero.Fs, resolver *paths.Resolver, store *cache.Store) *Engine {
	resolvers := map[string]core.ShortcutResolver{
		".desktop": shortcut.NewDesktopResolver(fs),
		".lnk":     shortcut.NewLnkResolver(fs),
	}

	if err := fsops.EnsureDir(fs, resolver.IconCacheDir(), 0o755); err != nil {
		log.Warn().Err(err).Msg("icon cache dir not writable, placeholders only")
	}

	return &Engine{
		cfg:     cfg,
		log:     log,
		fs:      fs,
		paths:   resolver,
		scanner: discovery.NewScanner(fs, log, resolvers, cfg.Index.ExcludePaths),
		icons:   icons.NewResolver(fs, log, resolver.IconCacheDir(), resolver.IconThemeDirs(), cfg.Search.ProgramIconSize),
		store:   store,
		matcher: search.NewMatcher(search.DefaultWeights(), cfg.Search.MaxResults),
		idx:     index.New(),
		order:   index.ParseSortOrder(cfg.Search.InitialSort),
	}
}

// Init makes the engine ready to serve queries: from the cache when its
// fingerprint still matches the filesystem, otherwise via a full rebuild.
func (e *Engine) Init(ctx context.Context) (Stats, error) {
	start := time.Now()

	if e.store != nil {
		if entries, ok := e.store.Load(ctx, e.fingerprint()); ok {
			e.idx.Publish(index.NewSnapshot(entries, e.order, true))
			e.log.Info().Int("entries", len(entries)).Msg("index loaded from cache")
			return Stats{Entries: len(entries), Duration: time.Since(start), FromCache: true}, nil
		}
	}

	return e.Rebuild(ctx)
}

// Rebuild rescans every root, resolves icons, publishes a fresh snapshot
// and persists it. A failing cache write is logged and swallowed: the
// in-memory index is already live at that point.
func (e *Engine) Rebuild(ctx context.Context) (Stats, error) {
	start := time.Now()

	found, warnings := e.scanner.Scan(ctx, e.roots())
	if err := ctx.Err(); err != nil {
		return Stats{}, fmt.Errorf("rebuild aborted: %w", err)
	}
	for _, w := range warnings {
		e.log.Warn().Err(w.Err).Str("path", w.Path).Msg("scan warning")
	}

	entries := make([]core.Entry, 0, len(found))
	for _, f := range found {
		entries = append(entries, core.Entry{
			Name:           f.Name,
			NormalizedName: core.NormalizeName(f.Name),
			LaunchTarget:   f.LaunchTarget,
			Origin:         f.Origin,
			Icon:           e.icons.Resolve(f.LaunchTarget, f.Name, f.IconHint),
		})
	}

	e.idx.Publish(index.NewSnapshot(entries, e.order, false))

	if e.store != nil {
		if err := e.store.Save(ctx, entries, e.fingerprint()); err != nil {
			e.log.Warn().Err(err).Msg("index cache write failed")
		}
	}

	stats := Stats{Entries: len(entries), Warnings: warnings, Duration: time.Since(start)}
	e.log.Info().Int("entries", stats.Entries).Dur("took", stats.Duration).Msg("index rebuilt")
	return stats, nil
}

// Search ranks the current index against query. Before the first publish
// it returns nothing.
func (e *Engine) Search(query string) []core.Result {
	snap := e.idx.Current()
	if snap == nil {
		return nil
	}
	return e.matcher.Search(snap.Entries(), query)
}

// ListAll returns the top of the index in display order, bounded the same
// way a query is. It is the empty query.
func (e *Engine) ListAll() []core.Result {
	return e.Search("")
}

// Entries returns every indexed entry in display order, unbounded. The
// interactive picker and the full listing work from this.
func (e *Engine) Entries() []core.Entry {
	snap := e.idx.Current()
	if snap == nil {
		return nil
	}
	return snap.Entries()
}

// Ready reports whether an index snapshot has been published.
func (e *Engine) Ready() bool { return e.idx.Ready() }

// Count returns the number of indexed entries.
func (e *Engine) Count() int { return e.idx.Count() }

// Export writes the current index to a portable snapshot file.
func (e *Engine) Export(path string) error {
	snap := e.idx.Current()
	if snap == nil {
		return fmt.Errorf("nothing to export: index not built")
	}
	return cache.WriteSnapshot(e.fs, path, snap.Entries(), e.fingerprint())
}

// Import loads a snapshot file, publishes it, and seeds the cache with it
// under the local fingerprint so the next start serves it without a scan.
func (e *Engine) Import(ctx context.Context, path string) (int, error) {
	entries, _, err := cache.ReadSnapshot(e.fs, path)
	if err != nil {
		return 0, err
	}

	e.idx.Publish(index.NewSnapshot(entries, e.order, true))

	if e.store != nil {
		if err := e.store.Save(ctx, entries, e.fingerprint()); err != nil {
			e.log.Warn().Err(err).Msg("cache seed from snapshot failed")
		}
	}
	return len(entries), nil
}

// Roots exposes the scan roots in scan order, for diagnostics.
func (e *Engine) Roots() []discovery.Root { return e.roots() }

// CacheEnabled reports whether a cache store is attached.
func (e *Engine) CacheEnabled() bool { return e.store != nil }

// Close releases the cache store, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

func (e *Engine) roots() []discovery.Root {
	var roots []discovery.Root
	for _, dir := range e.paths.StartMenuDirs() {
		roots = append(roots, discovery.Root{Path: dir, Origin: core.OriginStartMenu})
	}
	for _, dir := range e.paths.ProgramDirs() {
		roots = append(roots, discovery.Root{Path: dir, Origin: core.OriginProgramFiles, MaxDepth: programDirDepth})
	}
	for _, dir := range e.paths.ExtraDirs() {
		roots = append(roots, discovery.Root{Path: dir, Origin: core.OriginExtraPath, MaxDepth: extraDirDepth})
	}
	return roots
}

func (e *Engine) fingerprint() string {
	rootPaths := make([]string, 0, 8)
	for _, r := range e.roots() {
		rootPaths = append(rootPaths, r.Path)
	}
	return cache.Fingerprint(e.fs, rootPaths, e.cfg.Index.ExtraIndexPaths, e.cfg.Index.ExcludePaths)
}
