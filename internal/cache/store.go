package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/icons"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SchemaVersion is bumped whenever the persisted layout changes. A record
// written under any other version is treated as absent.
const SchemaVersion = 1

// Store persists the index cache record (entry set + fingerprint) in a
// sqlite database with separate read/write pools.
type Store struct {
	write *sql.DB
	read  *sql.DB
	path  string
	log   *zerolog.Logger
}

// Open creates or opens the cache database at dbPath.
func Open(ctx context.Context, dbPath string, log *zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)

	// Write pool: MUST be 1 connection only
	write, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open write connection: %w", err)
	}
	write.SetMaxOpenConns(1)
	write.SetMaxIdleConns(1)
	write.SetConnMaxIdleTime(time.Minute)

	read, err := sql.Open("sqlite", connStr)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("open read connection: %w", err)
	}
	read.SetMaxOpenConns(4)
	read.SetMaxIdleConns(2)
	read.SetConnMaxIdleTime(time.Minute)

	s := &Store{
		write: write,
		read:  read,
		path:  dbPath,
		log:   log,
	}

	if err := s.initSchema(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

// Close closes both database connections
func (s *Store) Close() error {
	writeErr := s.write.Close()
	readErr := s.read.Close()
	if writeErr != nil {
		return writeErr
	}
	return readErr
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS entries (
    launch_target TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    origin TEXT NOT NULL,
    icon_path TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_entries_name ON entries(name);

CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
	`

	if _, err := s.write.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load returns the cached entry set when the stored record is intact and
// its fingerprint matches the freshly computed one. Every failure mode
// (missing record, schema mismatch, corruption, stale fingerprint) is a
// cache miss, never an error.
func (s *Store) Load(ctx context.Context, fingerprint string) ([]core.Entry, bool) {
	version, err := s.metaValue(ctx, "schema_version")
	if err != nil {
		s.log.Debug().Err(err).Msg("cache miss: no schema version")
		return nil, false
	}
	if version != fmt.Sprint(SchemaVersion) {
		s.log.Debug().Str("stored", version).Msg("cache miss: schema version mismatch")
		return nil, false
	}

	stored, err := s.metaValue(ctx, "fingerprint")
	if err != nil {
		s.log.Debug().Err(err).Msg("cache miss: no fingerprint")
		return nil, false
	}
	if stored != fingerprint {
		s.log.Debug().Msg("cache miss: fingerprint changed")
		return nil, false
	}

	rows, err := s.read.QueryContext(ctx,
		"SELECT launch_target, name, origin, icon_path FROM entries ORDER BY launch_target")
	if err != nil {
		s.log.Debug().Err(err).Msg("cache miss: query failed")
		return nil, false
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var target, name, originStr, iconPath string
		if err := rows.Scan(&target, &name, &originStr, &iconPath); err != nil {
			s.log.Debug().Err(err).Msg("cache miss: scan failed")
			return nil, false
		}

		origin, err := core.ParseOrigin(originStr)
		if err != nil {
			s.log.Debug().Err(err).Msg("cache miss: bad origin")
			return nil, false
		}

		entries = append(entries, rehydrate(name, target, origin, iconPath))
	}
	if err := rows.Err(); err != nil {
		s.log.Debug().Err(err).Msg("cache miss: rows error")
		return nil, false
	}

	return entries, true
}

// Save atomically replaces the stored record with the given entry set and
// fingerprint. The whole replacement is one transaction, so a crashed
// writer never exposes a torn record to the next reader.
func (s *Store) Save(ctx context.Context, entries []core.Entry, fingerprint string) error {
	tx, err := s.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (launch_target, name, origin, icon_path) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		iconPath := ""
		if e.Icon.Kind == core.IconFile {
			iconPath = e.Icon.Path
		}
		if _, err := stmt.ExecContext(ctx, e.LaunchTarget, e.Name, e.Origin.String(), iconPath); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.LaunchTarget, err)
		}
	}

	for key, value := range map[string]string{
		"schema_version": fmt.Sprint(SchemaVersion),
		"fingerprint":    fingerprint,
		"saved_at":       time.Now().UTC().Format(time.RFC3339),
	} {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value); err != nil {
			return fmt.Errorf("write meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	s.log.Debug().Int("entries", len(entries)).Msg("index cache saved")
	return nil
}

func (s *Store) metaValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.read.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("meta %s: %w", key, err)
	}
	return value, nil
}

// rehydrate rebuilds a full entry from its persisted columns. The
// normalized name is always recomputed, and entries persisted without an
// extracted icon get their placeholder synthesized on the spot.
func rehydrate(name, target string, origin core.Origin, iconPath string) core.Entry {
	icon := core.IconRef{Kind: core.IconPlaceholder, Placeholder: icons.PlaceholderFor(name)}
	if iconPath != "" {
		icon = core.IconRef{Kind: core.IconFile, Path: iconPath}
	}
	return core.Entry{
		Name:           name,
		NormalizedName: core.NormalizeName(name),
		LaunchTarget:   target,
		Origin:         origin,
		Icon:           icon,
	}
}
