package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/fsops"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

// snapshotDoc is the portable index snapshot layout: xz-compressed JSON,
// versioned with the same schema number as the sqlite record so the two
// stay interchangeable.
type snapshotDoc struct {
	SchemaVersion int             `json:"schema_version"`
	Fingerprint   string          `json:"fingerprint"`
	SavedAt       time.Time       `json:"saved_at"`
	Entries       []snapshotEntry `json:"entries"`
}

type snapshotEntry struct {
	Name         string `json:"name"`
	LaunchTarget string `json:"launch_target"`
	Origin       string `json:"origin"`
	IconPath     string `json:"icon_path,omitempty"`
}

// WriteSnapshot exports the entry set as an xz-compressed JSON document,
// written atomically.
func WriteSnapshot(fs afero.Fs, path string, entries []core.Entry, fingerprint string) error {
	doc := snapshotDoc{
		SchemaVersion: SchemaVersion,
		Fingerprint:   fingerprint,
		SavedAt:       time.Now().UTC(),
		Entries:       make([]snapshotEntry, 0, len(entries)),
	}
	for _, e := range entries {
		iconPath := ""
		if e.Icon.Kind == core.IconFile {
			iconPath = e.Icon.Path
		}
		doc.Entries = append(doc.Entries, snapshotEntry{
			Name:         e.Name,
			LaunchTarget: e.LaunchTarget,
			Origin:       e.Origin.String(),
			IconPath:     iconPath,
		})
	}

	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("create xz writer: %w", err)
	}
	if err := json.NewEncoder(xw).Encode(doc); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("finish xz stream: %w", err)
	}

	if err := fsops.WriteFileAtomic(fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot imports a snapshot previously written by WriteSnapshot and
// returns the rehydrated entries plus the fingerprint recorded at export
// time.
func ReadSnapshot(fs afero.Fs, path string) ([]core.Entry, string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, "", fmt.Errorf("read snapshot: %w", err)
	}

	xr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("open xz stream: %w", err)
	}

	var doc snapshotDoc
	if err := json.NewDecoder(xr).Decode(&doc); err != nil {
		return nil, "", fmt.Errorf("decode snapshot: %w", err)
	}
	if doc.SchemaVersion != SchemaVersion {
		return nil, "", fmt.Errorf("snapshot schema version %d, want %d", doc.SchemaVersion, SchemaVersion)
	}

	entries := make([]core.Entry, 0, len(doc.Entries))
	for _, se := range doc.Entries {
		origin, err := core.ParseOrigin(se.Origin)
		if err != nil {
			return nil, "", fmt.Errorf("snapshot entry %s: %w", se.LaunchTarget, err)
		}
		entries = append(entries, rehydrate(se.Name, se.LaunchTarget, origin, se.IconPath))
	}

	return entries, doc.Fingerprint, nil
}
