package icons

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"layeh.com/asar"
)

// loadFromAsar scans an Electron app.asar archive for the largest bundled
// PNG icon and returns its raw bytes.
func (r *Resolver) loadFromAsar(asarPath string) ([]byte, error) {
	f, err := r.fs.Open(asarPath)
	if err != nil {
		return nil, fmt.Errorf("open asar: %w", err)
	}
	defer f.Close()

	archive, err := asar.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asar: %w", err)
	}

	var bestPath string
	var bestSize int64

	walkErr := archive.Walk(func(path string, info os.FileInfo, entryErr error) error {
		if entryErr != nil || info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".png" && ext != ".ico" {
			return nil
		}
		// Tiny files are favicons and tray dots, not app icons.
		if info.Size() < 100 {
			return nil
		}

		if info.Size() > bestSize {
			bestSize = info.Size()
			bestPath = path
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk asar: %w", walkErr)
	}

	if bestPath == "" {
		return nil, errors.New("no icon inside asar")
	}

	entry := archive.Find(strings.Split(strings.Trim(bestPath, "/"), "/")...)
	if entry == nil {
		return nil, fmt.Errorf("asar entry vanished: %s", bestPath)
	}

	reader := entry.Open()
	if reader == nil {
		return nil, fmt.Errorf("asar entry not openable: %s", bestPath)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read asar entry: %w", err)
	}
	return data, nil
}
