package shortcut

import (
	"bufio"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/appdex/internal/core"
	"github.com/spf13/afero"
)

// DesktopResolver resolves freedesktop .desktop files to their launch target.
type DesktopResolver struct {
	fs afero.Fs
	// lookPath resolves bare executable names against PATH. Swappable so
	// tests never depend on the host environment.
	lookPath func(name string) (string, error)
}

// NewDesktopResolver creates a resolver backed by the given filesystem.
func NewDesktopResolver(fs afero.Fs) *DesktopResolver {
	return &DesktopResolver{
		fs:       fs,
		lookPath: exec.LookPath,
	}
}

// desktopEntry holds the subset of [Desktop Entry] keys the index needs.
type desktopEntry struct {
	Type      string
	Name      string
	Exec      string
	TryExec   string
	Icon      string
	NoDisplay bool
	Hidden    bool
	Terminal  bool
}

// Resolve parses the file and returns the resolved launch target. Entries
// that are hidden, not applications, or whose executable no longer exists
// return core.ErrNotLaunchable.
func (r *DesktopResolver) Resolve(path string) (*core.ResolvedShortcut, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open desktop file: %w", err)
	}
	defer f.Close()

	de, err := parseDesktopEntry(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if de.Hidden || de.NoDisplay {
		return nil, core.ErrNotLaunchable
	}
	if de.Type != "" && de.Type != "Application" {
		return nil, core.ErrNotLaunchable
	}

	target := de.TryExec
	if target == "" {
		target = execTarget(de.Exec)
	}
	if target == "" {
		return nil, core.ErrNotLaunchable
	}

	if !filepath.IsAbs(target) {
		resolved, err := r.lookPath(target)
		if err != nil {
			return nil, core.ErrNotLaunchable
		}
		target = resolved
	}
	if _, err := r.fs.Stat(target); err != nil {
		// Dead target: skip, not an error.
		return nil, core.ErrNotLaunchable
	}

	return &core.ResolvedShortcut{
		Target:      target,
		DisplayName: de.Name,
		IconHint:    de.Icon,
	}, nil
}

// parseDesktopEntry reads the [Desktop Entry] section key by key, ignoring
// localized variants and other sections.
func parseDesktopEntry(f afero.File) (*desktopEntry, error) {
	de := &desktopEntry{}
	scanner := bufio.NewScanner(f)
	inDesktopEntry := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			inDesktopEntry = line == "[Desktop Entry]"
			continue
		}

		if !inDesktopEntry || !strings.Contains(line, "=") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "Type":
			de.Type = value
		case "Name":
			de.Name = value
		case "Exec":
			de.Exec = value
		case "TryExec":
			de.TryExec = value
		case "Icon":
			de.Icon = value
		case "NoDisplay":
			de.NoDisplay = value == "true"
		case "Hidden":
			de.Hidden = value == "true"
		case "Terminal":
			de.Terminal = value == "true"
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan desktop file: %w", err)
	}

	return de, nil
}

// execTarget extracts the executable from an Exec= line, dropping field
// codes (%f, %u, ...) and unquoting the first argument.
func execTarget(execLine string) string {
	line := strings.TrimSpace(execLine)

	for line != "" {
		var token string
		if line[0] == '"' {
			end := strings.IndexByte(line[1:], '"')
			if end < 0 {
				return ""
			}
			token = line[1 : 1+end]
			line = strings.TrimSpace(line[2+end:])
		} else {
			fields := strings.SplitN(line, " ", 2)
			token = fields[0]
			if len(fields) == 2 {
				line = strings.TrimSpace(fields[1])
			} else {
				line = ""
			}
		}

		if strings.HasPrefix(token, "%") {
			continue
		}
		// env-prefixed Exec lines: skip the env command and its VAR=VAL args.
		if token == "env" || strings.Contains(token, "=") {
			continue
		}
		return token
	}
	return ""
}
