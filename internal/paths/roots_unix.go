//go:build !windows

package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// StartMenuDirs returns the curated application-launcher directories. On
// unix these are the XDG application dirs holding .desktop files, the
// closest analog to the Windows Start Menu.
func (r *Resolver) StartMenuDirs() []string {
	candidates := []string{
		filepath.Join(r.homeDir, ".local", "share", "applications"),
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir == "" {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, "applications"))
	}

	return existingDirs(candidates)
}

// ProgramDirs returns directories where loose application binaries live.
func (r *Resolver) ProgramDirs() []string {
	return existingDirs([]string{
		filepath.Join(r.homeDir, ".local", "bin"),
		"/usr/local/bin",
		"/opt",
	})
}

// IconThemeDirs returns the bases searched for theme icons named by
// .desktop Icon= hints.
func (r *Resolver) IconThemeDirs() []string {
	return existingDirs([]string{
		filepath.Join(r.homeDir, ".local", "share", "icons"),
		"/usr/share/icons",
		"/usr/local/share/icons",
		"/usr/share/pixmaps",
	})
}
