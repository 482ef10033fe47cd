//go:build windows

package paths

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// StartMenuDirs returns the per-user and all-users Start Menu Programs
// folders, resolved through the shell's known-folder API so relocated
// profiles are honored.
func (r *Resolver) StartMenuDirs() []string {
	var candidates []string

	if dir, err := windows.KnownFolderPath(windows.FOLDERID_Programs, 0); err == nil {
		candidates = append(candidates, dir)
	}
	if dir, err := windows.KnownFolderPath(windows.FOLDERID_CommonPrograms, 0); err == nil {
		candidates = append(candidates, dir)
	}

	if len(candidates) == 0 {
		// Known-folder lookup failed, fall back to the conventional layout.
		if appData := os.Getenv("APPDATA"); appData != "" {
			candidates = append(candidates,
				filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs"))
		}
		candidates = append(candidates,
			`C:\ProgramData\Microsoft\Windows\Start Menu\Programs`)
	}

	return existingDirs(candidates)
}

// ProgramDirs returns the Program Files roots.
func (r *Resolver) ProgramDirs() []string {
	var candidates []string

	if dir, err := windows.KnownFolderPath(windows.FOLDERID_ProgramFiles, 0); err == nil {
		candidates = append(candidates, dir)
	}
	if dir, err := windows.KnownFolderPath(windows.FOLDERID_ProgramFilesX86, 0); err == nil {
		candidates = append(candidates, dir)
	}

	if len(candidates) == 0 {
		candidates = append(candidates, `C:\Program Files`, `C:\Program Files (x86)`)
	}

	return existingDirs(candidates)
}

// IconThemeDirs is a unix concept; Windows icons come from the binaries and
// shortcuts themselves.
func (r *Resolver) IconThemeDirs() []string {
	return nil
}
