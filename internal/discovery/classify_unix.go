//go:build !windows

package discovery

import (
	"io/fs"
	"strings"
)

// programExtensions that classify as launchable regardless of mode bits.
var programExtensions = map[string]bool{
	".appimage": true,
}

// isProgram reports whether a plain file is a launchable program: a
// regular file with an execute bit, or a known self-contained application
// bundle. Directories carry exec bits too and must never pass.
func isProgram(base string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	if info.Mode()&0o111 != 0 {
		return true
	}
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return false
	}
	return programExtensions[strings.ToLower(base[idx:])]
}
