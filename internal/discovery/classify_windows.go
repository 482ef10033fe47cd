//go:build windows

package discovery

import (
	"io/fs"
	"strings"
)

// programExtensions that classify as launchable on Windows. Mode bits
// carry no execute information here, so the extension decides.
var programExtensions = map[string]bool{
	".exe": true,
	".com": true,
	".bat": true,
	".cmd": true,
}

func isProgram(base string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return false
	}
	return programExtensions[strings.ToLower(base[idx:])]
}
