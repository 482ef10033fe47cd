package core

import "errors"

// ErrNotLaunchable marks a shortcut that exists but should not appear in the
// index (hidden desktop entries, non-application types, dead targets).
// Discovery skips these without failing the scan.
var ErrNotLaunchable = errors.New("shortcut is not launchable")

// ResolvedShortcut is the outcome of resolving a shortcut file.
type ResolvedShortcut struct {
	// Target is the absolute path the shortcut ultimately launches.
	Target string
	// DisplayName is the shortcut's own name metadata, empty when the file
	// carries none (callers fall back to the file stem).
	DisplayName string
	// IconHint is an icon path or theme name declared by the shortcut.
	IconHint string
}

// ShortcutResolver turns a shortcut file into its launch target. Discovery
// depends only on this interface so it can be exercised with fake resolvers
// that never touch a real filesystem.
type ShortcutResolver interface {
	Resolve(path string) (*ResolvedShortcut, error)
}

// IconResolver produces an icon reference for an entry. Implementations must
// always succeed: extraction failures degrade to a synthesized placeholder.
type IconResolver interface {
	Resolve(launchTarget, name, iconHint string) IconRef
}
