package core

import (
	"fmt"
	"image/color"
	"strings"
)

// Origin describes where an entry was discovered. The set is closed and
// ordered: a lower priority value is a stronger relevance signal.
type Origin int

const (
	OriginStartMenu Origin = iota
	OriginProgramFiles
	OriginExtraPath
)

// Priority returns the ranking priority of the origin (lower is stronger).
func (o Origin) Priority() int {
	return int(o)
}

func (o Origin) String() string {
	switch o {
	case OriginStartMenu:
		return "startmenu"
	case OriginProgramFiles:
		return "programfiles"
	case OriginExtraPath:
		return "extra"
	default:
		return "unknown"
	}
}

// ParseOrigin converts a stored origin string back to its enum value.
func ParseOrigin(s string) (Origin, error) {
	switch s {
	case "startmenu":
		return OriginStartMenu, nil
	case "programfiles":
		return OriginProgramFiles, nil
	case "extra":
		return OriginExtraPath, nil
	default:
		return OriginExtraPath, fmt.Errorf("unknown origin %q", s)
	}
}

// IconKind discriminates the two icon representations.
type IconKind int

const (
	// IconFile references an extracted bitmap persisted in the icon cache.
	IconFile IconKind = iota
	// IconPlaceholder is a synthesized letter-on-color descriptor.
	IconPlaceholder
)

// Placeholder is a pure-value icon: a single letter rendered on a
// deterministic background color. It is recomputed on demand and never
// persisted.
type Placeholder struct {
	Letter rune
	Color  color.RGBA
}

// IconRef points at the visual representation of an entry. File icons are
// owned by the icon cache directory; placeholders carry their own value.
type IconRef struct {
	Kind        IconKind
	Path        string
	Placeholder Placeholder
}

// Entry is one discovered, launchable program.
//
// Identity is the canonicalized LaunchTarget: two discovery hits resolving
// to the same target collapse into one entry, keeping the strongest origin.
type Entry struct {
	Name           string
	NormalizedName string
	LaunchTarget   string
	Origin         Origin
	Icon           IconRef
}

// Result is one ranked search hit. It references the index's entry set and
// carries no ownership of entry data.
type Result struct {
	Entry *Entry
	Score int
}

// NormalizeName lowercases a display name and collapses runs of whitespace,
// producing the form used for matching. It is derived, never persisted.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
