package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/spf13/afero"
)

// Fingerprint summarizes everything that would change the index if it
// changed: the schema version, the shallow state of every scan root, and
// the configured extra/exclude path lists. Presentation settings such as
// the result limit or sort order deliberately stay out of it.
func Fingerprint(fs afero.Fs, roots []string, extraPaths, excludePaths []string) string {
	h := sha256.New()
	fmt.Fprintf(h, "schema:%d\n", SchemaVersion)

	sorted := append([]string(nil), roots...)
	sort.Strings(sorted)
	for _, root := range sorted {
		info, err := fs.Stat(root)
		if err != nil {
			fmt.Fprintf(h, "root:%s|absent\n", root)
			continue
		}
		fmt.Fprintf(h, "root:%s|%d|%d\n", root, info.ModTime().UnixNano(), info.Size())
	}

	for _, p := range extraPaths {
		fmt.Fprintf(h, "extra:%s\n", p)
	}
	for _, p := range excludePaths {
		fmt.Fprintf(h, "exclude:%s\n", p)
	}

	return hex.EncodeToString(h.Sum(nil))
}
