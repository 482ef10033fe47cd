package index

import (
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"github.com/quantmind-br/appdex/internal/core"
)

// SortOrder controls the display order entries get when no query narrows
// them down.
type SortOrder int

const (
	SortAlphabetical SortOrder = iota
	SortRandom
)

// ParseSortOrder maps a configuration string to a sort order. Unknown
// values fall back to alphabetical.
func ParseSortOrder(s string) SortOrder {
	if s == "random" {
		return SortRandom
	}
	return SortAlphabetical
}

// Snapshot is one immutable generation of the index. Once built it is
// never mutated: readers share it freely and a rebuild publishes a fresh
// snapshot instead of touching this one.
type Snapshot struct {
	entries   []core.Entry
	builtAt   time.Time
	seed      int64
	fromCache bool
}

// NewSnapshot copies entries and fixes their display order. A random order
// draws its seed once at build time, so the shuffle is stable for the
// snapshot's whole lifetime and reshuffles only on the next build.
func NewSnapshot(entries []core.Entry, order SortOrder, fromCache bool) *Snapshot {
	owned := make([]core.Entry, len(entries))
	copy(owned, entries)

	snap := &Snapshot{
		entries:   owned,
		builtAt:   time.Now(),
		fromCache: fromCache,
	}

	switch order {
	case SortRandom:
		snap.seed = rand.Int63()
		rand.New(rand.NewSource(snap.seed)).Shuffle(len(owned), func(i, j int) {
			owned[i], owned[j] = owned[j], owned[i]
		})
	default:
		sort.SliceStable(owned, func(i, j int) bool {
			if owned[i].NormalizedName != owned[j].NormalizedName {
				return owned[i].NormalizedName < owned[j].NormalizedName
			}
			return owned[i].LaunchTarget < owned[j].LaunchTarget
		})
	}

	return snap
}

// Entries exposes the snapshot's entry set in display order. Callers must
// treat the slice as read-only.
func (s *Snapshot) Entries() []core.Entry { return s.entries }

func (s *Snapshot) Len() int           { return len(s.entries) }
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }
func (s *Snapshot) FromCache() bool    { return s.fromCache }

// Index holds the currently published snapshot. Publish and Current are
// safe for concurrent use without locking; searches running against an
// old snapshot simply finish against it.
type Index struct {
	current atomic.Pointer[Snapshot]
}

func New() *Index { return &Index{} }

// Publish swaps in a new snapshot.
func (i *Index) Publish(s *Snapshot) { i.current.Store(s) }

// Current returns the published snapshot, or nil before the first publish.
func (i *Index) Current() *Snapshot { return i.current.Load() }

// Ready reports whether a snapshot has been published.
func (i *Index) Ready() bool { return i.current.Load() != nil }

// Count returns the number of entries in the current snapshot.
func (i *Index) Count() int {
	if s := i.current.Load(); s != nil {
		return s.Len()
	}
	return 0
}
