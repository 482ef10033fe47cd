package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/quantmind-br/appdex/internal/core"
)

// Weights tunes the ranking heuristics. Matching itself is not weighted:
// an entry matches iff the normalized query is a subsequence of its
// normalized name, and weights only order the matches.
type Weights struct {
	Prefix        int // name starts with the query
	Contiguity    int // per adjacent pair of matched runes
	OriginBonus   int // entry discovered via the start menu
	LengthPenalty int // per rune of the normalized name
}

// DefaultWeights returns the tuning used by the engine.
func DefaultWeights() Weights {
	return Weights{
		Prefix:        100,
		Contiguity:    12,
		OriginBonus:   30,
		LengthPenalty: 1,
	}
}

// Matcher ranks index entries against a query.
type Matcher struct {
	weights    Weights
	maxResults int
}

// NewMatcher builds a matcher returning at most maxResults hits per query.
func NewMatcher(weights Weights, maxResults int) *Matcher {
	if maxResults < 1 {
		maxResults = 1
	}
	return &Matcher{weights: weights, maxResults: maxResults}
}

// Search ranks entries against query. An empty (or all-whitespace) query
// matches everything and preserves the entries' own order; otherwise the
// full entry set is scored and sorted before truncation, so the cut never
// drops a better hit than the ones returned.
func (m *Matcher) Search(entries []core.Entry, query string) []core.Result {
	q := core.NormalizeName(query)
	if q == "" {
		n := len(entries)
		if n > m.maxResults {
			n = m.maxResults
		}
		results := make([]core.Result, 0, n)
		for i := 0; i < n; i++ {
			results = append(results, core.Result{Entry: &entries[i]})
		}
		return results
	}

	var results []core.Result
	for i := range entries {
		e := &entries[i]
		if !fuzzy.MatchFold(q, e.NormalizedName) {
			continue
		}
		results = append(results, core.Result{Entry: e, Score: m.score(q, e)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Entry.NormalizedName != b.Entry.NormalizedName {
			return a.Entry.NormalizedName < b.Entry.NormalizedName
		}
		return a.Entry.LaunchTarget < b.Entry.LaunchTarget
	})

	if len(results) > m.maxResults {
		results = results[:m.maxResults]
	}
	return results
}

func (m *Matcher) score(q string, e *core.Entry) int {
	name := e.NormalizedName
	score := 0

	if strings.HasPrefix(name, q) {
		score += m.weights.Prefix
	}

	score += m.weights.Contiguity * contiguousPairs(q, name)

	if e.Origin == core.OriginStartMenu {
		score += m.weights.OriginBonus
	}

	score -= m.weights.LengthPenalty * len([]rune(name))
	return score
}

// contiguousPairs counts adjacent pairs among the matched rune positions.
// A contiguous substring match yields the maximum len(query)-1; scattered
// subsequences yield less. The scattered case uses a greedy leftmost walk,
// which underestimates the optimal alignment at worst but keeps scoring
// linear in the name length.
func contiguousPairs(q, name string) int {
	qr := []rune(q)
	if len(qr) < 2 {
		return 0
	}

	if strings.Contains(name, q) {
		return len(qr) - 1
	}

	pairs := 0
	prev := -2
	qi := 0
	for i, r := range []rune(name) {
		if qi >= len(qr) {
			break
		}
		if r != qr[qi] {
			continue
		}
		if i == prev+1 {
			pairs++
		}
		prev = i
		qi++
	}
	return pairs
}
