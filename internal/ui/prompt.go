package ui

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/manifoldco/promptui"
	"github.com/quantmind-br/appdex/internal/core"
)

// PickEntry runs an interactive fuzzy picker over entries and returns the
// chosen one. The searcher uses the same subsequence predicate as the
// query engine, so the picker narrows exactly like a search would.
func PickEntry(entries []core.Entry) (*core.Entry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries to pick from")
	}

	items := make([]string, len(entries))
	for i, e := range entries {
		items[i] = e.Name
	}

	prompt := promptui.Select{
		Label:             "Launch",
		Items:             items,
		Size:              12,
		StartInSearchMode: true,
		Searcher: func(input string, index int) bool {
			return fuzzy.MatchFold(core.NormalizeName(input), entries[index].NormalizedName)
		},
		Templates: &promptui.SelectTemplates{
			Active:   "> {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "{{ . | green }}",
		},
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("selection aborted: %w", err)
	}
	return &entries[idx], nil
}
