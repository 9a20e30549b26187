// Package filter ranks candidate search texts against a fuzzy query.
package filter

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Rank returns the indices of texts matching query, best match first.
// Matching is a case-insensitive subsequence test; a blank query keeps
// every index in its original order.
func Rank(query string, texts []string) []int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		order := make([]int, len(texts))
		for i := range order {
			order[i] = i
		}
		return order
	}
	type scored struct {
		index int
		score int
	}
	matches := make([]scored, 0, len(texts))
	for i, text := range texts {
		distance := fuzzy.RankMatchNormalizedFold(trimmed, text)
		if distance < 0 {
			continue
		}
		matches = append(matches, scored{index: i, score: -distance})
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})
	order := make([]int, len(matches))
	for i, m := range matches {
		order[i] = m.index
	}
	return order
}

// Matches reports whether text satisfies query under the same rule Rank uses.
func Matches(query, text string) bool {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return true
	}
	return fuzzy.MatchNormalizedFold(trimmed, text)
}
