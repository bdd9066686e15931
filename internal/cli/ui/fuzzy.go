package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance bounds the edit distance of a suggestion
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions bounds how many suggestions are returned
	DefaultMaxSuggestions = 3
)

// FuzzyOptions configures FindSimilar. Zero fields take the defaults.
type FuzzyOptions struct {
	MaxDistance    int
	MaxSuggestions int
	CaseSensitive  bool
}

// FindSimilar returns the candidates closest to target by edit distance,
// nearest first. Ties keep candidate order.
//
// Example:
//
//	FindSimilar("comutativity", corpus.Names(), nil)
//	// Returns: ["commutativity"]
func FindSimilar(target string, candidates []string, opts *FuzzyOptions) []string {
	o := FuzzyOptions{MaxDistance: DefaultMaxDistance, MaxSuggestions: DefaultMaxSuggestions}
	if opts != nil {
		o.CaseSensitive = opts.CaseSensitive
		if opts.MaxDistance > 0 {
			o.MaxDistance = opts.MaxDistance
		}
		if opts.MaxSuggestions > 0 {
			o.MaxSuggestions = opts.MaxSuggestions
		}
	}

	type scored struct {
		value    string
		distance int
	}
	var found []scored

	t := target
	if !o.CaseSensitive {
		t = strings.ToLower(t)
	}
	for _, c := range candidates {
		cmp := c
		if !o.CaseSensitive {
			cmp = strings.ToLower(c)
		}
		// group names share long suffixes; prefixes are a stronger signal
		if d := LevenshteinDistance(t, cmp); d <= o.MaxDistance {
			found = append(found, scored{c, d})
		} else if len(t) >= 3 && strings.HasPrefix(cmp, t) {
			found = append(found, scored{c, o.MaxDistance})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].distance < found[j].distance })

	out := make([]string, 0, o.MaxSuggestions)
	for i := 0; i < len(found) && i < o.MaxSuggestions; i++ {
		out = append(out, found[i].value)
	}
	return out
}

// LevenshteinDistance counts the single-rune insertions, deletions and
// substitutions needed to turn a into b
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
