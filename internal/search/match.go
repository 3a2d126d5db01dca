package search

import (
	"math"
	"slices"
)

// approxMatch finds the substring of text closest to pattern by edit
// distance and scores it 1 - errors/len(pattern). Matches with more than
// threshold errors per pattern rune do not count.
func approxMatch(pattern string, text []rune, threshold float64) (float64, bool) {
	p := []rune(pattern)
	m := len(p)
	if m == 0 || len(text) == 0 {
		return 0, false
	}
	maxErrors := int(math.Floor(threshold * float64(m)))

	if containsRunes(text, p) {
		return 1, true
	}
	if maxErrors == 0 {
		return 0, false
	}

	best := minSubstringDistance(p, text, maxErrors)
	if best > maxErrors {
		return 0, false
	}
	return 1 - float64(best)/float64(m), true
}

// minSubstringDistance is the smallest edit distance between p and any
// substring of text (Sellers' algorithm). Distances above limit are
// reported as limit+1.
func minSubstringDistance(p, text []rune, limit int) int {
	m := len(p)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}

	best := prev[m]
	for _, c := range text {
		cur[0] = 0
		for i := 1; i <= m; i++ {
			cost := 1
			if p[i-1] == c {
				cost = 0
			}
			cur[i] = min(prev[i]+1, cur[i-1]+1, prev[i-1]+cost)
		}
		if cur[m] < best {
			best = cur[m]
			if best == 0 {
				return 0
			}
		}
		prev, cur = cur, prev
	}
	if best > limit {
		return limit + 1
	}
	return best
}

func containsRunes(text, p []rune) bool {
	if len(p) > len(text) {
		return false
	}
	for i := 0; i+len(p) <= len(text); i++ {
		if slices.Equal(text[i:i+len(p)], p) {
			return true
		}
	}
	return false
}
