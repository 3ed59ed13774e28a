package merger

import "unicode"

// Similarity returns the Jaccard index of the distinct, case-folded runes of a and b.
// Two empty strings are the same empty set and score 1.
func Similarity(a, b string) float64 {
	sa := runeSet(a)
	sb := runeSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}

	shared := 0
	for r := range sa {
		if _, ok := sb[r]; ok {
			shared++
		}
	}
	union := len(sa) + len(sb) - shared
	return float64(shared) / float64(union)
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[unicode.ToLower(r)] = struct{}{}
	}
	return set
}
