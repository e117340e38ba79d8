package resolve

import (
	"strings"
)

// Similarity scores two normalized names in [0,1] by blending token overlap
// with a longest-common-subsequence character ratio. Token overlap catches
// reordered or partially missing name parts ("ken walker" vs "kenneth walker"),
// the character ratio catches spelling drift.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	// The stronger component dominates: a one-letter typo keeps a high
	// character ratio but only partial token overlap, and must still clear
	// the match threshold.
	token := tokenOverlap(a, b)
	chars := lcsRatio(a, b)
	if token > chars {
		return token*0.8 + chars*0.2
	}
	return chars*0.8 + token*0.2
}

func tokenOverlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	set := make(map[string]bool, len(ta))
	for _, t := range ta {
		set[t] = true
	}
	shared := 0
	for _, t := range tb {
		if set[t] {
			shared++
		}
	}

	total := len(ta) + len(tb)
	return float64(2*shared) / float64(total)
}

// lcsRatio is 2*LCS(a,b) / (len(a)+len(b)), the same ratio difflib's
// SequenceMatcher converges to for ordered text.
func lcsRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return float64(2*lcs) / float64(len(ra)+len(rb))
}
