package search

// Similarity scores two normalized keys in [0, 1] as
// 2*lcs(a, b) / (len(a) + len(b)): the length of the longest common
// subsequence relative to the combined length. 1 means identical, 0 means
// no runes in common. The fuzzy cutoff and descending-ratio ordering are
// the contract; this is a subsequence ratio, not an edit distance.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	// Two-row dynamic program over rune sequences.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
