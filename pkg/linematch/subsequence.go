package linematch

// SubsequenceResult reports which expected tokens a gap-tolerant alignment
// found in the spoken text.
type SubsequenceResult struct {
	// MatchedIndices are indices into the expected token sequence that were
	// matched, including auto-satisfied skippable and stutter slots.
	MatchedIndices map[int]struct{}

	// MatchedCount is the number of matched expected tokens, excluding
	// auto-satisfied slots.
	MatchedCount int

	// Coverage is MatchedCount over the effective (non-skippable) expected
	// token count, in [0, 1].
	Coverage float64
}

// SubsequenceMatch aligns the accumulated spoken text against the expected
// line using a longest-common-subsequence alignment with [Engine.WordsMatch]
// as the token-equality predicate.
//
// This is the gap-tolerant alternative to [Engine.LockedMatch]: one wrong
// word in the middle does not block recognition of correct words spoken after
// it, at the cost of allowing non-contiguous jumps in the highlight.
//
// Skippable words and stutter repeats in the line are pre-marked as matched,
// and filler words are removed from the spoken side before the alignment.
// The DP table is O(expected × spoken) in time and space — fine for a
// dialogue line and its transcript, unsuitable for paragraph-scale text
// without banding or a rolling array.
func (e *Engine) SubsequenceMatch(expected, spoken string, names *NameSet) SubsequenceResult {
	exp := Tokenize(expected)
	spo := Tokenize(spoken)

	res := SubsequenceResult{MatchedIndices: make(map[int]struct{})}

	// Pre-mark auto-satisfied slots; the rest participate in the LCS.
	var effIdx []int // positions of effective expected tokens
	for i := range exp {
		if e.autoSkippable(exp, i) {
			res.MatchedIndices[i] = struct{}{}
		} else {
			effIdx = append(effIdx, i)
		}
	}

	// Strip spoken filler noise.
	speech := spo[:0:0]
	for _, t := range spo {
		if !e.tables.Filler(t.Normalized) {
			speech = append(speech, t)
		}
	}

	n, m := len(effIdx), len(speech)
	if n == 0 {
		res.Coverage = 1
		return res
	}
	if m == 0 {
		return res
	}

	// Standard LCS table: dp[i][j] is the best match count using the first
	// i effective expected tokens and the first j spoken tokens.
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if e.WordsMatch(exp[effIdx[i-1]], speech[j-1], names) {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Backtrack to recover the matched expected indices.
	for i, j := n, m; i > 0 && j > 0; {
		switch {
		case e.WordsMatch(exp[effIdx[i-1]], speech[j-1], names) && dp[i][j] == dp[i-1][j-1]+1:
			res.MatchedIndices[effIdx[i-1]] = struct{}{}
			res.MatchedCount++
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	res.Coverage = float64(res.MatchedCount) / float64(n)
	return res
}
