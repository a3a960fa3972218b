package linematch

// WordVerdict is the per-slot outcome in a [WordByWordResult].
type WordVerdict int

const (
	// VerdictCorrect: the slot was matched, or auto-satisfied as a skippable
	// word or stutter repeat.
	VerdictCorrect WordVerdict = iota

	// VerdictWrong: a spoken token was present but did not match.
	VerdictWrong

	// VerdictMissing: no spoken token was left to fill the slot.
	VerdictMissing
)

// String implements [fmt.Stringer] for log output.
func (v WordVerdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictWrong:
		return "wrong"
	case VerdictMissing:
		return "missing"
	}
	return "unknown"
}

// WordByWordResult carries one verdict per expected token slot, in line
// order, plus the spoken word aligned to each slot for display.
type WordByWordResult struct {
	// Results has exactly one entry per expected token.
	Results []WordVerdict

	// SpokenWords is parallel to Results: the spoken text consumed for each
	// slot, empty for missing slots, auto-satisfied slots, and the second
	// half of a span one spoken token covered.
	SpokenWords []string
}

// WordByWord re-walks the line with the same alignment rules as
// [Engine.CheckAccuracy] — including compound merging, splits, and multi-word
// expansions — and emits a render-ready verdict for every expected word slot.
// Extra spoken words have no slot and do not appear.
func (e *Engine) WordByWord(expected, spoken string, names *NameSet) WordByWordResult {
	exp := Tokenize(expected)
	spo := Tokenize(spoken)

	res := WordByWordResult{
		Results:     make([]WordVerdict, 0, len(exp)),
		SpokenWords: make([]string, 0, len(exp)),
	}

	for _, step := range e.align(exp, spo, names).steps {
		switch step.kind {
		case alignMatched:
			res.Results = append(res.Results, VerdictCorrect)
			res.SpokenWords = append(res.SpokenWords, step.spoken)
			// A span covered by one spoken token renders the word once; the
			// remaining slots are correct with no spoken text of their own.
			for i := 1; i < step.expCount; i++ {
				res.Results = append(res.Results, VerdictCorrect)
				res.SpokenWords = append(res.SpokenWords, "")
			}
		case alignSkipped:
			res.Results = append(res.Results, VerdictCorrect)
			res.SpokenWords = append(res.SpokenWords, "")
		case alignMissing:
			res.Results = append(res.Results, VerdictMissing)
			res.SpokenWords = append(res.SpokenWords, "")
		case alignWrong:
			res.Results = append(res.Results, VerdictWrong)
			res.SpokenWords = append(res.SpokenWords, step.spoken)
		}
	}

	return res
}
