package linematch

import "strings"

// alignKind classifies what happened at one expected-token span during
// alignment.
type alignKind int

const (
	// alignMatched: the span was matched by one or more spoken tokens.
	alignMatched alignKind = iota

	// alignSkipped: a skippable word or stutter repeat that went unspoken.
	// Excluded from the scoring denominator.
	alignSkipped

	// alignMissing: an expected token with no spoken counterpart.
	alignMissing

	// alignWrong: a spoken token was present but did not match.
	alignWrong
)

// alignStep records the outcome for a span of expected tokens. Steps are
// emitted in expected order and together cover every expected token exactly
// once, so both the batch verdict and the word-by-word diff can be derived
// from the same walk, keeping the skip/compound/expansion rules from
// drifting between the two.
type alignStep struct {
	kind     alignKind
	expStart int
	expCount int    // 1, or 2 when one spoken token covered two expected tokens
	spoken   string // spoken text consumed for this span ("" when none)
}

// alignment is the full result of one batch walk.
type alignment struct {
	steps   []alignStep
	extras  []string // spoken tokens classified as extra (fillers excluded)
	matched int      // expected tokens matched
	skipped int      // expected tokens skipped (out of the denominator)
}

// align walks the expected and spoken token sequences once, greedily, with
// bounded look-ahead. It is the single alignment primitive behind
// [Engine.CheckAccuracy] and [Engine.WordByWord].
func (e *Engine) align(exp, spo []Token, names *NameSet) alignment {
	var out alignment
	eIdx, sIdx := 0, 0

	for eIdx < len(exp) && sIdx < len(spo) {
		et, st := exp[eIdx], spo[sIdx]

		// A skippable word or stutter repeat the actor did not speak leaves
		// the line without penalty.
		if e.autoSkippable(exp, eIdx) && !e.WordsMatch(et, st, names) {
			out.steps = append(out.steps, alignStep{kind: alignSkipped, expStart: eIdx, expCount: 1})
			out.skipped++
			eIdx++
			continue
		}

		// Direct match.
		if e.WordsMatch(et, st, names) {
			out.steps = append(out.steps, alignStep{kind: alignMatched, expStart: eIdx, expCount: 1, spoken: st.Original})
			out.matched++
			eIdx++
			sIdx++
			continue
		}

		// Compound merge: two spoken tokens form one expected word
		// ("cork" + "screw" → "corkscrew").
		if sIdx+1 < len(spo) {
			if merged := mergeTokens(st, spo[sIdx+1]); e.WordsMatch(et, merged, names) {
				out.steps = append(out.steps, alignStep{
					kind: alignMatched, expStart: eIdx, expCount: 1,
					spoken: st.Original + " " + spo[sIdx+1].Original,
				})
				out.matched++
				eIdx++
				sIdx += 2
				continue
			}
		}

		// Split: one spoken token covers two expected words.
		if eIdx+1 < len(exp) {
			if merged := mergeTokens(et, exp[eIdx+1]); e.WordsMatch(merged, st, names) {
				out.steps = append(out.steps, alignStep{kind: alignMatched, expStart: eIdx, expCount: 2, spoken: st.Original})
				out.matched += 2
				eIdx += 2
				sIdx++
				continue
			}
		}

		// Multi-word expansion, expected side: "alright" spoken as "all right".
		if n := e.expansionLen(et.Normalized, spo, sIdx); n > 0 {
			out.steps = append(out.steps, alignStep{
				kind: alignMatched, expStart: eIdx, expCount: 1,
				spoken: joinOriginals(spo[sIdx : sIdx+n]),
			})
			out.matched++
			eIdx++
			sIdx += n
			continue
		}

		// Expansion, spoken side: "all right" in the line, "alright" spoken.
		if n := e.expansionLen(st.Normalized, exp, eIdx); n > 0 {
			out.steps = append(out.steps, alignStep{kind: alignMatched, expStart: eIdx, expCount: n, spoken: st.Original})
			out.matched += n
			eIdx += n
			sIdx++
			continue
		}

		// Spoken filler noise is dropped before the look-ahead so a
		// mid-sentence "um" never corrupts alignment.
		if e.tables.Filler(st.Normalized) {
			sIdx++
			continue
		}

		// Bounded look-ahead: is the spoken token coming up in the line
		// (current expected word was dropped), or is the expected token
		// coming up in the speech (current spoken word is an insertion)?
		expAhead := e.findExpectedAhead(exp, eIdx+1, st)
		spoAhead := e.findSpokenAhead(et, spo, sIdx+1)
		switch {
		case expAhead > 0 && (spoAhead == 0 || expAhead <= spoAhead):
			out.steps = append(out.steps, alignStep{kind: alignMissing, expStart: eIdx, expCount: 1})
			eIdx++
		case spoAhead > 0:
			out.extras = append(out.extras, st.Original)
			sIdx++
		default:
			out.steps = append(out.steps, alignStep{kind: alignWrong, expStart: eIdx, expCount: 1, spoken: st.Original})
			eIdx++
			sIdx++
		}
	}

	// Expected tail: skippable and stutter slots are silently skipped,
	// everything else is missing.
	for ; eIdx < len(exp); eIdx++ {
		if e.autoSkippable(exp, eIdx) {
			out.steps = append(out.steps, alignStep{kind: alignSkipped, expStart: eIdx, expCount: 1})
			out.skipped++
		} else {
			out.steps = append(out.steps, alignStep{kind: alignMissing, expStart: eIdx, expCount: 1})
		}
	}

	// Spoken tail: fillers are silently dropped, everything else is extra.
	for ; sIdx < len(spo); sIdx++ {
		if !e.tables.Filler(spo[sIdx].Normalized) {
			out.extras = append(out.extras, spo[sIdx].Original)
		}
	}

	return out
}

// autoSkippable reports whether the expected token at i may be auto-satisfied
// without a spoken counterpart: it is in the skippable set, or it is a
// stutter repeat of the previous expected token.
func (e *Engine) autoSkippable(exp []Token, i int) bool {
	if e.tables.Skippable(exp[i].Normalized) {
		return true
	}
	return i > 0 && exp[i].Normalized == exp[i-1].Normalized
}

// expansionLen checks whether word has a multi-word expansion whose words
// appear verbatim in seq starting at from, returning the phrase length
// (0 when none applies).
func (e *Engine) expansionLen(word string, seq []Token, from int) int {
	for _, phrase := range e.tables.Expansions(word) {
		if from+len(phrase) > len(seq) {
			continue
		}
		ok := true
		for i, w := range phrase {
			if seq[from+i].Normalized != w {
				ok = false
				break
			}
		}
		if ok {
			return len(phrase)
		}
	}
	return 0
}

// findExpectedAhead returns the 1-based offset of the first of the next
// lookAhead expected tokens equal (or table-equivalent) to spoken, or 0 when
// none is. Probes never fuzzy-match; see [Engine.wordsMatchPlain].
func (e *Engine) findExpectedAhead(exp []Token, from int, spoken Token) int {
	for k := 0; k < lookAhead && from+k < len(exp); k++ {
		if e.wordsMatchPlain(exp[from+k], spoken) {
			return k + 1
		}
	}
	return 0
}

// findSpokenAhead returns the 1-based offset of the first of the next
// lookAhead spoken tokens equal (or table-equivalent) to expected, or 0 when
// none is.
func (e *Engine) findSpokenAhead(expected Token, spo []Token, from int) int {
	for k := 0; k < lookAhead && from+k < len(spo); k++ {
		if e.wordsMatchPlain(expected, spo[from+k]) {
			return k + 1
		}
	}
	return 0
}

func joinOriginals(tokens []Token) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Original
	}
	return strings.Join(words, " ")
}
