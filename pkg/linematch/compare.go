package linematch

import (
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// editLongLen is the length at which both words must arrive before the
// comparator tolerates two edits instead of one. Longer words absorb more
// transcription noise before becoming a different word.
const editLongLen = 6

// WordsMatch decides whether an expected token and a spoken token count as
// the same word. Checks run in order, short-circuiting on first success:
//
//  1. Exact normalized equality.
//  2. Equivalence-table hit, tried in both directions.
//  3. Proper-noun fuzzy match: when the expected token looks like a proper
//     noun (capitalised, not line-initial) or is in names, Jaro-Winkler
//     similarity at or above the engine's name threshold matches. Ordinary
//     words never fuzzy-match — only names, which recognizers most often
//     mis-spell.
//  4. Bounded edit distance (words of two letters or more): Levenshtein ≤ 1
//     when either word has length ≤ 5, ≤ 2 when both have length ≥ 6.
//  5. Phonetic fallback: equal Soundex codes when both words have length
//     ≥ 2, catching homophones the table does not list ("scene"/"seen").
func (e *Engine) WordsMatch(expected, spoken Token, names *NameSet) bool {
	a, b := expected.Normalized, spoken.Normalized
	if a == "" || b == "" {
		return a == b
	}
	if a == b {
		return true
	}
	if e.tables.Equivalent(a, b) {
		return true
	}

	if e.isProperNoun(expected, names) &&
		matchr.JaroWinkler(a, b, false) >= e.nameThreshold {
		return true
	}

	la, lb := len([]rune(a)), len([]rune(b))
	if la >= 2 && lb >= 2 {
		// One-letter words ("a", "I") only ever match exactly or via the
		// table; a single edit would turn them into a different word.
		limit := 1
		if la >= editLongLen && lb >= editLongLen {
			limit = 2
		}
		if matchr.Levenshtein(a, b) <= limit {
			return true
		}
	}

	if la >= 2 && lb >= 2 {
		if sa := matchr.Soundex(a); sa != "" && sa == matchr.Soundex(b) {
			return true
		}
	}
	return false
}

// wordsMatchPlain is the non-fuzzy front of [Engine.WordsMatch]: exact
// normalized equality or an equivalence-table hit. The aligner's look-ahead
// probes use it so that a phonetic coincidence a few tokens ahead (Soundex
// maps "big" and "book" to the same code) cannot hijack the walk; fuzzy
// matching stays reserved for the directly paired tokens.
func (e *Engine) wordsMatchPlain(a, b Token) bool {
	if a.Normalized == b.Normalized {
		return a.Normalized != ""
	}
	return e.tables.Equivalent(a.Normalized, b.Normalized)
}

// isProperNoun reports whether the expected token should be fuzzy-eligible:
// either its original form starts with an upper-case letter somewhere other
// than the first position of the line, or it is a known name.
func (e *Engine) isProperNoun(tok Token, names *NameSet) bool {
	if names.Contains(tok.Normalized) {
		return true
	}
	if tok.First {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok.Original)
	return unicode.IsUpper(r)
}
