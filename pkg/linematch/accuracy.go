package linematch

import (
	"fmt"
	"math"
)

// AccuracyResult is the end-of-turn verdict for one spoken line.
type AccuracyResult struct {
	// IsCorrect is the final pass/fail verdict. Any substitution fails the
	// line regardless of aggregate accuracy.
	IsCorrect bool

	// Accuracy is the matched share of the effective word count, 0–100.
	Accuracy int

	// MissingWords lists expected words that were never spoken.
	MissingWords []string

	// ExtraWords lists spoken words with no counterpart in the line
	// (fillers excluded).
	ExtraWords []string

	// WrongWords lists substitutions in human-readable form,
	// e.g. `"hate" instead of "love"`.
	WrongWords []string
}

// verdict thresholds by effective line length, non-strict mode.
type thresholds struct {
	allowedMissing int
	allowedExtra   int
	minAccuracy    int
}

func thresholdsFor(effectiveWords int, strict bool) thresholds {
	if strict {
		return thresholds{allowedMissing: 0, allowedExtra: 0, minAccuracy: 100}
	}
	switch {
	case effectiveWords > 20:
		return thresholds{allowedMissing: 3, allowedExtra: 3, minAccuracy: 85}
	case effectiveWords > 10:
		return thresholds{allowedMissing: 2, allowedExtra: 2, minAccuracy: 90}
	default:
		return thresholds{allowedMissing: 1, allowedExtra: 1, minAccuracy: 90}
	}
}

// CheckAccuracy aligns the full spoken utterance against the expected line
// once, at end of turn, and returns the verdict with diagnostic word lists.
//
// strict requires a perfect line: no missing words, no extra words, 100%
// accuracy. Otherwise the allowed slack scales with line length (see
// thresholdsFor). names optionally widens fuzzy matching for known proper
// nouns; nil is valid.
//
// Degenerate inputs resolve to defined values: two empty strings are a
// trivial pass, and empty speech against a non-empty line scores 0 with
// every expected word missing.
func (e *Engine) CheckAccuracy(expected, spoken string, strict bool, names *NameSet) AccuracyResult {
	exp := Tokenize(expected)
	spo := Tokenize(spoken)

	if len(exp) == 0 {
		// Nothing to say: correct unless real words were spoken in strict mode.
		res := AccuracyResult{IsCorrect: true, Accuracy: 100}
		for _, t := range spo {
			if !e.tables.Filler(t.Normalized) {
				res.ExtraWords = append(res.ExtraWords, t.Original)
			}
		}
		if strict && len(res.ExtraWords) > 0 {
			res.IsCorrect = false
		}
		return res
	}

	a := e.align(exp, spo, names)

	res := AccuracyResult{ExtraWords: a.extras}
	for _, step := range a.steps {
		switch step.kind {
		case alignMissing:
			res.MissingWords = append(res.MissingWords, exp[step.expStart].Normalized)
		case alignWrong:
			res.WrongWords = append(res.WrongWords,
				fmt.Sprintf("%q instead of %q", spokenNormalized(step.spoken), exp[step.expStart].Normalized))
		}
	}

	effective := len(exp) - a.skipped
	if effective <= 0 {
		res.Accuracy = 100
	} else {
		res.Accuracy = int(math.Round(float64(a.matched) / float64(effective) * 100))
	}

	th := thresholdsFor(effective, strict)
	res.IsCorrect = len(res.WrongWords) == 0 &&
		res.Accuracy >= th.minAccuracy &&
		len(res.MissingWords) <= th.allowedMissing &&
		len(res.ExtraWords) <= th.allowedExtra

	return res
}

// spokenNormalized lowers a recorded spoken span for display next to the
// normalized expected word.
func spokenNormalized(s string) string {
	toks := Tokenize(s)
	if len(toks) == 0 {
		return s
	}
	out := toks[0].Normalized
	for _, t := range toks[1:] {
		out += " " + t.Normalized
	}
	return out
}
