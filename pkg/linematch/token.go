package linematch

import (
	"strings"
	"unicode"
)

// Token is a single comparable word extracted from a line of dialogue or a
// transcript. Normalized is the form the aligners compare; Original keeps the
// source casing so the comparator can recognise proper-noun shape.
type Token struct {
	// Normalized is the lower-cased token with all punctuation except
	// apostrophes removed.
	Normalized string

	// Original is the token as written, punctuation stripped but casing
	// preserved (e.g. "Eldrinax").
	Original string

	// First reports whether this is the first token of its text. Sentence-
	// initial capitalisation is not proper-noun evidence.
	First bool
}

// Tokenize splits raw text into comparable tokens.
//
// Dash runs are converted to spaces before splitting so a scripted stutter
// ("I--I am") and a literally repeated word ("I I am") tokenize identically.
// Normalization lower-cases, strips punctuation except apostrophes, and
// collapses whitespace. Empty input yields an empty slice, never an error.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	// Stutter splitting: every dash becomes a word boundary.
	text = strings.Map(func(r rune) rune {
		if r == '-' || r == '—' {
			return ' '
		}
		return r
	}, text)

	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		original := stripPunctuation(f)
		if original == "" {
			continue
		}
		tokens = append(tokens, Token{
			Normalized: strings.ToLower(original),
			Original:   original,
			First:      len(tokens) == 0,
		})
	}
	return tokens
}

// stripPunctuation removes every rune that is not a letter, digit, or
// apostrophe. Unicode punctuation and symbols are silently dropped.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// mergeTokens concatenates two adjacent tokens into one synthetic token, used
// for compound-word merging ("cork" + "screw" → "corkscrew") and its inverse.
func mergeTokens(a, b Token) Token {
	return Token{
		Normalized: a.Normalized + b.Normalized,
		Original:   a.Original + b.Original,
		First:      a.First,
	}
}
