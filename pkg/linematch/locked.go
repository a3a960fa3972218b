package linematch

import "slices"

// LockedState is the caller-held, monotonic record of how much of a line has
// been confidently matched during live transcription. One LockedState belongs
// to exactly one line-practice turn; create a fresh one with [NewLockedState]
// when the session advances to the next line, and never share an instance
// between concurrently-practiced lines.
//
// Invariant: for a fixed expected line and spoken texts that grow
// prefix-compatibly, Count never decreases and never exceeds the expected
// token count. Once HasError is set the state is frozen and every later call
// returns it unchanged, unless the engine was built with error recovery.
type LockedState struct {
	// Words are the expected words locked so far, in line order.
	Words []string

	// Count is len(Words). Kept explicit for cheap progress rendering.
	Count int

	// HasError is set on the first mismatched word and freezes the state.
	HasError bool

	// spokenSeen is how many spoken tokens have already been consumed, so a
	// later call only processes the tokens beyond the locked prefix.
	spokenSeen int
}

// NewLockedState returns an empty state for a new line turn.
func NewLockedState() *LockedState {
	return &LockedState{}
}

// RealtimeMatch is the result of a stateless single-pass incremental match.
type RealtimeMatch struct {
	// Matched is how many expected tokens match from the start of the line.
	Matched int

	// HasError reports that a spoken word contradicted the line.
	HasError bool
}

// RealtimeMatch runs the locked-alignment logic in a single stateless pass:
// no persisted lock, every call starts from the top of the line.
func (e *Engine) RealtimeMatch(expected, spoken string, names *NameSet) RealtimeMatch {
	st := e.LockedMatch(expected, spoken, nil, names)
	return RealtimeMatch{Matched: st.Count, HasError: st.HasError}
}

// LockedMatch extends prev with the spoken tokens that arrived since the last
// call and returns the new state. prev may be nil for a fresh line.
//
// The state machine has two phases. While matching, each new spoken token
// either extends the lock, applying the same skippable-word and
// stutter-repeat rule as [Engine.CheckAccuracy], or, if it is filler noise,
// is dropped. The first real mismatch freezes the state: HasError is set and
// all subsequent calls return the frozen state unchanged until the caller
// resets for a new line. This is what keeps live progress highlighting from
// flickering backward when the recognizer revises earlier words.
//
// Two defensive rules cover recognizer revision artifacts: a spoken text with
// fewer tokens than already consumed is treated as transient and returns prev
// unchanged, and the returned state is always a fresh value; prev is never
// mutated.
//
// When the engine was built with [WithErrorRecovery], a frozen state is
// instead re-derived from scratch against the full current transcript; the
// recomputed state replaces the frozen one only if it locks at least as many
// words, preserving monotonicity.
func (e *Engine) LockedMatch(expected, spoken string, prev *LockedState, names *NameSet) *LockedState {
	st := prev
	if st == nil {
		st = NewLockedState()
	}

	if st.HasError {
		if !e.errorRecovery {
			return st
		}
		fresh := e.LockedMatch(expected, spoken, nil, names)
		if fresh.Count >= st.Count {
			return fresh
		}
		return st
	}

	exp := Tokenize(expected)
	spo := Tokenize(spoken)

	// A shrinking transcript is an interim-hypothesis revision; never regress.
	if len(spo) < st.spokenSeen {
		return st
	}

	words := slices.Clone(st.Words)
	eIdx := st.Count
	sIdx := st.spokenSeen
	hasError := false

	for sIdx < len(spo) && eIdx < len(exp) && !hasError {
		tok := spo[sIdx]

		// Walk over skippable/stutter expected slots the speaker did not say.
		for eIdx < len(exp) && e.autoSkippable(exp, eIdx) && !e.WordsMatch(exp[eIdx], tok, names) {
			words = append(words, exp[eIdx].Original)
			eIdx++
		}
		if eIdx >= len(exp) {
			break
		}

		switch {
		case e.WordsMatch(exp[eIdx], tok, names):
			words = append(words, exp[eIdx].Original)
			eIdx++
			sIdx++
		case e.tables.Filler(tok.Normalized):
			sIdx++
		default:
			hasError = true
			sIdx++
		}
	}

	return &LockedState{
		Words:      words,
		Count:      eIdx,
		HasError:   hasError,
		spokenSeen: sIdx,
	}
}
