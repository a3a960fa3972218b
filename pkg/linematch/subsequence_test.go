package linematch_test

import (
	"testing"

	"github.com/offstage/linecoach/pkg/linematch"
)

func TestSubsequenceMatch_GapTolerance(t *testing.T) {
	t.Parallel()

	e := linematch.New()

	// One wrong word must not block recognition of the correct words after
	// it — the defining difference from the locked aligner.
	res := e.SubsequenceMatch("one thing never changes around here", "one FALSEHOOD never changes around here", nil)
	for _, idx := range []int{0, 2, 3, 4, 5} {
		if _, ok := res.MatchedIndices[idx]; !ok {
			t.Errorf("index %d not matched, want matched", idx)
		}
	}
	if _, ok := res.MatchedIndices[1]; ok {
		t.Errorf("index 1 (the substituted word) matched, want unmatched")
	}
	if res.Coverage <= 0.5 {
		t.Errorf("Coverage=%f, want > 0.5", res.Coverage)
	}

	// The locked aligner stops dead at the same substitution.
	lm := e.RealtimeMatch("one thing never changes around here", "one FALSEHOOD never changes around here", nil)
	if !lm.HasError || lm.Matched != 1 {
		t.Errorf("locked comparison: Matched=%d HasError=%v, want 1/true", lm.Matched, lm.HasError)
	}
}

func TestSubsequenceMatch_FullMatch(t *testing.T) {
	t.Parallel()

	e := linematch.New()
	res := e.SubsequenceMatch("we leave at dawn", "we leave at dawn", nil)
	if res.MatchedCount != 4 {
		t.Errorf("MatchedCount=%d, want 4", res.MatchedCount)
	}
	if res.Coverage != 1 {
		t.Errorf("Coverage=%f, want 1", res.Coverage)
	}
}

func TestSubsequenceMatch_SkippablePreMarked(t *testing.T) {
	t.Parallel()

	e := linematch.New()
	res := e.SubsequenceMatch("sighs I know", "I know", nil)

	// The skippable slot is auto-matched but stays out of the counts.
	if _, ok := res.MatchedIndices[0]; !ok {
		t.Errorf("skippable index 0 not in MatchedIndices, want auto-matched")
	}
	if res.MatchedCount != 2 {
		t.Errorf("MatchedCount=%d, want 2 (auto-matched slots excluded)", res.MatchedCount)
	}
	if res.Coverage != 1 {
		t.Errorf("Coverage=%f, want 1", res.Coverage)
	}
}

func TestSubsequenceMatch_FillerRemoved(t *testing.T) {
	t.Parallel()

	e := linematch.New()
	res := e.SubsequenceMatch("we leave at dawn", "um we uh leave at dawn", nil)
	if res.MatchedCount != 4 {
		t.Errorf("MatchedCount=%d, want 4 with fillers stripped", res.MatchedCount)
	}
}

func TestSubsequenceMatch_Degenerate(t *testing.T) {
	t.Parallel()

	e := linematch.New()

	res := e.SubsequenceMatch("", "", nil)
	if res.MatchedCount != 0 || res.Coverage != 1 {
		t.Errorf("empty/empty: got count=%d coverage=%f, want 0/1", res.MatchedCount, res.Coverage)
	}

	res = e.SubsequenceMatch("I am here", "", nil)
	if res.MatchedCount != 0 || res.Coverage != 0 {
		t.Errorf("empty speech: got count=%d coverage=%f, want 0/0", res.MatchedCount, res.Coverage)
	}
}
