package linematch_test

import (
	"testing"

	"github.com/offstage/linecoach/pkg/linematch"
)

func TestWordByWord_OneVerdictPerSlot(t *testing.T) {
	t.Parallel()

	e := linematch.New()
	res := e.WordByWord("we leave at dawn", "we leave at dawn", nil)

	if len(res.Results) != 4 || len(res.SpokenWords) != 4 {
		t.Fatalf("got %d results / %d spoken words, want 4/4", len(res.Results), len(res.SpokenWords))
	}
	for i, v := range res.Results {
		if v != linematch.VerdictCorrect {
			t.Errorf("slot %d: verdict=%v, want correct", i, v)
		}
	}
}

func TestWordByWord_WrongAndMissing(t *testing.T) {
	t.Parallel()

	e := linematch.New()
	res := e.WordByWord("we leave at dawn", "we stay at", nil)

	want := []linematch.WordVerdict{
		linematch.VerdictCorrect, // we
		linematch.VerdictWrong,   // leave ↔ stay
		linematch.VerdictCorrect, // at
		linematch.VerdictMissing, // dawn
	}
	if len(res.Results) != len(want) {
		t.Fatalf("got %d results, want %d", len(res.Results), len(want))
	}
	for i := range want {
		if res.Results[i] != want[i] {
			t.Errorf("slot %d: verdict=%v, want %v", i, res.Results[i], want[i])
		}
	}
	if res.SpokenWords[1] != "stay" {
		t.Errorf("slot 1 spoken=%q, want %q", res.SpokenWords[1], "stay")
	}
	if res.SpokenWords[3] != "" {
		t.Errorf("slot 3 spoken=%q, want empty for missing", res.SpokenWords[3])
	}
}

func TestWordByWord_SplitOccupiesTwoSlots(t *testing.T) {
	t.Parallel()

	e := linematch.New()
	res := e.WordByWord("hand me the cork screw", "hand me the corkscrew", nil)

	if len(res.Results) != 5 {
		t.Fatalf("got %d results, want 5 (one per expected token)", len(res.Results))
	}
	for i, v := range res.Results {
		if v != linematch.VerdictCorrect {
			t.Errorf("slot %d: verdict=%v, want correct", i, v)
		}
	}
	if res.SpokenWords[3] != "corkscrew" {
		t.Errorf("slot 3 spoken=%q, want %q", res.SpokenWords[3], "corkscrew")
	}
	if res.SpokenWords[4] != "" {
		t.Errorf("slot 4 spoken=%q, want empty for the second half of the span", res.SpokenWords[4])
	}
}

func TestWordByWord_SkippableSlotsAreCorrect(t *testing.T) {
	t.Parallel()

	e := linematch.New()
	res := e.WordByWord("sighs I know", "I know", nil)

	if len(res.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(res.Results))
	}
	if res.Results[0] != linematch.VerdictCorrect {
		t.Errorf("skippable slot verdict=%v, want correct", res.Results[0])
	}
	if res.SpokenWords[0] != "" {
		t.Errorf("skippable slot spoken=%q, want empty", res.SpokenWords[0])
	}
}

func TestWordVerdict_String(t *testing.T) {
	t.Parallel()

	cases := map[linematch.WordVerdict]string{
		linematch.VerdictCorrect: "correct",
		linematch.VerdictWrong:   "wrong",
		linematch.VerdictMissing: "missing",
	}
	for v, want := range cases {
		if got := v.String(); got != want {
			t.Errorf("String(%d)=%q, want %q", int(v), got, want)
		}
	}
}
