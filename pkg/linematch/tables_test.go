package linematch_test

import (
	"testing"

	"github.com/offstage/linecoach/pkg/linematch"
)

func TestDefaultTables(t *testing.T) {
	t.Parallel()

	tb := linematch.DefaultTables()

	if !tb.Equivalent("their", "there") {
		t.Error("their/there should be equivalent")
	}
	if !tb.Equivalent("there", "their") {
		t.Error("equivalence should be symmetric")
	}
	if !tb.Equivalent("two", "2") {
		t.Error("two/2 should be equivalent")
	}
	if tb.Equivalent("old", "young") {
		t.Error("old/young should not be equivalent")
	}
	if !tb.Skippable("um") {
		t.Error("um should be skippable")
	}
	if !tb.Filler("uh") {
		t.Error("uh should be a filler")
	}
	if tb.Filler("castle") {
		t.Error("castle should not be a filler")
	}
}

func TestDefaultTables_Expansions(t *testing.T) {
	t.Parallel()

	tb := linematch.DefaultTables()

	exps := tb.Expansions("gonna")
	found := false
	for _, exp := range exps {
		if len(exp) == 2 && exp[0] == "going" && exp[1] == "to" {
			found = true
		}
	}
	if !found {
		t.Errorf("gonna expansions = %v, want to include [going to]", exps)
	}
	if got := tb.Expansions("castle"); got != nil {
		t.Errorf("castle expansions = %v, want none", got)
	}
}

func TestNewTables_CustomGroups(t *testing.T) {
	t.Parallel()

	tb := linematch.NewTables(linematch.TableData{
		EquivalenceGroups: [][]string{{"Aye", "YES"}},
		Expansions:        map[string][]string{"lemme": {"let me"}},
		Skippable:         []string{"Erm"},
		Filler:            []string{"ERM"},
	})

	if !tb.Equivalent("aye", "yes") {
		t.Error("custom groups should be matched case-insensitively")
	}
	exps := tb.Expansions("lemme")
	if len(exps) != 1 || len(exps[0]) != 2 || exps[0][0] != "let" || exps[0][1] != "me" {
		t.Errorf("lemme expansions = %v, want [[let me]]", exps)
	}
	if !tb.Skippable("erm") || !tb.Filler("erm") {
		t.Error("skippable and filler entries should be normalized to lowercase")
	}
}

func TestEngine_WithTables(t *testing.T) {
	t.Parallel()

	tb := linematch.NewTables(linematch.TableData{
		EquivalenceGroups: [][]string{{"thy", "your"}},
	})
	e := linematch.New(linematch.WithTables(tb))

	if e.Tables() != tb {
		t.Fatal("Tables() should return the injected table set")
	}
	if !e.WordsMatch(tok("thy"), tok("your"), nil) {
		t.Error("custom equivalence group should apply")
	}
	// Custom tables replace the built-ins entirely.
	if e.WordsMatch(tok("dr"), tok("doctor"), nil) {
		t.Error("built-in equivalence should be gone when custom tables are injected")
	}
	if e.Tables().Skippable("um") {
		t.Error("built-in skippable set should be gone when custom tables are injected")
	}
}
