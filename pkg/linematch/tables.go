package linematch

import "strings"

// Tables holds the immutable lookup data shared by the comparator and the
// aligners: single-word equivalence classes, multi-word expansions, the
// skippable-word set, and the filler-word set.
//
// A Tables value is read-only after construction and safe for concurrent use.
// Build one with [DefaultTables] (or [NewTables] for custom data) and share it
// across every [Engine] in the process.
type Tables struct {
	equivalents map[string]map[string]struct{}
	expansions  map[string][][]string
	skippable   map[string]struct{}
	filler      map[string]struct{}
}

// TableData is the raw material for [NewTables].
type TableData struct {
	// EquivalenceGroups are sets of single words that count as the same word.
	// Every member of a group is equivalent to every other member.
	EquivalenceGroups [][]string

	// Expansions maps a single word to the multi-word phrases it may be
	// spoken or written as ("alright" → "all right").
	Expansions map[string][]string

	// Skippable are expected-side words that may legitimately go unspoken.
	Skippable []string

	// Filler are spoken-side words that may appear as extra noise without
	// penalty.
	Filler []string
}

// NewTables builds an immutable [Tables] from data. All entries are
// normalized (lower-cased) on the way in.
func NewTables(data TableData) *Tables {
	t := &Tables{
		equivalents: make(map[string]map[string]struct{}),
		expansions:  make(map[string][][]string),
		skippable:   make(map[string]struct{}, len(data.Skippable)),
		filler:      make(map[string]struct{}, len(data.Filler)),
	}

	for _, group := range data.EquivalenceGroups {
		for _, w := range group {
			w = strings.ToLower(w)
			set, ok := t.equivalents[w]
			if !ok {
				set = make(map[string]struct{}, len(group))
				t.equivalents[w] = set
			}
			for _, other := range group {
				other = strings.ToLower(other)
				if other != w {
					set[other] = struct{}{}
				}
			}
		}
	}

	for word, phrases := range data.Expansions {
		word = strings.ToLower(word)
		for _, p := range phrases {
			t.expansions[word] = append(t.expansions[word], strings.Fields(strings.ToLower(p)))
		}
	}

	for _, w := range data.Skippable {
		t.skippable[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range data.Filler {
		t.filler[strings.ToLower(w)] = struct{}{}
	}
	return t
}

// Equivalent reports whether a and b belong to the same single-word
// equivalence class. The lookup is symmetric: both operands are tried as keys.
func (t *Tables) Equivalent(a, b string) bool {
	if set, ok := t.equivalents[a]; ok {
		if _, hit := set[b]; hit {
			return true
		}
	}
	if set, ok := t.equivalents[b]; ok {
		if _, hit := set[a]; hit {
			return true
		}
	}
	return false
}

// Expansions returns the multi-word phrases word may stand for, pre-split
// into normalized words. The returned slices must not be modified.
func (t *Tables) Expansions(word string) [][]string {
	return t.expansions[word]
}

// Skippable reports whether word may legitimately be absent from the spoken
// side when it appears in the expected line.
func (t *Tables) Skippable(word string) bool {
	_, ok := t.skippable[word]
	return ok
}

// Filler reports whether word is incidental spoken noise that should be
// ignored rather than penalized as extra.
func (t *Tables) Filler(word string) bool {
	_, ok := t.filler[word]
	return ok
}

// defaultTables is built once at init and shared by every Engine that does
// not supply its own tables.
var defaultTables = NewTables(defaultTableData)

// DefaultTables returns the built-in lookup tables. The same instance is
// returned on every call.
func DefaultTables() *Tables {
	return defaultTables
}

// defaultTableData is the built-in equivalence data. The filler-sound
// clusters exist because different speech-recognition passes transcribe the
// same sound differently, not because the words are interchangeable in prose.
var defaultTableData = TableData{
	EquivalenceGroups: [][]string{
		// Abbreviations and titles.
		{"dr", "doctor"},
		{"mr", "mister"},
		{"mrs", "missus"},
		{"ms", "miss"},
		{"st", "saint"},
		{"jr", "junior"},
		{"sr", "senior"},
		{"prof", "professor"},
		{"capt", "captain"},
		{"sgt", "sergeant"},
		{"lt", "lieutenant"},

		// Homophones the recognizer swaps freely.
		{"their", "there", "they're"},
		{"to", "too", "two", "2"},
		{"your", "you're"},
		{"its", "it's"},
		{"hear", "here"},
		{"no", "know"},
		{"knows", "nose"},
		{"write", "right", "rite"},
		{"for", "four", "fore", "4"},
		{"one", "won", "1"},
		{"ate", "eight", "8"},
		{"by", "buy", "bye"},
		{"sea", "see"},
		{"son", "sun"},
		{"whose", "who's"},
		{"threw", "through"},
		{"knight", "night"},
		{"would", "wood"},
		{"our", "hour"},
		{"weather", "whether"},
		{"piece", "peace"},
		{"break", "brake"},
		{"wait", "weight"},
		{"waist", "waste"},
		{"plain", "plane"},
		{"pale", "pail"},
		{"tale", "tail"},
		{"sale", "sail"},
		{"hole", "whole"},
		{"heal", "heel", "he'll"},
		{"weak", "week"},
		{"meet", "meat"},
		{"dear", "deer"},
		{"bear", "bare"},
		{"fair", "fare"},
		{"pair", "pear", "pare"},
		{"stair", "stare"},
		{"hair", "hare"},
		{"steal", "steel"},
		{"aloud", "allowed"},
		{"aisle", "isle", "i'll"},
		{"scene", "seen"},
		{"cell", "sell"},
		{"cent", "sent", "scent"},
		{"maid", "made"},
		{"mail", "male"},
		{"principal", "principle"},
		{"course", "coarse"},

		// Digits and word numerals.
		{"zero", "0"},
		{"three", "3"},
		{"five", "5"},
		{"six", "6"},
		{"seven", "7"},
		{"nine", "9"},
		{"ten", "10"},
		{"eleven", "11"},
		{"twelve", "12"},
		{"thirteen", "13"},
		{"fourteen", "14"},
		{"fifteen", "15"},
		{"sixteen", "16"},
		{"seventeen", "17"},
		{"eighteen", "18"},
		{"nineteen", "19"},
		{"twenty", "20"},
		{"thirty", "30"},
		{"forty", "40"},
		{"fifty", "50"},
		{"sixty", "60"},
		{"seventy", "70"},
		{"eighty", "80"},
		{"ninety", "90"},
		{"hundred", "100"},
		{"thousand", "1000"},

		// Casual spellings and contracted speech.
		{"ok", "okay", "kay", "k"},
		{"cause", "because", "cuz", "cos"},
		{"til", "till", "until"},
		{"em", "them"},
		{"ya", "you"},
		{"yer", "your"},
		{"gimme", "gimmie"},
		{"can't", "cannot"},

		// Thinking-sound cluster: one hum, many transcriptions.
		{"um", "uhm", "umm", "hmm", "hm", "mm", "mmm", "erm"},
		{"uh", "uhh", "er", "ah", "eh"},
		{"mhm", "mmhmm", "uhhuh"},
		{"huh", "hah"},
		{"yeah", "yep", "yup", "yes", "yah", "ya"},
		{"nah", "no", "nope"},
		{"ooh", "oh", "o"},
		{"whoa", "woah", "wow"},
		{"hey", "hay"},
		{"shh", "shhh", "sh"},
		{"aw", "aww", "awe"},
		{"ha", "hah", "haha"},
	},

	Expansions: map[string][]string{
		"alright":   {"all right"},
		"gonna":     {"going to"},
		"wanna":     {"want to"},
		"gotta":     {"got to"},
		"kinda":     {"kind of"},
		"sorta":     {"sort of"},
		"outta":     {"out of"},
		"lotta":     {"lot of"},
		"lemme":     {"let me"},
		"gimme":     {"give me"},
		"dunno":     {"don't know", "do not know"},
		"c'mon":     {"come on"},
		"cmon":      {"come on"},
		"y'know":    {"you know"},
		"whatcha":   {"what are you", "what you"},
		"gotcha":    {"got you"},
		"betcha":    {"bet you"},
		"mhm":       {"mm hmm"},
		"uhhuh":     {"uh huh"},
		"cannot":    {"can not"},
		"can't":     {"can not", "cannot"},
		"won't":     {"will not"},
		"don't":     {"do not"},
		"doesn't":   {"does not"},
		"didn't":    {"did not"},
		"isn't":     {"is not"},
		"aren't":    {"are not"},
		"wasn't":    {"was not"},
		"weren't":   {"were not"},
		"haven't":   {"have not"},
		"hasn't":    {"has not"},
		"hadn't":    {"had not"},
		"couldn't":  {"could not"},
		"shouldn't": {"should not"},
		"wouldn't":  {"would not"},
		"ain't":     {"am not", "is not", "are not"},
		"i'm":       {"i am"},
		"i've":      {"i have"},
		"i'll":      {"i will"},
		"i'd":       {"i would", "i had"},
		"you're":    {"you are"},
		"you've":    {"you have"},
		"you'll":    {"you will"},
		"you'd":     {"you would"},
		"he's":      {"he is", "he has"},
		"she's":     {"she is", "she has"},
		"it's":      {"it is", "it has"},
		"we're":     {"we are"},
		"we've":     {"we have"},
		"we'll":     {"we will"},
		"they're":   {"they are"},
		"they've":   {"they have"},
		"they'll":   {"they will"},
		"that's":    {"that is"},
		"what's":    {"what is"},
		"who's":     {"who is"},
		"where's":   {"where is"},
		"there's":   {"there is"},
		"here's":    {"here is"},
		"let's":     {"let us"},
		"o'clock":   {"of the clock"},
	},

	// Words in the expected line an actor may silently drop: thinking sounds,
	// reaction sounds, acknowledgment sounds, beat markers, discourse fillers.
	Skippable: []string{
		"um", "uh", "uhm", "umm", "uhh", "er", "erm", "ah", "eh", "oh", "ooh",
		"hmm", "hm", "mm", "mmm", "huh", "mhm", "mmhmm", "uhhuh",
		"sigh", "sighs", "laugh", "laughs", "chuckle", "chuckles",
		"scoff", "scoffs", "gasp", "gasps", "groan", "groans",
		"cough", "coughs", "sniff", "sniffs", "exhales", "inhales",
		"beat", "pause",
		"well", "like", "so", "anyway", "look", "listen", "hey",
	},

	// Spoken-side noise: never counted as extra words.
	Filler: []string{
		"um", "uh", "uhm", "umm", "uhh", "er", "erm", "ah", "eh",
		"hmm", "hm", "mm", "mmm", "huh", "like",
	},
}
