package linematch

// NameSet is an optional set of known proper names (character names, place
// names) that widens fuzzy matching for words speech recognizers most often
// mis-spell. It is passed explicitly at call time so the engine stays
// reentrant; a nil *NameSet is valid and matches nothing.
//
// NameSet is read-only after construction and safe for concurrent use.
type NameSet struct {
	words map[string]struct{}
}

// NewNameSet builds a NameSet from the given names. Multi-word names
// ("Tower of Whispers") contribute every word individually so each token of
// the name is fuzzy-eligible on its own.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{words: make(map[string]struct{}, len(names))}
	for _, name := range names {
		for _, tok := range Tokenize(name) {
			s.words[tok.Normalized] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the normalized word is a known name.
// Safe to call on a nil receiver.
func (s *NameSet) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct name words in the set.
// Safe to call on a nil receiver.
func (s *NameSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}
