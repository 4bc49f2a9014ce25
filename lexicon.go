// Package haiku generates 5-7-5 poems by walking a weighted grammar graph of
// part-of-speech slots and filling each slot with a word from a lexicon.
//
// A Lexicon maps words to their part of speech. A Graph holds the slot
// sequence and the edge weights that steer the walk; the weights mutate as
// the walk proceeds and are restored by Reset. A Generator combines the two
// with a syllable budget per line and backtracks out of dead ends.
package haiku

import (
	"sort"
	"strings"
)

// Lexicon holds words tagged with a part of speech. A word maps to exactly
// one part of speech; adding it again replaces the earlier tag.
//
// A Lexicon is not safe for concurrent mutation.
type Lexicon struct {
	// entries maps word → part of speech.
	entries map[string]PartOfSpeech
}

// NewLexicon returns an empty Lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{entries: make(map[string]PartOfSpeech)}
}

// Add stores word with the given part of speech. It reports false, leaving
// the lexicon untouched, when word cannot be written back as one lexicon
// record (see validWord) or pos is absent or BLANK.
func (l *Lexicon) Add(word string, pos PartOfSpeech) bool {
	if !validWord(word) || !pos.Lexical() {
		return false
	}
	l.entries[word] = pos
	return true
}

// validWord reports whether word survives Write and Parse unchanged: it is
// non-empty, has no surrounding whitespace, and holds neither the delimiter
// nor a line break.
func validWord(word string) bool {
	return word != "" &&
		strings.TrimSpace(word) == word &&
		!strings.ContainsAny(word, string(tagDelimiter)+"\n\r")
}

// Remove deletes word and reports whether it was present.
func (l *Lexicon) Remove(word string) bool {
	if _, ok := l.entries[word]; !ok {
		return false
	}
	delete(l.entries, word)
	return true
}

// POS returns the part of speech of word.
func (l *Lexicon) POS(word string) (PartOfSpeech, bool) {
	pos, ok := l.entries[word]
	return pos, ok
}

// Contains reports whether word is in the lexicon.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.entries[word]
	return ok
}

// Len returns the number of words.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// IsEmpty reports whether the lexicon holds no words.
func (l *Lexicon) IsEmpty() bool {
	return len(l.entries) == 0
}

// Words returns every word in lexical order.
func (l *Lexicon) Words() []string {
	out := make([]string, 0, len(l.entries))
	for w := range l.entries {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Counts returns the number of words per part of speech.
func (l *Lexicon) Counts() map[PartOfSpeech]int {
	out := make(map[PartOfSpeech]int, len(lexicalTags))
	for _, pos := range l.entries {
		out[pos]++
	}
	return out
}

// SyllableCount is SyllableCount, exposed on the lexicon for callers that
// only hold a *Lexicon.
func (l *Lexicon) SyllableCount(word string) int {
	return SyllableCount(word)
}

// WordSet returns every word tagged pos.
func (l *Lexicon) WordSet(pos PartOfSpeech) map[string]struct{} {
	out := make(map[string]struct{})
	for w, p := range l.entries {
		if p == pos {
			out[w] = struct{}{}
		}
	}
	return out
}

// WordSetExact returns the words tagged pos with exactly syllables syllables.
func (l *Lexicon) WordSetExact(pos PartOfSpeech, syllables int) map[string]struct{} {
	return l.WordSetRange(pos, syllables, syllables)
}

// WordSetRange returns the words tagged pos whose syllable count lies in
// [min, max].
func (l *Lexicon) WordSetRange(pos PartOfSpeech, min, max int) map[string]struct{} {
	out := make(map[string]struct{})
	if min > max {
		return out
	}
	for w, p := range l.entries {
		if p != pos {
			continue
		}
		if n := SyllableCount(w); min <= n && n <= max {
			out[w] = struct{}{}
		}
	}
	return out
}

// Clone returns an independent copy of l.
func (l *Lexicon) Clone() *Lexicon {
	c := &Lexicon{entries: make(map[string]PartOfSpeech, len(l.entries))}
	for w, p := range l.entries {
		c.entries[w] = p
	}
	return c
}
