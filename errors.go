package haiku

import "errors"

// Every message is prefixed with "haiku: ". Callers match with errors.Is;
// wrapped forms add the path or word involved.
var (
	// ErrLexiconLoad is returned when a lexicon source is missing or
	// unreadable. A missing file also matches fs.ErrNotExist.
	ErrLexiconLoad = errors.New("haiku: lexicon load failed")

	// ErrEmptyLexicon is returned by Generate when the word source holds no
	// words at all.
	ErrEmptyLexicon = errors.New("haiku: lexicon is empty")

	// ErrNoCandidateWord signals that no word of the slot's part of speech
	// fits the remaining syllable budget. Recovered by backtracking.
	ErrNoCandidateWord = errors.New("haiku: no candidate word")

	// ErrDeadEnd signals that every outgoing edge of a slot failed, or the
	// terminal slot was reached with syllables left. Recovered by
	// backtracking.
	ErrDeadEnd = errors.New("haiku: dead end")

	// ErrGenerationExhausted is returned when every attempt allowed by the
	// attempt ceiling failed to produce a complete poem.
	ErrGenerationExhausted = errors.New("haiku: generation exhausted")
)
