package haiku

import "strings"

// Word is one word placed in a line.
type Word struct {
	Text      string
	POS       PartOfSpeech
	Syllables int
}

// Line is one generated line of a poem.
type Line struct {
	// Target is the syllable count the line was built for.
	Target int
	// Words in reading order.
	Words []Word
}

// Syllables returns the sum of the syllable counts of the line's words.
func (l Line) Syllables() int {
	n := 0
	for _, w := range l.Words {
		n += w.Syllables
	}
	return n
}

// String joins the words of the line with single spaces.
func (l Line) String() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Poem is a complete generated poem.
type Poem struct {
	Lines []Line
	// Attempts is the number of whole-poem attempts it took, including
	// the successful one.
	Attempts int
}

// Texts returns the text of each line.
func (p *Poem) Texts() []string {
	out := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		out[i] = l.String()
	}
	return out
}

// String returns the lines joined with newlines.
func (p *Poem) String() string {
	return strings.Join(p.Texts(), "\n")
}
