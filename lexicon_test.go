package haiku

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLexicon(t *testing.T) *Lexicon {
	t.Helper()
	l := NewLexicon()
	for word, pos := range map[string]PartOfSpeech{
		"cat":     POSNoun,
		"silence": POSNoun,
		"blossom": POSNoun,
		"ran":     POSVerb,
		"wander":  POSVerb,
		"red":     POSAdjective,
		"quiet":   POSAdjective,
		"fast":    POSAdverb,
		"slowly":  POSAdverb,
		"by":      POSPreposition,
		"under":   POSPreposition,
		"the":     POSArticle,
	} {
		require.True(t, l.Add(word, pos), "Add(%q)", word)
	}
	return l
}

func TestLexiconAdd(t *testing.T) {
	l := NewLexicon()
	assert.True(t, l.IsEmpty())

	assert.False(t, l.Add("", POSNoun), "empty word")
	assert.False(t, l.Add("a|b", POSNoun), "delimiter in word")
	assert.False(t, l.Add("foo\nbar", POSNoun), "newline in word")
	assert.False(t, l.Add("foo\rbar", POSNoun), "carriage return in word")
	assert.False(t, l.Add("   ", POSNoun), "whitespace-only word")
	assert.False(t, l.Add(" cat ", POSNoun), "surrounding whitespace")
	assert.False(t, l.Add("cat\t", POSNoun), "trailing tab")
	assert.False(t, l.Add("cat", 0), "absent part of speech")
	assert.False(t, l.Add("cat", POSBlank), "BLANK")
	assert.False(t, l.Add("cat", PartOfSpeech('x')), "unknown part of speech")
	assert.True(t, l.IsEmpty())

	require.True(t, l.Add("run", POSNoun))
	require.True(t, l.Add("run", POSVerb))
	pos, ok := l.POS("run")
	require.True(t, ok)
	assert.Equal(t, POSVerb, pos, "last write wins")
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Contains("run"))
	assert.False(t, l.Contains("walk"))

	_, ok = l.POS("walk")
	assert.False(t, ok)

	assert.True(t, l.Remove("run"))
	assert.False(t, l.Remove("run"))
	assert.True(t, l.IsEmpty())
}

func TestLexiconWordSets(t *testing.T) {
	l := sampleLexicon(t)

	assert.Equal(t, map[string]struct{}{"cat": {}, "silence": {}, "blossom": {}}, l.WordSet(POSNoun))
	assert.Equal(t, map[string]struct{}{"cat": {}}, l.WordSetExact(POSNoun, 1))
	assert.Equal(t, map[string]struct{}{"silence": {}, "blossom": {}}, l.WordSetExact(POSNoun, 2))
	assert.Empty(t, l.WordSetExact(POSNoun, 3))
	assert.Empty(t, l.WordSetRange(POSNoun, 3, 1), "inverted range")
	assert.Empty(t, l.WordSet(POSBlank))
}

// A range query is exactly the union of the exact queries it covers.
func TestLexiconWordSetRangeIsUnionOfExact(t *testing.T) {
	l := sampleLexicon(t)
	for _, pos := range lexicalTags {
		for lo := 0; lo <= 3; lo++ {
			for hi := lo; hi <= 4; hi++ {
				rng := l.WordSetRange(pos, lo, hi)
				union := make(map[string]struct{})
				for k := lo; k <= hi; k++ {
					exact := l.WordSetExact(pos, k)
					for w := range exact {
						assert.Containsf(t, rng, w, "%s [%d,%d] missing %q", pos, lo, hi, w)
						union[w] = struct{}{}
					}
				}
				assert.Equalf(t, union, rng, "%s [%d,%d]", pos, lo, hi)
			}
		}
	}
}

func TestLexiconCountsAndWords(t *testing.T) {
	l := sampleLexicon(t)
	counts := l.Counts()
	assert.Equal(t, 3, counts[POSNoun])
	assert.Equal(t, 1, counts[POSArticle])
	assert.Equal(t, 0, counts[POSBlank])

	words := l.Words()
	require.Len(t, words, l.Len())
	assert.Equal(t, "blossom", words[0])
	assert.Equal(t, "wander", words[len(words)-1])
}

func TestLexiconClone(t *testing.T) {
	l := sampleLexicon(t)
	c := l.Clone()
	require.True(t, c.Add("moon", POSNoun))
	assert.False(t, l.Contains("moon"))
	assert.Equal(t, l.Len()+1, c.Len())
}

func TestLexiconParse(t *testing.T) {
	src := strings.Join([]string{
		"cat | NOUN",
		"run | NOUN VERB",      // last tag in canonical order wins
		"quickly | ADVERB",     // contains VERB only as part of ADVERB
		"gently | VERB ADVERB", // ADVERB applied after VERB
		"no delimiter NOUN",
		"stone | noun", // case-sensitive
		"void | BLANK", // BLANK never matched
		" | NOUN",      // empty word
		"fog | ADJECTIVE extra",
		"",
		"the | ARTICLE",
		"over | PREPOSITION",
	}, "\n")

	l := NewLexicon()
	stats, err := l.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, LoadStats{Added: 7, Skipped: 4}, stats)

	want := map[string]PartOfSpeech{
		"cat":     POSNoun,
		"run":     POSVerb,
		"quickly": POSAdverb,
		"gently":  POSAdverb,
		"fog":     POSAdjective,
		"the":     POSArticle,
		"over":    POSPreposition,
	}
	require.Equal(t, len(want), l.Len())
	for w, p := range want {
		got, ok := l.POS(w)
		require.Truef(t, ok, "missing %q", w)
		assert.Equalf(t, p, got, "POS(%q)", w)
	}
}

func TestLexiconWrite(t *testing.T) {
	l := NewLexicon()
	l.Add("cat", POSNoun)
	l.Add("by", POSPreposition)

	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf))
	assert.Equal(t, "by | PREPOSITION\ncat | NOUN\n", buf.String())
}

// Every word Add accepts reads back unchanged.
func TestLexiconWriteParseRoundTrip(t *testing.T) {
	l := NewLexicon()
	for _, w := range []string{"cat", "ice cream", "naïve", "o'clock", "foo\nbar", " pad "} {
		l.Add(w, POSNoun)
	}
	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf))

	back := NewLexicon()
	stats, err := back.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, LoadStats{Added: l.Len()}, stats)
	assert.Equal(t, l.Words(), back.Words())
	assert.Equal(t, []string{"cat", "ice cream", "naïve", "o'clock"}, back.Words())
}

func TestLexiconParseLongLine(t *testing.T) {
	long := strings.Repeat("x", 100*1024)
	src := "cat | NOUN\n" + long + " | NOUN\nthe | ARTICLE\n"

	l := NewLexicon()
	stats, err := l.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, LoadStats{Added: 3}, stats)
	assert.True(t, l.Contains(long))

	_, err = NewLexicon().Parse(strings.NewReader(strings.Repeat("y", maxRecordLength+1) + " | NOUN\n"))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestLexiconSaveLoad(t *testing.T) {
	l := sampleLexicon(t)
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, l.Save(path))

	loaded, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, l.Words(), loaded.Words())
	for _, w := range l.Words() {
		want, _ := l.POS(w)
		got, _ := loaded.POS(w)
		assert.Equal(t, want, got, w)
	}
}

func TestLoadLexiconMissing(t *testing.T) {
	_, err := LoadLexicon(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLexiconLoad)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, IsNotFound(err))
}

func TestLoadLexiconDirectory(t *testing.T) {
	// reading a directory is an I/O fault other than "not found"
	_, err := LoadLexicon(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLexiconLoad)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}

func TestParsePartOfSpeech(t *testing.T) {
	for _, p := range lexicalTags {
		got, ok := ParsePartOfSpeech(p.String())
		require.True(t, ok)
		assert.Equal(t, p, got)
		assert.True(t, p.Lexical())
	}
	got, ok := ParsePartOfSpeech("BLANK")
	require.True(t, ok)
	assert.Equal(t, POSBlank, got)
	assert.False(t, got.Lexical())

	_, ok = ParsePartOfSpeech("noun")
	assert.False(t, ok)
	assert.Equal(t, "UNKNOWN", PartOfSpeech(0).String())
}
