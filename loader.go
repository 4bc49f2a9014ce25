package haiku

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// tagDelimiter separates a word from its tags in a lexicon file:
//
//	word | TAG [TAG ...]
const tagDelimiter = '|'

// maxRecordLength bounds a single lexicon line.
const maxRecordLength = 1 << 20

// LoadStats reports what a lexicon load did.
type LoadStats struct {
	// Added is the number of records stored (including replacements).
	Added int
	// Skipped is the number of malformed records ignored: no delimiter,
	// empty word, or no recognised tag.
	Skipped int
}

// LoadLexicon reads the lexicon file at path into a new Lexicon.
func LoadLexicon(path string) (*Lexicon, error) {
	l := NewLexicon()
	if _, err := l.Load(path); err != nil {
		return nil, err
	}
	return l, nil
}

// Load adds the records of the lexicon file at path to l. A missing file
// yields an error matching both ErrLexiconLoad and fs.ErrNotExist.
func (l *Lexicon) Load(path string) (LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadStats{}, fmt.Errorf("%w: open %s: %w", ErrLexiconLoad, path, err)
	}
	defer f.Close()

	stats, err := l.Parse(f)
	if err != nil {
		return stats, fmt.Errorf("%w: read %s: %w", ErrLexiconLoad, path, err)
	}
	return stats, nil
}

// Parse adds the records read from r to l, one per line.
//
// Tags are matched exactly (case-sensitive) among NOUN, VERB, ADJECTIVE,
// ADVERB, PREPOSITION and ARTICLE. A record carrying several tags keeps the
// last one in that order. Malformed lines are skipped, not fatal; blank lines
// are ignored without being counted. Lines up to maxRecordLength bytes are
// read; a longer line fails the whole parse with bufio.ErrTooLong.
func (l *Lexicon) Parse(r io.Reader) (LoadStats, error) {
	var stats LoadStats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordLength)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		word, pos, ok := parseRecord(line)
		if !ok || !l.Add(word, pos) {
			stats.Skipped++
			continue
		}
		stats.Added++
	}
	return stats, sc.Err()
}

// parseRecord splits "word | TAG [TAG ...]" into its word and the last
// recognised tag.
func parseRecord(line string) (string, PartOfSpeech, bool) {
	idx := strings.IndexByte(line, tagDelimiter)
	if idx < 0 {
		return "", 0, false
	}
	word := strings.TrimSpace(line[:idx])
	fields := strings.Fields(line[idx+1:])

	var pos PartOfSpeech
	for _, t := range lexicalTags {
		if slices.Contains(fields, t.String()) {
			pos = t
		}
	}
	if word == "" || pos == 0 {
		return "", 0, false
	}
	return word, pos, true
}

// Save writes l to the file at path, replacing it.
func (l *Lexicon) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := l.Write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Write serialises l as "word | TAG" lines in lexical word order.
func (l *Lexicon) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, word := range l.Words() {
		if _, err := fmt.Fprintf(bw, "%s %c %s\n", word, tagDelimiter, l.entries[word]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// IsNotFound reports whether err came from a lexicon source that does not
// exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLexiconLoad) && errors.Is(err, os.ErrNotExist)
}
