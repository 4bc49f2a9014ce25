package haiku

import (
	"regexp"
	"strings"
)

// diphthongPatterns are vowel pairs read as a single syllable. Each pattern
// counts at most once per word, however often it occurs.
var diphthongPatterns = []*regexp.Regexp{
	regexp.MustCompile(`A[EIUY]`),
	regexp.MustCompile(`E[AEIUY]`),
	regexp.MustCompile(`I[AEOU]`),
	regexp.MustCompile(`O[AIOUY]`),
	regexp.MustCompile(`U[AEIUY]`),
	// non-vowel letter (Y included), Y, vowel: the Y glides into the
	// following vowel
	regexp.MustCompile(`[B-DF-HJ-NP-TV-Z]Y[AEIOU]`),
}

// SyllableCount estimates the number of syllables in word.
//
// It is a coarse heuristic rather than a dictionary lookup: count the vowels
// (A, E, I, O, U and Y), subtract one for every diphthong pattern present and
// one for a silent trailing E, and never go below zero. Case is ignored and
// surrounding whitespace trimmed; an empty word has zero syllables.
func SyllableCount(word string) int {
	w := strings.ToUpper(strings.TrimSpace(word))
	if w == "" {
		return 0
	}

	vowels := vowelCount(w)
	n := vowels - diphthongCount(w) - silentVowelCount(w, vowels)
	if n < 0 {
		return 0
	}
	return n
}

// vowelCount counts the characters of w in AEIOUY. w must be upper-case.
func vowelCount(w string) int {
	n := 0
	for i := 0; i < len(w); i++ {
		if isVowel(w[i]) {
			n++
		}
	}
	return n
}

// diphthongCount returns how many distinct diphthong patterns occur in w.
func diphthongCount(w string) int {
	n := 0
	for _, re := range diphthongPatterns {
		if re.MatchString(w) {
			n++
		}
	}
	return n
}

// silentVowelCount returns 1 when w ends in an E that follows a consonant,
// w is longer than one letter and carries more than one vowel.
func silentVowelCount(w string, vowels int) int {
	if len(w) > 1 && vowels > 1 && w[len(w)-1] == 'E' && isConsonant(w[len(w)-2]) {
		return 1
	}
	return 0
}

func isVowel(c byte) bool {
	switch c {
	case 'A', 'E', 'I', 'O', 'U', 'Y':
		return true
	}
	return false
}

// isConsonant reports whether c is an upper-case ASCII letter other than a
// vowel.
func isConsonant(c byte) bool {
	return c >= 'A' && c <= 'Z' && !isVowel(c)
}
