package haiku

// PartOfSpeech represents the grammatical category of a word or of a
// grammar-graph slot. The zero value means "absent".
type PartOfSpeech rune

const (
	POSNoun        PartOfSpeech = 'n'
	POSVerb        PartOfSpeech = 'v'
	POSAdverb      PartOfSpeech = 'd'
	POSAdjective   PartOfSpeech = 'a'
	POSPreposition PartOfSpeech = 'r'
	POSArticle     PartOfSpeech = 't'
	// POSBlank marks the start and end sentinel slots of the grammar graph.
	// It never consumes a word or syllables.
	POSBlank PartOfSpeech = '-'
)

// lexicalTags lists the tags accepted in a lexicon file, in the order they
// are applied when a record carries more than one.
var lexicalTags = []PartOfSpeech{
	POSNoun,
	POSVerb,
	POSAdjective,
	POSAdverb,
	POSPreposition,
	POSArticle,
}

// String returns the canonical upper-case tag, e.g. "NOUN".
func (p PartOfSpeech) String() string {
	switch p {
	case POSNoun:
		return "NOUN"
	case POSVerb:
		return "VERB"
	case POSAdverb:
		return "ADVERB"
	case POSAdjective:
		return "ADJECTIVE"
	case POSPreposition:
		return "PREPOSITION"
	case POSArticle:
		return "ARTICLE"
	case POSBlank:
		return "BLANK"
	default:
		return "UNKNOWN"
	}
}

// Lexical reports whether p may be attached to a lexicon entry.
func (p PartOfSpeech) Lexical() bool {
	for _, t := range lexicalTags {
		if p == t {
			return true
		}
	}
	return false
}

// ParsePartOfSpeech maps a tag such as "ADVERB" to its PartOfSpeech.
// Matching is exact and case-sensitive. "BLANK" parses, but is not Lexical.
func ParsePartOfSpeech(tag string) (PartOfSpeech, bool) {
	if tag == POSBlank.String() {
		return POSBlank, true
	}
	for _, t := range lexicalTags {
		if tag == t.String() {
			return t, true
		}
	}
	return 0, false
}
