package haiku

// AnySlot in a Rule trigger matches every slot.
const AnySlot = -1

// EditOp is the kind of change an Edit makes to one edge weight.
type EditOp int

const (
	// OpSet overwrites the weight.
	OpSet EditOp = iota
	// OpScale multiplies the weight.
	OpScale
)

// Edit changes the weight of the edge Src→Dst.
type Edit struct {
	Op       EditOp
	Src, Dst int
	Value    float64
}

// Rule mutates edge weights after the edge From→To is taken. From or To may
// be AnySlot.
type Rule struct {
	Name  string
	From  int
	To    int
	Edits []Edit
}

// Matches reports whether the rule fires for the traversal current→next.
func (r Rule) Matches(current, next int) bool {
	return (r.From == AnySlot || r.From == current) && (r.To == AnySlot || r.To == next)
}

// Apply performs the rule's edits on m in order.
func (r Rule) Apply(m *Matrix) {
	for _, e := range r.Edits {
		if !inRange(e.Src) || !inRange(e.Dst) {
			continue
		}
		switch e.Op {
		case OpSet:
			m[e.Src][e.Dst] = e.Value
		case OpScale:
			m[e.Src][e.Dst] *= e.Value
		}
	}
}

func set(src, dst int, v float64) Edit   { return Edit{Op: OpSet, Src: src, Dst: dst, Value: v} }
func scale(src, dst int, f float64) Edit { return Edit{Op: OpScale, Src: src, Dst: dst, Value: f} }

// Rules lists the weight mutations in the order they are applied.
var Rules = []Rule{
	{
		// Subject noun reached directly: push into the verb clause and
		// away from an early line end.
		Name: "start-to-noun",
		From: slotStart, To: slotNoun1,
		Edits: []Edit{
			set(slotNoun1, slotAdverb2, 0),
			scale(slotVerb, slotAdverb2, 2),
			scale(slotAdverb2, slotVerb, 2),
			scale(slotVerb, slotPreposition2, 2),
			scale(slotAdverb2, slotPreposition2, 2),
			scale(slotVerb, slotEnd, 0.1),
			scale(slotAdverb2, slotEnd, 0.1),
		},
	},
	{
		Name: "adverb-loop-subject",
		From: slotAdverb1, To: slotAdverb1,
		Edits: []Edit{scale(slotAdverb1, slotAdverb1, 0.5)},
	},
	{
		// After a preposition the noun may not be skipped, but the walk
		// may step back through an article or adjective toward it.
		Name: "land-on-preposition",
		From: AnySlot, To: slotPreposition1,
		Edits: []Edit{
			set(slotNoun1, slotVerb, 0),
			set(slotNoun1, slotAdverb2, 0),
			set(slotNoun1, slotAdjective1, 0.2),
			set(slotNoun1, slotArticle1, 0.8),
		},
	},
	{
		Name: "noun-back-to-article",
		From: slotNoun1, To: slotArticle1,
		Edits: []Edit{
			scale(slotArticle1, slotAdjective1, 0.5),
			set(slotNoun1, slotVerb, 1),
			set(slotNoun1, slotAdverb2, 1),
		},
	},
	{
		Name: "noun-back-to-adjective",
		From: slotNoun1, To: slotAdjective1,
		Edits: []Edit{
			scale(slotAdjective1, slotArticle1, 0.5),
			set(slotNoun1, slotVerb, 1),
			set(slotNoun1, slotAdverb2, 1),
		},
	},
	{
		// Adverb before the verb: the verb may not be skipped.
		Name: "noun-to-adverb",
		From: slotNoun1, To: slotAdverb2,
		Edits: []Edit{
			set(slotAdverb2, slotPreposition2, 0),
			set(slotAdverb2, slotEnd, 0),
		},
	},
	{
		Name: "land-on-verb",
		From: AnySlot, To: slotVerb,
		Edits: []Edit{
			set(slotAdverb2, slotPreposition2, 1),
			set(slotAdverb2, slotEnd, 0.1),
		},
	},
	{
		Name: "adverb-to-verb",
		From: slotAdverb2, To: slotVerb,
		Edits: []Edit{scale(slotVerb, slotAdverb2, 0.3)},
	},
	{
		Name: "verb-to-adverb",
		From: slotVerb, To: slotAdverb2,
		Edits: []Edit{set(slotAdverb2, slotVerb, 0)},
	},
	{
		Name: "adverb-loop-predicate",
		From: slotAdverb2, To: slotAdverb2,
		Edits: []Edit{scale(slotAdverb2, slotAdverb2, 0.5)},
	},
}

// AdjustMatrix applies every rule matching current→next to m, in order.
func AdjustMatrix(m *Matrix, current, next int) {
	for _, r := range Rules {
		if r.Matches(current, next) {
			r.Apply(m)
		}
	}
}

// Adjusted returns the result of AdjustMatrix on a copy of m.
func Adjusted(m Matrix, current, next int) Matrix {
	AdjustMatrix(&m, current, next)
	return m
}
