package haiku

import "math/rand/v2"

// Slot indices of the grammar graph. A line walks the subject clause
// (slots 1–5) and then the predicate clause (slots 6–11).
const (
	slotStart = iota
	slotAdverb1
	slotPreposition1
	slotArticle1
	slotAdjective1
	slotNoun1
	slotVerb
	slotAdverb2
	slotPreposition2
	slotArticle2
	slotAdjective2
	slotNoun2
	slotEnd

	// SlotCount is the number of slots in the grammar graph.
	SlotCount
)

// NoEdge is returned by NextEdge when no outgoing edge is eligible.
const NoEdge = -1

// DefaultJitter bounds the random perturbation added to each edge weight
// when choosing the next slot.
const DefaultJitter = 0.2

// minAdjustedWeight keeps a present edge eligible when jitter pushes its
// weight to zero or below.
const minAdjustedWeight = 0.01

// slots is the canonical slot order of a sentence. It never changes.
var slots = [SlotCount]PartOfSpeech{
	POSBlank,
	POSAdverb,
	POSPreposition,
	POSArticle,
	POSAdjective,
	POSNoun,
	POSVerb,
	POSAdverb,
	POSPreposition,
	POSArticle,
	POSAdjective,
	POSNoun,
	POSBlank,
}

// Matrix holds edge weights: m[i][j] is the weight of the edge i→j, and 0
// means the edge is absent. It is a value type; assigning it copies it.
type Matrix [SlotCount][SlotCount]float64

// baseline is the matrix Reset restores.
//
//	 0 start  1 adv  2 prep  3 art  4 adj  5 noun
//	 6 verb   7 adv  8 prep  9 art 10 adj 11 noun 12 end
var baseline = Matrix{
	slotStart:        {1: 1, 2: 1, 3: 1, 4: 1, 5: 1},
	slotAdverb1:      {1: 1, 2: 1, 3: 1, 4: 1},
	slotPreposition1: {3: 1, 4: 1, 5: 1},
	slotArticle1:     {4: 1, 5: 1},
	slotAdjective1:   {5: 1},
	slotNoun1:        {6: 1, 7: 1},
	slotVerb:         {7: 1, 8: 1, 12: 0.1},
	slotAdverb2:      {6: 1, 8: 1, 12: 0.3},
	slotPreposition2: {9: 1, 10: 1, 11: 1, 12: 1},
	slotArticle2:     {10: 1, 11: 1},
	slotAdjective2:   {10: 1, 11: 1},
	slotNoun2:        {12: 1},
	slotEnd:          {},
}

// Baseline returns a copy of the weights a reset graph starts from.
func Baseline() Matrix {
	return baseline
}

// Rand is the random source consulted for edge jitter and word choice.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Graph is the weighted, directed grammar graph over part-of-speech slots.
// It carries a cursor recording the last slot visited. Edge weights change
// as a side effect of NextEdge and are restored by Reset.
//
// A Graph is owned by one caller at a time; it is not safe for concurrent
// use.
type Graph struct {
	matrix Matrix
	cursor int
	rng    Rand
	jitter float64
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithGraphRand sets the random source used for edge jitter.
func WithGraphRand(r Rand) GraphOption {
	return func(g *Graph) { g.rng = r }
}

// WithGraphJitter sets the jitter bound. Negative values are treated as 0.
func WithGraphJitter(j float64) GraphOption {
	return func(g *Graph) {
		if j < 0 {
			j = 0
		}
		g.jitter = j
	}
}

// NewGraph returns a Graph in its reset state.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{jitter: DefaultJitter}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(rand.Uint64())
	}
	g.Reset()
	return g
}

// Reset moves the cursor back to the start slot and restores the baseline
// weights.
func (g *Graph) Reset() {
	g.cursor = slotStart
	g.matrix = baseline
}

// Len returns the number of slots.
func (g *Graph) Len() int {
	return SlotCount
}

// Node returns the part of speech of slot i, or 0 when i is out of range.
func (g *Graph) Node(i int) PartOfSpeech {
	if i < 0 || i >= SlotCount {
		return 0
	}
	return slots[i]
}

// Index returns the cursor: the last slot visited.
func (g *Graph) Index() int {
	return g.cursor
}

// Last returns the index of the terminal slot.
func (g *Graph) Last() int {
	return SlotCount - 1
}

// ReachedEnd reports whether the cursor is on the terminal slot.
func (g *Graph) ReachedEnd() bool {
	return g.cursor == g.Last()
}

// Edge returns the weight of i→j; out-of-range indices yield 0.
func (g *Graph) Edge(i, j int) float64 {
	if !inRange(i) || !inRange(j) {
		return 0
	}
	return g.matrix[i][j]
}

// SetEdge overwrites the weight of i→j. Out-of-range indices are ignored.
func (g *Graph) SetEdge(i, j int, w float64) {
	if inRange(i) && inRange(j) {
		g.matrix[i][j] = w
	}
}

// ScaleEdge multiplies the weight of i→j by factor. Out-of-range indices
// are ignored.
func (g *Graph) ScaleEdge(i, j int, factor float64) {
	if inRange(i) && inRange(j) {
		g.matrix[i][j] *= factor
	}
}

// Matrix returns a copy of the current weights.
func (g *Graph) Matrix() Matrix {
	return g.matrix
}

// HasNextEdge reports whether slot i has any edge with positive weight.
func (g *Graph) HasNextEdge(i int) bool {
	if !inRange(i) {
		return false
	}
	for _, w := range g.matrix[i] {
		if w > 0 {
			return true
		}
	}
	return false
}

// NextEdge picks the next slot after from. See NextEdgeExcept.
func (g *Graph) NextEdge(from int) int {
	return g.NextEdgeExcept(from, nil)
}

// NextEdgeExcept picks the next slot after from, skipping every j with
// tried[j] set.
//
// Each eligible edge (positive weight) gets its weight plus a jitter drawn
// uniformly from [-jitter, +jitter), floored at a small positive value so
// jitter cannot lock it out. The strictly largest adjusted weight wins; ties
// go to the lower index. Absent edges are never chosen.
//
// On success the cursor moves to the chosen slot and the mutation rules are
// applied for from→next. When nothing is eligible NextEdgeExcept returns
// NoEdge and leaves the graph untouched.
func (g *Graph) NextEdgeExcept(from int, tried []bool) int {
	if !inRange(from) {
		return NoEdge
	}

	best, next := 0.0, NoEdge
	for j, w := range g.matrix[from] {
		if w <= 0 || (j < len(tried) && tried[j]) {
			continue
		}
		adj := w + g.noise()
		if adj <= 0 {
			adj = minAdjustedWeight
		}
		if adj > best {
			best, next = adj, j
		}
	}
	if next == NoEdge {
		return NoEdge
	}

	g.cursor = next
	AdjustMatrix(&g.matrix, from, next)
	return next
}

// noise returns a jitter value in [-g.jitter, +g.jitter).
func (g *Graph) noise() float64 {
	if g.jitter == 0 {
		return 0
	}
	return (g.rng.Float64()*2 - 1) * g.jitter
}

func inRange(i int) bool {
	return i >= 0 && i < SlotCount
}
