package haiku

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"go.uber.org/zap"
)

// DefaultMaxAttempts is the number of whole-poem attempts Generate makes
// before giving up.
const DefaultMaxAttempts = 1000

// DefaultTargets are the syllable counts of the three lines of a haiku.
var DefaultTargets = []int{5, 7, 5}

// WordSource is the lexicon query surface the Generator needs.
// *Lexicon satisfies it.
type WordSource interface {
	// WordSetRange returns the words tagged pos whose syllable count lies
	// in [min, max].
	WordSetRange(pos PartOfSpeech, min, max int) map[string]struct{}
	// IsEmpty reports whether the source holds no words at all.
	IsEmpty() bool
}

// Generator builds poems by walking a Graph and drawing words from a
// WordSource. It owns its Graph; a Generator must not be shared between
// goroutines.
type Generator struct {
	src         WordSource
	graph       *Graph
	rng         Rand
	jitter      float64
	maxAttempts int
	targets     []int
	logger      *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source for edge jitter and word choice. Inject a
// seeded source to make generation reproducible.
func WithRand(r Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithJitter sets the edge-weight jitter bound (DefaultJitter by default).
func WithJitter(j float64) Option {
	return func(g *Generator) { g.jitter = j }
}

// WithMaxAttempts sets the attempt ceiling. Values below 1 keep the default.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithTargets sets the syllable targets, one per line. Empty input or a
// non-positive target keeps the default.
func WithTargets(targets ...int) Option {
	return func(g *Generator) {
		if len(targets) == 0 {
			return
		}
		for _, t := range targets {
			if t <= 0 {
				return
			}
		}
		g.targets = append([]int(nil), targets...)
	}
}

// WithLogger sets the logger used for debug traces of the walk.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator returns a Generator drawing words from src.
func NewGenerator(src WordSource, opts ...Option) *Generator {
	g := &Generator{
		src:         src,
		jitter:      DefaultJitter,
		maxAttempts: DefaultMaxAttempts,
		targets:     DefaultTargets,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(rand.Uint64())
	}
	g.graph = NewGraph(WithGraphRand(g.rng), WithGraphJitter(g.jitter))
	return g
}

// NewRand returns a PCG source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Graph returns the graph the generator walks.
func (g *Generator) Graph() *Graph {
	return g.graph
}

// Generate produces one poem.
//
// Each attempt resets the graph once and builds the lines in turn, each
// starting from the slot where the previous one stopped. If any line fails
// the whole attempt is discarded. Generate returns ErrGenerationExhausted
// once the attempt ceiling is hit, ErrEmptyLexicon when the source has no
// words, and the context's error when ctx is done. It never returns a
// partial poem.
func (g *Generator) Generate(ctx context.Context) (*Poem, error) {
	if g.src.IsEmpty() {
		return nil, ErrEmptyLexicon
	}
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines, err := g.attempt()
		if err != nil {
			g.logger.Debug("attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		g.logger.Debug("poem generated", zap.Int("attempts", attempt))
		return &Poem{Lines: lines, Attempts: attempt}, nil
	}
	return nil, fmt.Errorf("%w: %d attempts", ErrGenerationExhausted, g.maxAttempts)
}

// attempt makes one pass over every target from a freshly reset graph.
func (g *Generator) attempt() ([]Line, error) {
	g.graph.Reset()
	lines := make([]Line, 0, len(g.targets))
	for i, target := range g.targets {
		words, err := g.buildLine(target, g.graph.Index())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, Line{Target: target, Words: words})
	}
	return lines, nil
}

// buildLine fills slot with a word and recurses along outgoing edges until
// budget syllables are spent exactly.
//
// The word chosen at a slot is kept for every edge tried from it; only the
// edge choice is retried after a failure further down.
func (g *Generator) buildLine(budget, slot int) ([]Word, error) {
	if budget <= 0 {
		return nil, nil
	}
	if slot == g.graph.Last() {
		return nil, ErrDeadEnd
	}

	pos := g.graph.Node(slot)
	var word *Word
	cost := 0
	if pos != POSBlank {
		w, ok := g.pickWord(pos, budget)
		if !ok {
			return nil, ErrNoCandidateWord
		}
		// A line may not end on an article or preposition. slot is never
		// the terminal here, so only the budget can rule it out.
		if (pos == POSArticle || pos == POSPreposition) && budget-w.Syllables < 1 {
			return nil, ErrDeadEnd
		}
		word, cost = &w, w.Syllables
	}

	var tried [SlotCount]bool
	for g.graph.HasNextEdge(slot) {
		next := g.graph.NextEdgeExcept(slot, tried[:])
		if next == NoEdge {
			break
		}
		tried[next] = true
		g.logger.Debug("edge", zap.Int("from", slot), zap.Int("to", next), zap.Int("budget", budget-cost))

		rest, err := g.buildLine(budget-cost, next)
		if err != nil {
			g.logger.Debug("backtrack", zap.Int("slot", next), zap.Error(err))
			continue
		}
		if word == nil {
			return rest, nil
		}
		return append([]Word{*word}, rest...), nil
	}
	return nil, ErrDeadEnd
}

// pickWord draws a word tagged pos costing between 1 and budget syllables,
// uniformly among the candidates.
func (g *Generator) pickWord(pos PartOfSpeech, budget int) (Word, bool) {
	set := g.src.WordSetRange(pos, 1, budget)
	if len(set) == 0 {
		return Word{}, false
	}
	// sorted so a seeded source reproduces the same choice
	candidates := make([]string, 0, len(set))
	for w := range set {
		candidates = append(candidates, w)
	}
	sort.Strings(candidates)

	text := candidates[g.rng.IntN(len(candidates))]
	return Word{Text: text, POS: pos, Syllables: SyllableCount(text)}, true
}
