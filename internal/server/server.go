// Package server exposes the haiku generator as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/haiku
//	GET  /api/syllables?word=<word>
//	GET  /api/lexicon[?pos=<TAG>][&min=<n>][&max=<n>]
//	POST /api/lexicon         body: {"word":"...","pos":"NOUN"}
//	GET  /api/lexicon/stats
//	GET  /healthz
//	GET  /metrics
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	haiku "github.com/Joebasaurus/haiku-generator"
	"github.com/Joebasaurus/haiku-generator/internal/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Options configures a Server.
type Options struct {
	// LexiconPath, when set, is where added words are saved.
	LexiconPath string
	// MaxAttempts and Jitter are passed to each Generator.
	MaxAttempts int
	Jitter      float64
	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string
	Logger      *zap.Logger
	// Registry receives the server metrics. A fresh registry is used
	// when nil.
	Registry *prometheus.Registry
}

// Server serves one lexicon. Each request builds its own Generator, so the
// single-threaded core is never shared; the lexicon itself is guarded by an
// RWMutex so words can be added or the whole lexicon swapped while serving.
type Server struct {
	mu      sync.RWMutex
	lex     *haiku.Lexicon
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Metrics
	reg     *prometheus.Registry
}

// New returns a Server for lex.
func New(lex *haiku.Lexicon, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s := &Server{
		lex:     lex,
		opts:    opts,
		logger:  opts.Logger,
		reg:     opts.Registry,
		metrics: metrics.New(opts.Registry),
	}
	s.metrics.LexiconWords.Set(float64(lex.Len()))
	return s
}

// SetLexicon replaces the served lexicon. It matches the callback of
// haiku.WatchLexicon.
func (s *Server) SetLexicon(lex *haiku.Lexicon) {
	s.mu.Lock()
	s.lex = lex
	s.mu.Unlock()
	s.metrics.LexiconWords.Set(float64(lex.Len()))
	s.metrics.LexiconReloads.Inc()
	s.logger.Info("lexicon swapped", zap.Int("words", lex.Len()))
}

// Handler returns the API routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/haiku", s.handleHaiku)
	mux.HandleFunc("/api/syllables", s.handleSyllables)
	mux.HandleFunc("/api/lexicon/stats", s.handleLexiconStats)
	mux.HandleFunc("/api/lexicon", s.handleLexicon)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// ---- JSON response types ------------------------------------------------

type wordJSON struct {
	Text      string `json:"text"`
	POS       string `json:"pos"`
	Syllables int    `json:"syllables"`
}

type lineJSON struct {
	Text      string     `json:"text"`
	Syllables int        `json:"syllables"`
	Words     []wordJSON `json:"words"`
}

type haikuResponse struct {
	ID       string     `json:"id"`
	Text     string     `json:"text"`
	Lines    []lineJSON `json:"lines"`
	Attempts int        `json:"attempts"`
}

type syllablesResponse struct {
	Word      string `json:"word"`
	Syllables int    `json:"syllables"`
}

type entryJSON struct {
	Word      string `json:"word"`
	POS       string `json:"pos"`
	Syllables int    `json:"syllables"`
}

type lexiconResponse struct {
	Entries []entryJSON `json:"entries"`
}

type statsResponse struct {
	Size   int            `json:"size"`
	Counts map[string]int `json:"counts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toHaikuResponse(p *haiku.Poem) haikuResponse {
	lines := make([]lineJSON, 0, len(p.Lines))
	for _, l := range p.Lines {
		words := make([]wordJSON, 0, len(l.Words))
		for _, w := range l.Words {
			words = append(words, wordJSON{Text: w.Text, POS: w.POS.String(), Syllables: w.Syllables})
		}
		lines = append(lines, lineJSON{Text: l.String(), Syllables: l.Syllables(), Words: words})
	}
	return haikuResponse{
		ID:       uuid.NewString(),
		Text:     p.String(),
		Lines:    lines,
		Attempts: p.Attempts,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode error", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// intParam parses the query parameter name, returning def when absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %q query parameter: %q", name, v)
	}
	return n, nil
}

// ---- handlers -----------------------------------------------------------

func (s *Server) handleHaiku(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	start := time.Now()
	s.mu.RLock()
	g := haiku.NewGenerator(s.lex,
		haiku.WithMaxAttempts(s.opts.MaxAttempts),
		haiku.WithJitter(s.jitter()),
		haiku.WithLogger(s.logger),
	)
	poem, err := g.Generate(r.Context())
	s.mu.RUnlock()
	s.metrics.Duration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
	case errors.Is(err, haiku.ErrEmptyLexicon):
		s.metrics.Failures.WithLabelValues("empty").Inc()
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, haiku.ErrGenerationExhausted):
		s.metrics.Failures.WithLabelValues("exhausted").Inc()
		s.logger.Warn("generation exhausted", zap.Error(err))
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	default:
		s.metrics.Failures.WithLabelValues("cancelled").Inc()
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	s.metrics.Poems.Inc()
	s.metrics.Attempts.Observe(float64(poem.Attempts))
	s.writeJSON(w, http.StatusOK, toHaikuResponse(poem))
}

// jitter returns the configured jitter; the zero Options value means the
// default, so a server built without options still varies its output.
func (s *Server) jitter() float64 {
	if s.opts.Jitter == 0 {
		return haiku.DefaultJitter
	}
	return s.opts.Jitter
}

func (s *Server) handleSyllables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
		return
	}
	s.writeJSON(w, http.StatusOK, syllablesResponse{Word: word, Syllables: haiku.SyllableCount(word)})
}

func (s *Server) handleLexicon(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listLexicon(w, r)
	case http.MethodPost:
		s.addWord(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "GET or POST required")
	}
}

func (s *Server) listLexicon(w http.ResponseWriter, r *http.Request) {
	var tags []haiku.PartOfSpeech
	if v := r.URL.Query().Get("pos"); v != "" {
		pos, ok := haiku.ParsePartOfSpeech(v)
		if !ok || !pos.Lexical() {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown part of speech %q", v))
			return
		}
		tags = []haiku.PartOfSpeech{pos}
	} else {
		tags = []haiku.PartOfSpeech{
			haiku.POSNoun, haiku.POSVerb, haiku.POSAdjective,
			haiku.POSAdverb, haiku.POSPreposition, haiku.POSArticle,
		}
	}
	lo, err := intParam(r, "min", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hi, err := intParam(r, "max", math.MaxInt)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := make([]entryJSON, 0)
	s.mu.RLock()
	for _, pos := range tags {
		for word := range s.lex.WordSetRange(pos, lo, hi) {
			out = append(out, entryJSON{Word: word, POS: pos.String(), Syllables: haiku.SyllableCount(word)})
		}
	}
	s.mu.RUnlock()

	// sort by word for deterministic output
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	s.writeJSON(w, http.StatusOK, lexiconResponse{Entries: out})
}

func (s *Server) addWord(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Word string `json:"word"`
		POS  string `json:"pos"`
	}
	err := json.NewDecoder(r.Body).Decode(&body)
	body.Word = strings.TrimSpace(body.Word)
	if err != nil || body.Word == "" {
		s.writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'word' field")
		return
	}
	pos, ok := haiku.ParsePartOfSpeech(body.POS)
	if !ok || !pos.Lexical() {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown part of speech %q", body.POS))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lex.Add(body.Word, pos) {
		s.writeError(w, http.StatusBadRequest, "word rejected")
		return
	}
	if s.opts.LexiconPath != "" {
		if err := s.lex.Save(s.opts.LexiconPath); err != nil {
			s.logger.Error("save lexicon", zap.String("path", s.opts.LexiconPath), zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "word added but lexicon not saved")
			return
		}
	}
	s.metrics.LexiconWords.Set(float64(s.lex.Len()))
	s.logger.Info("word added", zap.String("word", body.Word), zap.Stringer("pos", pos))
	s.writeJSON(w, http.StatusCreated, entryJSON{Word: body.Word, POS: pos.String(), Syllables: haiku.SyllableCount(body.Word)})
}

func (s *Server) handleLexiconStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.mu.RLock()
	resp := statsResponse{Size: s.lex.Len(), Counts: make(map[string]int)}
	for pos, n := range s.lex.Counts() {
		resp.Counts[pos.String()] = n
	}
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	n := s.lex.Len()
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "words": n})
}
