// Package engine strings the decision pipeline together: domain routing, task
// selection, pack resolution, the attach policy, retrieval and ranking, the
// prompt and the safety screen.
package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamusis/kiosk/internal/llm"
	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/match"
	"github.com/kamusis/kiosk/internal/prompt"
	"github.com/kamusis/kiosk/internal/retrieval"
	"github.com/kamusis/kiosk/internal/routing"
	"github.com/kamusis/kiosk/internal/safety"
)

// Manifests supplies the manifest set used for a call. *manifest.Watcher
// satisfies it; Static wraps a set loaded once.
type Manifests interface {
	Current() *manifest.Set
}

// Static returns a Manifests that always yields set.
func Static(set *manifest.Set) Manifests {
	return staticSet{set}
}

type staticSet struct{ set *manifest.Set }

func (s staticSet) Current() *manifest.Set { return s.set }

// Engine answers routing questions against a manifest set. It holds no
// per-call state and is safe for concurrent use as long as its collaborators
// are.
type Engine struct {
	manifests Manifests
	router    routing.Router
	screener  safety.Screener
	searcher  retrieval.Searcher
	caller    llm.Caller
	assembler prompt.Assembler
	gate      retrieval.GateOptions
	topK      int
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSearcher sets the retrieval collaborator.
func WithSearcher(s retrieval.Searcher) Option {
	return func(e *Engine) {
		e.searcher = s
	}
}

// WithCaller sets the model collaborator.
func WithCaller(c llm.Caller) Option {
	return func(e *Engine) {
		e.caller = c
	}
}

// WithAssembler sets the prompt assembler.
func WithAssembler(a prompt.Assembler) Option {
	return func(e *Engine) {
		e.assembler = a
	}
}

// WithGate sets the confidence gate thresholds used by Answer.
func WithGate(g retrieval.GateOptions) Option {
	return func(e *Engine) {
		e.gate = g
	}
}

// WithTopK sets how many chunks are requested from the searcher.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithMatchMode sets how intent patterns, task phrases and safety phrases
// are located in queries.
func WithMatchMode(mode match.Mode) Option {
	return func(e *Engine) {
		m := match.Matcher{Mode: mode}
		e.router = routing.Router{Matcher: m}
		e.screener = safety.Screener{Matcher: m}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Engine over manifests. Without options it finds no
// references, has no model and logs nothing.
func New(manifests Manifests, opts ...Option) *Engine {
	e := &Engine{
		manifests: manifests,
		searcher:  retrieval.NoopSearcher{},
		caller:    llm.NotWired{},
		gate:      retrieval.DefaultGate(),
		topK:      retrieval.DefaultTopK,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Set returns the manifest set the next call will use.
func (e *Engine) Set() *manifest.Set {
	if e.manifests == nil {
		return nil
	}
	return e.manifests.Current()
}

func (e *Engine) runLogger() *zap.Logger {
	return e.logger.With(zap.String("run_id", uuid.NewString()))
}
