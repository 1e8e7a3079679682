package traverse

import (
	"io"
	"log/slog"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/metrics"
)

// Option configures a Pass.
type Option func(*config)

type config struct {
	memo     bool
	dedup    bool
	name     string
	logger   *slog.Logger
	recorder metrics.Recorder
}

// WithoutMemo turns the pass into a plain recursive walk: no identity or
// structural caching, so a node reachable along k paths is handled k times.
func WithoutMemo() Option {
	return func(c *config) { c.memo = false }
}

// WithDedup routes propositions through the structural cache.
func WithDedup() Option {
	return func(c *config) { c.dedup = true }
}

// WithName labels the pass in log records and metrics.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder reports pass statistics to r when the pass fails or when
// Report is called.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *config) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Stats counts what a pass did.
type Stats struct {
	HandlerCalls   int // Dispatches to the handler
	IdentityHits   int // Visits answered by the identity cache
	StructuralHits int // Visits answered by the structural cache
}

// Pass is a single traversal over a DAG.
type Pass[R any] struct {
	handler ast.Handler[R]
	cfg     config

	memo  map[ast.Node]R
	dedup *structuralCache[R]
	stats Stats
	err   error
}

// New creates a pass that dispatches to h. Identity memoization is on by
// default.
func New[R any](h ast.Handler[R], opts ...Option) *Pass[R] {
	cfg := config{
		memo:     true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: metrics.Noop{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pass[R]{handler: h, cfg: cfg}
	if cfg.memo {
		p.memo = make(map[ast.Node]R)
		if cfg.dedup {
			p.dedup = newStructuralCache[R]()
		}
	}
	return p
}

// Visit returns the result for n, running the handler at most once per
// physical node (or per structural class, for propositions under dedup).
// A nil node yields the zero value and no error.
func (p *Pass[R]) Visit(n ast.Node) (R, error) {
	var zero R
	if p.err != nil {
		return zero, p.err
	}
	if ast.IsNil(n) {
		return zero, nil
	}

	if p.dedup != nil && Dedupable(n) {
		if r, ok := p.dedup.lookup(n); ok {
			p.stats.StructuralHits++
			return r, nil
		}
		r, err := p.dispatch(n)
		if err != nil {
			return zero, err
		}
		p.dedup.store(n, r)
		return r, nil
	}

	if p.memo != nil {
		if r, ok := p.memo[n]; ok {
			p.stats.IdentityHits++
			return r, nil
		}
	}
	r, err := p.dispatch(n)
	if err != nil {
		return zero, err
	}
	if p.memo != nil {
		p.memo[n] = r
	}
	return r, nil
}

// VisitAll visits every node of list in order and returns the results.
func (p *Pass[R]) VisitAll(list []ast.Node) ([]R, error) {
	out := make([]R, len(list))
	for i, n := range list {
		r, err := p.Visit(n)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (p *Pass[R]) dispatch(n ast.Node) (R, error) {
	p.stats.HandlerCalls++
	r, err := ast.Dispatch(n, p.handler)
	if err != nil && p.err == nil {
		p.fail(n, err)
	}
	if p.err != nil {
		var zero R
		return zero, p.err
	}
	return r, nil
}

func (p *Pass[R]) fail(n ast.Node, err error) {
	p.err = err
	p.memo = nil
	p.dedup = nil
	p.cfg.logger.Debug("pass failed",
		"pass", p.cfg.name,
		"kind", n.Kind().String(),
		"pos", n.Position().String(),
		"error", err)
	p.cfg.recorder.ObservePass(p.metricStats())
}

// Lookup returns the cached result for n without running the handler.
// After a failure nothing is cached.
func (p *Pass[R]) Lookup(n ast.Node) (R, bool) {
	var zero R
	if p.err != nil || ast.IsNil(n) {
		return zero, false
	}
	if p.dedup != nil && Dedupable(n) {
		return p.dedup.lookup(n)
	}
	if p.memo == nil {
		return zero, false
	}
	r, ok := p.memo[n]
	return r, ok
}

// Err returns the error that aborted the pass, if any.
func (p *Pass[R]) Err() error {
	return p.err
}

// Stats returns the counters accumulated so far.
func (p *Pass[R]) Stats() Stats {
	return p.stats
}

// Report logs the pass statistics at debug level and hands them to the
// recorder. A failed pass has already reported.
func (p *Pass[R]) Report() {
	if p.err != nil {
		return
	}
	p.cfg.logger.Debug("pass finished",
		"pass", p.cfg.name,
		"handler_calls", p.stats.HandlerCalls,
		"identity_hits", p.stats.IdentityHits,
		"structural_hits", p.stats.StructuralHits)
	p.cfg.recorder.ObservePass(p.metricStats())
}

func (p *Pass[R]) metricStats() metrics.PassStats {
	return metrics.PassStats{
		Name:           p.cfg.name,
		HandlerCalls:   p.stats.HandlerCalls,
		IdentityHits:   p.stats.IdentityHits,
		StructuralHits: p.stats.StructuralHits,
		Failed:         p.err != nil,
	}
}
