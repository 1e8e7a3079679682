package eval

import (
	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/metrics"
	"github.com/roach88/modelir/internal/value"
)

// Context supplies the values an expression refers to.
type Context interface {
	ConstantValue(name string) (value.Value, bool)
	VarValue(name string, index int) (value.Value, bool)
	ObservableValue(name string, index int) (value.Value, bool)
	// LabelValue reports whether the current state is in label name, when
	// the caller knows it. It takes precedence over LabelExpr.
	LabelValue(name string) (bool, bool)
	// LabelExpr returns the definition of a label, evaluated in the same
	// context.
	LabelExpr(name string) (ast.Expression, bool)
}

// LabelPredicate answers label membership for a state: ok is false when the
// label is unknown to it.
type LabelPredicate func(name string) (in bool, ok bool)

// Cache stores evaluation results for one context.
type Cache interface {
	// FetchResult returns the stored result for e, or false if there is none.
	FetchResult(e ast.Expression) (value.Value, bool)
	// StoreResult stores v as the result for e and returns v.
	StoreResult(e ast.Expression, v value.Value) value.Value
}

// ConstantContext evaluates constant expressions: only constants (and labels
// over constants) have values.
type ConstantContext struct {
	Constants   *Values
	Labels      *ast.LabelList
	LabelValues LabelPredicate // Optional, consulted before Labels
}

// NewConstantContext returns a context over constants.
func NewConstantContext(constants *Values) *ConstantContext {
	return &ConstantContext{Constants: constants}
}

func (c *ConstantContext) ConstantValue(name string) (value.Value, bool) {
	return c.Constants.Get(name)
}

func (c *ConstantContext) VarValue(string, int) (value.Value, bool)        { return nil, false }
func (c *ConstantContext) ObservableValue(string, int) (value.Value, bool) { return nil, false }

func (c *ConstantContext) LabelValue(name string) (bool, bool) {
	if c.LabelValues == nil {
		return false, false
	}
	return c.LabelValues(name)
}

func (c *ConstantContext) LabelExpr(name string) (ast.Expression, bool) {
	return c.Labels.Lookup(name)
}

// StateContext evaluates in one state of the model.
type StateContext struct {
	ConstantContext
	State       *State
	Observables []value.Value // Indexed like ObsRef.Index
}

// NewStateContext returns a context for state. constants, labels and
// labelValues may be nil.
func NewStateContext(state *State, constants *Values, labels *ast.LabelList, labelValues LabelPredicate) *StateContext {
	return &StateContext{
		ConstantContext: ConstantContext{Constants: constants, Labels: labels, LabelValues: labelValues},
		State:           state,
	}
}

func (c *StateContext) VarValue(_ string, index int) (value.Value, bool) {
	return c.State.Var(index)
}

func (c *StateContext) ObservableValue(_ string, index int) (value.Value, bool) {
	if index < 0 || index >= len(c.Observables) || c.Observables[index] == nil {
		return nil, false
	}
	return c.Observables[index], true
}

// CachedStateContext is a StateContext that remembers the result of every
// expression evaluated through it. Results are keyed by expression identity
// and live as long as the context.
type CachedStateContext struct {
	*StateContext
	cache  map[ast.Expression]value.Value
	hits   int
	misses int
}

// NewCachedStateContext returns a cached context for state.
func NewCachedStateContext(state *State, constants *Values, labels *ast.LabelList, labelValues LabelPredicate) *CachedStateContext {
	return &CachedStateContext{
		StateContext: NewStateContext(state, constants, labels, labelValues),
		cache:        make(map[ast.Expression]value.Value),
	}
}

func (c *CachedStateContext) FetchResult(e ast.Expression) (value.Value, bool) {
	v, ok := c.cache[e]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *CachedStateContext) StoreResult(e ast.Expression, v value.Value) value.Value {
	c.cache[e] = v
	return v
}

// CacheStats returns the number of cache hits and misses so far.
func (c *CachedStateContext) CacheStats() (hits, misses int) {
	return c.hits, c.misses
}

// Report hands the cache counters to r.
func (c *CachedStateContext) Report(r metrics.Recorder) {
	r.ObserveEvalCache(c.hits, c.misses)
}
