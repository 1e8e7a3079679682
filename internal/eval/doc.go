// Package eval evaluates expressions in a single concrete state.
//
// A Context supplies the values of constants, variables and observables,
// label membership from an optional LabelPredicate and the definitions of
// labels the predicate does not answer. StateContext is the plain implementation;
// CachedStateContext adds a per-context result cache keyed by expression
// identity, so an expression shared by many parents is evaluated once per
// state. Each goroutine evaluating the same (read-only) expressions must use
// its own context.
//
// Expressions whose value depends on more than one state (path formulas and
// the P, R, S, E, A operators, filters) are rejected with NOT_EVALUABLE.
package eval
