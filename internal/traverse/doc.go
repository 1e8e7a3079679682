// Package traverse runs DAG-safe passes over the IR.
//
// A Pass pairs an ast.Handler with the caches that make a traversal visit
// each physical node once. Handlers recurse by calling Pass.Visit on their
// children, never by calling each other directly, so that shared children
// are served from the cache.
//
// # Caches
//
// The identity cache maps node pointers to results. With WithDedup, nodes
// that are propositions are routed to a second, structural cache instead:
// two distinct but structurally equal propositions share one result and the
// handler runs for the first of them only. Variable references are never
// merged structurally even though they are propositions.
//
// # Lifetime
//
// A Pass is built for a single pass over one root (or one batch of roots)
// and discarded afterwards. It is not safe for concurrent use. The first
// handler error aborts the pass: both caches are dropped and every later
// Visit returns that error.
package traverse
