// Package ast defines the intermediate representation of model and property
// files: a closed set of node kinds that together form a rooted graph.
//
// Freshly loaded files are trees. Transformations such as formula expansion
// make one expression object reachable from several parents, so consumers must
// treat the IR as a directed acyclic graph. The graph is acyclic by
// construction: no transformation in this module introduces a cycle.
//
// Key design constraints:
//   - Node is sealed; the kind set is closed and enumerated by Kind.
//   - Handler[R] has exactly one method per kind. Adding a kind breaks every
//     concrete traversal at compile time until it handles the new kind.
//   - Nodes are never mutated by traversals. Transformations build new nodes
//     via CopyWith, so a shared AST can be read by many goroutines at once.
//   - Identity is pointer identity. Structural equality (Equal, Hasher) ignores
//     source positions and is only used for proposition deduplication.
package ast
