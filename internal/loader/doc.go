// Package loader builds model and property ASTs from structured documents.
//
// Models and properties are written as YAML or CUE data rather than in the
// textual modeling language. Both formats are first decoded into the same
// position-carrying document tree, so a single builder serves both.
//
// # Expressions
//
// Scalars are literals, except strings, which name a variable, constant,
// formula or observable in scope:
//
//	3          int literal
//	0.5        double literal
//	true       bool literal
//	x          reference (resolved against the declarations)
//
// Operators are single-key maps whose key is the operator and whose value is
// the operand or operand list. Binary operators with more than two operands
// associate to the left.
//
//	{"<": [x, N]}           x<N
//	{"&": [a, b, c]}        a&b&c
//	{"!": below}            !below
//	{"neg": x}              -x
//	{"ite": [c, 1, 2]}      c ? 1 : 2
//	{"min": [x, y]}         min(x,y); also max floor ceil round pow mod log
//	{"label": "done"}       "done"
//	{"prop": "reach"}       reference to a named property
//
// Path and probabilistic operators use a map whose operator key sits next to
// named options:
//
//	{"F": done, "upper": 10}
//	{"U": [a, b], "lower": 1, "upper": 5, "upper_strict": true}
//	{"P": {"op": ">=", "bound": 0.5, "path": {"F": done}}}
//	{"R": {"struct": "steps", "op": "=?", "path": {"C": null, "upper": 100}}}
//	{"S": {"op": "=?", "expr": done}}
//	{"E": path}, {"A": path}
//	{"filter": {"op": "max", "of": expr, "states": init}}
//
// Identifiers are NFC-normalized when read, so differently composed spellings
// of the same name resolve to the same declaration.
package loader
