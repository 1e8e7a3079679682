// Package deepcopy clones IR graphs without flattening them.
//
// A copy has fresh identity everywhere, is structurally equal to its source
// and reproduces the source's sharing: a node reachable along several paths
// is cloned once and the clone is shared the same way. Propositions that are
// distinct but structurally equal in the source become one shared clone.
package deepcopy

import (
	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/traverse"
)

// Copier is one copy operation. Every node copied through the same Copier
// shares the same caches, so graphs copied together keep the sharing between
// them. A Copier is single-use and not safe for concurrent use.
type Copier struct {
	pass *traverse.Pass[ast.Node]
}

// New returns a Copier using the default Handlers.
func New(opts ...traverse.Option) *Copier {
	return NewWith(func(cp ast.Copier) ast.Handler[ast.Node] {
		return Handlers{Copier: cp}
	}, opts...)
}

// NewWith returns a Copier whose handler is built by build. The handler must
// copy children through the ast.Copier it is given.
func NewWith(build func(cp ast.Copier) ast.Handler[ast.Node], opts ...traverse.Option) *Copier {
	c := &Copier{}
	all := append([]traverse.Option{traverse.WithDedup(), traverse.WithName("deepcopy")}, opts...)
	c.pass = traverse.New(build(c), all...)
	return c
}

// Copy returns the clone of n, implementing ast.Copier.
func (c *Copier) Copy(n ast.Node) (ast.Node, error) {
	return c.pass.Visit(n)
}

// Stats returns the traversal counters of the copy so far.
func (c *Copier) Stats() traverse.Stats {
	return c.pass.Stats()
}

// Report forwards the copy statistics to the configured logger and recorder.
func (c *Copier) Report() {
	c.pass.Report()
}

// Copy clones n through c. A nil n yields nil.
func Copy[T ast.Node](c *Copier, n T) (T, error) {
	var zero T
	if ast.IsNil(n) {
		return zero, nil
	}
	r, err := c.Copy(n)
	if err != nil {
		return zero, err
	}
	t, ok := r.(T)
	if !ok {
		return zero, ast.Errorf(ast.CodeCopyFailed, n.Position(), "copy of %s produced %T", n.Kind(), r)
	}
	return t, nil
}

// CopyAll replaces every element of list with its clone, in place, and
// returns list. On error list is left unchanged.
func CopyAll[T ast.Node](c *Copier, list []T) ([]T, error) {
	out := make([]T, len(list))
	for i, n := range list {
		t, err := Copy(c, n)
		if err != nil {
			return list, err
		}
		out[i] = t
	}
	copy(list, out)
	return list, nil
}

// Node clones n with a fresh Copier.
func Node[T ast.Node](n T, opts ...traverse.Option) (T, error) {
	c := New(opts...)
	out, err := Copy(c, n)
	if err == nil {
		c.Report()
	}
	return out, err
}
