package traverse

import "github.com/roach88/modelir/internal/ast"

// Walk calls fn once for every distinct node reachable from root, parents
// before children, children in slot order. Returning an error from fn stops
// the walk.
func Walk(root ast.Node, fn func(ast.Node) error, opts ...Option) error {
	var pass *Pass[struct{}]
	pass = New[struct{}](Uniform[struct{}](func(n ast.Node) (struct{}, error) {
		if err := fn(n); err != nil {
			return struct{}{}, err
		}
		for _, c := range n.Children() {
			if _, err := pass.Visit(c); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	}), opts...)

	_, err := pass.Visit(root)
	pass.Report()
	return err
}

// Nodes returns every distinct node reachable from root in Walk order.
func Nodes(root ast.Node) []ast.Node {
	var out []ast.Node
	_ = Walk(root, func(n ast.Node) error {
		out = append(out, n)
		return nil
	})
	return out
}
