package ast

// Copier produces the replacement for a child node during CopyWith.
//
// A structure-preserving copier returns the same clone every time it is asked
// for the same source node, which is how shared children stay shared.
type Copier interface {
	Copy(n Node) (Node, error)
}

// CopierFunc adapts a function to the Copier interface.
type CopierFunc func(Node) (Node, error)

// Copy calls f(n).
func (f CopierFunc) Copy(n Node) (Node, error) {
	return f(n)
}

// copyChild copies one child slot, keeping nil as nil and checking that the
// copier returned a node that fits the slot's static type.
func copyChild[T Node](cp Copier, n T) (T, error) {
	var zero T
	if IsNil(n) {
		return zero, nil
	}
	c, err := cp.Copy(n)
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, Errorf(CodeCopyFailed, n.Position(), "copy of %s produced %T", n.Kind(), c)
	}
	return t, nil
}

// copyChildren copies a slice of child slots into a freshly allocated slice.
func copyChildren[T Node](cp Copier, list []T) ([]T, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]T, len(list))
	for i, n := range list {
		c, err := copyChild(cp, n)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
