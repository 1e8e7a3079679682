package traverse

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/testutil"
)

func TestPassProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("handler runs once per distinct node", prop.ForAll(
		func(recipe []int) bool {
			root := testutil.BuildDAG(recipe)
			s := newSizer()
			if _, err := s.pass.Visit(root); err != nil {
				return false
			}
			if len(s.calls) != len(Nodes(root)) {
				return false
			}
			for _, c := range s.calls {
				if c != 1 {
					return false
				}
			}
			return true
		},
		testutil.GenRecipe(),
	))

	properties.Property("passes are deterministic", prop.ForAll(
		func(recipe []int) bool {
			root := testutil.BuildDAG(recipe)
			a, errA := newSizer().pass.Visit(root)
			b, errB := newSizer(WithDedup()).pass.Visit(root)
			c, errC := newSizer().pass.Visit(root)
			return errA == nil && errB == nil && errC == nil && a == b && a == c
		},
		testutil.GenRecipe(),
	))

	properties.Property("dedup never handles equal propositions twice", prop.ForAll(
		func(recipe []int) bool {
			root := testutil.BuildDAG(recipe)
			s := newSizer(WithDedup())
			if _, err := s.pass.Visit(root); err != nil {
				return false
			}
			var handled []ast.Node
			for n := range s.calls {
				if Dedupable(n) {
					handled = append(handled, n)
				}
			}
			for i := range handled {
				for j := i + 1; j < len(handled); j++ {
					if ast.Equal(handled[i], handled[j]) {
						return false
					}
				}
			}
			return true
		},
		testutil.GenRecipe(),
	))

	properties.TestingRun(t)
}
