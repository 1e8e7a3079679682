package testutil

import "github.com/roach88/modelir/internal/ast"

// CounterModel returns a small MDP with one formula, one label, a renamed
// module and a reward structure. Variable references are resolved: x has
// index 0 and y (from the renamed module) index 1.
//
// The formula "below" is referenced, not expanded.
func CounterModel() *ast.ModulesFile {
	x := ast.NewVar("x", 0, ast.TypeInt)
	n := ast.NewConstantRef("N", ast.TypeInt)
	p := ast.NewConstantRef("p", ast.TypeDouble)
	below := ast.NewBinaryOp(ast.OpLt, x, n)

	step := &ast.Command{
		Action: "step",
		Guard:  ast.NewFormulaRef("below", nil),
		Updates: &ast.Updates{
			Probs: []ast.Expression{p, ast.NewBinaryOp(ast.OpMinus, ast.NewLiteralInt(1), p)},
			Items: []*ast.Update{
				{Elements: []*ast.UpdateElement{{Var: ast.NewIdent("x"), Expr: ast.NewBinaryOp(ast.OpPlus, x, ast.NewLiteralInt(1))}}},
				{},
			},
		},
	}
	reset := &ast.Command{
		Action: "reset",
		Guard:  ast.NewUnaryOp(ast.OpNot, ast.NewFormulaRef("below", nil)),
		Updates: &ast.Updates{
			Probs: []ast.Expression{nil},
			Items: []*ast.Update{{Elements: []*ast.UpdateElement{{Var: ast.NewIdent("x"), Expr: ast.NewLiteralInt(0)}}}},
		},
	}

	return &ast.ModulesFile{
		ModelType: ast.ModelMDP,
		Constants: &ast.ConstantList{
			Names:     []string{"N", "p"},
			Types:     []ast.Type{ast.TypeInt, ast.TypeDouble},
			Constants: []ast.Expression{ast.NewLiteralInt(3), nil},
		},
		Formulas: &ast.FormulaList{Names: []string{"below"}, Formulas: []ast.Expression{below}},
		Labels:   &ast.LabelList{Names: []string{"done"}, Labels: []ast.Expression{ast.NewBinaryOp(ast.OpEq, x, n)}},
		Modules: []ast.ModuleDefn{
			&ast.Module{
				Name: "counter",
				Decls: []*ast.Declaration{{
					Name:     "x",
					DeclType: &ast.DeclInt{Low: ast.NewLiteralInt(0), High: n},
					Start:    ast.NewLiteralInt(0),
				}},
				Commands: []*ast.Command{step, reset},
			},
			&ast.RenamedModule{
				Name:     "counter2",
				Base:     "counter",
				OldNames: []string{"x", "step"},
				NewNames: []string{"y", "go"},
			},
		},
		System: &ast.SystemInterleaved{Operands: []ast.SystemDefn{
			&ast.SystemModule{Name: "counter"},
			&ast.SystemModule{Name: "counter2"},
		}},
		Rewards: []*ast.RewardStruct{{
			Name: "steps",
			Items: []*ast.RewardStructItem{
				{Action: "step", Transition: true, States: ast.NewLiteralBool(true), Reward: ast.NewLiteralInt(1)},
				{States: ast.NewBinaryOp(ast.OpEq, x, n), Reward: ast.NewLiteralInt(2)},
			},
		}},
	}
}

// CounterProperties returns properties over CounterModel covering the
// probabilistic, reward, steady-state and filter operators.
func CounterProperties() *ast.PropertiesFile {
	x := ast.NewVar("x", 0, ast.TypeInt)
	n := ast.NewConstantRef("N", ast.TypeInt)
	done := ast.NewLabelRef("done")

	reach := ast.NewProb(ast.RelMaxQuery, nil, ast.NewTemporal(ast.TemporalFinally, nil, done))

	until := ast.NewTemporal(ast.TemporalUntil, ast.NewBinaryOp(ast.OpLt, x, n), done)
	until.Upper = ast.NewLiteralInt(10)

	cumul := ast.NewTemporal(ast.TemporalCumulative, nil, nil)
	cumul.Upper = ast.NewLiteralInt(100)
	reward := &ast.Reward{StructName: "steps", RelOp: ast.RelQuery, Path: cumul}
	reward.Type = ast.TypeDouble

	steady := &ast.SteadyState{RelOp: ast.RelQuery, Expr: ast.NewBinaryOp(ast.OpEq, x, n)}
	steady.Type = ast.TypeDouble

	filter := &ast.FilterExpr{Op: ast.FilterMax, Operand: reach, States: ast.NewBinaryOp(ast.OpEq, x, ast.NewLiteralInt(0))}
	filter.Type = ast.TypeDouble

	return &ast.PropertiesFile{
		Properties: []*ast.Property{
			{Name: "reach", Expr: reach},
			{Expr: ast.NewProb(ast.RelGe, ast.NewLiteralDouble(0.5), until)},
			{Expr: reward},
			{Expr: steady, Comment: "long run"},
			{Expr: filter},
		},
	}
}
