package ast

import (
	"strconv"

	"github.com/roach88/modelir/internal/value"
)

// Constructors for expression nodes. Each one infers the result type from its
// operands the same way the type checker would for well-typed input; operands
// of unknown type yield TypeUnknown.

// NewLiteral wraps a value. Text is derived from the value.
func NewLiteral(v value.Value) *Literal {
	e := &Literal{Value: v}
	if v != nil {
		e.Text = v.String()
	}
	switch v.(type) {
	case value.Bool:
		e.Type = TypeBool
	case value.Int:
		e.Type = TypeInt
	case value.Double:
		e.Type = TypeDouble
	}
	return e
}

func NewLiteralBool(b bool) *Literal { return NewLiteral(value.Bool(b)) }

func NewLiteralInt(i int64) *Literal { return NewLiteral(value.Int(i)) }

func NewLiteralDouble(f float64) *Literal {
	e := NewLiteral(value.Double(f))
	e.Text = strconv.FormatFloat(f, 'g', -1, 64)
	return e
}

func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

func NewVar(name string, index int, t Type) *Var {
	e := &Var{Name: name, Index: index}
	e.Type = t
	return e
}

func NewConstantRef(name string, t Type) *ConstantRef {
	e := &ConstantRef{Name: name}
	e.Type = t
	return e
}

func NewLabelRef(name string) *LabelRef {
	e := &LabelRef{Name: name}
	e.Type = TypeBool
	return e
}

func NewObsRef(name string, index int, t Type) *ObsRef {
	e := &ObsRef{Name: name, Index: index}
	e.Type = t
	return e
}

func NewPropRef(name string) *PropRef {
	return &PropRef{Name: name}
}

// NewFormulaRef returns an unexpanded reference. If def is non-nil it is
// attached and its type adopted.
func NewFormulaRef(name string, def Expression) *FormulaRef {
	e := &FormulaRef{Name: name, Definition: def}
	if def != nil {
		e.Type = def.ExprType()
	}
	return e
}

func NewBinaryOp(op BinOp, left, right Expression) *BinaryOp {
	e := &BinaryOp{Op: op, Left: left, Right: right}
	e.Type = binaryType(op, exprType(left), exprType(right))
	return e
}

func NewUnaryOp(op UnOp, operand Expression) *UnaryOp {
	e := &UnaryOp{Op: op, Operand: operand}
	if op == OpNot {
		e.Type = TypeBool
	} else {
		e.Type = exprType(operand)
	}
	return e
}

func NewITE(cond, then, els Expression) *ITE {
	e := &ITE{Cond: cond, Then: then, Else: els}
	e.Type = joinType(exprType(then), exprType(els))
	return e
}

func NewFunc(name FuncName, args ...Expression) *Func {
	e := &Func{Name: name, Args: args}
	e.Type = funcType(name, args)
	return e
}

func NewTemporal(op TemporalOp, left, right Expression) *Temporal {
	e := &Temporal{Op: op, Left: left, Right: right}
	e.Type = TypeBool
	return e
}

// NewProb returns "P op bound [ path ]". For queries bound is nil and the
// result is a probability.
func NewProb(op RelOp, bound, path Expression) *Prob {
	e := &Prob{RelOp: op, Bound: bound, Path: path}
	e.Type = TypeBool
	if op.IsQuery() {
		e.Type = TypeDouble
	}
	return e
}

func exprType(e Expression) Type {
	if e == nil {
		return TypeUnknown
	}
	return e.ExprType()
}

func binaryType(op BinOp, l, r Type) Type {
	switch {
	case op.IsLogical(), op.IsRelational():
		return TypeBool
	case op == OpDivide:
		if l == TypeUnknown || r == TypeUnknown {
			return TypeUnknown
		}
		return TypeDouble
	case op.IsArithmetic():
		return numericJoin(l, r)
	default:
		return TypeUnknown
	}
}

// joinType is the type of a value that can come from either branch.
func joinType(a, b Type) Type {
	if a == b {
		return a
	}
	return numericJoin(a, b)
}

// numericJoin widens int to double. Clocks behave as doubles in arithmetic.
func numericJoin(a, b Type) Type {
	if !a.IsNumeric() || !b.IsNumeric() {
		return TypeUnknown
	}
	if a == TypeInt && b == TypeInt {
		return TypeInt
	}
	return TypeDouble
}

func funcType(name FuncName, args []Expression) Type {
	switch name {
	case FuncFloor, FuncCeil, FuncRound, FuncMod:
		return TypeInt
	case FuncLog:
		return TypeDouble
	case FuncMin, FuncMax, FuncPow:
		if len(args) == 0 {
			return TypeUnknown
		}
		t := exprType(args[0])
		for _, a := range args[1:] {
			t = numericJoin(t, exprType(a))
		}
		if !t.IsNumeric() {
			return TypeUnknown
		}
		return t
	default:
		return TypeUnknown
	}
}
