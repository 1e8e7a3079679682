package ast

import "github.com/roach88/modelir/internal/value"

// BinOp is a binary operator symbol.
type BinOp string

const (
	OpImplies BinOp = "=>"
	OpIff     BinOp = "<=>"
	OpOr      BinOp = "|"
	OpAnd     BinOp = "&"
	OpEq      BinOp = "="
	OpNe      BinOp = "!="
	OpGt      BinOp = ">"
	OpGe      BinOp = ">="
	OpLt      BinOp = "<"
	OpLe      BinOp = "<="
	OpPlus    BinOp = "+"
	OpMinus   BinOp = "-"
	OpTimes   BinOp = "*"
	OpDivide  BinOp = "/"
)

// Precedence returns the binding strength of the operator; higher binds
// tighter.
func (op BinOp) Precedence() int {
	switch op {
	case OpImplies:
		return 1
	case OpIff:
		return 2
	case OpOr:
		return 3
	case OpAnd:
		return 4
	case OpEq, OpNe:
		return 6
	case OpGt, OpGe, OpLt, OpLe:
		return 7
	case OpPlus, OpMinus:
		return 8
	case OpTimes, OpDivide:
		return 9
	default:
		return 0
	}
}

// IsLogical reports whether the operator takes and yields booleans.
func (op BinOp) IsLogical() bool {
	switch op {
	case OpImplies, OpIff, OpOr, OpAnd:
		return true
	}
	return false
}

// IsRelational reports whether the operator compares operands.
func (op BinOp) IsRelational() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		return true
	}
	return false
}

// IsArithmetic reports whether the operator yields a number.
func (op BinOp) IsArithmetic() bool {
	switch op {
	case OpPlus, OpMinus, OpTimes, OpDivide:
		return true
	}
	return false
}

// ParseBinOp validates an operator symbol.
func ParseBinOp(s string) (BinOp, bool) {
	op := BinOp(s)
	return op, op.Precedence() > 0
}

// UnOp is a unary operator.
type UnOp string

const (
	OpNot     UnOp = "!"
	OpNeg     UnOp = "-"
	OpParenth UnOp = "()"
)

// FuncName names a built-in function.
type FuncName string

const (
	FuncMin   FuncName = "min"
	FuncMax   FuncName = "max"
	FuncFloor FuncName = "floor"
	FuncCeil  FuncName = "ceil"
	FuncRound FuncName = "round"
	FuncPow   FuncName = "pow"
	FuncMod   FuncName = "mod"
	FuncLog   FuncName = "log"
)

// Arity returns the minimum and maximum number of arguments; max -1 means
// unbounded.
func (f FuncName) Arity() (int, int) {
	switch f {
	case FuncMin, FuncMax:
		return 2, -1
	case FuncFloor, FuncCeil, FuncRound:
		return 1, 1
	case FuncPow, FuncMod, FuncLog:
		return 2, 2
	default:
		return 0, 0
	}
}

// ITE is "Cond ? Then : Else".
type ITE struct {
	exprBase
	Cond Expression
	Then Expression
	Else Expression
}

func (*ITE) Kind() Kind                    { return KindITE }
func (e *ITE) Children() []Node            { return []Node{e.Cond, e.Then, e.Else} }
func (e *ITE) IsProposition() bool         { return allPropositions(e.Cond, e.Then, e.Else) }
func (e *ITE) appendAttrs(b []byte) []byte { return appendType(b, e.Type) }

func (e *ITE) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Cond, err = copyChild(cp, e.Cond); err != nil {
		return nil, err
	}
	if c.Then, err = copyChild(cp, e.Then); err != nil {
		return nil, err
	}
	if c.Else, err = copyChild(cp, e.Else); err != nil {
		return nil, err
	}
	return &c, nil
}

// BinaryOp is "Left Op Right".
type BinaryOp struct {
	exprBase
	Op    BinOp
	Left  Expression
	Right Expression
}

func (*BinaryOp) Kind() Kind            { return KindBinaryOp }
func (e *BinaryOp) Children() []Node    { return []Node{e.Left, e.Right} }
func (e *BinaryOp) IsProposition() bool { return allPropositions(e.Left, e.Right) }

func (e *BinaryOp) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, string(e.Op))
}

func (e *BinaryOp) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Left, err = copyChild(cp, e.Left); err != nil {
		return nil, err
	}
	if c.Right, err = copyChild(cp, e.Right); err != nil {
		return nil, err
	}
	return &c, nil
}

// UnaryOp is "Op Operand".
type UnaryOp struct {
	exprBase
	Op      UnOp
	Operand Expression
}

func (*UnaryOp) Kind() Kind            { return KindUnaryOp }
func (e *UnaryOp) Children() []Node    { return []Node{e.Operand} }
func (e *UnaryOp) IsProposition() bool { return allPropositions(e.Operand) }

func (e *UnaryOp) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, string(e.Op))
}

func (e *UnaryOp) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Operand, err = copyChild(cp, e.Operand); err != nil {
		return nil, err
	}
	return &c, nil
}

// Func is a built-in function application.
type Func struct {
	exprBase
	Name FuncName
	Args []Expression
}

func (*Func) Kind() Kind            { return KindFunc }
func (e *Func) Children() []Node    { return appendNodes(nil, e.Args) }
func (e *Func) IsProposition() bool { return len(e.Args) > 0 && allPropositions(e.Args...) }

func (e *Func) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	b = appendString(b, string(e.Name))
	return appendLen(b, len(e.Args))
}

func (e *Func) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Args, err = copyChildren(cp, e.Args); err != nil {
		return nil, err
	}
	return &c, nil
}

// Ident is an identifier that has not been resolved to a variable, constant
// or formula yet.
type Ident struct {
	exprBase
	Name string
}

func (*Ident) Kind() Kind          { return KindIdent }
func (*Ident) Children() []Node    { return nil }
func (*Ident) IsProposition() bool { return false }

func (e *Ident) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, e.Name)
}

func (e *Ident) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// Literal is a constant value written in the source. Text preserves the
// original spelling for printing and is not part of structural equality.
type Literal struct {
	exprBase
	Value value.Value
	Text  string
}

func (*Literal) Kind() Kind          { return KindLiteral }
func (*Literal) Children() []Node    { return nil }
func (*Literal) IsProposition() bool { return true }

func (e *Literal) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendValue(b, e.Value)
}

func (e *Literal) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// ConstantRef refers to a named constant.
type ConstantRef struct {
	exprBase
	Name string
}

func (*ConstantRef) Kind() Kind          { return KindConstantRef }
func (*ConstantRef) Children() []Node    { return nil }
func (*ConstantRef) IsProposition() bool { return true }

func (e *ConstantRef) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, e.Name)
}

func (e *ConstantRef) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// FormulaRef refers to a named formula. Definition is nil until the formula
// has been attached; an attached definition is a child.
type FormulaRef struct {
	exprBase
	Name       string
	Definition Expression
}

func (*FormulaRef) Kind() Kind         { return KindFormulaRef }
func (e *FormulaRef) Children() []Node { return []Node{e.Definition} }

// IsProposition is false until a definition is attached; an unattached
// reference could stand for any expression.
func (e *FormulaRef) IsProposition() bool {
	return e.Definition != nil && e.Definition.IsProposition()
}

func (e *FormulaRef) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, e.Name)
}

func (e *FormulaRef) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Definition, err = copyChild(cp, e.Definition); err != nil {
		return nil, err
	}
	return &c, nil
}

// Var refers to a state variable by name and by its index in the state
// vector.
type Var struct {
	exprBase
	Name  string
	Index int
}

func (*Var) Kind() Kind { return KindVar }

func (*Var) Children() []Node { return nil }

// IsProposition is true: a variable's value is determined by the state.
// Traversals nevertheless never merge Var nodes structurally.
func (*Var) IsProposition() bool { return true }

func (e *Var) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	b = appendString(b, e.Name)
	return appendInt(b, int64(e.Index))
}

func (e *Var) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// LabelRef is a quoted label reference "\"name\"".
type LabelRef struct {
	exprBase
	Name string
}

func (*LabelRef) Kind() Kind          { return KindLabelRef }
func (*LabelRef) Children() []Node    { return nil }
func (*LabelRef) IsProposition() bool { return true }

func (e *LabelRef) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, e.Name)
}

func (e *LabelRef) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// ObsRef refers to an observable by name and index.
type ObsRef struct {
	exprBase
	Name  string
	Index int
}

func (*ObsRef) Kind() Kind          { return KindObsRef }
func (*ObsRef) Children() []Node    { return nil }
func (*ObsRef) IsProposition() bool { return true }

func (e *ObsRef) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	b = appendString(b, e.Name)
	return appendInt(b, int64(e.Index))
}

func (e *ObsRef) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}
