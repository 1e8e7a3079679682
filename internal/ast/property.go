package ast

// TemporalOp is a path operator of the property language.
type TemporalOp string

const (
	TemporalNext       TemporalOp = "X"
	TemporalUntil      TemporalOp = "U"
	TemporalFinally    TemporalOp = "F"
	TemporalGlobally   TemporalOp = "G"
	TemporalWeakUntil  TemporalOp = "W"
	TemporalRelease    TemporalOp = "R"
	TemporalCumulative TemporalOp = "C"
	TemporalInstant    TemporalOp = "I"
)

// IsBinary reports whether the operator takes a left operand.
func (op TemporalOp) IsBinary() bool {
	switch op {
	case TemporalUntil, TemporalWeakUntil, TemporalRelease:
		return true
	}
	return false
}

// RelOp is the comparison attached to P, R and S operators.
type RelOp string

const (
	RelQuery    RelOp = "=?"
	RelMinQuery RelOp = "min=?"
	RelMaxQuery RelOp = "max=?"
	RelGt       RelOp = ">"
	RelGe       RelOp = ">="
	RelLt       RelOp = "<"
	RelLe       RelOp = "<="
)

// IsQuery reports whether the operator asks for a numerical value instead of
// comparing against a bound.
func (op RelOp) IsQuery() bool {
	switch op {
	case RelQuery, RelMinQuery, RelMaxQuery:
		return true
	}
	return false
}

// FilterOp is the operator of a filter(...) expression.
type FilterOp string

const (
	FilterMin      FilterOp = "min"
	FilterMax      FilterOp = "max"
	FilterArgMin   FilterOp = "argmin"
	FilterArgMax   FilterOp = "argmax"
	FilterCount    FilterOp = "count"
	FilterSum      FilterOp = "sum"
	FilterAvg      FilterOp = "avg"
	FilterFirst    FilterOp = "first"
	FilterRange    FilterOp = "range"
	FilterForAll   FilterOp = "forall"
	FilterExists   FilterOp = "exists"
	FilterPrint    FilterOp = "print"
	FilterPrintAll FilterOp = "printall"
	FilterState    FilterOp = "state"
)

// Temporal is a path formula such as "Left U<=Upper Right" or "F Right".
// Unary operators leave Left nil.
type Temporal struct {
	exprBase
	Op          TemporalOp
	Left        Expression
	Right       Expression
	Lower       Expression // Optional time bound
	Upper       Expression // Optional time bound
	LowerStrict bool
	UpperStrict bool
}

func (*Temporal) Kind() Kind          { return KindTemporal }
func (*Temporal) IsProposition() bool { return false }

func (e *Temporal) Children() []Node {
	return []Node{e.Left, e.Right, e.Lower, e.Upper}
}

func (e *Temporal) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	b = appendString(b, string(e.Op))
	b = appendBool(b, e.LowerStrict)
	return appendBool(b, e.UpperStrict)
}

func (e *Temporal) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Left, err = copyChild(cp, e.Left); err != nil {
		return nil, err
	}
	if c.Right, err = copyChild(cp, e.Right); err != nil {
		return nil, err
	}
	if c.Lower, err = copyChild(cp, e.Lower); err != nil {
		return nil, err
	}
	if c.Upper, err = copyChild(cp, e.Upper); err != nil {
		return nil, err
	}
	return &c, nil
}

// Interval is "[Low, High]", used for time bounds and ranges.
type Interval struct {
	exprBase
	Low  Expression
	High Expression
}

func (*Interval) Kind() Kind          { return KindInterval }
func (*Interval) IsProposition() bool { return false }
func (e *Interval) Children() []Node  { return []Node{e.Low, e.High} }

func (e *Interval) appendAttrs(b []byte) []byte { return appendType(b, e.Type) }

func (e *Interval) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Low, err = copyChild(cp, e.Low); err != nil {
		return nil, err
	}
	if c.High, err = copyChild(cp, e.High); err != nil {
		return nil, err
	}
	return &c, nil
}

// Prob is the probabilistic operator "P RelOp Bound [ Path {Filter} ]".
type Prob struct {
	exprBase
	RelOp  RelOp
	Bound  Expression // nil for queries
	Path   Expression
	Filter *Filter
}

func (*Prob) Kind() Kind          { return KindProb }
func (*Prob) IsProposition() bool { return false }

func (e *Prob) Children() []Node { return []Node{e.Bound, e.Path, child(e.Filter)} }

func (e *Prob) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, string(e.RelOp))
}

func (e *Prob) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Bound, err = copyChild(cp, e.Bound); err != nil {
		return nil, err
	}
	if c.Path, err = copyChild(cp, e.Path); err != nil {
		return nil, err
	}
	if c.Filter, err = copyChild(cp, e.Filter); err != nil {
		return nil, err
	}
	return &c, nil
}

// Reward is the reward operator "R{StructName} RelOp Bound [ Path {Filter} ]".
// The reward structure is selected either by StructName or by StructIndex.
type Reward struct {
	exprBase
	StructName  string
	StructIndex Expression
	RelOp       RelOp
	Bound       Expression
	Path        Expression
	Filter      *Filter
}

func (*Reward) Kind() Kind          { return KindReward }
func (*Reward) IsProposition() bool { return false }

func (e *Reward) Children() []Node {
	return []Node{e.StructIndex, e.Bound, e.Path, child(e.Filter)}
}

func (e *Reward) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	b = appendString(b, e.StructName)
	return appendString(b, string(e.RelOp))
}

func (e *Reward) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.StructIndex, err = copyChild(cp, e.StructIndex); err != nil {
		return nil, err
	}
	if c.Bound, err = copyChild(cp, e.Bound); err != nil {
		return nil, err
	}
	if c.Path, err = copyChild(cp, e.Path); err != nil {
		return nil, err
	}
	if c.Filter, err = copyChild(cp, e.Filter); err != nil {
		return nil, err
	}
	return &c, nil
}

// SteadyState is the long-run operator "S RelOp Bound [ Expr {Filter} ]".
type SteadyState struct {
	exprBase
	RelOp  RelOp
	Bound  Expression
	Expr   Expression
	Filter *Filter
}

func (*SteadyState) Kind() Kind          { return KindSteadyState }
func (*SteadyState) IsProposition() bool { return false }

func (e *SteadyState) Children() []Node { return []Node{e.Bound, e.Expr, child(e.Filter)} }

func (e *SteadyState) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, string(e.RelOp))
}

func (e *SteadyState) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Bound, err = copyChild(cp, e.Bound); err != nil {
		return nil, err
	}
	if c.Expr, err = copyChild(cp, e.Expr); err != nil {
		return nil, err
	}
	if c.Filter, err = copyChild(cp, e.Filter); err != nil {
		return nil, err
	}
	return &c, nil
}

// Exists is the CTL path quantifier "E [ Path ]".
type Exists struct {
	exprBase
	Path Expression
}

func (*Exists) Kind() Kind                    { return KindExists }
func (*Exists) IsProposition() bool           { return false }
func (e *Exists) Children() []Node            { return []Node{e.Path} }
func (e *Exists) appendAttrs(b []byte) []byte { return appendType(b, e.Type) }

func (e *Exists) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Path, err = copyChild(cp, e.Path); err != nil {
		return nil, err
	}
	return &c, nil
}

// ForAll is the CTL path quantifier "A [ Path ]".
type ForAll struct {
	exprBase
	Path Expression
}

func (*ForAll) Kind() Kind                    { return KindForAll }
func (*ForAll) IsProposition() bool           { return false }
func (e *ForAll) Children() []Node            { return []Node{e.Path} }
func (e *ForAll) appendAttrs(b []byte) []byte { return appendType(b, e.Type) }

func (e *ForAll) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Path, err = copyChild(cp, e.Path); err != nil {
		return nil, err
	}
	return &c, nil
}

// Strategy is the coalition operator "<<p1,p2>> Operands" (Universal false)
// or "[[p1,p2]] Operands" (Universal true).
type Strategy struct {
	exprBase
	Universal bool
	Coalition []string
	Operands  []Expression
}

func (*Strategy) Kind() Kind          { return KindStrategy }
func (*Strategy) IsProposition() bool { return false }
func (e *Strategy) Children() []Node  { return appendNodes(nil, e.Operands) }

func (e *Strategy) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	b = appendBool(b, e.Universal)
	b = appendStrings(b, e.Coalition)
	return appendLen(b, len(e.Operands))
}

func (e *Strategy) CopyWith(cp Copier) (Node, error) {
	c := *e
	c.Coalition = cloneStrings(e.Coalition)
	var err error
	if c.Operands, err = copyChildren(cp, e.Operands); err != nil {
		return nil, err
	}
	return &c, nil
}

// PropRef refers to another named property.
type PropRef struct {
	exprBase
	Name string
}

func (*PropRef) Kind() Kind          { return KindPropRef }
func (*PropRef) IsProposition() bool { return false }
func (*PropRef) Children() []Node    { return nil }

func (e *PropRef) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, e.Name)
}

func (e *PropRef) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// FilterExpr is "filter(Op, Operand, States)". A nil States filters over all
// states.
type FilterExpr struct {
	exprBase
	Op      FilterOp
	Operand Expression
	States  Expression
}

func (*FilterExpr) Kind() Kind          { return KindFilterExpr }
func (*FilterExpr) IsProposition() bool { return false }
func (e *FilterExpr) Children() []Node  { return []Node{e.Operand, e.States} }

func (e *FilterExpr) appendAttrs(b []byte) []byte {
	b = appendType(b, e.Type)
	return appendString(b, string(e.Op))
}

func (e *FilterExpr) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Operand, err = copyChild(cp, e.Operand); err != nil {
		return nil, err
	}
	if c.States, err = copyChild(cp, e.States); err != nil {
		return nil, err
	}
	return &c, nil
}

// Filter is the "{Expr}{min}{max}" suffix of P, R and S operators.
type Filter struct {
	base
	Expr   Expression
	MinReq bool
	MaxReq bool
}

func (*Filter) Kind() Kind         { return KindFilter }
func (e *Filter) Children() []Node { return []Node{e.Expr} }

func (e *Filter) appendAttrs(b []byte) []byte {
	b = appendBool(b, e.MinReq)
	return appendBool(b, e.MaxReq)
}

func (e *Filter) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Expr, err = copyChild(cp, e.Expr); err != nil {
		return nil, err
	}
	return &c, nil
}

// ForLoop is "Var = From : Step : To", used by experiment ranges.
type ForLoop struct {
	base
	Var  string
	From Expression
	To   Expression
	Step Expression // nil = 1
}

func (*ForLoop) Kind() Kind         { return KindForLoop }
func (e *ForLoop) Children() []Node { return []Node{e.From, e.To, e.Step} }

func (e *ForLoop) appendAttrs(b []byte) []byte { return appendString(b, e.Var) }

func (e *ForLoop) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.From, err = copyChild(cp, e.From); err != nil {
		return nil, err
	}
	if c.To, err = copyChild(cp, e.To); err != nil {
		return nil, err
	}
	if c.Step, err = copyChild(cp, e.Step); err != nil {
		return nil, err
	}
	return &c, nil
}
