package printer

import (
	"strings"

	"github.com/roach88/modelir/internal/ast"
)

func (p *printer) VisitITE(e *ast.ITE) (string, error) {
	c, err := p.operand(e.Cond, precTernary+1)
	if err != nil {
		return "", err
	}
	t, err := p.operand(e.Then, precTernary+1)
	if err != nil {
		return "", err
	}
	f, err := p.operand(e.Else, precTernary)
	if err != nil {
		return "", err
	}
	return c + " ? " + t + " : " + f, nil
}

// VisitBinaryOp renders a left-associative operator: a right operand of the
// same strength is parenthesized.
func (p *printer) VisitBinaryOp(e *ast.BinaryOp) (string, error) {
	prec := e.Op.Precedence()
	l, err := p.operand(e.Left, prec)
	if err != nil {
		return "", err
	}
	r, err := p.operand(e.Right, prec+1)
	if err != nil {
		return "", err
	}
	return l + string(e.Op) + r, nil
}

func (p *printer) VisitUnaryOp(e *ast.UnaryOp) (string, error) {
	switch e.Op {
	case ast.OpNot:
		s, err := p.operand(e.Operand, precNot)
		return "!" + s, err
	case ast.OpNeg:
		s, err := p.operand(e.Operand, precNeg)
		return "-" + s, err
	default:
		s, err := p.visit(e.Operand)
		return "(" + s + ")", err
	}
}

func (p *printer) VisitFunc(e *ast.Func) (string, error) {
	args, err := p.join(e.Args, ",")
	if err != nil {
		return "", err
	}
	return string(e.Name) + "(" + args + ")", nil
}

func (p *printer) VisitIdent(e *ast.Ident) (string, error) { return e.Name, nil }

func (p *printer) VisitLiteral(e *ast.Literal) (string, error) {
	if e.Text != "" {
		return e.Text, nil
	}
	if e.Value == nil {
		return "", ast.Errorf(ast.CodeInvalidNode, e.Pos, "literal without value")
	}
	return e.Value.String(), nil
}

func (p *printer) VisitConstantRef(e *ast.ConstantRef) (string, error) { return e.Name, nil }
func (p *printer) VisitFormulaRef(e *ast.FormulaRef) (string, error)   { return e.Name, nil }
func (p *printer) VisitVar(e *ast.Var) (string, error)                 { return e.Name, nil }
func (p *printer) VisitLabelRef(e *ast.LabelRef) (string, error)       { return quote(e.Name), nil }
func (p *printer) VisitObsRef(e *ast.ObsRef) (string, error)           { return e.Name, nil }
func (p *printer) VisitPropRef(e *ast.PropRef) (string, error)         { return quote(e.Name), nil }

func (p *printer) VisitInterval(e *ast.Interval) (string, error) {
	lo, err := p.visit(e.Low)
	if err != nil {
		return "", err
	}
	hi, err := p.visit(e.High)
	if err != nil {
		return "", err
	}
	return "[" + lo + "," + hi + "]", nil
}

func (p *printer) VisitTemporal(e *ast.Temporal) (string, error) {
	bound, err := p.timeBound(e)
	if err != nil {
		return "", err
	}
	op := string(e.Op) + bound

	if e.Op == ast.TemporalCumulative || e.Op == ast.TemporalInstant {
		return op, nil
	}
	r, err := p.operand(e.Right, precTernary+1)
	if err != nil {
		return "", err
	}
	if e.Left == nil {
		return op + " " + r, nil
	}
	l, err := p.operand(e.Left, precTernary+1)
	if err != nil {
		return "", err
	}
	return l + " " + op + " " + r, nil
}

func (p *printer) timeBound(e *ast.Temporal) (string, error) {
	lo, err := p.visit(e.Lower)
	if err != nil {
		return "", err
	}
	hi, err := p.visit(e.Upper)
	if err != nil {
		return "", err
	}
	switch {
	case e.Op == ast.TemporalInstant:
		return "=" + hi, nil
	case e.Lower != nil && e.Upper != nil:
		return "[" + lo + "," + hi + "]", nil
	case e.Upper != nil && e.UpperStrict:
		return "<" + hi, nil
	case e.Upper != nil:
		return "<=" + hi, nil
	case e.Lower != nil && e.LowerStrict:
		return ">" + lo, nil
	case e.Lower != nil:
		return ">=" + lo, nil
	}
	return "", nil
}

// relation renders the operator suffix, e.g. "=?", "min=?" or ">=0.5".
func (p *printer) relation(op ast.RelOp, bound ast.Expression) (string, error) {
	if op.IsQuery() || bound == nil {
		return string(op), nil
	}
	b, err := p.visit(bound)
	if err != nil {
		return "", err
	}
	return string(op) + b, nil
}

func (p *printer) bracket(body ast.Expression, filter *ast.Filter) (string, error) {
	s, err := p.visit(body)
	if err != nil {
		return "", err
	}
	if filter != nil {
		f, err := p.visit(filter)
		if err != nil {
			return "", err
		}
		s += f
	}
	return " [ " + s + " ]", nil
}

func (p *printer) VisitProb(e *ast.Prob) (string, error) {
	rel, err := p.relation(e.RelOp, e.Bound)
	if err != nil {
		return "", err
	}
	body, err := p.bracket(e.Path, e.Filter)
	if err != nil {
		return "", err
	}
	return "P" + rel + body, nil
}

func (p *printer) VisitReward(e *ast.Reward) (string, error) {
	var b strings.Builder
	b.WriteString("R")
	switch {
	case e.StructIndex != nil:
		idx, err := p.visit(e.StructIndex)
		if err != nil {
			return "", err
		}
		b.WriteString("{" + idx + "}")
	case e.StructName != "":
		b.WriteString("{" + quote(e.StructName) + "}")
	}
	rel, err := p.relation(e.RelOp, e.Bound)
	if err != nil {
		return "", err
	}
	body, err := p.bracket(e.Path, e.Filter)
	if err != nil {
		return "", err
	}
	return b.String() + rel + body, nil
}

func (p *printer) VisitSteadyState(e *ast.SteadyState) (string, error) {
	rel, err := p.relation(e.RelOp, e.Bound)
	if err != nil {
		return "", err
	}
	body, err := p.bracket(e.Expr, e.Filter)
	if err != nil {
		return "", err
	}
	return "S" + rel + body, nil
}

func (p *printer) VisitExists(e *ast.Exists) (string, error) {
	s, err := p.visit(e.Path)
	return "E [ " + s + " ]", err
}

func (p *printer) VisitForAll(e *ast.ForAll) (string, error) {
	s, err := p.visit(e.Path)
	return "A [ " + s + " ]", err
}

func (p *printer) VisitStrategy(e *ast.Strategy) (string, error) {
	open, closing := "<<", ">>"
	if e.Universal {
		open, closing = "[[", "]]"
	}
	ops, err := p.join(e.Operands, " ")
	if err != nil {
		return "", err
	}
	return open + strings.Join(e.Coalition, ",") + closing + " " + ops, nil
}

func (p *printer) VisitFilterExpr(e *ast.FilterExpr) (string, error) {
	s, err := p.visit(e.Operand)
	if err != nil {
		return "", err
	}
	out := "filter(" + string(e.Op) + ", " + s
	if e.States != nil {
		st, err := p.visit(e.States)
		if err != nil {
			return "", err
		}
		out += ", " + st
	}
	return out + ")", nil
}

func (p *printer) VisitFilter(e *ast.Filter) (string, error) {
	s, err := p.visit(e.Expr)
	if err != nil {
		return "", err
	}
	out := "{" + s + "}"
	if e.MinReq {
		out += "{min}"
	}
	if e.MaxReq {
		out += "{max}"
	}
	return out, nil
}

func (p *printer) VisitForLoop(e *ast.ForLoop) (string, error) {
	from, err := p.visit(e.From)
	if err != nil {
		return "", err
	}
	to, err := p.visit(e.To)
	if err != nil {
		return "", err
	}
	if e.Step == nil {
		return e.Var + "=" + from + ":" + to, nil
	}
	step, err := p.visit(e.Step)
	if err != nil {
		return "", err
	}
	return e.Var + "=" + from + ":" + step + ":" + to, nil
}
