// Package printer renders IR graphs in the concrete syntax of the modeling
// language.
//
// Printing is a traversal: a shared sub-expression is rendered once and its
// text reused at every occurrence. Parentheses are inserted from operator
// precedence, so an expanded formula prints correctly without an explicit
// parenthesis node.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/traverse"
)

// Binding strengths beyond the binary operators.
const (
	precTernary = 0
	precNot     = 5
	precNeg     = 10
	precAtom    = 11
)

// String renders n.
func String(n ast.Node, opts ...traverse.Option) (string, error) {
	p := &printer{}
	p.pass = traverse.New[string](p, append([]traverse.Option{traverse.WithName("print")}, opts...)...)
	s, err := p.pass.Visit(n)
	if err != nil {
		return "", err
	}
	p.pass.Report()
	return s, nil
}

// Fprint renders n to w.
func Fprint(w io.Writer, n ast.Node, opts ...traverse.Option) error {
	s, err := String(n, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

type printer struct {
	pass *traverse.Pass[string]
}

var _ ast.Handler[string] = (*printer)(nil)

func (p *printer) visit(n ast.Node) (string, error) {
	return p.pass.Visit(n)
}

// operand renders e and parenthesizes it if it binds looser than min.
func (p *printer) operand(e ast.Expression, min int) (string, error) {
	s, err := p.visit(e)
	if err != nil {
		return "", err
	}
	if e != nil && precedence(e) < min {
		return "(" + s + ")", nil
	}
	return s, nil
}

func (p *printer) join(list []ast.Expression, sep string) (string, error) {
	parts := make([]string, len(list))
	for i, e := range list {
		s, err := p.visit(e)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, sep), nil
}

func precedence(e ast.Expression) int {
	switch e := e.(type) {
	case *ast.BinaryOp:
		return e.Op.Precedence()
	case *ast.UnaryOp:
		switch e.Op {
		case ast.OpNot:
			return precNot
		case ast.OpNeg:
			return precNeg
		}
		return precAtom
	case *ast.ITE, *ast.Temporal:
		return precTernary
	default:
		return precAtom
	}
}

func quote(s string) string {
	return `"` + s + `"`
}

// Files and lists

func (p *printer) VisitModulesFile(e *ast.ModulesFile) (string, error) {
	var b strings.Builder
	if e.ModelType != "" {
		b.WriteString(string(e.ModelType))
		b.WriteString("\n\n")
	}
	if err := p.section(&b, child(e.Constants), child(e.Formulas), child(e.Labels)); err != nil {
		return "", err
	}
	for _, d := range e.Globals {
		s, err := p.visit(d)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "global %s;\n", s)
	}
	if len(e.Globals) > 0 {
		b.WriteString("\n")
	}
	for _, m := range e.Modules {
		s, err := p.visit(m)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		b.WriteString("\n\n")
	}
	if e.System != nil {
		s, err := p.visit(e.System)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "system\n\t%s\nendsystem\n\n", s)
	}
	for _, r := range e.Rewards {
		s, err := p.visit(r)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		b.WriteString("\n\n")
	}
	if e.Init != nil {
		s, err := p.visit(e.Init)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "init\n\t%s\nendinit\n\n", s)
	}
	for _, o := range e.ObservableVars {
		s, err := p.visit(o)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	for _, o := range e.Observables {
		s, err := p.visit(o)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// section writes each non-empty list followed by a blank line.
func (p *printer) section(b *strings.Builder, lists ...ast.Node) error {
	for _, l := range lists {
		if l == nil {
			continue
		}
		s, err := p.visit(l)
		if err != nil {
			return err
		}
		if s == "" {
			continue
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	return nil
}

func child[T any, P interface {
	*T
	ast.Node
}](n P) ast.Node {
	if n == nil {
		return nil
	}
	return n
}

func (p *printer) VisitPropertiesFile(e *ast.PropertiesFile) (string, error) {
	var b strings.Builder
	if err := p.section(&b, child(e.Constants), child(e.Formulas), child(e.Labels)); err != nil {
		return "", err
	}
	for _, prop := range e.Properties {
		s, err := p.visit(prop)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (p *printer) VisitProperty(e *ast.Property) (string, error) {
	s, err := p.visit(e.Expr)
	if err != nil {
		return "", err
	}
	if e.Name != "" {
		s = quote(e.Name) + ": " + s
	}
	if e.Comment != "" {
		s = "// " + e.Comment + "\n" + s
	}
	return s, nil
}

func (p *printer) VisitFormulaList(e *ast.FormulaList) (string, error) {
	var b strings.Builder
	for i, name := range e.Names {
		s, err := p.visit(e.Formulas[i])
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "formula %s = %s;\n", name, s)
	}
	return b.String(), nil
}

func (p *printer) VisitLabelList(e *ast.LabelList) (string, error) {
	var b strings.Builder
	for i, name := range e.Names {
		s, err := p.visit(e.Labels[i])
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "label %s = %s;\n", quote(name), s)
	}
	return b.String(), nil
}

func (p *printer) VisitConstantList(e *ast.ConstantList) (string, error) {
	var b strings.Builder
	for i, name := range e.Names {
		typ := ast.TypeInt
		if i < len(e.Types) {
			typ = e.Types[i]
		}
		var def ast.Expression
		if i < len(e.Constants) {
			def = e.Constants[i]
		}
		if def == nil {
			fmt.Fprintf(&b, "const %s %s;\n", typ, name)
			continue
		}
		s, err := p.visit(def)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "const %s %s = %s;\n", typ, name, s)
	}
	return b.String(), nil
}

// Declarations

func (p *printer) VisitDeclaration(e *ast.Declaration) (string, error) {
	t, err := p.visit(e.DeclType)
	if err != nil {
		return "", err
	}
	s := e.Name + " : " + t
	if e.Start != nil {
		init, err := p.visit(e.Start)
		if err != nil {
			return "", err
		}
		s += " init " + init
	}
	return s, nil
}

func (p *printer) VisitDeclInt(e *ast.DeclInt) (string, error) {
	lo, err := p.visit(e.Low)
	if err != nil {
		return "", err
	}
	hi, err := p.visit(e.High)
	if err != nil {
		return "", err
	}
	return "[" + lo + ".." + hi + "]", nil
}

func (p *printer) VisitDeclBool(*ast.DeclBool) (string, error) { return "bool", nil }

func (p *printer) VisitDeclArray(e *ast.DeclArray) (string, error) {
	lo, err := p.visit(e.Low)
	if err != nil {
		return "", err
	}
	hi, err := p.visit(e.High)
	if err != nil {
		return "", err
	}
	sub, err := p.visit(e.Sub)
	if err != nil {
		return "", err
	}
	return "array [" + lo + ".." + hi + "] of " + sub, nil
}

func (p *printer) VisitDeclClock(*ast.DeclClock) (string, error) { return "clock", nil }

func (p *printer) VisitDeclIntUnbounded(*ast.DeclIntUnbounded) (string, error) { return "int", nil }

// Modules

func (p *printer) VisitModule(e *ast.Module) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", e.Name)
	if len(e.Decls) > 0 {
		b.WriteString("\n")
	}
	for _, d := range e.Decls {
		s, err := p.visit(d)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\t%s;\n", s)
	}
	if e.Invariant != nil {
		s, err := p.visit(e.Invariant)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n\tinvariant\n\t\t%s\n\tendinvariant\n", s)
	}
	if len(e.Commands) > 0 {
		b.WriteString("\n")
	}
	for _, c := range e.Commands {
		s, err := p.visit(c)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\t%s\n", s)
	}
	b.WriteString("\nendmodule")
	return b.String(), nil
}

func (p *printer) VisitCommand(e *ast.Command) (string, error) {
	g, err := p.visit(e.Guard)
	if err != nil {
		return "", err
	}
	u, err := p.visit(e.Updates)
	if err != nil {
		return "", err
	}
	return "[" + e.Action + "] " + g + " -> " + u + ";", nil
}

func (p *printer) VisitUpdates(e *ast.Updates) (string, error) {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		u, err := p.visit(item)
		if err != nil {
			return "", err
		}
		var prob ast.Expression
		if i < len(e.Probs) {
			prob = e.Probs[i]
		}
		if prob == nil {
			parts[i] = u
			continue
		}
		ps, err := p.operand(prob, precAtom)
		if err != nil {
			return "", err
		}
		parts[i] = ps + ":" + u
	}
	return strings.Join(parts, " + "), nil
}

func (p *printer) VisitUpdate(e *ast.Update) (string, error) {
	if len(e.Elements) == 0 {
		return "true", nil
	}
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		s, err := p.visit(el)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, " & "), nil
}

func (p *printer) VisitUpdateElement(e *ast.UpdateElement) (string, error) {
	v, err := p.visit(e.Var)
	if err != nil {
		return "", err
	}
	s, err := p.visit(e.Expr)
	if err != nil {
		return "", err
	}
	return "(" + v + "'=" + s + ")", nil
}

func (p *printer) VisitRenamedModule(e *ast.RenamedModule) (string, error) {
	pairs := make([]string, len(e.OldNames))
	for i, old := range e.OldNames {
		pairs[i] = old + "=" + e.NewNames[i]
	}
	return fmt.Sprintf("module %s = %s [%s] endmodule", e.Name, e.Base, strings.Join(pairs, ", ")), nil
}

func (p *printer) VisitRewardStruct(e *ast.RewardStruct) (string, error) {
	var b strings.Builder
	b.WriteString("rewards")
	if e.Name != "" {
		b.WriteString(" " + quote(e.Name))
	}
	b.WriteString("\n")
	for _, item := range e.Items {
		s, err := p.visit(item)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\t%s\n", s)
	}
	b.WriteString("endrewards")
	return b.String(), nil
}

func (p *printer) VisitRewardStructItem(e *ast.RewardStructItem) (string, error) {
	g, err := p.visit(e.States)
	if err != nil {
		return "", err
	}
	r, err := p.visit(e.Reward)
	if err != nil {
		return "", err
	}
	s := g + " : " + r + ";"
	if e.Transition {
		s = "[" + e.Action + "] " + s
	}
	return s, nil
}

func (p *printer) VisitObservableVars(e *ast.ObservableVars) (string, error) {
	s, err := p.join(e.Vars, ", ")
	if err != nil {
		return "", err
	}
	return "observables " + s + " endobservables", nil
}

func (p *printer) VisitObservable(e *ast.Observable) (string, error) {
	s, err := p.visit(e.Definition)
	if err != nil {
		return "", err
	}
	return "observable " + quote(e.Name) + " = " + s + ";", nil
}

// System composition

func (p *printer) systemOperands(list []ast.SystemDefn, sep string) (string, error) {
	parts := make([]string, len(list))
	for i, s := range list {
		r, err := p.visit(s)
		if err != nil {
			return "", err
		}
		parts[i] = r
	}
	return strings.Join(parts, sep), nil
}

func (p *printer) VisitSystemInterleaved(e *ast.SystemInterleaved) (string, error) {
	return p.systemOperands(e.Operands, " ||| ")
}

func (p *printer) VisitSystemFullParallel(e *ast.SystemFullParallel) (string, error) {
	return p.systemOperands(e.Operands, " || ")
}

func (p *printer) VisitSystemParallel(e *ast.SystemParallel) (string, error) {
	l, err := p.visit(e.Left)
	if err != nil {
		return "", err
	}
	r, err := p.visit(e.Right)
	if err != nil {
		return "", err
	}
	return l + " |[" + strings.Join(e.Actions, ",") + "]| " + r, nil
}

func (p *printer) VisitSystemHide(e *ast.SystemHide) (string, error) {
	s, err := p.visit(e.Operand)
	if err != nil {
		return "", err
	}
	return s + " / {" + strings.Join(e.Actions, ",") + "}", nil
}

func (p *printer) VisitSystemRename(e *ast.SystemRename) (string, error) {
	s, err := p.visit(e.Operand)
	if err != nil {
		return "", err
	}
	pairs := make([]string, len(e.From))
	for i, from := range e.From {
		pairs[i] = from + "<-" + e.To[i]
	}
	return s + " {" + strings.Join(pairs, ",") + "}", nil
}

func (p *printer) VisitSystemModule(e *ast.SystemModule) (string, error) { return e.Name, nil }

func (p *printer) VisitSystemBrackets(e *ast.SystemBrackets) (string, error) {
	s, err := p.visit(e.Operand)
	if err != nil {
		return "", err
	}
	return "(" + s + ")", nil
}

func (p *printer) VisitSystemReference(e *ast.SystemReference) (string, error) {
	return quote(e.Name), nil
}
