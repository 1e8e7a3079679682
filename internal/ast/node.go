package ast

import (
	"fmt"
	"reflect"
)

// Position is the source location of a node.
type Position struct {
	File   string // Path of the source document, empty if synthesized
	Line   int    // 1-based, 0 if unknown
	Column int    // 1-based, 0 if unknown
}

// String returns "file:line:column", or "<unknown>" when no line is known.
func (p Position) String() string {
	if p.Line <= 0 {
		return "<unknown>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid returns true if the position carries line information.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Type is the value type of an expression as assigned by type inference.
type Type int

const (
	TypeUnknown Type = iota
	TypeBool
	TypeInt
	TypeDouble
	TypeClock
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDouble:
		return "double"
	case TypeClock:
		return "clock"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of this type are numbers.
func (t Type) IsNumeric() bool {
	return t == TypeInt || t == TypeDouble || t == TypeClock
}

// ParseType maps a type name back to its Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "bool":
		return TypeBool, nil
	case "int":
		return TypeInt, nil
	case "double":
		return TypeDouble, nil
	case "clock":
		return TypeClock, nil
	default:
		return TypeUnknown, fmt.Errorf("unknown type %q", s)
	}
}

// Node is a sealed interface implemented by every IR node kind.
//
// Children returns the node's child slots in a fixed order per kind. Absent
// optional children are reported as nil so that slot positions are stable.
// CopyWith returns a new node with the receiver's own attributes duplicated
// and every child replaced by cp.Copy(child).
type Node interface {
	Kind() Kind
	Position() Position
	Children() []Node
	CopyWith(cp Copier) (Node, error)

	appendAttrs(b []byte) []byte
	node() // Sealed
}

// Expression is a node that denotes a value.
type Expression interface {
	Node
	ExprType() Type
	// IsProposition reports whether the expression is a state-determined
	// condition, decided from this node and its operands.
	IsProposition() bool
	expression()
}

// DeclType is the type part of a variable declaration.
type DeclType interface {
	Node
	declType()
}

// SystemDefn is a node of the system composition sub-language.
type SystemDefn interface {
	Node
	systemDefn()
}

// ModuleDefn is either a Module or a RenamedModule.
type ModuleDefn interface {
	Node
	ModuleName() string
	moduleDefn()
}

type base struct {
	Pos Position
}

func (b *base) Position() Position { return b.Pos }
func (*base) node()                {}

type exprBase struct {
	base
	Type Type
}

func (e *exprBase) ExprType() Type { return e.Type }
func (*exprBase) expression()      {}

// IsNil reports whether n is nil or an interface holding a nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// child converts a possibly-nil concrete pointer to a Node, keeping nil as a
// nil interface.
func child[T any, P interface {
	*T
	Node
}](p P) Node {
	if p == nil {
		return nil
	}
	return p
}

func appendNodes[T Node](out []Node, list []T) []Node {
	for _, n := range list {
		if IsNil(n) {
			out = append(out, nil)
			continue
		}
		out = append(out, n)
	}
	return out
}

func allPropositions(list ...Expression) bool {
	for _, e := range list {
		if e == nil || !e.IsProposition() {
			return false
		}
	}
	return true
}
