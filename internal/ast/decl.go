package ast

// Declaration declares a variable with a type and an optional initial value.
type Declaration struct {
	base
	Name     string
	DeclType DeclType
	Start    Expression // nil = type default
}

func (*Declaration) Kind() Kind { return KindDeclaration }

func (e *Declaration) Children() []Node { return []Node{e.DeclType, e.Start} }

func (e *Declaration) appendAttrs(b []byte) []byte { return appendString(b, e.Name) }

func (e *Declaration) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.DeclType, err = copyChild(cp, e.DeclType); err != nil {
		return nil, err
	}
	if c.Start, err = copyChild(cp, e.Start); err != nil {
		return nil, err
	}
	return &c, nil
}

// VarType returns the expression type of variables with this declaration.
func (e *Declaration) VarType() Type {
	switch e.DeclType.(type) {
	case *DeclBool:
		return TypeBool
	case *DeclClock:
		return TypeClock
	case *DeclInt, *DeclIntUnbounded:
		return TypeInt
	default:
		return TypeUnknown
	}
}

// DeclInt is a bounded integer range [Low..High].
type DeclInt struct {
	base
	Low  Expression
	High Expression
}

func (*DeclInt) Kind() Kind                  { return KindDeclInt }
func (*DeclInt) declType()                   {}
func (e *DeclInt) Children() []Node          { return []Node{e.Low, e.High} }
func (*DeclInt) appendAttrs(b []byte) []byte { return b }

func (e *DeclInt) CopyWith(cp Copier) (Node, error) {
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

// DeclBool is the boolean variable type.
type DeclBool struct {
	base
}

func (*DeclBool) Kind() Kind                  { return KindDeclBool }
func (*DeclBool) declType()                   {}
func (*DeclBool) Children() []Node            { return nil }
func (*DeclBool) appendAttrs(b []byte) []byte { return b }

func (e *DeclBool) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// DeclArray is an array indexed over [Low..High] with elements of type Sub.
type DeclArray struct {
	base
	Low  Expression
	High Expression
	Sub  DeclType
}

func (*DeclArray) Kind() Kind                  { return KindDeclArray }
func (*DeclArray) declType()                   {}
func (e *DeclArray) Children() []Node          { return []Node{e.Low, e.High, e.Sub} }
func (*DeclArray) appendAttrs(b []byte) []byte { return b }

func (e *DeclArray) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Low, err = copyChild(cp, e.Low); err != nil {
		return nil, err
	}
	if c.High, err = copyChild(cp, e.High); err != nil {
		return nil, err
	}
	if c.Sub, err = copyChild(cp, e.Sub); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeclClock is the clock type of timed models.
type DeclClock struct {
	base
}

func (*DeclClock) Kind() Kind                  { return KindDeclClock }
func (*DeclClock) declType()                   {}
func (*DeclClock) Children() []Node            { return nil }
func (*DeclClock) appendAttrs(b []byte) []byte { return b }

func (e *DeclClock) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// DeclIntUnbounded is an integer without declared bounds.
type DeclIntUnbounded struct {
	base
}

func (*DeclIntUnbounded) Kind() Kind                  { return KindDeclIntUnbounded }
func (*DeclIntUnbounded) declType()                   {}
func (*DeclIntUnbounded) Children() []Node            { return nil }
func (*DeclIntUnbounded) appendAttrs(b []byte) []byte { return b }

func (e *DeclIntUnbounded) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}
