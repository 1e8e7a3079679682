package ast

// SystemInterleaved is "s1 ||| s2 ||| ...".
type SystemInterleaved struct {
	base
	Operands []SystemDefn
}

func (*SystemInterleaved) Kind() Kind         { return KindSystemInterleaved }
func (*SystemInterleaved) systemDefn()        {}
func (e *SystemInterleaved) Children() []Node { return appendNodes(nil, e.Operands) }

func (e *SystemInterleaved) appendAttrs(b []byte) []byte { return appendLen(b, len(e.Operands)) }

func (e *SystemInterleaved) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Operands, err = copyChildren(cp, e.Operands); err != nil {
		return nil, err
	}
	return &c, nil
}

// SystemFullParallel is "s1 || s2 || ...".
type SystemFullParallel struct {
	base
	Operands []SystemDefn
}

func (*SystemFullParallel) Kind() Kind         { return KindSystemFullParallel }
func (*SystemFullParallel) systemDefn()        {}
func (e *SystemFullParallel) Children() []Node { return appendNodes(nil, e.Operands) }

func (e *SystemFullParallel) appendAttrs(b []byte) []byte { return appendLen(b, len(e.Operands)) }

func (e *SystemFullParallel) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Operands, err = copyChildren(cp, e.Operands); err != nil {
		return nil, err
	}
	return &c, nil
}

// SystemParallel is "left |[a,b]| right".
type SystemParallel struct {
	base
	Left    SystemDefn
	Right   SystemDefn
	Actions []string
}

func (*SystemParallel) Kind() Kind         { return KindSystemParallel }
func (*SystemParallel) systemDefn()        {}
func (e *SystemParallel) Children() []Node { return []Node{e.Left, e.Right} }

func (e *SystemParallel) appendAttrs(b []byte) []byte { return appendStrings(b, e.Actions) }

func (e *SystemParallel) CopyWith(cp Copier) (Node, error) {
	c := *e
	c.Actions = cloneStrings(e.Actions)
	var err error
	if c.Left, err = copyChild(cp, e.Left); err != nil {
		return nil, err
	}
	if c.Right, err = copyChild(cp, e.Right); err != nil {
		return nil, err
	}
	return &c, nil
}

// SystemHide is "operand / {a,b}".
type SystemHide struct {
	base
	Operand SystemDefn
	Actions []string
}

func (*SystemHide) Kind() Kind         { return KindSystemHide }
func (*SystemHide) systemDefn()        {}
func (e *SystemHide) Children() []Node { return []Node{e.Operand} }

func (e *SystemHide) appendAttrs(b []byte) []byte { return appendStrings(b, e.Actions) }

func (e *SystemHide) CopyWith(cp Copier) (Node, error) {
	c := *e
	c.Actions = cloneStrings(e.Actions)
	var err error
	if c.Operand, err = copyChild(cp, e.Operand); err != nil {
		return nil, err
	}
	return &c, nil
}

// SystemRename is "operand {a<-b, ...}". From[i] is renamed to To[i].
type SystemRename struct {
	base
	Operand SystemDefn
	From    []string
	To      []string
}

func (*SystemRename) Kind() Kind         { return KindSystemRename }
func (*SystemRename) systemDefn()        {}
func (e *SystemRename) Children() []Node { return []Node{e.Operand} }

func (e *SystemRename) appendAttrs(b []byte) []byte {
	b = appendStrings(b, e.From)
	return appendStrings(b, e.To)
}

func (e *SystemRename) CopyWith(cp Copier) (Node, error) {
	c := *e
	c.From = cloneStrings(e.From)
	c.To = cloneStrings(e.To)
	var err error
	if c.Operand, err = copyChild(cp, e.Operand); err != nil {
		return nil, err
	}
	return &c, nil
}

// SystemModule names a module in a system definition.
type SystemModule struct {
	base
	Name string
}

func (*SystemModule) Kind() Kind       { return KindSystemModule }
func (*SystemModule) systemDefn()      {}
func (*SystemModule) Children() []Node { return nil }

func (e *SystemModule) appendAttrs(b []byte) []byte { return appendString(b, e.Name) }

func (e *SystemModule) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}

// SystemBrackets is "(operand)".
type SystemBrackets struct {
	base
	Operand SystemDefn
}

func (*SystemBrackets) Kind() Kind         { return KindSystemBrackets }
func (*SystemBrackets) systemDefn()        {}
func (e *SystemBrackets) Children() []Node { return []Node{e.Operand} }

func (*SystemBrackets) appendAttrs(b []byte) []byte { return b }

func (e *SystemBrackets) CopyWith(cp Copier) (Node, error) {
	c := *e
	var err error
	if c.Operand, err = copyChild(cp, e.Operand); err != nil {
		return nil, err
	}
	return &c, nil
}

// SystemReference refers to another named system definition.
type SystemReference struct {
	base
	Name string
}

func (*SystemReference) Kind() Kind       { return KindSystemReference }
func (*SystemReference) systemDefn()      {}
func (*SystemReference) Children() []Node { return nil }

func (e *SystemReference) appendAttrs(b []byte) []byte { return appendString(b, e.Name) }

func (e *SystemReference) CopyWith(Copier) (Node, error) {
	c := *e
	return &c, nil
}
