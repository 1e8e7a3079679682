package loader

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/value"
)

// decodeCUE compiles a CUE document and converts the resulting concrete
// value into a document tree.
func decodeCUE(data []byte, file string) (*doc, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(file))
	if err := v.Err(); err != nil {
		return nil, cueError(err, file)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(err, file)
	}
	return fromCUE(v, file)
}

// cueError converts the first CUE error into a LoadError with its position.
func cueError(err error, file string) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return errorf(ErrCodeSyntax, ast.Position{File: file}, "%v", err)
	}
	first := errs[0]
	pos := ast.Position{File: file}
	if ps := errors.Positions(first); len(ps) > 0 {
		pos = cuePos(ps[0], file)
	}
	return errorf(ErrCodeSyntax, pos, "%v", first)
}

func cuePos(p token.Pos, file string) ast.Position {
	if !p.IsValid() {
		return ast.Position{File: file}
	}
	name := p.Filename()
	if name == "" {
		name = file
	}
	return ast.Position{File: name, Line: p.Line(), Column: p.Column()}
}

func fromCUE(v cue.Value, file string) (*doc, error) {
	pos := cuePos(v.Pos(), file)
	switch v.Kind() {
	case cue.NullKind:
		return &doc{kind: docNull, pos: pos}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, cueError(err, file)
		}
		return &doc{kind: docScalar, pos: pos, val: value.Bool(b)}, nil
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return nil, cueError(err, file)
		}
		return &doc{kind: docScalar, pos: pos, val: value.Int(i)}, nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, cueError(err, file)
		}
		return &doc{kind: docScalar, pos: pos, val: value.Double(f)}, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, cueError(err, file)
		}
		return &doc{kind: docString, pos: pos, str: s}, nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, cueError(err, file)
		}
		d := &doc{kind: docList, pos: pos}
		for iter.Next() {
			item, err := fromCUE(iter.Value(), file)
			if err != nil {
				return nil, err
			}
			d.items = append(d.items, item)
		}
		return d, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, cueError(err, file)
		}
		d := &doc{kind: docMap, pos: pos}
		for iter.Next() {
			item, err := fromCUE(iter.Value(), file)
			if err != nil {
				return nil, err
			}
			d.keys = append(d.keys, iter.Label())
			d.items = append(d.items, item)
		}
		return d, nil
	default:
		return nil, errorf(ErrCodeSchema, pos, "unsupported CUE value of kind %s", v.Kind())
	}
}
