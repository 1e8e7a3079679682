package loader

import (
	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/value"
)

type docKind int

const (
	docNull docKind = iota
	docScalar
	docString
	docMap
	docList
)

func (k docKind) String() string {
	switch k {
	case docScalar:
		return "scalar"
	case docString:
		return "string"
	case docMap:
		return "map"
	case docList:
		return "list"
	default:
		return "null"
	}
}

// doc is a decoded document node. Maps keep their keys in source order.
type doc struct {
	kind  docKind
	pos   ast.Position
	val   value.Value // docScalar
	str   string      // docString
	keys  []string    // docMap
	items []*doc      // docMap values (parallel to keys) and docList items
}

// field returns the value stored under key, or nil.
func (d *doc) field(key string) *doc {
	if d == nil || d.kind != docMap {
		return nil
	}
	for i, k := range d.keys {
		if k == key {
			return d.items[i]
		}
	}
	return nil
}

func (d *doc) isNull() bool {
	return d == nil || d.kind == docNull
}

// list returns the items of a list, or d itself as a one-element list.
func (d *doc) list() []*doc {
	switch {
	case d.isNull():
		return nil
	case d.kind == docList:
		return d.items
	default:
		return []*doc{d}
	}
}
