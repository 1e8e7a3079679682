package loader

import (
	"gopkg.in/yaml.v3"

	"github.com/roach88/modelir/internal/ast"
	"github.com/roach88/modelir/internal/value"
)

// decodeYAML decodes a YAML document into a document tree.
func decodeYAML(data []byte, file string) (*doc, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errorf(ErrCodeSyntax, ast.Position{File: file}, "%v", err)
	}
	if root.Kind == 0 {
		return &doc{kind: docNull, pos: ast.Position{File: file, Line: 1, Column: 1}}, nil
	}
	return fromYAML(&root, file)
}

func fromYAML(n *yaml.Node, file string) (*doc, error) {
	pos := ast.Position{File: file, Line: n.Line, Column: n.Column}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &doc{kind: docNull, pos: pos}, nil
		}
		return fromYAML(n.Content[0], file)
	case yaml.AliasNode:
		return fromYAML(n.Alias, file)
	case yaml.MappingNode:
		d := &doc{kind: docMap, pos: pos}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, errorf(ErrCodeSchema, pos, "map keys must be scalars")
			}
			item, err := fromYAML(v, file)
			if err != nil {
				return nil, err
			}
			d.keys = append(d.keys, k.Value)
			d.items = append(d.items, item)
		}
		return d, nil
	case yaml.SequenceNode:
		d := &doc{kind: docList, pos: pos}
		for _, c := range n.Content {
			item, err := fromYAML(c, file)
			if err != nil {
				return nil, err
			}
			d.items = append(d.items, item)
		}
		return d, nil
	case yaml.ScalarNode:
		return yamlScalar(n, pos)
	default:
		return nil, errorf(ErrCodeSchema, pos, "unsupported YAML node")
	}
}

func yamlScalar(n *yaml.Node, pos ast.Position) (*doc, error) {
	switch n.ShortTag() {
	case "!!null":
		return &doc{kind: docNull, pos: pos}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, errorf(ErrCodeSyntax, pos, "%v", err)
		}
		return &doc{kind: docScalar, pos: pos, val: value.Bool(b)}, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, errorf(ErrCodeSyntax, pos, "%v", err)
		}
		return &doc{kind: docScalar, pos: pos, val: value.Int(i)}, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errorf(ErrCodeSyntax, pos, "%v", err)
		}
		return &doc{kind: docScalar, pos: pos, val: value.Double(f)}, nil
	default:
		return &doc{kind: docString, pos: pos, str: n.Value}, nil
	}
}
