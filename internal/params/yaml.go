package params

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// FromMapping converts a YAML mapping node into Params, keeping the source
// key order. Duplicate keys are rejected.
func FromMapping(node *yaml.Node) (*Params, error) {
	node = resolve(node)
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping, got %s", node.Line, KindName(node))
	}

	p := New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		key := keyNode.Value
		if p.Has(key) {
			return nil, fmt.Errorf("line %d: key %q is defined more than once", keyNode.Line, key)
		}
		v, err := FromNode(valNode)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		p.Set(key, v)
	}
	return p, nil
}

// FromNode converts any YAML node into a cty value. Scalars become strings,
// numbers, bools or nulls following their resolved YAML tag; sequences
// become tuples and mappings become objects.
func FromNode(node *yaml.Node) (cty.Value, error) {
	node = resolve(node)

	switch node.Kind {
	case yaml.ScalarNode:
		return scalarValue(node)

	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(node.Content))
		for i, item := range node.Content {
			v, err := FromNode(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("item %d: %w", i, err)
			}
			elems[i] = v
		}
		return cty.TupleVal(elems), nil

	case yaml.MappingNode:
		p, err := FromMapping(node)
		if err != nil {
			return cty.NilVal, err
		}
		return p.Object(), nil

	default:
		return cty.NilVal, fmt.Errorf("line %d: unsupported YAML node %s", node.Line, KindName(node))
	}
}

func scalarValue(node *yaml.Node) (cty.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil

	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return cty.BoolVal(b), nil

	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return cty.NumberIntVal(i), nil

	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", node.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.NilVal, fmt.Errorf("line %d: %q is not a finite number", node.Line, node.Value)
		}
		return cty.NumberFloatVal(f), nil

	default:
		return cty.StringVal(node.Value), nil
	}
}

// resolve unwraps document and alias nodes.
func resolve(node *yaml.Node) *yaml.Node {
	for {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) == 1:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		default:
			return node
		}
	}
}

// KindName returns a human readable name for a node kind.
func KindName(node *yaml.Node) string {
	switch resolve(node).Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
