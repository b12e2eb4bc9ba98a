// Package definition parses definition documents and computes the resolved
// parameter sets they describe.
package definition

import (
	"fmt"

	"github.com/vk/footprintgen/internal/combination"
	"github.com/vk/footprintgen/internal/params"
	"github.com/vk/footprintgen/internal/schema"
	"gopkg.in/yaml.v3"
)

// Document is a parsed definition document. Every mapping keeps its YAML
// key order.
type Document struct {
	Path         string
	Generator    string
	Defaults     *params.Params
	Combinations []combination.Set
	Inputs       []*params.Params

	// Raw is the whole document, used for schema validation.
	Raw *params.Params
}

// Parse decodes a definition document. YAML syntax errors are returned as
// plain errors; structural problems are returned as a *schema.Error.
func Parse(path string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	doc := &Document{Path: path, Raw: params.New()}
	if root.Kind == 0 {
		return nil, schema.CheckDefinition(doc.Raw).Err(path)
	}

	raw, err := params.FromMapping(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	doc.Raw = raw

	if err := schema.CheckDefinition(raw).Err(path); err != nil {
		return nil, err
	}

	if err := doc.decodeSections(unwrap(&root)); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// decodeSections fills the typed fields from the mapping node. The
// structure has already been checked.
func (d *Document) decodeSections(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, unwrap(node.Content[i+1])
		if isNull(val) {
			continue
		}

		switch key {
		case schema.KeyGenerator:
			d.Generator = val.Value

		case schema.KeyDefaults:
			p, err := params.FromMapping(val)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			d.Defaults = p

		case schema.KeyCombinations:
			for j, item := range val.Content {
				p, err := params.FromMapping(item)
				if err != nil {
					return fmt.Errorf("%s: %w", schema.IndexPath(key, j), err)
				}
				set, err := combination.FromParams(p)
				if err != nil {
					return fmt.Errorf("%s: %w", schema.IndexPath(key, j), err)
				}
				d.Combinations = append(d.Combinations, set)
			}

		case schema.KeyInputs:
			for j, item := range val.Content {
				p, err := params.FromMapping(item)
				if err != nil {
					return fmt.Errorf("%s: %w", schema.IndexPath(key, j), err)
				}
				d.Inputs = append(d.Inputs, p)
			}
		}
	}
	return nil
}

func unwrap(node *yaml.Node) *yaml.Node {
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

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
