// Package schema derives the validation shapes for definition documents
// from a generator manifest, and resolves fully merged parameter sets
// against the declared parameter types.
package schema

import (
	"fmt"

	"github.com/vk/footprintgen/internal/manifest"
	"github.com/vk/footprintgen/internal/params"
	"github.com/zclconf/go-cty/cty"
)

// Schema holds the shapes a definition targeting one generator must match.
type Schema struct {
	Generator string
	// Params is the shape of the defaults section and of each input.
	Params Shape
	// Combinations is the shape of each combination set: every parameter
	// becomes a list of its declared type.
	Combinations Shape

	manifest *manifest.Manifest
}

// New builds the shapes for m. Every declared parameter is optional and may
// be null in partial sections; requiredness is only enforced on resolved
// sets, where a parameter still null after merging counts as missing.
func New(m *manifest.Manifest) *Schema {
	s := &Schema{
		Generator:    m.ID,
		Params:       Shape{Name: m.ID},
		Combinations: Shape{Name: m.ID + " combinations"},
		manifest:     m,
	}
	for _, p := range m.Params {
		s.Params.Fields = append(s.Params.Fields, Field{
			Name:     p.Name,
			Type:     p.Type,
			Nullable: true,
		})
		s.Combinations.Fields = append(s.Combinations.Fields, Field{
			Name: p.Name,
			Type: cty.List(p.Type),
		})
	}
	return s
}

// Resolve checks a merged parameter set against the declared types, fills in
// manifest defaults, and reports missing required parameters. The
// output_dir parameter is passed through unchanged. Keys keep their merge
// order; defaults are appended in declaration order.
func (s *Schema) Resolve(path string, p *params.Params) (*params.Params, Diagnostics) {
	var diags Diagnostics
	out := params.New()
	invalid := make(map[string]bool)

	p.Each(func(key string, v cty.Value) {
		if key == manifest.OutputDirParam {
			out.Set(key, v)
			return
		}
		decl, ok := s.manifest.Param(key)
		if !ok {
			diags.Add(JoinPath(path, key), "unknown parameter %q for %s", key, s.Generator)
			return
		}
		if v.IsNull() {
			out.Set(key, cty.NullVal(decl.Type))
			return
		}
		conv, err := conform(v, decl.Type)
		if err != nil {
			diags.Add(JoinPath(path, key), "%s", err)
			invalid[key] = true
			return
		}
		out.Set(key, conv)
	})

	for _, decl := range s.manifest.Params {
		if v, ok := out.Get(decl.Name); (ok && !v.IsNull()) || invalid[decl.Name] {
			continue
		}
		switch {
		case decl.Default != nil:
			out.Set(decl.Name, *decl.Default)
		case decl.Optional:
			out.Set(decl.Name, cty.NullVal(decl.Type))
		default:
			diags.Add(JoinPath(path, decl.Name), "missing required parameter")
		}
	}

	return out, diags
}

func (s *Schema) String() string {
	return fmt.Sprintf("schema(%s, %d params)", s.Generator, len(s.Params.Fields))
}
