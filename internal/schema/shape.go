package schema

import (
	"sort"
	"strings"

	"github.com/vk/footprintgen/internal/params"
	"github.com/zclconf/go-cty/cty"
)

// Field is one key a Shape accepts.
type Field struct {
	Name     string
	Type     cty.Type
	Nullable bool
}

// Shape is a closed set of fields: every key of a checked mapping must be
// one of its fields, and every value must already have that field's type.
// All fields are optional.
type Shape struct {
	Name   string
	Fields []Field
}

// Field returns the field with the given name.
func (s Shape) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the accepted keys, sorted.
func (s Shape) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names
}

// Check validates p against the shape. path prefixes every diagnostic.
func (s Shape) Check(path string, p *params.Params) Diagnostics {
	_, diags := s.Convert(path, p)
	return diags
}

// Convert validates p and returns a copy whose values carry the declared
// field types exactly: sequences become lists and mappings become maps.
// Keys keep their order.
func (s Shape) Convert(path string, p *params.Params) (*params.Params, Diagnostics) {
	var diags Diagnostics
	out := params.New()

	p.Each(func(key string, v cty.Value) {
		keyPath := JoinPath(path, key)

		f, ok := s.Field(key)
		if !ok {
			diags.Add(keyPath, "unknown parameter %q for %s (accepted: %s)", key, s.Name, strings.Join(s.Names(), ", "))
			return
		}

		if v.IsNull() {
			if !f.Nullable {
				diags.Add(keyPath, "must not be null")
				return
			}
			out.Set(key, cty.NullVal(f.Type))
			return
		}

		conv, err := conform(v, f.Type)
		if err != nil {
			diags.Add(keyPath, "%s", err)
			return
		}
		out.Set(key, conv)
	})

	return out, diags
}
