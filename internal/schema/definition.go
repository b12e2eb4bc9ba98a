package schema

import (
	"strings"

	"github.com/vk/footprintgen/internal/params"
	"github.com/zclconf/go-cty/cty"
)

// Top-level keys of a definition document.
const (
	KeyGenerator    = "generator"
	KeyDefaults     = "defaults"
	KeyCombinations = "combinations"
	KeyInputs       = "inputs"
)

var topLevelKeys = []string{KeyCombinations, KeyDefaults, KeyGenerator, KeyInputs}

// CheckDefinition checks the generator-independent structure of a
// definition document: allowed top-level keys, a non-empty generator
// string, a required inputs sequence of mappings, an optional defaults
// mapping and optional combinations made of mappings of sequences.
func CheckDefinition(raw *params.Params) Diagnostics {
	return checkDefinition(raw, nil)
}

// Validate checks a whole definition document against the generator's
// shapes and returns a *Error naming file when anything is wrong.
func (s *Schema) Validate(file string, raw *params.Params) error {
	return checkDefinition(raw, s).Err(file)
}

// ValidateResolved resolves one merged parameter set and returns a *Error
// naming file and path when it is invalid.
func (s *Schema) ValidateResolved(file, path string, p *params.Params) (*params.Params, error) {
	out, diags := s.Resolve(path, p)
	if err := diags.Err(file); err != nil {
		return nil, err
	}
	return out, nil
}

func checkDefinition(raw *params.Params, s *Schema) Diagnostics {
	var diags Diagnostics
	if raw.Len() == 0 {
		diags.Add("", "document is empty")
		return diags
	}

	raw.Each(func(key string, v cty.Value) {
		switch key {
		case KeyGenerator:
			if v.IsNull() || !v.Type().Equals(cty.String) {
				diags.Add(key, "must be a string")
			} else if strings.TrimSpace(v.AsString()) == "" {
				diags.Add(key, "must not be empty")
			}

		case KeyDefaults:
			if v.IsNull() {
				return
			}
			diags.Append(checkMapping(key, v, paramsShape(s), false))

		case KeyCombinations:
			if v.IsNull() {
				return
			}
			diags.Append(checkSequence(key, v, func(path string, item cty.Value) Diagnostics {
				return checkMapping(path, item, combinationsShape(s), true)
			}))

		case KeyInputs:
			diags.Append(checkSequence(key, v, func(path string, item cty.Value) Diagnostics {
				return checkMapping(path, item, paramsShape(s), false)
			}))

		default:
			diags.Add(key, "unknown top-level key (accepted: %s)", strings.Join(topLevelKeys, ", "))
		}
	})

	for _, key := range []string{KeyGenerator, KeyInputs} {
		if !raw.Has(key) {
			diags.Add(key, "missing required key")
		}
	}
	return diags
}

func paramsShape(s *Schema) *Shape {
	if s == nil {
		return nil
	}
	return &s.Params
}

func combinationsShape(s *Schema) *Shape {
	if s == nil {
		return nil
	}
	return &s.Combinations
}

func checkSequence(path string, v cty.Value, item func(string, cty.Value) Diagnostics) Diagnostics {
	var diags Diagnostics
	if v.IsNull() || !(v.Type().IsTupleType() || v.Type().IsListType()) {
		diags.Add(path, "must be a sequence")
		return diags
	}
	i := 0
	for it := v.ElementIterator(); it.Next(); i++ {
		_, ev := it.Element()
		diags.Append(item(IndexPath(path, i), ev))
	}
	return diags
}

// checkMapping checks an object value. Without a shape only the structure
// is checked; lists requires every value to be a sequence.
func checkMapping(path string, v cty.Value, shape *Shape, lists bool) Diagnostics {
	var diags Diagnostics
	if v.IsNull() || !(v.Type().IsObjectType() || v.Type().IsMapType()) {
		diags.Add(path, "must be a mapping")
		return diags
	}

	p := ObjectParams(v)
	if shape != nil {
		return shape.Check(path, p)
	}
	if lists {
		p.Each(func(key string, ev cty.Value) {
			if ev.IsNull() || !(ev.Type().IsTupleType() || ev.Type().IsListType()) {
				diags.Add(JoinPath(path, key), "must be a sequence of candidate values")
			}
		})
	}
	return diags
}

// ObjectParams turns an object or map value into Params with keys in
// lexical order.
func ObjectParams(v cty.Value) *params.Params {
	p := params.New()
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		p.Set(k.AsString(), ev)
	}
	return p
}
