package params

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Params is an insertion-ordered mapping from parameter name to value.
// The zero value is an empty mapping ready for use.
type Params struct {
	keys   []string
	values map[string]cty.Value
}

// Entry is a single key/value pair of a Params, with the value converted to
// a plain Go value by Native.
type Entry struct {
	Key   string
	Value any
}

// New returns an empty Params.
func New() *Params {
	return &Params{values: make(map[string]cty.Value)}
}

// Of builds a Params from alternating key/value arguments. Values are
// converted with ToValue. It panics on malformed input and is meant for
// tests and literals.
func Of(kv ...any) *Params {
	if len(kv)%2 != 0 {
		panic("params.Of: odd number of arguments")
	}
	p := New()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("params.Of: key at position %d is %T, not string", i, kv[i]))
		}
		v, err := ToValue(kv[i+1])
		if err != nil {
			panic(fmt.Sprintf("params.Of: key %q: %v", key, err))
		}
		p.Set(key, v)
	}
	return p
}

// Set assigns v to key. A key that already exists keeps its position.
func (p *Params) Set(key string, v cty.Value) {
	if p.values == nil {
		p.values = make(map[string]cty.Value)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (cty.Value, bool) {
	if p == nil {
		return cty.NilVal, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of keys.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Each calls fn for every key in insertion order.
func (p *Params) Each(fn func(key string, v cty.Value)) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}

// Clone returns a shallow copy. cty values are immutable, so the copy is
// fully independent of p.
func (p *Params) Clone() *Params {
	out := New()
	p.Each(out.Set)
	return out
}

// Object returns p as a cty object value.
func (p *Params) Object() cty.Value {
	if p.Len() == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(p.keys))
	p.Each(func(k string, v cty.Value) { attrs[k] = v })
	return cty.ObjectVal(attrs)
}

// Entries returns the mapping as ordered native Go values.
func (p *Params) Entries() []Entry {
	out := make([]Entry, 0, p.Len())
	p.Each(func(k string, v cty.Value) {
		out = append(out, Entry{Key: k, Value: Native(v)})
	})
	return out
}

// String renders p in insertion order, e.g. {x: 1, y: "a"}.
func (p *Params) String() string {
	var b strings.Builder
	b.WriteByte('{')
	i := 0
	p.Each(func(k string, v cty.Value) {
		if i > 0 {
			b.WriteString(", ")
		}
		i++
		fmt.Fprintf(&b, "%s: %s", k, FormatValue(v))
	})
	b.WriteByte('}')
	return b.String()
}

// FormatValue renders a single value the way it would appear in YAML flow
// style.
func FormatValue(v cty.Value) string {
	switch n := Native(v).(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", n)
	case []any:
		parts := make([]string, 0, len(n))
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			parts = append(parts, FormatValue(ev))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(n)
	}
}

// Native converts a known cty value into plain Go values: string, bool,
// int64 or float64, []any and map[string]any. Null and unknown values
// become nil.
func Native(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i
			}
		}
		f, _ := bf.Float64()
		return f
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			out = append(out, Native(ev))
		}
		return out
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			k, ev := it.Element()
			out[k.AsString()] = Native(ev)
		}
		return out
	default:
		return nil
	}
}

// ToValue converts a plain Go value into a cty value. It accepts the same
// shapes Native produces plus the common int and float widths.
func ToValue(in any) (cty.Value, error) {
	switch x := in.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return x, nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(x))
		for i, e := range x {
			ev, err := ToValue(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, e := range x {
			ev, err := ToValue(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("attribute %q: %w", k, err)
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value type %T", in)
	}
}
