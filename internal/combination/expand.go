// Package combination expands combination sets into concrete parameter
// mappings.
//
// A combination set maps parameter names to candidate value lists. All axes
// of one set are cross-multiplied; separate sets are expanded on their own
// and their results concatenated.
package combination

import (
	"fmt"

	"github.com/vk/footprintgen/internal/params"
	"github.com/zclconf/go-cty/cty"
)

// Axis is one parameter of a combination set with its candidate values.
type Axis struct {
	Name   string
	Values []cty.Value
}

// Set is a single combination set. Axes keep their source order.
type Set []Axis

// FromParams builds a Set from a mapping whose values are all sequences.
func FromParams(p *params.Params) (Set, error) {
	set := make(Set, 0, p.Len())
	var err error
	p.Each(func(key string, v cty.Value) {
		if err != nil {
			return
		}
		ty := v.Type()
		if v.IsNull() || !(ty.IsTupleType() || ty.IsListType()) {
			err = fmt.Errorf("combination %q must be a list of values", key)
			return
		}
		axis := Axis{Name: key, Values: make([]cty.Value, 0, v.LengthInt())}
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			axis.Values = append(axis.Values, ev)
		}
		set = append(set, axis)
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// ExpandSet returns the Cartesian product of the set's axes. The first axis
// varies fastest: {a: [1, 2], b: [x, y]} yields a=1,b=x then a=2,b=x then
// a=1,b=y then a=2,b=y. An empty set, or a set with an empty axis, yields no
// mappings.
func ExpandSet(set Set) []*params.Params {
	if len(set) == 0 {
		return nil
	}

	all := []*params.Params{params.New()}
	for _, axis := range set {
		next := make([]*params.Params, 0, len(all)*len(axis.Values))
		for _, v := range axis.Values {
			for _, partial := range all {
				c := partial.Clone()
				c.Set(axis.Name, v)
				next = append(next, c)
			}
		}
		all = next
	}
	return all
}

// Expand expands every set and concatenates the results in set order.
func Expand(sets []Set) []*params.Params {
	var out []*params.Params
	for _, set := range sets {
		out = append(out, ExpandSet(set)...)
	}
	return out
}

// Count returns how many mappings Expand would produce without building them.
func Count(sets []Set) int {
	total := 0
	for _, set := range sets {
		if len(set) == 0 {
			continue
		}
		n := 1
		for _, axis := range set {
			n *= len(axis.Values)
		}
		total += n
	}
	return total
}
