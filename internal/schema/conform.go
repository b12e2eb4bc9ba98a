package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// conform checks that v already has type ty and returns it in that exact
// type. Unlike cty's convert package it never coerces between primitives:
// "1" is not a number and 19 is not a string. The only conversions allowed
// are structural, a YAML sequence (tuple) becoming list(T) and a YAML
// mapping (object) becoming map(T), with every element conforming to T.
func conform(v cty.Value, ty cty.Type) (cty.Value, error) {
	if v.IsNull() {
		return cty.NilVal, fmt.Errorf("expected %s, got null", ty.FriendlyName())
	}
	if !v.IsKnown() {
		return cty.NilVal, fmt.Errorf("expected %s, got an unknown value", ty.FriendlyName())
	}

	switch {
	case ty.IsPrimitiveType():
		if !v.Type().Equals(ty) {
			return cty.NilVal, mismatch(v, ty)
		}
		return v, nil

	case ty.IsListType():
		vt := v.Type()
		if !vt.IsTupleType() && !vt.IsListType() {
			return cty.NilVal, mismatch(v, ty)
		}
		elemType := ty.ElementType()
		if v.LengthInt() == 0 {
			return cty.ListValEmpty(elemType), nil
		}
		elems := make([]cty.Value, 0, v.LengthInt())
		i := 0
		for it := v.ElementIterator(); it.Next(); i++ {
			_, ev := it.Element()
			cv, err := conform(ev, elemType)
			if err != nil {
				return cty.NilVal, fmt.Errorf("item %d: %w", i, err)
			}
			elems = append(elems, cv)
		}
		return cty.ListVal(elems), nil

	case ty.IsMapType():
		vt := v.Type()
		if !vt.IsObjectType() && !vt.IsMapType() {
			return cty.NilVal, mismatch(v, ty)
		}
		elemType := ty.ElementType()
		if v.LengthInt() == 0 {
			return cty.MapValEmpty(elemType), nil
		}
		attrs := make(map[string]cty.Value, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			cv, err := conform(ev, elemType)
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", k.AsString(), err)
			}
			attrs[k.AsString()] = cv
		}
		return cty.MapVal(attrs), nil

	default:
		return cty.NilVal, fmt.Errorf("unsupported parameter type %s", ty.FriendlyName())
	}
}

func mismatch(v cty.Value, ty cty.Type) error {
	return fmt.Errorf("expected %s, got %s", ty.FriendlyName(), describe(v.Type()))
}

// describe names a value's type the way a definition author sees it.
func describe(ty cty.Type) string {
	switch {
	case ty.IsTupleType() || ty.IsListType():
		return "sequence"
	case ty.IsObjectType() || ty.IsMapType():
		return "mapping"
	default:
		return ty.FriendlyName()
	}
}
