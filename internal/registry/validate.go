package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/footprintgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ParamsType returns the struct type behind NewParams.
func (g *RegisteredGenerator) ParamsType() reflect.Type {
	t := reflect.TypeOf(g.NewParams())
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// ctyFields maps cty tag names to struct fields.
func ctyFields(t reflect.Type) map[string]reflect.StructField {
	fields := make(map[string]reflect.StructField)
	if t.Kind() != reflect.Struct {
		return fields
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := strings.Split(field.Tag.Get("cty"), ",")[0]
		if tag != "" && tag != "-" {
			fields[tag] = field
		}
	}
	return fields
}

// ValidateRegistry performs a strict parity check between manifests and Go
// code: every manifest must name a registered handler, and the manifest
// parameters must match the handler's cty-tagged Params fields by name and
// by type.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, id := range r.IDs() {
		m := r.ManifestRegistry[id]
		handler, ok := r.HandlerRegistry[m.Handler]
		if !ok {
			errs = append(errs, fmt.Sprintf("generator '%s': handler '%s' is not registered", id, m.Handler))
			continue
		}

		paramsType := handler.ParamsType()
		if paramsType.Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("generator '%s': handler '%s' params must be a struct, got %s", id, m.Handler, paramsType))
			continue
		}
		goParams := ctyFields(paramsType)

		declared := make(map[string]struct{}, len(m.Params))
		for _, p := range m.Params {
			declared[p.Name] = struct{}{}

			goField, ok := goParams[p.Name]
			if !ok {
				errs = append(errs, fmt.Sprintf("generator '%s': manifest declares param '%s' which is not found in Go struct", id, p.Name))
				continue
			}

			goFieldType, err := gocty.ImpliedType(reflect.Zero(goField.Type).Interface())
			if err != nil {
				errs = append(errs, fmt.Sprintf("generator '%s', param '%s': could not imply cty type from Go field type %s: %v", id, p.Name, goField.Type, err))
				continue
			}
			if !p.Type.Equals(goFieldType) {
				errs = append(errs, fmt.Sprintf("generator '%s', param '%s': type mismatch. Manifest requires '%s' but Go struct field '%s' provides '%s'",
					id, p.Name, p.Type.FriendlyName(), goField.Name, goFieldType.FriendlyName()))
			}
			if !p.Required() && p.Default == nil && goField.Type.Kind() != reflect.Pointer {
				errs = append(errs, fmt.Sprintf("generator '%s', param '%s': optional param without default needs a pointer field, got %s", id, p.Name, goField.Type))
			}
		}

		var extra []string
		for name := range goParams {
			if _, ok := declared[name]; !ok {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		for _, name := range extra {
			errs = append(errs, fmt.Sprintf("generator '%s': Go struct has field for param '%s' which is not declared in manifest", id, name))
		}

		logger.Debug("Validated generator.", "generator", id, "handler", m.Handler, "params", len(m.Params))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
