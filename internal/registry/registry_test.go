package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/footprintgen/internal/ctxlog"
	"github.com/vk/footprintgen/internal/params"
	"github.com/zclconf/go-cty/cty"
)

type widgetParams struct {
	Name  string   `cty:"name"`
	Count int      `cty:"count"`
	Tags  []string `cty:"tags"`
	Note  *string  `cty:"note"`
}

const widgetManifest = `
generator "parts/widget" {
  handler = "Widget"
  param "name" { type = string }
  param "count" {
    type    = number
    default = 1
  }
  param "tags" {
    type    = list(string)
    default = []
  }
  param "note" {
    type     = string
    optional = true
  }
}
`

func noopGenerate(context.Context, string, any) error { return nil }

func testCtx() context.Context {
	return ctxlog.Discard(context.Background())
}

func writeManifest(t *testing.T, root, rel, src string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
}

func newWidgetRegistry(t *testing.T, newParams func() any) *Registry {
	t.Helper()
	root := t.TempDir()
	writeManifest(t, root, "parts/widget.hcl", widgetManifest)

	r := New()
	r.RegisterGenerator("Widget", &RegisteredGenerator{NewParams: newParams, Fn: noopGenerate})
	require.NoError(t, r.LoadManifests(testCtx(), root))
	return r
}

func TestRegisterGenerator_PanicsOnDuplicate(t *testing.T) {
	r := New()
	h := &RegisteredGenerator{NewParams: func() any { return new(widgetParams) }, Fn: noopGenerate}
	r.RegisterGenerator("Widget", h)

	assert.Panics(t, func() { r.RegisterGenerator("Widget", h) })
	assert.Panics(t, func() { r.RegisterGenerator("Incomplete", &RegisteredGenerator{}) })
}

func TestValidateRegistry_Parity(t *testing.T) {
	r := newWidgetRegistry(t, func() any { return new(widgetParams) })
	assert.NoError(t, r.ValidateRegistry(testCtx()))
}

func TestValidateRegistry_Mismatches(t *testing.T) {
	type wrongType struct {
		Name  bool     `cty:"name"`
		Count int      `cty:"count"`
		Tags  []string `cty:"tags"`
		Note  *string  `cty:"note"`
	}
	type missingAndExtra struct {
		Name  string   `cty:"name"`
		Tags  []string `cty:"tags"`
		Note  string   `cty:"note"`
		Extra string   `cty:"extra"`
	}

	testCases := []struct {
		name      string
		newParams func() any
		errMsgs   []string
	}{
		{
			name:      "type mismatch",
			newParams: func() any { return new(wrongType) },
			errMsgs:   []string{"param 'name': type mismatch"},
		},
		{
			name:      "missing, extra and non-pointer optional",
			newParams: func() any { return new(missingAndExtra) },
			errMsgs: []string{
				"manifest declares param 'count' which is not found in Go struct",
				"Go struct has field for param 'extra'",
				"param 'note': optional param without default needs a pointer field",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newWidgetRegistry(t, tc.newParams)
			err := r.ValidateRegistry(testCtx())
			require.Error(t, err)
			for _, msg := range tc.errMsgs {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestValidateRegistry_UnregisteredHandler(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "parts/widget.hcl", widgetManifest)

	r := New()
	require.NoError(t, r.LoadManifests(testCtx(), root))

	err := r.ValidateRegistry(testCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler 'Widget' is not registered")
}

func TestLookup(t *testing.T) {
	r := newWidgetRegistry(t, func() any { return new(widgetParams) })

	for _, ref := range []string{"parts/widget", "parts/widget.hcl", "./parts/widget"} {
		g, err := r.Lookup(ref)
		require.NoError(t, err, ref)
		assert.Equal(t, "parts/widget", g.Manifest.ID)
	}

	_, err := r.Lookup("parts/gadget")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGeneratorNotFound))
	assert.Contains(t, err.Error(), "known: parts/widget")
}

func TestLoadManifests_DuplicateID(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "parts/widget.hcl", widgetManifest)

	r := New()
	require.NoError(t, r.LoadManifests(testCtx(), root))
	err := r.LoadManifests(testCtx(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared by both")
}

func TestBind(t *testing.T) {
	r := newWidgetRegistry(t, func() any { return new(widgetParams) })
	g, err := r.Lookup("parts/widget")
	require.NoError(t, err)

	// Arrange
	resolved := params.Of("output_dir", "/out", "name", "w", "count", 3, "tags", []any{"a", "b"})
	resolved.Set("tags", cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}))
	resolved.Set("note", cty.NullVal(cty.String))

	// Act
	bound, err := g.Bind(resolved)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &widgetParams{Name: "w", Count: 3, Tags: []string{"a", "b"}}, bound)
}

func TestBind_MissingParam(t *testing.T) {
	r := newWidgetRegistry(t, func() any { return new(widgetParams) })
	g, err := r.Lookup("parts/widget")
	require.NoError(t, err)

	_, err = g.Bind(params.Of("name", "w"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "param 'count' is missing")
}
