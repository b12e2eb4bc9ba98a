package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/footprintgen/internal/manifest"
	"github.com/vk/footprintgen/internal/params"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func rawDoc(t *testing.T, src string) *params.Params {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	p, err := params.FromMapping(&node)
	require.NoError(t, err)
	return p
}

func abSchema() *Schema {
	return New(&manifest.Manifest{
		ID:      "ab",
		Handler: "AB",
		Params: []*manifest.Param{
			{Name: "a", Type: cty.Number},
			{Name: "b", Type: cty.Bool},
		},
	})
}

func paths(diags Diagnostics) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Path
	}
	return out
}

func TestValidate_RoundTrip(t *testing.T) {
	s := abSchema()

	ok := rawDoc(t, "generator: ab\ndefaults: {a: 1}\ninputs: [{b: true}]\n")
	assert.NoError(t, s.Validate("ok.yaml", ok))

	bad := rawDoc(t, "generator: ab\ninputs: [{c: 5}]\n")
	err := s.Validate("bad.yaml", bad)
	var schemaErr *Error
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "bad.yaml", schemaErr.File)
	assert.Equal(t, []string{"inputs[0].c"}, paths(schemaErr.Diagnostics))
}

func TestValidate_RejectsWrongValueTypes(t *testing.T) {
	s := abSchema()

	err := s.Validate("coerced.yaml", rawDoc(t, "generator: ab\ninputs: [{a: \"1\", b: \"true\"}]\n"))
	var schemaErr *Error
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"inputs[0].a", "inputs[0].b"}, paths(schemaErr.Diagnostics))
}

func TestValidate_NullRequiredParamOverriddenLater(t *testing.T) {
	s := abSchema()

	doc := rawDoc(t, "generator: ab\ndefaults: {a: null}\ninputs: [{a: 1, b: true}]\n")
	assert.NoError(t, s.Validate("null.yaml", doc))
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	s := abSchema()

	doc := rawDoc(t, `
generator: ab
extra: 1
defaults: {a: wide}
combinations:
  - {a: [1, 2], b: true}
  - {z: [1]}
inputs:
  - {}
  - {b: maybe}
`)
	err := s.Validate("x.yaml", doc)
	var schemaErr *Error
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{
		"extra",
		"defaults.a",
		"combinations[0].b",
		"combinations[1].z",
		"inputs[1].b",
	}, paths(schemaErr.Diagnostics))
}

func TestCheckDefinition(t *testing.T) {
	testCases := []struct {
		name  string
		src   string
		paths []string
	}{
		{
			name:  "minimal",
			src:   "generator: g\ninputs: []\n",
			paths: []string{},
		},
		{
			name:  "missing required keys",
			src:   "defaults: {a: 1}\n",
			paths: []string{"generator", "inputs"},
		},
		{
			name:  "generator not a string",
			src:   "generator: [a]\ninputs: []\n",
			paths: []string{"generator"},
		},
		{
			name:  "blank generator",
			src:   "generator: ' '\ninputs: []\n",
			paths: []string{"generator"},
		},
		{
			name:  "inputs not a sequence",
			src:   "generator: g\ninputs: {a: 1}\n",
			paths: []string{"inputs"},
		},
		{
			name:  "input not a mapping",
			src:   "generator: g\ninputs: [1, {a: 1}]\n",
			paths: []string{"inputs[0]"},
		},
		{
			name:  "combination value not a list",
			src:   "generator: g\ncombinations: [{a: 1, b: [1]}]\ninputs: [{}]\n",
			paths: []string{"combinations[0].a"},
		},
		{
			name:  "null sections are empty",
			src:   "generator: g\ndefaults:\ncombinations:\ninputs: [{}]\n",
			paths: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			diags := CheckDefinition(rawDoc(t, tc.src))
			assert.Equal(t, tc.paths, paths(diags))
		})
	}
}

func TestCheckDefinition_Empty(t *testing.T) {
	diags := CheckDefinition(params.New())
	require.Len(t, diags, 1)
	assert.Equal(t, "document is empty", diags[0].Message)
}
