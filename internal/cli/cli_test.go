package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatorsDir = filepath.Join("..", "..", "generators")

const cherryDefinition = `
generator: footprints/keyswitch
defaults:
  prefix: Cherry_MX
  switch_type: cherry
  spacing: 19.05mm
combinations:
  - width: [1u, 2u]
inputs:
  - {}
  - {led: true}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// workspace returns a definitions directory holding one cherry definition
// and an output directory that does not exist yet.
func workspace(t *testing.T) (defs, out string) {
	t.Helper()
	root := t.TempDir()
	defs = filepath.Join(root, "definitions")
	out = filepath.Join(root, "generated")
	writeFile(t, filepath.Join(defs, "cherry.pretty", "standard.yaml"), cherryDefinition)
	return defs, out
}

func footprints(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*", "*.kicad_mod"))
	require.NoError(t, err)
	return matches
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T", err)
	return exitErr.Code
}

func TestExecute_Generate(t *testing.T) {
	testCases := []struct {
		name string
		args func(defs, out string) []string
	}{
		{
			name: "root command",
			args: func(defs, out string) []string { return []string{"-d", defs, "-g", generatorsDir, "-o", out} },
		},
		{
			name: "generate subcommand",
			args: func(defs, out string) []string {
				return []string{"generate", "--definitions", defs, "--generators", generatorsDir, "--output", out}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defs, out := workspace(t)
			var buf bytes.Buffer

			err := Execute(context.Background(), &buf, tc.args(defs, out))

			require.NoError(t, err)
			assert.Len(t, footprints(t, out), 4)
			assert.Contains(t, buf.String(), "Footprint generation")
		})
	}
}

func TestExecute_Validate(t *testing.T) {
	defs, out := workspace(t)
	var buf bytes.Buffer

	err := Execute(context.Background(), &buf, []string{"validate", "-d", defs, "-g", generatorsDir, "-o", out})

	require.NoError(t, err)
	assert.NoDirExists(t, out)
	assert.Contains(t, buf.String(), "Definition check")
}

func TestExecute_RunFailure(t *testing.T) {
	defs, out := workspace(t)
	writeFile(t, filepath.Join(defs, "broken.yaml"), "generator: footprints/keyswitch\ninputs: [{prefx: X}]\n")
	var buf bytes.Buffer

	err := Execute(context.Background(), &buf, []string{"-d", defs, "-g", generatorsDir, "-o", out})

	assert.Equal(t, ExitFailure, exitCode(t, err))
	assert.Contains(t, err.Error(), "broken.yaml")
	assert.Len(t, footprints(t, out), 4, "other files are still generated")
}

func TestExecute_UsageErrors(t *testing.T) {
	defs, out := workspace(t)
	badGenerators := t.TempDir()
	writeFile(t, filepath.Join(badGenerators, "broken.hcl"), "generator \"broken\" {\n")

	testCases := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "unknown flag", args: []string{"--nope"}, errMsg: "unknown flag"},
		{name: "unknown command", args: []string{"render"}, errMsg: "unknown command"},
		{name: "bad log level", args: []string{"-d", defs, "-g", generatorsDir, "-o", out, "-L", "trace"}, errMsg: "log-level"},
		{name: "broken manifest", args: []string{"-d", defs, "-g", badGenerators, "-o", out}, errMsg: "failed to parse manifest"},
		{name: "missing config file", args: []string{"--config", filepath.Join(out, "missing.yaml")}, errMsg: "failed to read config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Execute(context.Background(), &buf, tc.args)
			assert.Equal(t, ExitUsage, exitCode(t, err))
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestExecute_Help(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Execute(context.Background(), &buf, []string{"--help"}))
	assert.Contains(t, buf.String(), "Usage:")
	assert.Contains(t, buf.String(), "validate")
}

func TestExecute_EnvironmentOverridesDefaults(t *testing.T) {
	defs, out := workspace(t)
	t.Setenv("FOOTPRINTGEN_DEFINITIONS", defs)
	t.Setenv("FOOTPRINTGEN_GENERATORS", generatorsDir)
	t.Setenv("FOOTPRINTGEN_OUTPUT", out)
	t.Setenv("FOOTPRINTGEN_LOG_LEVEL", "debug")
	var buf bytes.Buffer

	err := Execute(context.Background(), &buf, []string{"generate"})

	require.NoError(t, err)
	assert.Len(t, footprints(t, out), 4)
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestExecute_ConfigFile(t *testing.T) {
	defs, out := workspace(t)
	config := filepath.Join(t.TempDir(), "footprintgen.yaml")
	writeFile(t, config, "definitions: "+defs+"\ngenerators: "+generatorsDir+"\noutput: "+out+"\nlog-format: json\n")
	var buf bytes.Buffer

	err := Execute(context.Background(), &buf, []string{"--config", config})

	require.NoError(t, err)
	assert.Len(t, footprints(t, out), 4)
	assert.Contains(t, buf.String(), `"msg":"Found definitions."`)
}

func TestExecute_FlagBeatsConfigFile(t *testing.T) {
	defs, out := workspace(t)
	config := filepath.Join(t.TempDir(), "footprintgen.yaml")
	writeFile(t, config, "definitions: "+defs+"\ngenerators: "+generatorsDir+"\noutput: /nonexistent/ignored\n")

	err := Execute(context.Background(), &bytes.Buffer{}, []string{"--config", config, "-o", out})

	require.NoError(t, err)
	assert.Len(t, footprints(t, out), 4)
}

func TestExecute_List(t *testing.T) {
	var buf bytes.Buffer

	err := Execute(context.Background(), &buf, []string{"list", "-g", generatorsDir, "--format", "yaml"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "id: footprints/keyswitch")
	assert.Contains(t, buf.String(), "handler: KeyswitchFootprint")

	err = Execute(context.Background(), &bytes.Buffer{}, []string{"list", "-g", generatorsDir, "--format", "xml"})
	assert.Equal(t, ExitUsage, exitCode(t, err))
}

func TestExecute_Canceled(t *testing.T) {
	defs, out := workspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Execute(ctx, &bytes.Buffer{}, []string{"-d", defs, "-g", generatorsDir, "-o", out})

	assert.Equal(t, ExitFailure, exitCode(t, err))
	assert.ErrorIs(t, err, context.Canceled)
}
