// Package driver discovers definition documents and runs their generators.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/footprintgen/internal/ctxlog"
	"github.com/vk/footprintgen/internal/definition"
	"github.com/vk/footprintgen/internal/fsutil"
	"github.com/vk/footprintgen/internal/manifest"
	"github.com/vk/footprintgen/internal/params"
	"github.com/vk/footprintgen/internal/registry"
	"github.com/vk/footprintgen/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Extensions are the definition file extensions, matched case-insensitively.
var Extensions = []string{".yaml", ".yml"}

// Config controls one run.
type Config struct {
	DefinitionsDir string
	OutputDir      string
	// FailFast stops the run after the first failed file.
	FailFast bool
	// DryRun parses, validates and binds every set without creating
	// directories or calling generators.
	DryRun bool
}

// FileResult describes a definition file that was processed successfully.
type FileResult struct {
	Path      string
	Generator string
	OutputDir string
	Sets      int
}

// Report summarises a run.
type Report struct {
	Files     int
	Generated int
	Results   []FileResult
	Failures  []*FileError
}

// Driver runs definition files against the generators of a registry.
type Driver struct {
	registry *registry.Registry
}

// New creates a Driver. The registry must have its manifests loaded.
func New(reg *registry.Registry) *Driver {
	return &Driver{registry: reg}
}

// Run processes every definition file under cfg.DefinitionsDir in path
// order. A failing file does not stop the others unless cfg.FailFast is
// set. When any file failed the returned error is a *RunError; the report
// is returned in every case.
func (d *Driver) Run(ctx context.Context, cfg Config) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFiles(cfg.DefinitionsDir, Extensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover definitions in %s: %w", cfg.DefinitionsDir, err)
	}
	if len(files) == 0 {
		logger.Warn("No definition files found.", "path", cfg.DefinitionsDir)
	}

	report := &Report{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Files++
		res, err := d.runFile(ctx, cfg, path)
		if err != nil {
			var fileErr *FileError
			if !errors.As(err, &fileErr) {
				return report, err
			}
			logger.Error("Definition file failed.", "file", path, "kind", fileErr.Kind, "error", fileErr.Err)
			report.Failures = append(report.Failures, fileErr)
			if cfg.FailFast {
				break
			}
			continue
		}
		report.Results = append(report.Results, *res)
		report.Generated += res.Sets
	}

	if len(report.Failures) > 0 {
		return report, &RunError{Failures: report.Failures, Files: report.Files}
	}
	return report, nil
}

type boundSet struct {
	set    definition.Resolved
	params any
}

func (d *Driver) runFile(ctx context.Context, cfg Config, path string) (*FileResult, error) {
	ctx, logger := ctxlog.With(ctx, "file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newFileError(path, KindIO, err)
	}

	doc, err := definition.Parse(path, data)
	if err != nil {
		var schemaErr *schema.Error
		if errors.As(err, &schemaErr) {
			return nil, newFileError(path, KindSchema, err)
		}
		return nil, newFileError(path, KindParse, err)
	}

	gen, err := d.registry.Lookup(doc.Generator)
	if err != nil {
		return nil, newFileError(path, KindGeneratorNotFound, err)
	}

	s := schema.New(gen.Manifest)
	if err := s.Validate(path, doc.Raw); err != nil {
		return nil, newFileError(path, KindSchema, err)
	}

	outDir, err := outputDirFor(cfg, path)
	if err != nil {
		return nil, newFileError(path, KindIO, err)
	}

	base := params.New()
	base.Set(manifest.OutputDirParam, cty.StringVal(outDir))
	logger.Info("Found definitions.", "generator", gen.Manifest.ID, "count", definition.Count(doc))
	sets := definition.ComputeAll(doc, base)

	// Every set is checked before anything is written.
	bound := make([]boundSet, 0, len(sets))
	for _, set := range sets {
		resolved, err := s.ValidateResolved(path, set.Path(), set.Params)
		if err != nil {
			return nil, setError(path, KindInvalidParams, set, err)
		}
		p, err := gen.Bind(resolved)
		if err != nil {
			return nil, setError(path, KindInvalidParams, set, err)
		}
		logger.Debug("Resolved parameter set.", "set", set.Index, "params", resolved.String())
		bound = append(bound, boundSet{set: set, params: p})
	}

	res := &FileResult{Path: path, Generator: gen.Manifest.ID, OutputDir: outDir, Sets: len(bound)}
	if cfg.DryRun {
		return res, nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, newFileError(path, KindIO, err)
	}

	for _, b := range bound {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		setCtx, _ := ctxlog.With(ctx, "set", b.set.Index)
		if err := gen.Handler.Fn(setCtx, outDir, b.params); err != nil {
			return nil, setError(path, KindGenerate, b.set, err)
		}
	}
	return res, nil
}

func setError(path string, kind Kind, set definition.Resolved, err error) *FileError {
	return &FileError{Path: path, Kind: kind, SetIndex: set.Index, Set: set.String(), Err: err}
}

// outputDirFor mirrors the definition file's directory, relative to the
// definitions root, under the output root.
func outputDirFor(cfg Config, path string) (string, error) {
	rel, err := filepath.Rel(cfg.DefinitionsDir, filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return filepath.Abs(filepath.Join(cfg.OutputDir, rel))
}
