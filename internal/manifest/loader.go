package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/footprintgen/internal/ctxlog"
	"github.com/vk/footprintgen/internal/fsutil"
	"github.com/zclconf/go-cty/cty/convert"
)

// Extension is the file extension of generator manifests.
const Extension = ".hcl"

// IDFromPath derives a generator identifier from a path relative to the
// generators directory: slash separated, cleaned, extension stripped.
func IDFromPath(rel string) string {
	id := filepath.ToSlash(filepath.Clean(rel))
	id = strings.TrimPrefix(id, "./")
	return strings.TrimSuffix(id, filepath.Ext(id))
}

// Load parses every manifest found under root. A missing root is not an
// error; it simply yields no manifests.
func Load(ctx context.Context, root string) ([]*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading generator manifests...", "path", root)

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Generators directory does not exist", "path", root)
			return nil, nil
		}
		return nil, fmt.Errorf("error accessing generators directory %s: %w", root, err)
	}

	files, err := fsutil.FindFiles(root, Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to walk generators directory %s: %w", root, err)
	}

	parser := hclparse.NewParser()
	manifests := make([]*Manifest, 0, len(files))
	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		if err != nil {
			return nil, fmt.Errorf("failed to relativise %s: %w", file, err)
		}

		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", file, err)
		}

		m, err := parse(ctx, parser, src, file, IDFromPath(rel))
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
		logger.Debug("Loaded generator manifest", "id", m.ID, "handler", m.Handler, "params", len(m.Params))
	}

	logger.Debug("Generator manifests loaded.", "count", len(manifests))
	return manifests, nil
}

// Parse parses a single manifest held in memory. id is the identifier the
// generator block label must match; pass "" to accept the label as is.
func Parse(ctx context.Context, src []byte, filename, id string) (*Manifest, error) {
	return parse(ctx, hclparse.NewParser(), src, filename, id)
}

func parse(ctx context.Context, parser *hclparse.Parser, src []byte, filename, id string) (*Manifest, error) {
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	if len(root.Generators) != 1 {
		return nil, fmt.Errorf("manifest %s: expected exactly one generator block, found %d", filename, len(root.Generators))
	}
	block := root.Generators[0]

	if id == "" {
		id = block.ID
	}
	if block.ID != id {
		return nil, fmt.Errorf("manifest %s: generator label %q does not match its location %q", filename, block.ID, id)
	}
	if strings.TrimSpace(block.Handler) == "" {
		return nil, fmt.Errorf("manifest %s: generator %q has an empty handler", filename, id)
	}

	m := &Manifest{
		ID:          id,
		Handler:     block.Handler,
		Description: block.Description,
		Path:        filename,
	}

	for _, pb := range block.Params {
		if pb.Name == OutputDirParam {
			return nil, fmt.Errorf("manifest %s: parameter %q is reserved and injected by the driver", filename, OutputDirParam)
		}
		if _, dup := m.Param(pb.Name); dup {
			return nil, fmt.Errorf("manifest %s: parameter %q declared more than once", filename, pb.Name)
		}
		p, err := translateParam(ctx, pb)
		if err != nil {
			return nil, fmt.Errorf("manifest %s, generator %q: %w", filename, id, err)
		}
		m.Params = append(m.Params, p)
	}

	return m, nil
}

// translateParam processes a single param block, handling its type and
// default value.
func translateParam(ctx context.Context, pb *paramBlock) (*Param, error) {
	ty, err := typeExprToCtyType(ctx, pb.Type)
	if err != nil {
		return nil, fmt.Errorf("param %q: %w", pb.Name, err)
	}

	p := &Param{
		Name:        pb.Name,
		Type:        ty,
		Description: pb.Description,
		Optional:    pb.Optional,
	}

	if !isExprDefined(pb.Default) {
		return p, nil
	}

	val, diags := pb.Default.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid default value for param %q: %w", pb.Name, diags)
	}
	if val.IsNull() {
		p.Optional = true
		return p, nil
	}

	conv, err := convert.Convert(val, ty)
	if err != nil {
		return nil, fmt.Errorf("default value for param %q does not match type %s: %w", pb.Name, ty.FriendlyName(), err)
	}
	p.Default = &conv
	return p, nil
}
