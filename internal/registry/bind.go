package registry

import (
	"fmt"

	"github.com/vk/footprintgen/internal/params"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Bind decodes a resolved parameter set into a fresh Params struct of the
// generator's handler. The injected output_dir is not part of the struct.
// Every declared parameter must be present in resolved, as it is after
// schema resolution.
func (g *Generator) Bind(resolved *params.Params) (any, error) {
	attrs := make(map[string]cty.Value, len(g.Manifest.Params))
	for _, p := range g.Manifest.Params {
		v, ok := resolved.Get(p.Name)
		if !ok {
			return nil, fmt.Errorf("param '%s' is missing from the resolved set", p.Name)
		}
		attrs[p.Name] = v
	}

	target := g.Handler.NewParams()
	if err := gocty.FromCtyValue(cty.ObjectVal(attrs), target); err != nil {
		return nil, fmt.Errorf("failed to bind params for generator '%s': %w", g.Manifest.ID, err)
	}
	return target, nil
}
