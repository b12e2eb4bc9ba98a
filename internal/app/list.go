package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vk/footprintgen/internal/params"
	"gopkg.in/yaml.v3"
)

// GeneratorInfo describes one loaded generator for listing.
type GeneratorInfo struct {
	ID          string      `yaml:"id"`
	Handler     string      `yaml:"handler"`
	Description string      `yaml:"description,omitempty"`
	Params      []ParamInfo `yaml:"params"`
}

// ParamInfo describes one generator parameter.
type ParamInfo struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
	Default  any    `yaml:"default,omitempty"`
}

// Generators returns the loaded generators sorted by ID.
func (a *App) Generators() []GeneratorInfo {
	var out []GeneratorInfo
	for _, id := range a.registry.IDs() {
		m := a.registry.ManifestRegistry[id]
		info := GeneratorInfo{ID: m.ID, Handler: m.Handler, Description: m.Description, Params: []ParamInfo{}}
		for _, p := range m.Params {
			pi := ParamInfo{Name: p.Name, Type: p.Type.FriendlyName(), Required: p.Required()}
			if p.Default != nil {
				pi.Default = params.Native(*p.Default)
			}
			info.Params = append(info.Params, pi)
		}
		out = append(out, info)
	}
	return out
}

// WriteGenerators prints the generators as a table or, with format "yaml",
// as a YAML document.
func (a *App) WriteGenerators(w io.Writer, format string) error {
	gens := a.Generators()
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(gens); err != nil {
			return err
		}
		return enc.Close()
	case "", "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, g := range gens {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", g.ID, g.Handler, g.Description)
			for _, p := range g.Params {
				def := ""
				switch {
				case p.Required:
					def = "required"
				case p.Default != nil:
					def = fmt.Sprintf("default %v", p.Default)
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Name, p.Type, def)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown list format %q: must be 'text' or 'yaml'", format)
	}
}
