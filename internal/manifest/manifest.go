package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// OutputDirParam is the parameter the driver injects into every resolved
// parameter set. Manifests must not declare it.
const OutputDirParam = "output_dir"

// Manifest is the format-agnostic description of one generator: which Go
// handler implements it and which parameters it accepts.
type Manifest struct {
	// ID is the generator identifier used by definition documents: the
	// manifest's path relative to the generators directory, slash separated,
	// without extension.
	ID          string
	Handler     string
	Description string
	Params      []*Param
	Path        string
}

// Param describes a single generator parameter.
type Param struct {
	Name        string
	Type        cty.Type
	Description string
	// Default is applied when no layer of a resolved parameter set provides
	// the parameter. It is already converted to Type.
	Default *cty.Value
	// Optional marks a parameter that may be absent without a default.
	Optional bool
}

// Required reports whether every resolved parameter set must provide p.
func (p *Param) Required() bool {
	return p.Default == nil && !p.Optional
}

// Param returns the declared parameter with the given name.
func (m *Manifest) Param(name string) (*Param, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// --- HCL decode targets ---

type fileRoot struct {
	Generators []*generatorBlock `hcl:"generator,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type generatorBlock struct {
	ID          string        `hcl:"id,label"`
	Handler     string        `hcl:"handler"`
	Description string        `hcl:"description,optional"`
	Params      []*paramBlock `hcl:"param,block"`
}

type paramBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Optional    bool           `hcl:"optional,optional"`
}
