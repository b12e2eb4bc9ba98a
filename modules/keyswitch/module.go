// Package keyswitch generates keyswitch footprints, optionally with a
// stabiliser, LED or diode holes.
package keyswitch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/footprintgen/internal/ctxlog"
	"github.com/vk/footprintgen/internal/kicad"
	"github.com/vk/footprintgen/internal/registry"
)

// HandlerName is the handler the keyswitch manifest refers to.
const HandlerName = "KeyswitchFootprint"

var (
	ErrUnsupportedUnit       = errors.New("unsupported unit")
	ErrUnsupportedSwitch     = errors.New("unsupported switch type")
	ErrUnsupportedStabiliser = errors.New("unsupported stabiliser")
	ErrConflictingOptions    = errors.New("conflicting options")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Params are the generator parameters. Optional parameters without a
// default are pointers.
type Params struct {
	Prefix                 string  `cty:"prefix"`
	SwitchType             string  `cty:"switch_type"`
	Width                  string  `cty:"width"`
	Spacing                string  `cty:"spacing"`
	Rotation               float64 `cty:"rotation"`
	LED                    bool    `cty:"led"`
	Diode                  bool    `cty:"diode"`
	SwitchHorizontalOffset string  `cty:"switch_horizontal_offset"`
	StabiliserType         *string `cty:"stabiliser_type"`
	StabiliserSize         *string `cty:"stabiliser_size"`
	StabiliserRotation     float64 `cty:"stabiliser_rotation"`
}

func (p *Params) stabiliser() (*StabiliserSpec, error) {
	switch {
	case p.StabiliserType == nil && p.StabiliserSize == nil:
		return nil, nil
	case p.StabiliserType == nil || p.StabiliserSize == nil:
		return nil, fmt.Errorf("%w: provide both stabiliser_type and stabiliser_size, or neither", ErrConflictingOptions)
	}
	return &StabiliserSpec{
		Kind:     StabiliserKind(*p.StabiliserType),
		Size:     *p.StabiliserSize,
		Rotation: kicad.NormalizeAngle(p.StabiliserRotation),
	}, nil
}

// Build creates the footprint described by p.
func Build(p *Params) (*kicad.Footprint, error) {
	if p.Prefix == "" {
		return nil, errors.New("no prefix provided")
	}
	stab, err := p.stabiliser()
	if err != nil {
		return nil, err
	}

	spacingMM, err := ToMillimetres(p.Spacing)
	if err != nil {
		return nil, fmt.Errorf("spacing: %w", err)
	}
	u := switchUnit(spacingMM)

	widthU, err := ParseWidthUnits(p.Width)
	if err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	widthMM, err := ToMillimetres(p.Width, u)
	if err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	offset, err := ToMillimetres(p.SwitchHorizontalOffset, u)
	if err != nil {
		return nil, fmt.Errorf("switch_horizontal_offset: %w", err)
	}
	rotation := kicad.NormalizeAngle(p.Rotation)

	sw, err := NewSwitch(SwitchKind(p.SwitchType), SwitchOptions{
		Rotation: rotation,
		Centre:   kicad.Vec{X: offset},
		LED:      p.LED,
		Diode:    p.Diode,
	})
	if err != nil {
		return nil, err
	}

	var stabiliser Stabiliser
	if stab != nil {
		if stabiliser, err = NewStabiliser(*stab); err != nil {
			return nil, err
		}
	}

	fp := kicad.New(FootprintName(p.Prefix, p.LED, p.Diode, spacingMM, widthU, rotation, stab))
	fp.Description = FootprintDescription(p.Prefix, p.LED, p.Diode, widthU, stab)
	fp.Tags = p.Prefix

	sw.AddTo(fp)
	boxRotation := 0.0
	if stabiliser != nil {
		stabiliser.AddTo(fp)
		boxRotation = stab.Rotation
	}

	// Key cap outline.
	fp.AddRect(
		kicad.Vec{X: -widthMM / 2, Y: -spacingMM / 2},
		kicad.Vec{X: widthMM / 2, Y: spacingMM / 2},
		kicad.LayerUser, boxRotation,
	)

	fp.AddText(kicad.TextValue, fp.Name, kicad.Vec{Y: -(spacingMM / 2) * 0.9}, kicad.LayerFab)
	fp.AddText(kicad.TextReference, "REF**", kicad.Vec{Y: (spacingMM / 2) * 0.9}, kicad.LayerFab)

	return fp, nil
}

// Generate builds the footprint for params and writes it to
// <outputDir>/<name>.kicad_mod.
func Generate(ctx context.Context, outputDir string, params any) error {
	p, ok := params.(*Params)
	if !ok {
		return fmt.Errorf("keyswitch: unexpected params type %T", params)
	}

	fp, err := Build(p)
	if err != nil {
		return err
	}

	path := filepath.Join(outputDir, fp.Name+".kicad_mod")
	if err := kicad.WriteFile(path, fp); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Wrote footprint.", "footprint", fp.Name, "path", path)
	return nil
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator(HandlerName, &registry.RegisteredGenerator{
		NewParams: func() any { return new(Params) },
		Fn:        Generate,
	})
}
