package keyswitch

import (
	"fmt"

	"github.com/vk/footprintgen/internal/kicad"
)

// StabiliserKind names a supported stabiliser family.
type StabiliserKind string

const StabiliserCherry StabiliserKind = "cherry"

// StabiliserSpec is the stabiliser requested by a parameter set.
type StabiliserSpec struct {
	Kind     StabiliserKind
	Size     string
	Rotation float64
}

// Stabiliser adds the holes and outline of one stabiliser to a footprint.
type Stabiliser interface {
	AddTo(fp *kicad.Footprint)
}

// NewStabiliser returns the stabiliser implementation for spec, centred on
// the footprint origin.
func NewStabiliser(spec StabiliserSpec) (Stabiliser, error) {
	widthU, err := ParseWidthUnits(spec.Size)
	if err != nil {
		return nil, err
	}

	switch spec.Kind {
	case StabiliserCherry:
		width, ok := cherryStabiliserWidths[widthU]
		if !ok {
			return nil, fmt.Errorf("%w: cherry stabiliser size %s", ErrUnsupportedStabiliser, spec.Size)
		}
		return cherryStabiliser{halfWidth: width / 2, rotation: spec.Rotation}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStabiliser, string(spec.Kind))
	}
}

// Distance between the stabiliser stems in mm, by key width in units.
var cherryStabiliserWidths = map[float64]float64{
	2:    23.876,
	3:    38.1,
	5:    76.2,
	6:    95.25,
	6.25: 100,
	7:    114.3,
	8:    133.35,
}

const (
	cherryStabSmallHole = 3.05
	cherryStabBigHole   = 4
	// The stabiliser body sits slightly below the switch centre.
	cherryStabVerticalOffset = 1.25
	cherryStabHeight         = 20
	cherryStabWidth          = 7
	cherryStabWireBuffer     = 4
)

type cherryStabiliser struct {
	halfWidth float64
	rotation  float64
	centre    kicad.Vec
}

func (s cherryStabiliser) AddTo(fp *kicad.Footprint) {
	c := s.centre
	for _, dx := range []float64{-s.halfWidth, s.halfWidth} {
		fp.AddPad(npthHole(kicad.Vec{X: c.X + dx, Y: c.Y - 7}, cherryStabSmallHole).Rotate(s.rotation, c))
		fp.AddPad(npthHole(kicad.Vec{X: c.X + dx, Y: c.Y + 8.24}, cherryStabBigHole).Rotate(s.rotation, c))
	}

	left, right := c.X-s.halfWidth, c.X+s.halfWidth
	halfBody := float64(cherryStabWidth) / 2
	cy := c.Y + cherryStabVerticalOffset
	top, bottom := cy-cherryStabHeight/2, cy+cherryStabHeight/2
	wire := bottom - cherryStabWireBuffer

	fp.AddPolyline([]kicad.Vec{
		{X: left - halfBody, Y: top},
		{X: left + halfBody, Y: top},
		{X: left + halfBody, Y: wire},
		{X: right - halfBody, Y: wire},
		{X: right - halfBody, Y: top},
		{X: right + halfBody, Y: top},
		{X: right + halfBody, Y: bottom},
		{X: left - halfBody, Y: bottom},
		{X: left - halfBody, Y: top},
	}, kicad.LayerCourtyard, s.rotation, c)
}
