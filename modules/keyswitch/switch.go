package keyswitch

import (
	"fmt"

	"github.com/vk/footprintgen/internal/kicad"
)

// SwitchKind names a supported keyswitch family.
type SwitchKind string

const (
	SwitchCherry SwitchKind = "cherry"
	SwitchAlps   SwitchKind = "alps"
)

// Switch adds the holes and outlines of one switch to a footprint.
type Switch interface {
	AddTo(fp *kicad.Footprint)
}

// SwitchOptions places a switch. Holes are rotated by Rotation degrees
// around Centre.
type SwitchOptions struct {
	Rotation float64
	Centre   kicad.Vec
	LED      bool
	Diode    bool
}

// NewSwitch returns the switch implementation for kind.
func NewSwitch(kind SwitchKind, opts SwitchOptions) (Switch, error) {
	switch kind {
	case SwitchCherry:
		if opts.LED && opts.Diode {
			return nil, fmt.Errorf("%w: switch footprints cannot have both LEDs and diodes", ErrConflictingOptions)
		}
		return cherrySwitch{opts}, nil
	case SwitchAlps:
		return alpsSwitch{opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSwitch, string(kind))
	}
}

func thtHole(number string, centre kicad.Vec, size, drill float64, shape kicad.PadShape) kicad.Pad {
	return kicad.Pad{Number: number, Type: kicad.PadTHT, Shape: shape, At: centre, Size: size, Drill: drill}
}

func npthHole(centre kicad.Vec, size float64) kicad.Pad {
	return kicad.Pad{Type: kicad.PadNPTH, Shape: kicad.ShapeCircle, At: centre, Size: size, Drill: size}
}

const (
	cherryPadDiameter       = 2.54
	cherryPadDrill          = 1.55
	cherrySwitchHole        = 4.1
	cherryMountPin          = 1.7525
	cherryPinGrid           = 1.27
	cherryAccessoryDiameter = 1.905
	cherryAccessoryDrill    = 1
)

type cherrySwitch struct {
	SwitchOptions
}

func (s cherrySwitch) AddTo(fp *kicad.Footprint) {
	c := s.Centre
	add := func(p kicad.Pad) { fp.AddPad(p.Rotate(s.Rotation, c)) }

	add(thtHole("1", c.Add(kicad.Vec{X: -3.81, Y: -2.54}), cherryPadDiameter, cherryPadDrill, kicad.ShapeCircle))
	add(thtHole("2", c.Add(kicad.Vec{X: 2.54, Y: -5.08}), cherryPadDiameter, cherryPadDrill, kicad.ShapeCircle))

	add(npthHole(c, cherrySwitchHole))
	add(npthHole(c.Add(kicad.Vec{X: -5.08}), cherryMountPin))
	add(npthHole(c.Add(kicad.Vec{X: 5.08}), cherryMountPin))

	// Accessory holes sit on a pin grid below the switch: the diode uses the
	// outer positions, the LED the inner ones.
	offsets := [4]float64{-3 * cherryPinGrid, -cherryPinGrid, cherryPinGrid, 3 * cherryPinGrid}
	var positions []int
	if s.Diode {
		positions = []int{0, 3}
	}
	if s.LED {
		positions = []int{1, 2}
	}
	for _, pos := range positions {
		number := "4"
		if pos <= 1 {
			number = "3"
		}
		shape := kicad.ShapeCircle
		if pos == 1 {
			shape = kicad.ShapeRoundRect
		}
		add(thtHole(number, c.Add(kicad.Vec{X: offsets[pos], Y: 5.08}), cherryAccessoryDiameter, cherryAccessoryDrill, shape))
	}
}

const (
	alpsPadDiameter     = 2.54
	alpsPadDrill        = 1.5
	alpsLEDSpacing      = 1.27
	alpsLEDDiameter     = 1.905
	alpsLEDDrill        = 1
	alpsCourtyardWidth  = 15.5
	alpsCourtyardHeight = 12.8
)

// alpsSwitch has no diode position; Diode is ignored.
type alpsSwitch struct {
	SwitchOptions
}

func (s alpsSwitch) AddTo(fp *kicad.Footprint) {
	c := s.Centre
	add := func(p kicad.Pad) { fp.AddPad(p.Rotate(s.Rotation, c)) }

	add(thtHole("1", c.Add(kicad.Vec{X: 2.5, Y: -4.5}), alpsPadDiameter, alpsPadDrill, kicad.ShapeCircle))
	add(thtHole("2", c.Add(kicad.Vec{X: -2.5, Y: -4}), alpsPadDiameter, alpsPadDrill, kicad.ShapeCircle))

	fp.AddRect(
		kicad.Vec{X: -alpsCourtyardWidth / 2, Y: -alpsCourtyardHeight / 2},
		kicad.Vec{X: alpsCourtyardWidth / 2, Y: alpsCourtyardHeight / 2},
		kicad.LayerCourtyard, s.Rotation,
	)

	if s.LED {
		add(thtHole("3", c.Add(kicad.Vec{X: -alpsLEDSpacing, Y: 4.6}), alpsLEDDiameter, alpsLEDDrill, kicad.ShapeRoundRect))
		add(thtHole("4", c.Add(kicad.Vec{X: alpsLEDSpacing, Y: 4.6}), alpsLEDDiameter, alpsLEDDrill, kicad.ShapeCircle))
	}
}
