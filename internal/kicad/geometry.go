package kicad

import (
	"math"
)

// Vec is a point in footprint coordinates, in millimetres. Y grows
// downwards as in KiCad.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Rotate rotates v by angle degrees around origin. With Y pointing down a
// positive angle turns clockwise on screen.
func (v Vec) Rotate(angle float64, origin Vec) Vec {
	if math.Mod(angle, 360) == 0 {
		return v
	}
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := v.X-origin.X, v.Y-origin.Y
	return Vec{
		X: origin.X + cos*dx - sin*dy,
		Y: origin.Y + sin*dx + cos*dy,
	}
}

// NormalizeAngle maps angle into [0, 360).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return a
}
