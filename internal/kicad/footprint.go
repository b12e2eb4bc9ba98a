// Package kicad models the subset of a KiCad footprint the generators emit
// and writes it as a .kicad_mod S-expression file.
package kicad

// Layer names used by the generators.
const (
	LayerFab       = "F.Fab"
	LayerCourtyard = "F.CrtYd"
	LayerSilk      = "F.SilkS"
	LayerUser      = "Dwgs.User"
)

// Attribute is the footprint fabrication attribute.
type Attribute string

const AttrThroughHole Attribute = "through_hole"

// PadType is the pad kind.
type PadType string

const (
	PadTHT  PadType = "thru_hole"
	PadNPTH PadType = "np_thru_hole"
)

// PadShape is the copper shape of a pad.
type PadShape string

const (
	ShapeCircle    PadShape = "circle"
	ShapeRoundRect PadShape = "roundrect"
)

// RoundRectRatio is the corner ratio of roundrect pads.
const RoundRectRatio = 0.25

// Footprint is a single footprint. Items are written in insertion order
// within their kind.
type Footprint struct {
	Name        string
	Description string
	Tags        string
	Attr        Attribute
	Texts       []Text
	Lines       []Line
	Pads        []Pad
}

// New returns a through-hole footprint named name.
func New(name string) *Footprint {
	return &Footprint{Name: name, Attr: AttrThroughHole}
}

// Text kinds.
const (
	TextReference = "reference"
	TextValue     = "value"
)

// Text is a footprint text field such as the reference or value.
type Text struct {
	Kind  string
	Text  string
	At    Vec
	Layer string
}

// Line is a straight graphic segment.
type Line struct {
	Start, End Vec
	Layer      string
	Width      float64
}

// Pad is a through-hole or non-plated pad.
type Pad struct {
	Number   string
	Type     PadType
	Shape    PadShape
	At       Vec
	Rotation float64
	Size     float64
	Drill    float64
}

// Rotate rotates the pad position around origin and adds angle to its
// orientation.
func (p Pad) Rotate(angle float64, origin Vec) Pad {
	p.At = p.At.Rotate(angle, origin)
	p.Rotation = NormalizeAngle(p.Rotation + angle)
	return p
}

// AddText appends a text field.
func (f *Footprint) AddText(kind, text string, at Vec, layer string) {
	f.Texts = append(f.Texts, Text{Kind: kind, Text: text, At: at, Layer: layer})
}

// AddPad appends a pad.
func (f *Footprint) AddPad(p Pad) {
	f.Pads = append(f.Pads, p)
}

// AddPolyline appends segments joining consecutive points, rotated by
// angle around origin.
func (f *Footprint) AddPolyline(points []Vec, layer string, angle float64, origin Vec) {
	for i := 0; i+1 < len(points); i++ {
		f.Lines = append(f.Lines, Line{
			Start: points[i].Rotate(angle, origin),
			End:   points[i+1].Rotate(angle, origin),
			Layer: layer,
			Width: DefaultWidth(layer),
		})
	}
}

// AddRect appends the four sides of the rectangle spanned by start and end,
// rotated by angle around its centre.
func (f *Footprint) AddRect(start, end Vec, layer string, angle float64) {
	centre := Vec{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
	f.AddPolyline([]Vec{
		start,
		{X: end.X, Y: start.Y},
		end,
		{X: start.X, Y: end.Y},
		start,
	}, layer, angle, centre)
}

// DefaultWidth is the stroke width used for graphics on layer.
func DefaultWidth(layer string) float64 {
	switch layer {
	case LayerCourtyard:
		return 0.05
	case LayerFab:
		return 0.1
	case LayerSilk:
		return 0.12
	default:
		return 0.15
	}
}
