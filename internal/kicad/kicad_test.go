package kicad

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestVec_Rotate(t *testing.T) {
	p := Vec{X: 1, Y: 0}

	assertVec(t, Vec{X: 0, Y: 1}, p.Rotate(90, Vec{}))
	assertVec(t, Vec{X: -1, Y: 0}, p.Rotate(180, Vec{}))
	assertVec(t, Vec{X: 0, Y: -1}, p.Rotate(270, Vec{}))
	assert.Equal(t, p, p.Rotate(360, Vec{}))

	// around a shifted origin
	assertVec(t, Vec{X: 2, Y: 1}, Vec{X: 3, Y: 0}.Rotate(90, Vec{X: 2, Y: 0}))
}

func TestNormalizeAngle(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeAngle(360))
	assert.Equal(t, 270.0, NormalizeAngle(-90))
	assert.Equal(t, 45.0, NormalizeAngle(405))
}

func TestPad_Rotate(t *testing.T) {
	p := Pad{At: Vec{X: 1, Y: 0}, Rotation: 300}.Rotate(90, Vec{})
	assertVec(t, Vec{X: 0, Y: 1}, p.At)
	assert.Equal(t, 30.0, p.Rotation)
}

func TestAddRect(t *testing.T) {
	fp := New("rect")
	fp.AddRect(Vec{X: -2, Y: -1}, Vec{X: 2, Y: 1}, LayerUser, 90)

	require.Len(t, fp.Lines, 4)
	assertVec(t, Vec{X: 1, Y: -2}, fp.Lines[0].Start)
	assertVec(t, Vec{X: 1, Y: 2}, fp.Lines[0].End)
	assertVec(t, fp.Lines[0].Start, fp.Lines[3].End)
	assert.Equal(t, 0.15, fp.Lines[0].Width)
}

func TestWrite(t *testing.T) {
	fp := New(`SW_"test"`)
	fp.Description = "A test footprint."
	fp.Tags = "cherry_mx"
	fp.AddText(TextReference, "REF**", Vec{X: 0, Y: 8.5725}, LayerFab)
	fp.AddPolyline([]Vec{{X: 0, Y: 0}, {X: 1.5, Y: -0.0000001}}, LayerCourtyard, 0, Vec{})
	fp.AddPad(Pad{Type: PadNPTH, Shape: ShapeCircle, Size: 4.1, Drill: 4.1})
	fp.AddPad(Pad{Number: "3", Type: PadTHT, Shape: ShapeRoundRect, At: Vec{X: -1.27, Y: 5.08}, Rotation: 90, Size: 1.905, Drill: 1})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fp))

	want := `(footprint "SW_\"test\"" (version 20221018) (generator footprintgen)
  (layer "F.Cu")
  (descr "A test footprint.")
  (tags "cherry_mx")
  (attr through_hole)
  (fp_text reference "REF**" (at 0 8.5725) (layer "F.Fab")
    (effects (font (size 1 1) (thickness 0.15)))
  )
  (fp_line (start 0 0) (end 1.5 0) (stroke (width 0.05) (type solid)) (layer "F.CrtYd"))
  (pad "" np_thru_hole circle (at 0 0) (size 4.1 4.1) (drill 4.1) (layers "*.Cu" "*.Mask"))
  (pad "3" thru_hole roundrect (at -1.27 5.08 90) (size 1.905 1.905) (drill 1) (layers "*.Cu" "*.Mask") (roundrect_rratio 0.25))
)
`
	assert.Equal(t, want, buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.kicad_mod")
	require.NoError(t, WriteFile(path, New("x")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `(footprint "x"`)

	require.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "x.kicad_mod"), New("x")))
}

func TestVec_Add(t *testing.T) {
	assert.Equal(t, Vec{X: 1.5, Y: -2}, Vec{X: 1, Y: 1}.Add(Vec{X: 0.5, Y: -3}))
}
