package kicad

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	formatVersion = 20221018
	generatorName = "footprintgen"
)

// Write serialises fp as a KiCad footprint S-expression.
func Write(w io.Writer, fp *Footprint) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "(footprint %s (version %d) (generator %s)\n", quote(fp.Name), formatVersion, generatorName)
	fmt.Fprintf(bw, "  (layer %s)\n", quote("F.Cu"))
	if fp.Description != "" {
		fmt.Fprintf(bw, "  (descr %s)\n", quote(fp.Description))
	}
	if fp.Tags != "" {
		fmt.Fprintf(bw, "  (tags %s)\n", quote(fp.Tags))
	}
	if fp.Attr != "" {
		fmt.Fprintf(bw, "  (attr %s)\n", fp.Attr)
	}

	for _, t := range fp.Texts {
		fmt.Fprintf(bw, "  (fp_text %s %s (at %s) (layer %s)\n", t.Kind, quote(t.Text), pos(t.At), quote(t.Layer))
		fmt.Fprintf(bw, "    (effects (font (size 1 1) (thickness 0.15)))\n  )\n")
	}

	for _, l := range fp.Lines {
		fmt.Fprintf(bw, "  (fp_line (start %s) (end %s) (stroke (width %s) (type solid)) (layer %s))\n",
			pos(l.Start), pos(l.End), num(l.Width), quote(l.Layer))
	}

	for _, p := range fp.Pads {
		at := pos(p.At)
		if p.Rotation != 0 {
			at += " " + num(p.Rotation)
		}
		fmt.Fprintf(bw, "  (pad %s %s %s (at %s) (size %s %s) (drill %s) (layers %s %s)",
			quote(p.Number), p.Type, p.Shape, at, num(p.Size), num(p.Size), num(p.Drill), quote("*.Cu"), quote("*.Mask"))
		if p.Shape == ShapeRoundRect {
			fmt.Fprintf(bw, " (roundrect_rratio %s)", num(RoundRectRatio))
		}
		bw.WriteString(")\n")
	}

	bw.WriteString(")\n")
	return bw.Flush()
}

// WriteFile writes fp to path, replacing any existing file.
func WriteFile(path string, fp *Footprint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, fp); err != nil {
		f.Close()
		return fmt.Errorf("failed to write footprint %s: %w", path, err)
	}
	return f.Close()
}

func pos(v Vec) string {
	return num(v.X) + " " + num(v.Y)
}

// num formats a coordinate with at most six decimals and no trailing zeros.
func num(f float64) string {
	f = math.Round(f*1e6) / 1e6
	if f == 0 {
		f = 0 // drops negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
