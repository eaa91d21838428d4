package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/cellmorph/dbg"
	"github.com/pkg/errors"
)

// Debug helpers: draw a raster with line sets on top, and describe line sets
// on the terminal.

// DebugLayer is a set of lines drawn in one colour.
type DebugLayer struct {
	Lines   LineSet
	R, G, B float64
}

// DrawDebug renders r scaled by scale with the layers on top and saves it as
// a PNG at path.
func DrawDebug(path string, r *Raster, scale float64, layers ...DebugLayer) error {
	width := int(float64(r.Width) * scale)
	height := int(float64(r.Height) * scale)
	c := gg.NewContext(width, height)
	c.Scale(scale, scale)
	c.DrawImage(r.Image(), 0, 0)

	c.SetLineWidth(1 / scale)
	for _, layer := range layers {
		c.SetRGB(layer.R, layer.G, layer.B)
		for _, line := range layer.Lines {
			c.DrawLine(line.Start.X, line.Start.Y, line.End.X, line.End.Y)
			c.Stroke()
		}
		// Mark starts so direction is visible.
		for _, line := range layer.Lines {
			c.DrawCircle(line.Start.X, line.Start.Y, 2/scale)
			c.Fill()
		}
	}
	return errors.Wrapf(c.SavePNG(path), "saving %s", path)
}

// DbgDraw draws to a temp file and prints it to the terminal (iTerm only).
func DbgDraw(r *Raster, scale float64, layers ...DebugLayer) {
	const path = "/tmp/cellmorph.png"
	if err := DrawDebug(path, r, scale, layers...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	imgcat.CatFile(path, os.Stdout)
}

// DbgString lists the lines of a set with their readable names. Degenerate
// lines are red, lines touching the silhouette boundary green (if r is not
// nil), everything else cyan.
func DbgString(r *Raster, lines LineSet) string {
	var b strings.Builder
	for i, line := range lines {
		name := dbg.Name(line)
		switch {
		case line.IsDegenerate():
			name = aurora.Red(name).String()
		case r != nil && IsBoundary(r, Round(line.Start)) && IsBoundary(r, Round(line.End)):
			name = aurora.Green(name).String()
		default:
			name = aurora.Cyan(name).String()
		}
		fmt.Fprintf(&b, "%3d %s %s\n", i, name, line)
	}
	return b.String()
}
