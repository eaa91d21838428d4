package internal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"
)

// Line sets are exchanged as plain SVG. This is not a full (or even correct)
// SVG reader: it looks at <line> elements whose class is "skeleton" or
// "outline", and if there are no outline lines, turns the first <polygon>
// into a closed outline. Transforms and units are ignored.

const (
	skeletonClass = "skeleton"
	outlineClass  = "outline"
)

// LoadLineSets reads a skeleton and an outline from an SVG document.
func LoadLineSets(r io.Reader) (skeleton, outline LineSet, err error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing svg")
	}

	for _, el := range root.FindAll("line") {
		line, err := parseLineElement(el)
		if err != nil {
			return nil, nil, err
		}
		switch classOf(el) {
		case skeletonClass:
			skeleton = append(skeleton, line)
		case outlineClass:
			outline = append(outline, line)
		}
	}

	if len(outline) == 0 {
		if polygons := root.FindAll("polygon"); len(polygons) > 0 {
			points, err := parsePoints(polygons[0].Attributes["points"])
			if err != nil {
				return nil, nil, err
			}
			outline = PolygonLines(points)
		}
	}
	return skeleton, outline, nil
}

// PolygonLines closes a vertex list into a loop of lines, last vertex back to
// the first.
func PolygonLines(points []Point) LineSet {
	if len(points) < 2 {
		return nil
	}
	result := make(LineSet, len(points))
	for i, p := range points {
		result[i] = FeatureLine{Start: p, End: points[CircularIndex(i+1, len(points))]}
	}
	return result
}

func classOf(el *svgparser.Element) string {
	for _, class := range strings.Fields(el.Attributes["class"]) {
		if class == skeletonClass || class == outlineClass {
			return class
		}
	}
	return ""
}

func parseLineElement(el *svgparser.Element) (FeatureLine, error) {
	var coords [4]float64
	for i, name := range [4]string{"x1", "y1", "x2", "y2"} {
		value, ok := el.Attributes[name]
		if !ok {
			// Missing coordinates default to zero in SVG.
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return FeatureLine{}, errors.Wrapf(err, "line attribute %s=%q", name, value)
		}
		coords[i] = f
	}
	return Line(coords[0], coords[1], coords[2], coords[3]), nil
}

func parsePoints(attribute string) ([]Point, error) {
	fields := strings.FieldsFunc(attribute, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("polygon has an odd number of coordinates: %q", attribute)
	}
	points := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}

// OverlayLayer is one group of lines in an SVG overlay.
type OverlayLayer struct {
	Class string
	Color string
	Lines LineSet
}

// errWriter remembers the first write error, which svgo drops.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	var n int
	n, e.err = e.w.Write(p)
	return n, e.err
}

// WriteOverlay draws the layers as an SVG of the given size. Coordinates are
// rounded to whole pixels. Layers classed "skeleton" or "outline" can be read
// back with LoadLineSets. If image is not empty it is referenced as the
// background.
func WriteOverlay(w io.Writer, width, height int, image string, layers ...OverlayLayer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	if image != "" {
		canvas.Image(0, 0, width, height, image)
	}
	for _, layer := range layers {
		canvas.Gid(layer.Class)
		for _, line := range layer.Lines {
			s, e := Round(line.Start), Round(line.End)
			canvas.Line(s.X, s.Y, e.X, e.Y,
				fmt.Sprintf(`class="%s"`, layer.Class),
				fmt.Sprintf("stroke:%s;stroke-width:1", layer.Color))
		}
		canvas.Gend()
	}
	canvas.End()
	return errors.Wrap(ew.err, "writing overlay")
}
