package internal

import (
	"math"

	"github.com/pkg/errors"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Outlines arrive in tiling space and are mapped into image space with an
// affine matrix. The coefficients follow the usual six-number convention:
//
//	x' = m[0]*x + m[2]*y + m[4]
//	y' = m[1]*x + m[3]*y + m[5]

// Transform maps a single point.
func Transform(m matrix.Matrix, p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// TransformLines maps every endpoint of lines, returning a new set.
func TransformLines(m matrix.Matrix, lines LineSet) LineSet {
	result := make(LineSet, len(lines))
	for i, line := range lines {
		result[i] = FeatureLine{Start: Transform(m, line.Start), End: Transform(m, line.End)}
	}
	return result
}

// Invert returns the inverse affine map. ErrSingularTransform is returned
// when the linear part has no inverse.
func Invert(m matrix.Matrix) (matrix.Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return matrix.Matrix{}, errors.Wrapf(ErrSingularTransform, "determinant %g", det)
	}
	return m.Inv(), nil
}

// Bounds is the tight float bounding box of every endpoint in lines. An empty
// set gives the zero rectangle.
func Bounds(lines LineSet) rect.Rect {
	if len(lines) == 0 {
		return rect.Rect{}
	}
	first := lines[0].Start
	box := rect.Rect{LLx: first.X, LLy: first.Y, URx: first.X, URy: first.Y}
	for _, p := range lines.Points() {
		box.Add(p.X, p.Y)
	}
	return box
}

// BBox is an integer pixel box, [xmin, ymin, xmax, ymax]. The maximum is
// exclusive when used as an image size: the rendered raster is
// (xmax-xmin) x (ymax-ymin) pixels.
type BBox [4]int

func (b BBox) Width() int  { return b[2] - b[0] }
func (b BBox) Height() int { return b[3] - b[1] }

// Empty reports whether the box covers no pixels.
func (b BBox) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// BoundingBox transforms lines into image space and rounds their extent
// outward: floor of the minimum, ceil of the maximum.
func BoundingBox(lines LineSet, m matrix.Matrix) BBox {
	box := Bounds(TransformLines(m, lines)).Rounded()
	return BBox{int(box.LLx), int(box.LLy), int(box.URx), int(box.URy)}
}
