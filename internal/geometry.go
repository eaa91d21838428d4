package internal

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Point is a position (or direction) in image or tiling space. All of the
// float geometry goes through seehuhn's Vec2 so we get Add/Sub/Mul/Dot/Length
// for free.
type Point = vec.Vec2

// Endpoints of consecutive outline segments are matched with this absolute
// tolerance. Sorting and transforming accumulate a little float error, so an
// exact comparison would reject perfectly good loops.
const LoopTolerance = 1e-3

// Equal compares two floats with LoopTolerance.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < LoopTolerance
}

// PointsEqual compares two points with LoopTolerance on each axis.
func PointsEqual(a, b Point) bool {
	return Equal(a.X, b.X) && Equal(a.Y, b.Y)
}

// Perp rotates v by 90 degrees so that (v, Perp(v)) keeps the handedness used
// by the warp field: perp(x, y) = (y, -x).
func Perp(v Point) Point {
	return Point{X: v.Y, Y: -v.X}
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// IntPoint addresses a single pixel. X is the column, Y is the row.
type IntPoint struct {
	X, Y int
}

// Round converts a point to the pixel it falls in, rounding to nearest.
func Round(p Point) IntPoint {
	return IntPoint{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Point converts the pixel back to float coordinates.
func (p IntPoint) Point() Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

func (p IntPoint) Add(dx, dy int) IntPoint {
	return IntPoint{X: p.X + dx, Y: p.Y + dy}
}

func (p IntPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// FeatureLine is a directed control segment. It is used both for skeleton
// lines, which are never modified, and for outline lines, which are replaced
// stage by stage.
type FeatureLine struct {
	Start Point
	End   Point
}

// Line is shorthand for building a FeatureLine from raw coordinates.
func Line(x1, y1, x2, y2 float64) FeatureLine {
	return FeatureLine{Start: Point{X: x1, Y: y1}, End: Point{X: x2, Y: y2}}
}

// Vector is End - Start.
func (l FeatureLine) Vector() Point {
	return l.End.Sub(l.Start)
}

func (l FeatureLine) LengthSquared() float64 {
	v := l.Vector()
	return v.Dot(v)
}

func (l FeatureLine) Length() float64 {
	return math.Sqrt(l.LengthSquared())
}

// Degenerate lines have exactly coincident endpoints. No tolerance is used:
// these come out of the snapper converging on the same pixel.
func (l FeatureLine) IsDegenerate() bool {
	return l.Start == l.End
}

// At returns Start + t*(End-Start).
func (l FeatureLine) At(t float64) Point {
	return l.Start.Add(l.Vector().Mul(t))
}

// Lerp blends two lines endpoint by endpoint: (1-t)*l + t*other.
func (l FeatureLine) Lerp(other FeatureLine, t float64) FeatureLine {
	return FeatureLine{
		Start: l.Start.Mul(1 - t).Add(other.Start.Mul(t)),
		End:   l.End.Mul(1 - t).Add(other.End.Mul(t)),
	}
}

func (l FeatureLine) String() string {
	return fmt.Sprintf("[(%g,%g) -> (%g,%g)]", l.Start.X, l.Start.Y, l.End.X, l.End.Y)
}

// LineSet is an ordered sequence of feature lines. Order matters: index i of
// one line set corresponds to index i of its partner.
type LineSet []FeatureLine

// Points flattens the line set into its endpoints, start first.
func (s LineSet) Points() []Point {
	result := make([]Point, 0, 2*len(s))
	for _, line := range s {
		result = append(result, line.Start, line.End)
	}
	return result
}
