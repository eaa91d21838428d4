package internal

import (
	"log/slog"
	"math"

	"github.com/osuushi/cellmorph/dbg"
)

// Boundary tracing walks the actual pixel silhouette between the two snapped
// endpoints of an outline segment, so that the warp can use many short lines
// hugging the silhouette instead of one long chord. The outer (untraced)
// segment is split into the same number of pieces, keeping both line sets
// paired index for index.

// DefaultSubdivisionStep is the number of traced pixels per sub-segment: a
// path of L pixels is cut into L/step + 1 pieces.
const DefaultSubdivisionStep = 20

// noPixel never matches a real pixel.
var noPixel = IntPoint{X: math.MinInt, Y: math.MinInt}

// walkContour follows the silhouette clockwise from `from` until it reaches
// `to`. The returned path starts with `from` and ends with `to`.
//
// backward is set if the walk passed `previous` (the start of the preceding
// outline segment) before reaching `to`. Coming back to `from`, running out of
// foreground neighbors or exceeding width*height steps abandons the walk.
func walkContour(r *Raster, from, to, previous IntPoint, segment int) (path []IntPoint, backward bool, err error) {
	limit := r.Width * r.Height
	path = []IntPoint{from}
	current := from
	for steps := 1; steps <= limit; steps++ {
		next, ok := nextContourPixel(r, current)
		if !ok {
			return nil, backward, &DegenerateTraceError{Segment: segment, Reason: "isolated pixel " + current.String(), Steps: steps}
		}
		current = next
		path = append(path, current)

		switch current {
		case to:
			return path, backward, nil
		case from:
			return nil, backward, &DegenerateTraceError{Segment: segment, Reason: "returned to start without reaching end", Steps: steps}
		case previous:
			backward = true
		}
	}
	return nil, backward, &DegenerateTraceError{Segment: segment, Reason: "iteration cap exceeded", Steps: limit}
}

// TraceBoundary returns the silhouette path from the start of inner to its
// end. previousStart is the start of the preceding outline segment, used to
// detect a walk that went around the wrong way.
//
// When the clockwise walk passes previousStart first, the outline winds
// against the tracer. The walk still has to reach the end (otherwise the
// endpoints are on different contours and the segment is abandoned), but the
// path it found goes the long way round. The direct path is then recovered by
// walking from the end back to the start and reversing it.
func TraceBoundary(r *Raster, inner FeatureLine, previousStart Point, segment int) ([]IntPoint, error) {
	s, e := Round(inner.Start), Round(inner.End)
	path, backward, err := walkContour(r, s, e, Round(previousStart), segment)
	if err != nil {
		return nil, err
	}
	if !backward {
		return path, nil
	}

	Logger().Debug("trace passed previous segment, walking back from end",
		slog.Int("segment", segment), slog.Any("name", dbg.Named(inner)))
	reversed, _, err := walkContour(r, e, s, noPixel, segment)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed, nil
}

// SubdivisionCount is the number of pieces a traced path of pathLen pixels
// is split into.
func SubdivisionCount(pathLen, step int) int {
	if step <= 0 {
		step = DefaultSubdivisionStep
	}
	return pathLen/step + 1
}

// Subdivide splits a traced path and its outer line into the same number of
// pieces. The outer line is cut at even parameter steps, the path at even
// index steps with the last piece absorbing the remainder. The first and last
// endpoints of both lines are kept exactly, so neighbours stay connected.
func Subdivide(outer, inner FeatureLine, path []IntPoint, step int) (LineSet, LineSet) {
	n := SubdivisionCount(len(path), step)
	if n <= 1 || len(path)-1 < n {
		return LineSet{outer}, LineSet{inner}
	}

	indexStep := (len(path) - 1) / n
	outerParts := make(LineSet, n)
	innerParts := make(LineSet, n)
	for k := 0; k < n; k++ {
		outerStart := outer.At(float64(k) / float64(n))
		outerEnd := outer.At(float64(k+1) / float64(n))
		innerStart := path[k*indexStep].Point()
		innerEnd := path[(k+1)*indexStep].Point()
		if k == 0 {
			outerStart = outer.Start
			innerStart = inner.Start
		}
		if k == n-1 {
			outerEnd = outer.End
			innerEnd = inner.End
		}
		outerParts[k] = FeatureLine{Start: outerStart, End: outerEnd}
		innerParts[k] = FeatureLine{Start: innerStart, End: innerEnd}
	}
	return outerParts, innerParts
}

// TraceOutline traces and subdivides every segment whose endpoints are both
// boundary pixels. Other segments, and segments whose trace fails, are passed
// through unchanged; failures are returned as warnings, never as a fatal
// error.
func TraceOutline(r *Raster, outer, inner LineSet, step int) (tracedOuter, tracedInner LineSet, warnings []error) {
	if len(outer) != len(inner) {
		fatal(&LineCountMismatchError{Destination: len(outer), Source: len(inner)})
	}

	tracedOuter = make(LineSet, 0, len(outer))
	tracedInner = make(LineSet, 0, len(inner))
	for i := range inner {
		line := inner[i]
		s, e := Round(line.Start), Round(line.End)
		if s == e || !IsBoundary(r, s) || !IsBoundary(r, e) {
			tracedOuter = append(tracedOuter, outer[i])
			tracedInner = append(tracedInner, line)
			continue
		}

		previous := inner[CircularIndex(i-1, len(inner))].Start
		path, err := TraceBoundary(r, line, previous, i)
		if err != nil {
			Logger().Warn("segment kept unsubdivided",
				slog.Int("segment", i),
				slog.Any("name", dbg.Named(line)),
				slog.String("error", err.Error()))
			warnings = append(warnings, err)
			tracedOuter = append(tracedOuter, outer[i])
			tracedInner = append(tracedInner, line)
			continue
		}

		outerParts, innerParts := Subdivide(outer[i], line, path, step)
		tracedOuter = append(tracedOuter, outerParts...)
		tracedInner = append(tracedInner, innerParts...)
	}
	return tracedOuter, tracedInner, warnings
}
