package internal

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// minBisectionInterval stops the bisection once the search interval is far
// below a pixel. In practice rounding converges long before this.
const minBisectionInterval = 1e-9

// SearchAlongLine looks for the foreground/background transition on the
// segment from s to s+d and returns it as a pixel that is foreground.
//
// The segment is bisected. A foreground midpoint means the transition lies
// between the start and the midpoint; a background midpoint moves the start up
// to the midpoint. The search ends when the rounded midpoint stops changing.
// If the pixel found is still background, we walk on along d one pixel at a
// time until we hit foreground, so the result is never an ambiguous boundary
// pixel. If the segment never reaches foreground, the walk gives up at s+d
// and the last pixel is returned; ok is false in that case.
func SearchAlongLine(r *Raster, s, d Point) (p IntPoint, ok bool) {
	low := s
	high := s.Add(d)
	prev := Round(low)
	var mid Point

	for {
		mid = vec.Middle(low, high)
		current := Round(mid)
		if current == prev || high.Sub(low).Length() < minBisectionInterval {
			break
		}
		prev = current
		if IsForeground(r, current) {
			high = mid
		} else {
			low = mid
		}
	}

	p = Round(mid)
	if IsForeground(r, p) {
		return p, true
	}

	length := d.Length()
	if length == 0 {
		return p, false
	}
	step := d.Mul(1 / length)
	remaining := int(math.Ceil(s.Add(d).Sub(mid).Length()))
	q := mid
	for i := 0; i < remaining; i++ {
		q = q.Add(step)
		p = Round(q)
		if IsForeground(r, p) {
			return p, true
		}
	}
	return p, false
}
