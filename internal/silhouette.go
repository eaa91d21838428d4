package internal

// The silhouette is the set of pixels whose colour is not exactly Background.
// Anything outside the raster is background too, which is what keeps the
// searches below from ever reading out of bounds.

// IsForeground reports whether p is inside the raster and not the background
// sentinel colour.
func IsForeground(r *Raster, p IntPoint) bool {
	if !r.InBounds(p) {
		return false
	}
	return r.At(p.X, p.Y) != Background
}

// Neighbor directions in clockwise order, starting at the top left. Rows grow
// downward, so "clockwise" is as seen on screen. Tracing depends on this
// order, do not reshuffle it.
type Neighbor int

const (
	NorthWest Neighbor = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
)

var neighborOffsets = [8]IntPoint{
	NorthWest: {-1, -1},
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
}

// Neighbors returns the 8-connected ring around p in clockwise order starting
// at the north west neighbor. The array is returned by value, so callers never
// share it.
func Neighbors(p IntPoint) [8]IntPoint {
	var result [8]IntPoint
	for i, offset := range neighborOffsets {
		result[i] = p.Add(offset.X, offset.Y)
	}
	return result
}

// IsBoundary reports whether p is a foreground pixel with at least one
// background neighbor.
func IsBoundary(r *Raster, p IntPoint) bool {
	if !IsForeground(r, p) {
		return false
	}
	for _, n := range Neighbors(p) {
		if !IsForeground(r, n) {
			return true
		}
	}
	return false
}

// firstBackgroundNeighbor returns the index of the first background neighbor
// of p in clockwise order, or -1 if p is surrounded by foreground.
func firstBackgroundNeighbor(r *Raster, ring [8]IntPoint) int {
	for i, n := range ring {
		if !IsForeground(r, n) {
			return i
		}
	}
	return -1
}

// nextContourPixel does one Moore step: starting from the first background
// neighbor of p, scan clockwise for the first foreground neighbor.
func nextContourPixel(r *Raster, p IntPoint) (IntPoint, bool) {
	ring := Neighbors(p)
	start := firstBackgroundNeighbor(r, ring)
	if start < 0 {
		return p, false
	}
	for k := 1; k < 8; k++ {
		n := ring[CircularIndex(start+k, 8)]
		if IsForeground(r, n) {
			return n, true
		}
	}
	return p, false
}
