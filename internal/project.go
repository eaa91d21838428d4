package internal

import "log/slog"

// NearestSkeletonEndpoint scans every endpoint of every skeleton line and
// returns the closest one to p by squared distance. Ties go to the first
// endpoint found. ok is false for an empty skeleton.
func NearestSkeletonEndpoint(p Point, skeleton LineSet) (nearest Point, ok bool) {
	best := -1.0
	for _, line := range skeleton {
		for _, candidate := range [2]Point{line.Start, line.End} {
			diff := candidate.Sub(p)
			distSq := diff.Dot(diff)
			if best < 0 || distSq < best {
				best = distSq
				nearest = candidate
			}
		}
	}
	return nearest, best >= 0
}

// ProjectPoint moves a single outline point onto the silhouette by searching
// toward the nearest skeleton endpoint. Points that already lie in the
// foreground, and points whose search never reaches it, are returned
// verbatim.
func ProjectPoint(r *Raster, p Point, skeleton LineSet) Point {
	if IsForeground(r, Round(p)) {
		return p
	}
	target, ok := NearestSkeletonEndpoint(p, skeleton)
	if !ok {
		return p
	}
	snapped, found := SearchAlongLine(r, p, target.Sub(p))
	if !found {
		Logger().Warn("snap never reached foreground",
			slog.Float64("x", p.X), slog.Float64("y", p.Y),
			slog.String("toward", Round(target).String()))
		return p
	}
	return snapped.Point()
}

// ProjectOutline snaps the start and end of every outline line onto the
// silhouette. The result has the same length and order as the input.
func ProjectOutline(r *Raster, outline, skeleton LineSet) LineSet {
	result := make(LineSet, len(outline))
	for i, line := range outline {
		result[i] = FeatureLine{
			Start: ProjectPoint(r, line.Start, skeleton),
			End:   ProjectPoint(r, line.End, skeleton),
		}
	}
	return result
}
