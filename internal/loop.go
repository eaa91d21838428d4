package internal

// Facilities for keeping an outline a single closed loop, and for keeping an
// (outer, inner) pair of line sets in lock step.

// SortOutline reorders an unordered bag of polygon edges into one closed
// loop, starting from the first edge, so that each line's end matches the
// next line's start within LoopTolerance. Edges are matched by their start
// point only; direction is never flipped.
//
// An *InvalidLoopError is returned if the edges are open, self-intersecting
// at a vertex, or form more than one component.
func SortOutline(lines LineSet) (LineSet, error) {
	if len(lines) == 0 {
		return nil, &InvalidLoopError{Index: -1}
	}

	used := make([]bool, len(lines))
	sorted := make(LineSet, 0, len(lines))
	sorted = append(sorted, lines[0])
	used[0] = true

	for len(sorted) < len(lines) {
		end := sorted[len(sorted)-1].End
		next := -1
		for j, candidate := range lines {
			if !used[j] && PointsEqual(candidate.Start, end) {
				next = j
				break
			}
		}
		if next < 0 {
			return nil, &InvalidLoopError{Index: len(sorted) - 1, End: end}
		}
		used[next] = true
		sorted = append(sorted, lines[next])
	}

	// Everything was placed, but the chain must also come back to where it
	// started.
	if !IsClosedLoop(sorted) {
		last := sorted[len(sorted)-1]
		return nil, &InvalidLoopError{Index: len(sorted) - 1, End: last.End}
	}
	return sorted, nil
}

// IsClosedLoop reports whether consecutive lines share endpoints, including
// the wrap around from the last line to the first.
func IsClosedLoop(lines LineSet) bool {
	if len(lines) == 0 {
		return false
	}
	for i, line := range lines {
		next := lines[CircularIndex(i+1, len(lines))]
		if !PointsEqual(line.End, next.Start) {
			return false
		}
	}
	return true
}

// RemoveDegenerate drops every index whose inner line has exactly coincident
// endpoints, from both sequences, so that the pairing survives. The inputs are
// not modified.
func RemoveDegenerate(outer, inner LineSet) (LineSet, LineSet) {
	if len(outer) != len(inner) {
		fatal(&LineCountMismatchError{Destination: len(outer), Source: len(inner)})
	}
	keptOuter := make(LineSet, 0, len(outer))
	keptInner := make(LineSet, 0, len(inner))
	for i := range inner {
		if inner[i].IsDegenerate() {
			continue
		}
		keptOuter = append(keptOuter, outer[i])
		keptInner = append(keptInner, inner[i])
	}
	return keptOuter, keptInner
}

// RemoveDegenerateLines drops zero-length lines from a single set. Used for
// the skeleton, which is paired with itself.
func RemoveDegenerateLines(lines LineSet) LineSet {
	kept, _ := RemoveDegenerate(lines, lines)
	return kept
}
