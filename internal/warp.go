package internal

import (
	"math"

	"github.com/pkg/errors"
)

// Params are the blend parameters of the multi-line warp.
//
//	P: exponent applied to the destination line length (>= 0)
//	A: distance offset, keeps the weight finite on the line (> 0)
//	B: distance falloff exponent (>= 0)
//	T: blend position between source and destination lines, in [0, 1]
type Params struct {
	P float64 `yaml:"p"`
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	T float64 `yaml:"t"`
}

// DefaultParams returns the stock blend parameters.
func DefaultParams() Params {
	return Params{P: 0, A: 1, B: 2, T: 0.5}
}

// Validate checks the documented ranges.
func (p Params) Validate() error {
	switch {
	case math.IsNaN(p.P) || p.P < 0:
		return errors.Wrapf(ErrInvalidParams, "p = %g, want >= 0", p.P)
	case math.IsNaN(p.A) || p.A <= 0:
		return errors.Wrapf(ErrInvalidParams, "a = %g, want > 0", p.A)
	case math.IsNaN(p.B) || p.B < 0:
		return errors.Wrapf(ErrInvalidParams, "b = %g, want >= 0", p.B)
	case math.IsNaN(p.T) || p.T < 0 || p.T > 1:
		return errors.Wrapf(ErrInvalidParams, "t = %g, want within [0, 1]", p.T)
	}
	return nil
}

// Interpolate blends two equally long line sets: (1-t)*src + t*dst, line by
// line.
func Interpolate(src, dst LineSet, t float64) LineSet {
	if len(src) != len(dst) {
		fatal(&LineCountMismatchError{Destination: len(dst), Source: len(src)})
	}
	result := make(LineSet, len(src))
	for i := range src {
		result[i] = src[i].Lerp(dst[i], t)
	}
	return result
}

// warpLine caches what the warp needs per line pair so that the per-pixel
// loop does no square roots for line lengths.
type warpLine struct {
	dst       FeatureLine
	dstVec    Point
	dstLenSq  float64
	dstLen    float64
	lenWeight float64 // len(dst)^p

	srcStart Point
	srcVec   Point
	srcPerp  Point // perp(srcVec) / |srcVec|
}

// WarpField maps destination-space points to source-space points with the
// Beier-Neely multi-line algorithm. It is read-only after construction and
// safe for concurrent use.
type WarpField struct {
	lines []warpLine
	a, b  float64
}

// NewWarpField validates and precomputes the line pairs. dst and src must
// have the same length, and no destination line may have zero length.
func NewWarpField(dst, src LineSet, params Params) (*WarpField, error) {
	if len(dst) != len(src) {
		return nil, &LineCountMismatchError{Destination: len(dst), Source: len(src)}
	}
	field := &WarpField{lines: make([]warpLine, len(dst)), a: params.A, b: params.B}
	for i := range dst {
		d, s := dst[i], src[i]
		if d.IsDegenerate() {
			return nil, &DegenerateLineError{Index: i}
		}
		wl := warpLine{dst: d, dstVec: d.Vector(), srcStart: s.Start, srcVec: s.Vector()}
		wl.dstLenSq = wl.dstVec.Dot(wl.dstVec)
		wl.dstLen = math.Sqrt(wl.dstLenSq)
		wl.lenWeight = math.Pow(wl.dstLen, params.P)
		// A collapsed source line maps every point of its influence region
		// onto its start point. That is well defined, so only the
		// perpendicular term is dropped.
		if srcLen := wl.srcVec.Length(); srcLen > 0 {
			wl.srcPerp = Perp(wl.srcVec).Mul(1 / srcLen)
		}
		field.lines[i] = wl
	}
	return field, nil
}

// Len is the number of line pairs.
func (f *WarpField) Len() int {
	return len(f.lines)
}

// Map returns the source-space point corresponding to q. With no lines the
// field is the identity. If every weight underflows to zero the result is
// NaN, which callers treat as outside the source.
func (f *WarpField) Map(q Point) Point {
	if len(f.lines) == 0 {
		return q
	}
	var sum Point
	var weightSum float64
	for i := range f.lines {
		l := &f.lines[i]
		pd := q.Sub(l.dst.Start)
		u := pd.Dot(l.dstVec) / l.dstLenSq
		v := pd.Dot(Perp(l.dstVec)) / l.dstLen

		x := l.srcStart.Add(l.srcVec.Mul(u)).Add(l.srcPerp.Mul(v))

		var dist float64
		switch {
		case u < 0:
			dist = pd.Length()
		case u > 1:
			dist = q.Sub(l.dst.End).Length()
		default:
			dist = math.Abs(v)
		}

		weight := math.Pow(l.lenWeight/(f.a+dist), f.b)
		sum = sum.Add(x.Mul(weight))
		weightSum += weight
	}
	return sum.Mul(1 / weightSum)
}

// Warp is the one-shot form of the warp field for a single point. Mismatched
// or degenerate line sets are fatal.
func Warp(q Point, dst, src LineSet, params Params) Point {
	field, err := NewWarpField(dst, src, params)
	if err != nil {
		fatal(err)
	}
	return field.Map(q)
}
